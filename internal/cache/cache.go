// Package cache provides the bounded-TTL snapshot cache that sits in front
// of the quote provider. It belongs to the data-acquisition side: the
// analysis engine never touches it and stays a pure function of its input.
// Keys are upper-cased tickers; values are opaque payloads (the marshaled
// statement set).
package cache

import (
	"context"
	"strings"
	"time"
)

// DefaultTTL bounds how long a fetched snapshot may be served before the
// provider is consulted again.
const DefaultTTL = time.Hour

// Stats summarizes cache occupancy.
type Stats struct {
	Entries int `json:"entries"`
	Expired int `json:"expired"`
}

// Store is the TTL cache contract. Get never returns expired payloads;
// Prune deletes them.
type Store interface {
	Get(ctx context.Context, ticker string) ([]byte, bool, error)
	Set(ctx context.Context, ticker string, payload []byte, ttl time.Duration) error
	Prune(ctx context.Context) (int, error)
	Stats(ctx context.Context) (Stats, error)
	Migrate(ctx context.Context) error
	Close() error
}

// Key normalizes a ticker for cache lookup.
func Key(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
