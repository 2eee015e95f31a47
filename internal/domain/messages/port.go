package messages

import (
	"context"
	"time"
)

// Field selects the column for Distinct queries.
type Field string

const (
	FieldCompany Field = "empresa"
	FieldService Field = "servicio"
)

// Filter narrows count/distinct queries. Empty fields match everything.
type Filter struct {
	Company string
	Service string
}

// GroupCount is one row of the (company, service, sentiment) group-by used
// to assemble the nested report in a single pass over distinct pairs.
type GroupCount struct {
	Company   string
	Service   string
	Sentiment Sentiment
	Count     int
}

// Repository port (interface for persistence)
type Repository interface {
	Save(ctx context.Context, m *Message) error
	CountBySentiment(ctx context.Context, f Filter) (map[Sentiment]int, error)

	// Distinct returns the distinct values of field in first-insert order.
	// FieldService requires f.Company to scope the lookup.
	Distinct(ctx context.Context, field Field, f Filter) ([]string, error)

	// EarliestTimestamp reports the oldest message timestamp; ok is false
	// when the store is empty.
	EarliestTimestamp(ctx context.Context) (ts time.Time, ok bool, err error)

	// GroupedCounts returns one row per (company, service, sentiment),
	// ordered by first appearance of each group.
	GroupedCounts(ctx context.Context) ([]GroupCount, error)
}

// ArchiveStore port (interface for raw-document archiving)
type ArchiveStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
