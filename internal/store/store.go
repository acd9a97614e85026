// Package store holds the entity repositories. Each repository is stateless:
// it wraps an injected database handle and the database is the sole source of
// truth between calls.
package store

import (
	"time"

	"github.com/google/uuid"
)

func newID() string {
	return uuid.NewString()
}

// now returns the canonical ISO-8601 UTC timestamp used for all
// created_at/updated_at columns. The leading date segment is what the
// daily-summary prefix match relies on.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// dateAfter returns the calendar date days from now, formatted for
// comparison against expiry_date columns.
func dateAfter(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}
