package ingest

import (
	"strings"
	"time"
)

// Accepted timestamp shapes, most specific first. Layouts without a zone are
// taken as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime normalizes an ISO-8601-ish string to UTC. Empty or unparseable
// values return nil, so stale or garbage timestamps degrade to the ingestion
// clock downstream instead of failing the record.
func ParseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := t.UTC()
			return &u
		}
	}
	return nil
}
