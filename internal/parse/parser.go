// Package parse turns raw per-course payloads into normalized assignment
// records. Parsers are shape-specific: each knows how to recognize and
// extract one observed portal response shape, so new shapes are new
// implementations rather than new branches.
package parse

import "github.com/hkhalid/butrack/internal/domain"

// Stats counts parse defects. Defects degrade a payload's output but are
// never fatal; an assignment with an unreadable deadline is still shown,
// just categorized Unknown.
type Stats struct {
	// SkippedRows counts entries too broken to yield a record at all.
	SkippedRows int
	// UnparsedDeadlines counts records kept with a nil due time.
	UnparsedDeadlines int
}

// PayloadParser extracts assignment records from one response shape.
type PayloadParser interface {
	// CanParse reports whether this parser recognizes the payload.
	CanParse(p *domain.RawPayload) bool
	// Parse extracts zero or more records. It never fails: entries it
	// cannot read are counted in Stats and skipped.
	Parse(course domain.Course, p *domain.RawPayload) ([]domain.Assignment, Stats)
}

// Normalizer dispatches a payload to the first parser that recognizes it.
type Normalizer struct {
	parsers []PayloadParser
}

// NewNormalizer creates a Normalizer over the portal's known response
// shapes: the assignments HTML table and the JSON feed.
func NewNormalizer() *Normalizer {
	return &Normalizer{parsers: []PayloadParser{
		&FeedParser{},
		&TableParser{},
	}}
}

// Parse normalizes one payload. A payload no parser recognizes yields no
// records and one skipped-row defect.
func (n *Normalizer) Parse(course domain.Course, p *domain.RawPayload) ([]domain.Assignment, Stats) {
	if p == nil {
		return nil, Stats{}
	}
	for _, parser := range n.parsers {
		if parser.CanParse(p) {
			return parser.Parse(course, p)
		}
	}
	return nil, Stats{SkippedRows: 1}
}
