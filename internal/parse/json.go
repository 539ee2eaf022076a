package parse

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/hkhalid/butrack/internal/domain"
)

// feedEntry mirrors one entry in the portal's JSON assignment feed. Extra
// fields are ignored; missing ones degrade gracefully.
type feedEntry struct {
	Title     string `json:"title"`
	Deadline  string `json:"deadline"`
	Submitted bool   `json:"submitted"`
}

type feedEnvelope struct {
	Assignments []feedEntry `json:"assignments"`
}

// FeedParser reads the JSON feed some portal endpoints return instead of
// the HTML table: either a bare array of entries or an object wrapping
// one under "assignments".
type FeedParser struct{}

func (*FeedParser) CanParse(p *domain.RawPayload) bool {
	if strings.Contains(p.ContentType, "json") {
		return true
	}
	trimmed := bytes.TrimSpace(p.Body)
	return len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') &&
		!bytes.Contains(trimmed, []byte("<html"))
}

func (*FeedParser) Parse(course domain.Course, p *domain.RawPayload) ([]domain.Assignment, Stats) {
	var stats Stats

	entries, ok := decodeFeed(p.Body)
	if !ok {
		return nil, Stats{SkippedRows: 1}
	}

	var records []domain.Assignment
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if title == "" {
			stats.SkippedRows++
			continue
		}

		status := domain.StatusNotSubmitted
		if e.Submitted {
			status = domain.StatusSubmitted
		}

		dueAt := ParseDeadline(e.Deadline)
		if dueAt == nil {
			stats.UnparsedDeadlines++
		}

		records = append(records, domain.Assignment{
			Title:       title,
			CourseID:    course.ID,
			CourseName:  course.Name,
			DueAt:       dueAt,
			DeadlineRaw: strings.TrimSpace(e.Deadline),
			Status:      status,
		})
	}

	return records, stats
}

func decodeFeed(body []byte) ([]feedEntry, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, true
	}
	if trimmed[0] == '[' {
		var entries []feedEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, false
		}
		return entries, true
	}
	var env feedEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}
	return env.Assignments, true
}
