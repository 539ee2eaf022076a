package triage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/parse"
	"github.com/hkhalid/butrack/internal/portal"
)

// Warning is a per-course failure carried alongside a partially
// successful run.
type Warning struct {
	Course domain.Course
	Err    *portal.FetchError
}

// Result is the finished output of a run: the sorted record list plus the
// side channels the presentation layer needs.
type Result struct {
	Assignments []domain.Assignment
	Warnings    []Warning
	Defects     parse.Stats

	// SessionExpired is the single run-level signal that at least one
	// course's fetch bounced to the login page. Re-authentication, not
	// per-course retrying, is the remedy.
	SessionExpired bool

	// GeneratedAt is the now snapshot every category was computed from.
	GeneratedAt time.Time
}

// TotalFailureError is returned when every course failed. It carries the
// failure distribution so the caller can tell "re-login" apart from
// "portal is down, try later".
type TotalFailureError struct {
	Breakdown map[portal.FetchKind]int
}

func (e *TotalFailureError) Error() string {
	total := 0
	parts := make([]string, 0, len(e.Breakdown))
	for _, kind := range []portal.FetchKind{
		portal.FetchSessionExpired, portal.FetchTimeout,
		portal.FetchHTTPStatus, portal.FetchNetwork,
	} {
		if n := e.Breakdown[kind]; n > 0 {
			total += n
			parts = append(parts, fmt.Sprintf("%s=%d", kind, n))
		}
	}
	return fmt.Sprintf("all %d course fetches failed (%s)", total, strings.Join(parts, ", "))
}

// Aggregate parses every successful payload, flattens the records,
// deduplicates them, categorizes each against one now snapshot, and sorts
// for presentation. Per-course failures become warnings unless every
// course failed, in which case the run fails with a TotalFailureError.
func Aggregate(results []portal.CourseResult, normalizer *parse.Normalizer, now time.Time) (*Result, error) {
	out := &Result{GeneratedAt: now}

	successes := 0
	seen := make(map[domain.Identity]bool)

	for _, res := range results {
		if res.Err != nil {
			if res.Err.Kind == portal.FetchSessionExpired {
				out.SessionExpired = true
			}
			out.Warnings = append(out.Warnings, Warning{Course: res.Course, Err: res.Err})
			continue
		}
		successes++

		records, stats := normalizer.Parse(res.Course, res.Payload)
		out.Defects.SkippedRows += stats.SkippedRows
		out.Defects.UnparsedDeadlines += stats.UnparsedDeadlines

		for _, rec := range records {
			id := rec.Identity()
			if seen[id] {
				continue
			}
			seen[id] = true
			rec.Category = Categorize(rec.DueAt, now)
			out.Assignments = append(out.Assignments, rec)
		}
	}

	if successes == 0 && len(results) > 0 {
		breakdown := make(map[portal.FetchKind]int)
		for _, w := range out.Warnings {
			breakdown[w.Err.Kind]++
		}
		return nil, &TotalFailureError{Breakdown: breakdown}
	}

	sortAssignments(out.Assignments)
	return out, nil
}

// sortAssignments orders records by the deterministic canonical rules:
// 1. Category: overdue > urgent > due_soon > unknown > upcoming
// 2. Due time: earliest first (nil last)
// 3. Course name: lexical ascending
// 4. Title: lexical ascending
func sortAssignments(records []domain.Assignment) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		pa, pb := CategoryPriority(a.Category), CategoryPriority(b.Category)
		if pa != pb {
			return pa < pb
		}

		if (a.DueAt == nil) != (b.DueAt == nil) {
			return a.DueAt != nil // non-nil before nil
		}
		if a.DueAt != nil && b.DueAt != nil && !a.DueAt.Equal(*b.DueAt) {
			return a.DueAt.Before(*b.DueAt)
		}

		if a.CourseName != b.CourseName {
			return a.CourseName < b.CourseName
		}
		return a.Title < b.Title
	})
}
