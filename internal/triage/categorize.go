// Package triage merges per-course results into the final categorized,
// deduplicated, sorted assignment list.
package triage

import (
	"math"
	"time"

	"github.com/hkhalid/butrack/internal/domain"
)

// Categorize maps a deadline onto an urgency category. It is pure: now is
// always threaded in by the caller so one snapshot covers a whole run and
// tests stay deterministic.
//
// Anything already past is Overdue, however recently it passed. For the
// rest, distance is measured in local calendar days, not raw hours: an
// assignment due at 23:59 three days from now and one due at 08:00 the
// same day are equally Urgent.
func Categorize(due *time.Time, now time.Time) domain.Category {
	if due == nil {
		return domain.CategoryUnknown
	}
	if due.Before(now) {
		return domain.CategoryOverdue
	}

	days := calendarDaysBetween(now, *due)
	switch {
	case days <= 3:
		return domain.CategoryUrgent
	case days <= 7:
		return domain.CategoryDueSoon
	default:
		return domain.CategoryUpcoming
	}
}

// CategoryPriority returns a sort priority (lower = shown first).
// Unknown sorts between DueSoon and Upcoming so unreviewable deadlines
// are not buried under far-future work.
func CategoryPriority(c domain.Category) int {
	switch c {
	case domain.CategoryOverdue:
		return 0
	case domain.CategoryUrgent:
		return 1
	case domain.CategoryDueSoon:
		return 2
	case domain.CategoryUnknown:
		return 3
	default:
		return 4
	}
}

// calendarDaysBetween counts local midnight boundaries between now and due.
// Rounding absorbs DST-shortened or -lengthened days.
func calendarDaysBetween(now, due time.Time) int {
	loc := now.Location()
	ny, nm, nd := now.Date()
	dy, dm, dd := due.In(loc).Date()
	start := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)
	end := time.Date(dy, dm, dd, 0, 0, 0, 0, loc)
	return int(math.Round(end.Sub(start).Hours() / 24))
}
