package triage

import (
	"fmt"
	"testing"
	"time"

	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/parse"
	"github.com/hkhalid/butrack/internal/portal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedPayload builds a JSON-feed payload so aggregate tests don't depend
// on HTML fixtures.
func feedPayload(courseID string, entries string) *domain.RawPayload {
	return &domain.RawPayload{
		CourseID:    courseID,
		Body:        []byte(entries),
		ContentType: "application/json",
		StatusCode:  200,
	}
}

func okResult(course domain.Course, entries string) portal.CourseResult {
	return portal.CourseResult{Course: course, Payload: feedPayload(course.ID, entries)}
}

func failedResult(course domain.Course, kind portal.FetchKind) portal.CourseResult {
	return portal.CourseResult{Course: course, Err: &portal.FetchError{Kind: kind}}
}

func deadline(t time.Time) string {
	return t.Format("2 January 2006") + "-" + t.Format("3:04 pm")
}

func TestAggregate_SortOrderAcrossCategories(t *testing.T) {
	// One record per category, deliberately fed in scrambled order.
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "OS"}, fmt.Sprintf(`[
			{"title":"Upcoming Lab","deadline":"%s"},
			{"title":"Overdue Lab","deadline":"%s"},
			{"title":"Urgent Lab","deadline":"%s"},
			{"title":"Mystery Lab","deadline":"sometime"},
			{"title":"Due Soon Lab","deadline":"%s"}
		]`,
			deadline(fixedNow.AddDate(0, 0, 20)),
			deadline(fixedNow.AddDate(0, 0, -2)),
			deadline(fixedNow.AddDate(0, 0, 1)),
			deadline(fixedNow.AddDate(0, 0, 5)),
		)),
	}

	res, err := Aggregate(results, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 5)

	var got []domain.Category
	for _, a := range res.Assignments {
		got = append(got, a.Category)
	}
	assert.Equal(t, []domain.Category{
		domain.CategoryOverdue,
		domain.CategoryUrgent,
		domain.CategoryDueSoon,
		domain.CategoryUnknown,
		domain.CategoryUpcoming,
	}, got)
}

func TestAggregate_DueAscendingWithinCategory_NilLast(t *testing.T) {
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "DB"}, fmt.Sprintf(`[
			{"title":"Later","deadline":"%s"},
			{"title":"Sooner","deadline":"%s"}
		]`,
			deadline(fixedNow.AddDate(0, 0, 6)),
			deadline(fixedNow.AddDate(0, 0, 5)),
		)),
	}

	res, err := Aggregate(results, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	require.Len(t, res.Assignments, 2)
	assert.Equal(t, "Sooner", res.Assignments[0].Title)
	assert.Equal(t, "Later", res.Assignments[1].Title)
}

func TestAggregate_DeduplicatesByIdentity(t *testing.T) {
	due := deadline(fixedNow.AddDate(0, 0, 2))
	entry := fmt.Sprintf(`[{"title":"Assignment 1","deadline":"%s"}]`, due)

	// Same (course, title, due) tuple appears in two payloads for the
	// same course id; only the first survives.
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "OS"}, entry),
		okResult(domain.Course{ID: "c1", Name: "OS"}, entry),
		okResult(domain.Course{ID: "c2", Name: "DB"}, entry),
	}

	res, err := Aggregate(results, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	// Different course ids are different assignments.
	assert.Len(t, res.Assignments, 2)
}

func TestAggregate_DeduplicationIsIdempotent(t *testing.T) {
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "OS"}, fmt.Sprintf(`[
			{"title":"A","deadline":"%s"},
			{"title":"A","deadline":"%s"},
			{"title":"B","deadline":""}
		]`, deadline(fixedNow.AddDate(0, 0, 2)), deadline(fixedNow.AddDate(0, 0, 2)))),
	}

	norm := parse.NewNormalizer()
	first, err := Aggregate(results, norm, fixedNow)
	require.NoError(t, err)
	second, err := Aggregate(results, norm, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Len(t, first.Assignments, 2)
}

func TestAggregate_PartialFailureYieldsWarnings(t *testing.T) {
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "OS"},
			fmt.Sprintf(`[{"title":"A","deadline":"%s"}]`, deadline(fixedNow.AddDate(0, 0, 2)))),
		failedResult(domain.Course{ID: "c2", Name: "DB"}, portal.FetchTimeout),
	}

	res, err := Aggregate(results, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	assert.Len(t, res.Assignments, 1)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "c2", res.Warnings[0].Course.ID)
	assert.False(t, res.SessionExpired)
}

func TestAggregate_SessionExpirySurfacedOnce(t *testing.T) {
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "OS"}, `[]`),
		failedResult(domain.Course{ID: "c2", Name: "DB"}, portal.FetchSessionExpired),
		failedResult(domain.Course{ID: "c3", Name: "SE"}, portal.FetchSessionExpired),
	}

	res, err := Aggregate(results, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	assert.True(t, res.SessionExpired)
	assert.Len(t, res.Warnings, 2)
}

func TestAggregate_TotalFailure(t *testing.T) {
	results := []portal.CourseResult{
		failedResult(domain.Course{ID: "c1"}, portal.FetchTimeout),
		failedResult(domain.Course{ID: "c2"}, portal.FetchTimeout),
		failedResult(domain.Course{ID: "c3"}, portal.FetchSessionExpired),
		failedResult(domain.Course{ID: "c4"}, portal.FetchHTTPStatus),
	}

	_, err := Aggregate(results, parse.NewNormalizer(), fixedNow)

	var total *TotalFailureError
	require.ErrorAs(t, err, &total)

	sum := 0
	for _, n := range total.Breakdown {
		sum += n
	}
	assert.Equal(t, len(results), sum)
	assert.Equal(t, 2, total.Breakdown[portal.FetchTimeout])
	assert.Equal(t, 1, total.Breakdown[portal.FetchSessionExpired])
	assert.Equal(t, 1, total.Breakdown[portal.FetchHTTPStatus])
}

func TestAggregate_EmptyInputIsNotTotalFailure(t *testing.T) {
	res, err := Aggregate(nil, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	assert.Empty(t, res.Assignments)
	assert.Empty(t, res.Warnings)
}

func TestAggregate_CountsParseDefects(t *testing.T) {
	results := []portal.CourseResult{
		okResult(domain.Course{ID: "c1", Name: "OS"}, `[
			{"title":"Readable","deadline":"garbled text"},
			{"title":"","deadline":""}
		]`),
	}

	res, err := Aggregate(results, parse.NewNormalizer(), fixedNow)
	require.NoError(t, err)
	assert.Len(t, res.Assignments, 1)
	assert.Equal(t, 1, res.Defects.UnparsedDeadlines)
	assert.Equal(t, 1, res.Defects.SkippedRows)
}
