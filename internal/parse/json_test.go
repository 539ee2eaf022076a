package parse

import (
	"testing"

	"github.com/hkhalid/butrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonPayload(body string) *domain.RawPayload {
	return &domain.RawPayload{
		CourseID:    testCourse.ID,
		Body:        []byte(body),
		ContentType: "application/json",
		StatusCode:  200,
	}
}

func TestFeedParser_BareArray(t *testing.T) {
	payload := jsonPayload(`[
		{"title":"Quiz 3","deadline":"25 September 2025-11:00 pm","submitted":true},
		{"title":"Lab 4","deadline":"TBA"}
	]`)

	p := &FeedParser{}
	require.True(t, p.CanParse(payload))

	records, stats := p.Parse(testCourse, payload)
	require.Len(t, records, 2)
	assert.Equal(t, domain.StatusSubmitted, records[0].Status)
	assert.NotNil(t, records[0].DueAt)
	assert.Equal(t, domain.StatusNotSubmitted, records[1].Status)
	assert.Nil(t, records[1].DueAt)
	assert.Equal(t, 1, stats.UnparsedDeadlines)
}

func TestFeedParser_Envelope(t *testing.T) {
	payload := jsonPayload(`{"assignments":[{"title":"Project","deadline":"1 Dec 2025-5:00 pm"}]}`)

	records, _ := (&FeedParser{}).Parse(testCourse, payload)
	require.Len(t, records, 1)
	assert.Equal(t, "Project", records[0].Title)
}

func TestFeedParser_ToleratesExtraAndMissingFields(t *testing.T) {
	payload := jsonPayload(`[{"title":"X","weight":12.5,"instructor":"someone"}]`)

	records, stats := (&FeedParser{}).Parse(testCourse, payload)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].DueAt)
	assert.Equal(t, 1, stats.UnparsedDeadlines)
	assert.Zero(t, stats.SkippedRows)
}

func TestFeedParser_EmptyList(t *testing.T) {
	records, stats := (&FeedParser{}).Parse(testCourse, jsonPayload(`[]`))
	assert.Empty(t, records)
	assert.Zero(t, stats.SkippedRows)
}

func TestFeedParser_GarbageCountsAsDefect(t *testing.T) {
	records, stats := (&FeedParser{}).Parse(testCourse, jsonPayload(`{"assignments": 42}`))
	assert.Empty(t, records)
	assert.Equal(t, 1, stats.SkippedRows)
}

func TestNormalizer_DispatchesByShape(t *testing.T) {
	n := NewNormalizer()

	htmlRecords, _ := n.Parse(testCourse, page(row("A1", "", "Upload", "25 Sep 2025-11:00 pm")))
	require.Len(t, htmlRecords, 1)

	jsonRecords, _ := n.Parse(testCourse, jsonPayload(`[{"title":"B1"}]`))
	require.Len(t, jsonRecords, 1)

	assert.Equal(t, "A1", htmlRecords[0].Title)
	assert.Equal(t, "B1", jsonRecords[0].Title)
}

func TestNormalizer_UnknownShape(t *testing.T) {
	payload := &domain.RawPayload{
		CourseID:    testCourse.ID,
		Body:        []byte("%PDF-1.7 binary junk"),
		ContentType: "application/pdf",
	}
	records, stats := NewNormalizer().Parse(testCourse, payload)
	assert.Empty(t, records)
	assert.Equal(t, 1, stats.SkippedRows)
}
