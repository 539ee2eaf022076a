package parse

import (
	"fmt"
	"testing"

	"github.com/hkhalid/butrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCourse = domain.Course{ID: "1415", Name: "Operating Systems"}

// row renders one assignment row in the portal's eight-column layout.
func row(title, submissionCell, actionCell, deadline string) string {
	return fmt.Sprintf(`<tr>
		<td>1</td><td>%s</td><td>desc.pdf</td><td>%s</td>
		<td>10</td><td>CLO-1</td><td>%s</td><td>%s</td>
	</tr>`, title, submissionCell, actionCell, deadline)
}

func page(rows ...string) *domain.RawPayload {
	body := `<html><body><table class="table"><thead>
		<tr><th>#</th><th>Title</th><th>File</th><th>Submission</th>
		<th>Marks</th><th>CLO</th><th>Action</th><th>Deadline</th></tr>
	</thead><tbody>`
	for _, r := range rows {
		body += r
	}
	body += `</tbody></table></body></html>`
	return &domain.RawPayload{
		CourseID:    testCourse.ID,
		Body:        []byte(body),
		ContentType: "text/html; charset=UTF-8",
		StatusCode:  200,
	}
}

func TestTableParser_WellFormedRows(t *testing.T) {
	payload := page(
		row("Assignment 1", `<a href="/dl/1">view</a>`, "Upload", "25 September 2025-11:00 pm"),
		row("Assignment 2", "", "Deadline Exceeded", "1 September 2025-11:59 pm"),
	)

	p := &TableParser{}
	require.True(t, p.CanParse(payload))

	records, stats := p.Parse(testCourse, payload)
	require.Len(t, records, 2)
	assert.Zero(t, stats.SkippedRows)
	assert.Zero(t, stats.UnparsedDeadlines)

	first := records[0]
	assert.Equal(t, "Assignment 1", first.Title)
	assert.Equal(t, testCourse.ID, first.CourseID)
	assert.Equal(t, "Operating Systems", first.CourseName)
	assert.Equal(t, domain.StatusSubmitted, first.Status)
	require.NotNil(t, first.DueAt)
	assert.Equal(t, 25, first.DueAt.Day())

	second := records[1]
	assert.Equal(t, domain.StatusNotSubmitted, second.Status)
	require.NotNil(t, second.DueAt)
}

func TestTableParser_MalformedEntryKeptWithoutDeadline(t *testing.T) {
	// Three clean rows plus one whose deadline cell is unreadable: all
	// four must come back, the broken one with a nil due time.
	payload := page(
		row("A1", "", "Upload", "25 September 2025-11:00 pm"),
		row("A2", "", "Upload", "26 September 2025-11:00 pm"),
		row("A3", "", "Upload", "27 September 2025-11:00 pm"),
		row("A4", "", "Upload", "see announcement"),
	)

	records, stats := (&TableParser{}).Parse(testCourse, payload)
	require.Len(t, records, 4)
	assert.Equal(t, 1, stats.UnparsedDeadlines)

	withDue := 0
	for _, r := range records {
		if r.DueAt != nil {
			withDue++
		}
	}
	assert.Equal(t, 3, withDue)
}

func TestTableParser_SkipsShortAndTitlelessRows(t *testing.T) {
	payload := page(
		`<tr><td>truncated</td><td>row</td></tr>`,
		row("", "", "Upload", "25 September 2025-11:00 pm"),
		row("Valid", "", "Upload", "25 September 2025-11:00 pm"),
	)

	records, stats := (&TableParser{}).Parse(testCourse, payload)
	require.Len(t, records, 1)
	assert.Equal(t, "Valid", records[0].Title)
	assert.Equal(t, 2, stats.SkippedRows)
}

func TestTableParser_EmptyTableYieldsNoRecords(t *testing.T) {
	records, stats := (&TableParser{}).Parse(testCourse, page())
	assert.Empty(t, records)
	assert.Zero(t, stats.SkippedRows)
}

func TestTableParser_PreservesRawDeadlineText(t *testing.T) {
	payload := page(row("A1", "", "Upload", "whenever sir says"))
	records, _ := (&TableParser{}).Parse(testCourse, payload)
	require.Len(t, records, 1)
	assert.Equal(t, "whenever sir says", records[0].DeadlineRaw)
	assert.Nil(t, records[0].DueAt)
}
