package parse

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hkhalid/butrack/internal/domain"
)

// Column positions in the LMS assignments table.
const (
	colTitle      = 1
	colSubmission = 3
	colAction     = 6
	colDeadline   = 7
)

// TableParser reads the LMS assignments page: one HTML table per course,
// one row per assignment. A submission download link in the submission
// column means the assignment was handed in; the action column carries a
// "Deadline Exceeded" marker once the portal closes submissions.
type TableParser struct{}

func (*TableParser) CanParse(p *domain.RawPayload) bool {
	if strings.Contains(p.ContentType, "json") {
		return false
	}
	return bytes.Contains(p.Body, []byte("<table")) || bytes.Contains(p.Body, []byte("<html"))
}

func (*TableParser) Parse(course domain.Course, p *domain.RawPayload) ([]domain.Assignment, Stats) {
	var stats Stats

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil, Stats{SkippedRows: 1}
	}

	var records []domain.Assignment
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("th").Length() > 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		if cells.Length() <= colDeadline {
			stats.SkippedRows++
			return
		}

		title := strings.TrimSpace(cells.Eq(colTitle).Text())
		if title == "" {
			stats.SkippedRows++
			return
		}

		status := domain.StatusNotSubmitted
		if cells.Eq(colSubmission).Find("a").Length() > 0 {
			status = domain.StatusSubmitted
		}

		deadlineRaw := strings.TrimSpace(cells.Eq(colDeadline).Text())
		dueAt := ParseDeadline(deadlineRaw)
		if dueAt == nil {
			stats.UnparsedDeadlines++
		}

		records = append(records, domain.Assignment{
			Title:       title,
			CourseID:    course.ID,
			CourseName:  course.Name,
			DueAt:       dueAt,
			DeadlineRaw: deadlineRaw,
			Status:      status,
		})
	})

	return records, stats
}
