package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hkhalid/butrack/internal/domain"
)

const assignmentsPath = "/Student/Assignments.php"

// CourseList is the result of course discovery. An empty Courses slice is
// a legitimate outcome (the dropdown was present but had no entries), and
// is reported distinctly from a page we could not parse at all.
type CourseList struct {
	SemesterID string
	Courses    []domain.Course
}

// DiscoverCourses fetches the assignments page once and extracts the
// current semester ID plus the enrolled course dropdown. Duplicate course
// IDs are dropped, first occurrence wins, so fan-out never double-fetches.
func (c *Client) DiscoverCourses(ctx context.Context, sess *domain.Session) (*CourseList, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout())
	defer cancel()

	f, err := c.get(ctx, sess, sess.LMSBaseURL+assignmentsPath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetching course listing: %v", ErrPortalUnreachable, err)
	}
	if bouncedToLogin(f) {
		return nil, ErrSessionExpired
	}
	if f.status != http.StatusOK {
		return nil, fmt.Errorf("%w: course listing returned status %d", ErrMalformedResponse, f.status)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(f.body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	courseSel := doc.Find("select#courseId")
	if courseSel.Length() == 0 {
		return nil, fmt.Errorf("%w: course dropdown not found", ErrMalformedResponse)
	}

	list := &CourseList{SemesterID: selectedValue(doc.Find("select#semesterId"))}

	seen := make(map[string]bool)
	courseSel.Find("option").Each(func(_ int, opt *goquery.Selection) {
		id := opt.AttrOr("value", "")
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		list.Courses = append(list.Courses, domain.Course{
			ID:   id,
			Name: strings.TrimSpace(opt.Text()),
		})
	})

	return list, nil
}

// selectedValue returns the value of the selected option, falling back to
// the first option with a value.
func selectedValue(sel *goquery.Selection) string {
	if v := sel.Find("option[selected]").AttrOr("value", ""); v != "" {
		return v
	}
	var first string
	sel.Find("option").EachWithBreak(func(_ int, opt *goquery.Selection) bool {
		if v := opt.AttrOr("value", ""); v != "" {
			first = v
			return false
		}
		return true
	})
	return first
}
