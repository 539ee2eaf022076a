package portal

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/hkhalid/butrack/internal/domain"
)

// CourseResult pairs a course with either its raw payload or the fetch
// failure that replaced it. Exactly one of Payload and Err is set.
type CourseResult struct {
	Course  domain.Course
	Payload *domain.RawPayload
	Err     *FetchError
}

// ProgressFunc is called after each course settles, with the number of
// settled courses and the total. It may be called from worker goroutines.
type ProgressFunc func(completed, total int)

// FetchAll requests every course's assignment page through a bounded
// worker pool and returns exactly one result per input course, in input
// order. Individual failures never abort the run; each worker writes into
// its own index-addressed slot, so no result is dropped and no collection
// needs locking.
//
// The only whole-run failure is cancellation: when ctx is done before all
// courses settle, FetchAll discards everything and returns ctx.Err(), so
// a cancelled run never surfaces a partial result set.
func (c *Client) FetchAll(ctx context.Context, sess *domain.Session, semesterID string, courses []domain.Course, onProgress ProgressFunc) ([]CourseResult, error) {
	results := make([]CourseResult, len(courses))
	if len(courses) == 0 {
		return results, ctx.Err()
	}

	limit := c.cfg.ConcurrencyLimit
	if limit < 1 {
		limit = 1
	}
	if limit > len(courses) {
		limit = len(courses)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	var completed atomic.Int64

	for w := 0; w < limit; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.fetchCourse(ctx, sess, semesterID, courses[i])
				done := int(completed.Add(1))
				if onProgress != nil {
					onProgress(done, len(courses))
				}
			}
		}()
	}

feed:
	for i := range courses {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// fetchCourse issues the single per-course request under its own timeout.
func (c *Client) fetchCourse(ctx context.Context, sess *domain.Session, semesterID string, course domain.Course) CourseResult {
	res := CourseResult{Course: course}

	reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout())
	defer cancel()

	target := fmt.Sprintf("%s%s?s=%s&oc=%s",
		sess.LMSBaseURL, assignmentsPath,
		url.QueryEscape(semesterID), url.QueryEscape(course.ID))

	f, err := c.get(reqCtx, sess, target)
	if err != nil {
		res.Err = classifyFetchErr(ctx, err)
		return res
	}

	if bouncedToLogin(f) {
		res.Err = &FetchError{Kind: FetchSessionExpired}
		return res
	}
	if f.status != 200 {
		res.Err = &FetchError{Kind: FetchHTTPStatus, Status: f.status}
		return res
	}

	res.Payload = &domain.RawPayload{
		CourseID:    course.ID,
		Body:        f.body,
		ContentType: f.contentType,
		StatusCode:  f.status,
	}
	return res
}
