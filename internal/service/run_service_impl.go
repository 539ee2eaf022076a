package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/parse"
	"github.com/hkhalid/butrack/internal/portal"
	"github.com/hkhalid/butrack/internal/repository"
	"github.com/hkhalid/butrack/internal/triage"
)

type runService struct {
	bootstrapper portal.Bootstrapper
	client       *portal.Client
	creds        repository.CredentialRepo
	normalizer   *parse.Normalizer
	observer     Observer

	// now is swappable so tests can pin the categorization snapshot.
	now func() time.Time
}

// NewRunService wires the pipeline. creds may be nil when no store is
// available; validated credentials then simply are not persisted.
func NewRunService(
	bootstrapper portal.Bootstrapper,
	client *portal.Client,
	creds repository.CredentialRepo,
	observer Observer,
) RunService {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &runService{
		bootstrapper: bootstrapper,
		client:       client,
		creds:        creds,
		normalizer:   parse.NewNormalizer(),
		observer:     observer,
		now:          time.Now,
	}
}

// Run executes the full pipeline. Each phase completes before the next
// begins; only the fetch phase runs concurrently inside FetchAll. A
// cancelled run returns ctx's error and no partial result.
func (s *runService) Run(ctx context.Context, creds *domain.Credentials) (*triage.Result, error) {
	runID := uuid.NewString()

	s.observer.OnEvent(Event{Kind: EventBootstrapStarted, RunID: runID})

	sess, err := s.bootstrapper.Bootstrap(ctx, creds)
	if err != nil {
		return nil, s.fail(runID, err)
	}

	// Persist only after the portal accepted the credentials, so a typo
	// never ends up on disk.
	if s.creds != nil {
		if err := s.creds.Save(ctx, creds); err != nil {
			return nil, s.fail(runID, fmt.Errorf("saving credentials: %w", err))
		}
	}
	s.observer.OnEvent(Event{Kind: EventBootstrapDone, RunID: runID})

	list, err := s.client.DiscoverCourses(ctx, sess)
	if err != nil {
		return nil, s.fail(runID, fmt.Errorf("discovering courses: %w", err))
	}
	s.observer.OnEvent(Event{Kind: EventCoursesDiscovered, RunID: runID, Count: len(list.Courses)})

	results, err := s.client.FetchAll(ctx, sess, list.SemesterID, list.Courses,
		func(completed, total int) {
			s.observer.OnEvent(Event{
				Kind: EventFetchProgress, RunID: runID,
				Completed: completed, Total: total,
			})
		})
	if err != nil {
		return nil, s.fail(runID, err)
	}

	result, err := triage.Aggregate(results, s.normalizer, s.now())
	if err != nil {
		return nil, s.fail(runID, err)
	}

	s.observer.OnEvent(Event{
		Kind: EventRunComplete, RunID: runID,
		Records: len(result.Assignments), Warnings: len(result.Warnings),
	})
	return result, nil
}

func (s *runService) fail(runID string, err error) error {
	s.observer.OnEvent(Event{
		Kind: EventRunFailed, RunID: runID,
		FailureKind: FailureKind(err),
	})
	return err
}

// FailureKind names the run-level failure class for an error, so the
// presentation layer can tell the user whether to retry, re-enter
// credentials, or wait.
func FailureKind(err error) string {
	var total *triage.TotalFailureError
	switch {
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, portal.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, portal.ErrLoginTimeout):
		return "login_timeout"
	case errors.Is(err, portal.ErrPortalUnreachable):
		return "portal_unreachable"
	case errors.Is(err, portal.ErrAutomationFailure):
		return "automation_failure"
	case errors.Is(err, portal.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, portal.ErrMalformedResponse):
		return "malformed_response"
	case errors.As(err, &total):
		return "total_failure"
	default:
		return "unknown"
	}
}
