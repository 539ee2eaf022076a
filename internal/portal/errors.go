package portal

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates the portal rejected the login.
	ErrInvalidCredentials = errors.New("portal rejected credentials")

	// ErrPortalUnreachable indicates the portal could not be reached
	// before a login was even attempted.
	ErrPortalUnreachable = errors.New("portal unreachable")

	// ErrAutomationFailure indicates the login flow broke in an
	// unexpected way, most likely because the page structure changed.
	ErrAutomationFailure = errors.New("login automation failed")

	// ErrLoginTimeout indicates the login did not complete within the
	// configured ceiling.
	ErrLoginTimeout = errors.New("login timed out")

	// ErrSessionExpired indicates the portal no longer accepts the
	// session's auth artifacts. The remedy is a re-bootstrap, not a
	// retry.
	ErrSessionExpired = errors.New("session expired")

	// ErrMalformedResponse indicates a page was fetched but did not
	// contain the structure we parse.
	ErrMalformedResponse = errors.New("malformed portal response")
)

// FetchKind names the failure class for a single course's fetch.
type FetchKind string

const (
	FetchTimeout        FetchKind = "timeout"
	FetchSessionExpired FetchKind = "session_expired"
	FetchHTTPStatus     FetchKind = "http_status"
	FetchNetwork        FetchKind = "network"
)

// FetchError is a per-course fetch failure. It never aborts the run; the
// aggregator folds it into the warning list or, if every course failed,
// into a total-failure diagnostic.
type FetchError struct {
	Kind   FetchKind
	Status int // set for FetchHTTPStatus
	Err    error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("fetch failed: portal returned status %d", e.Status)
	case FetchTimeout:
		return "fetch timed out"
	case FetchSessionExpired:
		return "fetch rejected: session expired"
	default:
		if e.Err != nil {
			return fmt.Sprintf("fetch failed: %v", e.Err)
		}
		return "fetch failed"
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSessionExpired) match expired-session fetch
// failures so callers need not inspect Kind.
func (e *FetchError) Is(target error) bool {
	return target == ErrSessionExpired && e.Kind == FetchSessionExpired
}
