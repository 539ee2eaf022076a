package domain

import (
	"net/http"
	"time"
)

// Session is the authenticated portal session produced by a bootstrap.
// It is created once per run and never mutated afterwards; fetch workers
// share it read-only. If the portal invalidates it mid-run, the remedy is
// a whole-run re-bootstrap, never a per-worker refresh.
type Session struct {
	// CMSBaseURL is the campus management system origin the login ran
	// against, e.g. "https://cms.bahria.edu.pk".
	CMSBaseURL string

	// LMSBaseURL is the learning management system origin that serves
	// course and assignment data, e.g. "https://lms.bahria.edu.pk".
	LMSBaseURL string

	// Jar holds the cookies established during login. Workers read it
	// through a shared http.Client and must not add to it.
	Jar http.CookieJar

	// Institute the session was authenticated against.
	Institute Institute

	CreatedAt time.Time
}
