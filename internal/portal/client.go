package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hkhalid/butrack/internal/config"
	"github.com/hkhalid/butrack/internal/domain"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0.0.0"

// loginPathMarker appears in the URL the CMS redirects to once a session's
// auth artifacts stop being accepted.
const loginPathMarker = "/Logins/"

// Client issues session-bound HTTP requests against the portal. The
// underlying transport is shared; per-session cookie jars come from the
// Session each call receives.
type Client struct {
	cfg       config.Config
	transport http.RoundTripper
}

// NewClient creates a Client configured from cfg.
func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg: cfg,
		transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
			MaxIdleConnsPerHost: cfg.ConcurrencyLimit,
		},
	}
}

// requestTimeout returns the per-request ceiling.
func (c *Client) requestTimeout() time.Duration {
	return time.Duration(c.cfg.RequestTimeoutMs) * time.Millisecond
}

// httpClient binds the shared transport to a session's cookie jar.
func (c *Client) httpClient(sess *domain.Session) *http.Client {
	return &http.Client{
		Transport: c.transport,
		Jar:       sess.Jar,
	}
}

// fetched is the outcome of one session-bound GET: the body, the response
// status, and the URL the request ended up at after redirects.
type fetched struct {
	body        []byte
	status      int
	contentType string
	finalURL    *url.URL
}

// get issues a GET carrying the session's cookies and reads the body.
// Redirects are followed; the final URL is reported so callers can detect
// a bounce back to the login page.
func (c *Client) get(ctx context.Context, sess *domain.Session, rawURL string) (*fetched, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.cfg.LMSBaseURL+"/Student/Assignments.php")

	resp, err := c.httpClient(sess).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &fetched{
		body:        body,
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		finalURL:    resp.Request.URL,
	}, nil
}

// bouncedToLogin reports whether the portal answered a data request with
// the login page, which is how expired sessions manifest.
func bouncedToLogin(f *fetched) bool {
	if f.finalURL != nil && strings.Contains(f.finalURL.Path, loginPathMarker) {
		return true
	}
	return strings.Contains(string(f.body), `id="BodyPH_tbEnrollment"`)
}

// classifyFetchErr maps a transport-level error to a FetchError.
func classifyFetchErr(ctx context.Context, err error) *FetchError {
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		// The per-request deadline fired, not the run's.
		return &FetchError{Kind: FetchTimeout, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &FetchError{Kind: FetchTimeout, Err: err}
	}
	return &FetchError{Kind: FetchNetwork, Err: err}
}
