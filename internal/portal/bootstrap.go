package portal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hkhalid/butrack/internal/config"
	"github.com/hkhalid/butrack/internal/domain"
)

// Form field IDs on the CMS login page.
const (
	fieldEnrollment = "BodyPH_tbEnrollment"
	fieldPassword   = "BodyPH_tbPassword"
	fieldInstitute  = "BodyPH_ddlInstituteID"
	fieldRole       = "BodyPH_ddlSubUserType"
	fieldLoginBtn   = "BodyPH_btnLogin"
)

const (
	loginPath     = "/Logins/Student/Login.aspx"
	dashboardPath = "/Sys/Student/Dashboard.aspx"
)

// Bootstrapper establishes an authenticated portal session. The login
// mechanics are deliberately hidden behind this interface; the rest of
// the pipeline depends only on the Session it yields.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, creds *domain.Credentials) (*domain.Session, error)
}

// webBootstrapper logs in by replaying the CMS login form over HTTP:
// it fetches the form, carries the ASP.NET hidden state fields forward,
// posts the credentials, and follows the "Go To LMS" hand-off so the
// LMS origin gets its own cookies.
type webBootstrapper struct {
	cfg       config.Config
	transport http.RoundTripper
}

// NewBootstrapper creates the HTTP-based Bootstrapper.
func NewBootstrapper(cfg config.Config) Bootstrapper {
	return &webBootstrapper{
		cfg:       cfg,
		transport: http.DefaultTransport,
	}
}

func (b *webBootstrapper) Bootstrap(ctx context.Context, creds *domain.Credentials) (*domain.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(b.cfg.LoginTimeoutMs)*time.Millisecond)
	defer cancel()

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	client := &http.Client{Transport: b.transport, Jar: jar}

	form, err := b.loadLoginForm(ctx, client)
	if err != nil {
		return nil, err
	}

	dashboard, err := b.submitLogin(ctx, client, form, creds)
	if err != nil {
		return nil, err
	}

	if err := b.openLMS(ctx, client, dashboard); err != nil {
		return nil, err
	}

	return &domain.Session{
		CMSBaseURL: b.cfg.CMSBaseURL,
		LMSBaseURL: b.cfg.LMSBaseURL,
		Jar:        jar,
		Institute:  creds.Institute,
		CreatedAt:  time.Now(),
	}, nil
}

// loadLoginForm fetches the login page and collects every hidden input,
// which ASP.NET requires echoed back (__VIEWSTATE and friends).
func (b *webBootstrapper) loadLoginForm(ctx context.Context, client *http.Client) (url.Values, error) {
	doc, _, err := b.getDocument(ctx, client, b.cfg.CMSBaseURL+loginPath)
	if err != nil {
		return nil, classifyAuthErr(ctx, err)
	}

	if doc.Find("#" + fieldEnrollment).Length() == 0 {
		return nil, fmt.Errorf("%w: login form not found", ErrAutomationFailure)
	}

	form := url.Values{}
	doc.Find(`input[type="hidden"]`).Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok {
			return
		}
		form.Set(name, s.AttrOr("value", ""))
	})
	return form, nil
}

// submitLogin posts the credentials and returns the resulting dashboard
// document.
func (b *webBootstrapper) submitLogin(ctx context.Context, client *http.Client, form url.Values, creds *domain.Credentials) (*goquery.Document, error) {
	form.Set(fieldEnrollment, creds.Enrollment)
	form.Set(fieldPassword, creds.Password)
	form.Set(fieldInstitute, string(creds.Institute))
	form.Set(fieldRole, "Student")
	form.Set(fieldLoginBtn, "Sign In")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.CMSBaseURL+loginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAutomationFailure, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyAuthErr(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading login response: %v", ErrAutomationFailure, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing login response: %v", ErrAutomationFailure, err)
	}

	if strings.Contains(resp.Request.URL.Path, "Dashboard") {
		return doc, nil
	}

	// Still on the login page: the portal shows the reason in an
	// alert box.
	if msg := strings.TrimSpace(doc.Find(".alert-danger").First().Text()); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, msg)
	}
	if doc.Find("#"+fieldEnrollment).Length() > 0 {
		return nil, ErrInvalidCredentials
	}
	return nil, fmt.Errorf("%w: unexpected page after login", ErrAutomationFailure)
}

// openLMS follows the dashboard's "Go To LMS" link so the LMS origin
// issues its session cookies into the shared jar.
func (b *webBootstrapper) openLMS(ctx context.Context, client *http.Client, dashboard *goquery.Document) error {
	var href string
	dashboard.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.TrimSpace(s.Text()), "Go To LMS") {
			href = s.AttrOr("href", "")
			return false
		}
		return true
	})
	if href == "" {
		return fmt.Errorf("%w: LMS link not found on dashboard", ErrAutomationFailure)
	}

	target, err := b.resolveLMSLink(href)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAutomationFailure, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return classifyAuthErr(ctx, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: LMS hand-off returned status %d", ErrAutomationFailure, resp.StatusCode)
	}
	return nil
}

func (b *webBootstrapper) resolveLMSLink(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("%w: bad LMS link %q", ErrAutomationFailure, href)
	}
	base, err := url.Parse(b.cfg.CMSBaseURL + dashboardPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAutomationFailure, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (b *webBootstrapper) getDocument(ctx context.Context, client *http.Client, rawURL string) (*goquery.Document, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return doc, resp, nil
}

// classifyAuthErr maps a transport-level login error onto the auth error
// taxonomy.
func classifyAuthErr(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrLoginTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
}
