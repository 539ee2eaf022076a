package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/triage"
)

// FormatResult renders a finished run as grouped, aligned text: one
// section per non-empty category in presentation order, then any
// per-course warnings.
func FormatResult(res *triage.Result) string {
	var b strings.Builder

	if len(res.Assignments) == 0 {
		b.WriteString(Dim("No assignments found.") + "\n")
	}

	var current domain.Category
	var rows [][]string
	flush := func() {
		if len(rows) == 0 {
			return
		}
		b.WriteString(CategoryIndicator(current) + "\n")
		b.WriteString(renderRows(rows))
		b.WriteString("\n")
		rows = nil
	}

	for _, a := range res.Assignments {
		if a.Category != current {
			flush()
			current = a.Category
		}
		rows = append(rows, assignmentRow(a, res.GeneratedAt))
	}
	flush()

	if len(res.Warnings) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("⚠ %d course(s) could not be fetched:", len(res.Warnings))) + "\n")
		for _, w := range res.Warnings {
			b.WriteString(fmt.Sprintf("  %s: %s\n", w.Course.Name, Dim(w.Err.Error())))
		}
	}
	if res.SessionExpired {
		b.WriteString(StyleRed.Render("Session expired mid-run; run again to re-authenticate.") + "\n")
	}

	return b.String()
}

func assignmentRow(a domain.Assignment, now time.Time) []string {
	due := a.DeadlineRaw
	if a.DueAt != nil {
		due = a.DueAt.Format("Mon 2 Jan, 3:04 pm")
	}
	if due == "" {
		due = "—"
	}

	status := Dim(string(a.Status))
	if a.Status == domain.StatusSubmitted {
		status = StyleGreen.Render(string(a.Status))
	}

	return []string{
		CategoryStyle(a.Category).Render(dueIn(a, now)),
		StyleBold.Render(a.Title),
		a.CourseName,
		due,
		status,
	}
}

// dueIn renders the compact time-remaining column.
func dueIn(a domain.Assignment, now time.Time) string {
	if a.DueAt == nil {
		return "?"
	}
	d := a.DueAt.Sub(now)
	switch {
	case d < 0:
		return fmt.Sprintf("%dd late", int(-d.Hours()/24)+1)
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh left", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd left", int(d.Hours()/24))
	}
}

// renderRows aligns columns by visible width, two spaces between columns.
func renderRows(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	cols := len(rows[0])
	widths := make([]int, cols)
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		b.WriteString("  ")
		for i, cell := range row {
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatRunFailure explains a failed run and what to do about it.
func FormatRunFailure(kind string) string {
	var hint string
	switch kind {
	case "invalid_credentials":
		hint = "The portal rejected your login. Run `butrack setup` to re-enter credentials."
	case "login_timeout", "portal_unreachable":
		hint = "The portal did not respond. Check your connection and try again in a few minutes."
	case "automation_failure", "malformed_response":
		hint = "The portal's pages look different than expected; the tracker may need an update."
	case "session_expired":
		hint = "The session expired before data could be fetched. Try again."
	case "total_failure":
		hint = "Every course fetch failed. Try again; if it persists, the portal may be down."
	case "cancelled":
		hint = "Run cancelled."
	default:
		hint = "Unexpected failure."
	}
	return StyleRed.Render("✗ "+hint) + "\n"
}
