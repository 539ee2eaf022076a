package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hkhalid/butrack/internal/cli/formatter"
	"github.com/hkhalid/butrack/internal/repository"
	"github.com/hkhalid/butrack/internal/service"
	"github.com/hkhalid/butrack/internal/triage"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive assignment dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(app)
		},
	}
}

func runDashboard(app *App) error {
	p := tea.NewProgram(newDashboardModel(app), tea.WithAltScreen())
	_, err := p.Run()
	app.Relay.SetSink(nil)
	return err
}

// ── messages ─────────────────────────────────────────────────────────────────

// runDoneMsg signals that the background run finished.
type runDoneMsg struct {
	result *triage.Result
	err    error
}

// runEventMsg delivers one progress event into the update loop.
type runEventMsg struct {
	event service.Event
}

// ── model ────────────────────────────────────────────────────────────────────

// dashboardModel is the single-view TUI: a scrollable categorized list
// with a status line while a run is in flight.
type dashboardModel struct {
	app *App

	vp      viewport.Model
	loading bool
	status  string
	result  *triage.Result
	err     error

	width  int
	height int

	events chan service.Event
	cancel context.CancelFunc
}

func newDashboardModel(app *App) *dashboardModel {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &dashboardModel{
		app:    app,
		vp:     vp,
		status: "Starting...",
	}
}

func (m *dashboardModel) Init() tea.Cmd {
	return m.startRun()
}

// startRun kicks off a full run in the background and subscribes the
// update loop to its progress events.
func (m *dashboardModel) startRun() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.loading = true
	m.err = nil
	m.status = "Signing in to the portal..."

	ch := make(chan service.Event, 32)
	m.events = ch
	m.app.Relay.SetSink(func(e service.Event) {
		select {
		case ch <- e:
		default: // never block a fetch worker on a slow UI
		}
	})

	run := func() tea.Msg {
		creds, err := m.app.Credentials.Get(ctx)
		if err != nil {
			return runDoneMsg{err: err}
		}
		result, err := m.app.Runs.Run(ctx, creds)
		return runDoneMsg{result: result, err: err}
	}
	return tea.Batch(run, waitForEvent(ch))
}

func waitForEvent(ch chan service.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return runEventMsg{event: e}
	}
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.vp.Width = msg.Width
		m.vp.Height = msg.Height - 4 // header + status + help
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			m.app.Relay.SetSink(nil)
			return m, tea.Quit
		case "r":
			if !m.loading {
				return m, m.startRun()
			}
			return m, nil
		}

	case runEventMsg:
		m.status = progressText(msg.event)
		return m, waitForEvent(m.events)

	case runDoneMsg:
		m.loading = false
		m.app.Relay.SetSink(nil)
		m.result = msg.result
		m.err = msg.err
		m.refreshContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *dashboardModel) refreshContent() {
	switch {
	case m.err != nil:
		m.vp.SetContent(m.errorContent())
	case m.result != nil:
		m.vp.SetContent(formatter.FormatResult(m.result))
	}
}

func (m *dashboardModel) errorContent() string {
	if errors.Is(m.err, repository.ErrNotFound) {
		return formatter.Dim("No credentials stored. Quit and run `butrack setup` first.")
	}
	return formatter.FormatRunFailure(service.FailureKind(m.err))
}

func (m *dashboardModel) View() string {
	var b strings.Builder

	title := formatter.StyleHeader.Render(" BU Assignment Tracker ")
	b.WriteString(title + "\n")

	if m.loading {
		b.WriteString(formatter.Dim("  "+m.status) + "\n")
	} else if m.result != nil {
		summary := fmt.Sprintf("  %d assignments", len(m.result.Assignments))
		if n := len(m.result.Warnings); n > 0 {
			summary += formatter.StyleYellow.Render(fmt.Sprintf("  (%d courses failed)", n))
		}
		b.WriteString(formatter.Dim(summary) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.vp.View() + "\n")

	help := formatter.Dim("r refresh • ↑/↓ scroll • q quit")
	b.WriteString(lipgloss.NewStyle().Width(m.width).Render(help))

	return b.String()
}
