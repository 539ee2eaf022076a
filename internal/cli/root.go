package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/hkhalid/butrack/internal/config"
	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/repository"
	"github.com/hkhalid/butrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands need.
type App struct {
	Runs        service.RunService
	Credentials repository.CredentialRepo
	Cfg         config.Config

	// Relay receives run events; commands point it at their own sink
	// (spinner text, TUI messages) before starting a run.
	Relay *EventRelay

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "butrack" command and registers all
// subcommands against the provided App. Running it bare opens the
// dashboard on a terminal and falls back to a one-shot fetch when piped.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "butrack",
		Short: "Assignment tracker for the Bahria University LMS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runDashboard(app)
			}
			return runFetch(cmd, app)
		},
	}

	root.AddCommand(
		newSetupCmd(app),
		newFetchCmd(app),
		newDashboardCmd(app),
		newCredentialsCmd(app),
	)

	return root
}

// loadCredentials returns the stored login, walking the user through
// first-run setup when nothing is stored yet and a terminal is attached.
func loadCredentials(ctx context.Context, app *App) (*domain.Credentials, error) {
	creds, err := app.Credentials.Get(ctx)
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}
	if app.IsInteractive == nil || !app.IsInteractive() {
		return nil, errors.New("no stored credentials; run `butrack setup` first")
	}
	return promptCredentials(nil)
}
