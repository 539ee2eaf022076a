package cli

import (
	"context"
	"fmt"

	"github.com/hkhalid/butrack/internal/cli/formatter"
	"github.com/hkhalid/butrack/internal/domain"
	"github.com/hkhalid/butrack/internal/service"
	"github.com/spf13/cobra"
)

func newFetchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch assignments once and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, app)
		},
	}
}

func runFetch(cmd *cobra.Command, app *App) error {
	creds, err := loadCredentials(cmd.Context(), app)
	if err != nil {
		return err
	}
	return executeRun(cmd.Context(), app, creds)
}

// executeRun performs one full run with a live spinner, then prints the
// categorized assignment list.
func executeRun(ctx context.Context, app *App, creds *domain.Credentials) error {
	sp := formatter.NewSpinner("Signing in to the portal...")
	app.Relay.SetSink(func(e service.Event) {
		sp.SetMessage(progressText(e))
	})
	defer app.Relay.SetSink(nil)

	sp.Start()
	result, err := app.Runs.Run(ctx, creds)
	sp.Stop()

	if err != nil {
		fmt.Print(formatter.FormatRunFailure(service.FailureKind(err)))
		return err
	}

	fmt.Print(formatter.FormatResult(result))
	return nil
}

func progressText(e service.Event) string {
	switch e.Kind {
	case service.EventBootstrapStarted:
		return "Signing in to the portal..."
	case service.EventBootstrapDone:
		return "Signed in. Loading course list..."
	case service.EventCoursesDiscovered:
		return fmt.Sprintf("Found %d courses. Fetching assignments...", e.Count)
	case service.EventFetchProgress:
		return fmt.Sprintf("Fetching assignments... %d/%d", e.Completed, e.Total)
	default:
		return "Working..."
	}
}
