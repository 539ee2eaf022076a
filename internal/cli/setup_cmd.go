package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/hkhalid/butrack/internal/cli/formatter"
	"github.com/hkhalid/butrack/internal/domain"
	"github.com/spf13/cobra"
)

func newSetupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Enter and store portal credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, _ := app.Credentials.Get(context.Background())
			creds, err := promptCredentials(existing)
			if err != nil {
				return err
			}

			// Credentials are persisted by the run itself, only once
			// the portal accepts them.
			fmt.Println(formatter.Dim("Verifying credentials against the portal..."))
			return executeRun(cmd.Context(), app, creds)
		},
	}
}

// butrackHuhTheme returns a custom huh theme using the existing palette.
func butrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// promptCredentials collects the portal login interactively. existing
// pre-fills the form for edits; it may be nil.
func promptCredentials(existing *domain.Credentials) (*domain.Credentials, error) {
	creds := &domain.Credentials{Institute: domain.InstituteKarachi}
	if existing != nil {
		*creds = *existing
	}

	options := make([]huh.Option[domain.Institute], 0, len(domain.Institutes))
	for _, inst := range domain.Institutes {
		options = append(options, huh.NewOption(string(inst), inst))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Enrollment Number").
				Description("e.g. 01-135212-042").
				Value(&creds.Enrollment).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enrollment number is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.Password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password is required")
					}
					return nil
				}),
			huh.NewSelect[domain.Institute]().
				Title("Institute").
				Options(options...).
				Value(&creds.Institute),
		),
	).WithTheme(butrackHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup aborted: %w", err)
	}
	creds.Enrollment = strings.TrimSpace(creds.Enrollment)
	return creds, nil
}
