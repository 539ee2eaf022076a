package cli

import (
	"errors"
	"fmt"

	"github.com/hkhalid/butrack/internal/cli/formatter"
	"github.com/hkhalid/butrack/internal/repository"
	"github.com/spf13/cobra"
)

func newCredentialsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage stored portal credentials",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the stored enrollment and institute",
			RunE: func(cmd *cobra.Command, args []string) error {
				creds, err := app.Credentials.Get(cmd.Context())
				if err != nil {
					if errors.Is(err, repository.ErrNotFound) {
						fmt.Println(formatter.Dim("No credentials stored. Run `butrack setup`."))
						return nil
					}
					return err
				}
				fmt.Printf("Enrollment: %s\nInstitute:  %s\nPassword:   %s\n",
					creds.Enrollment, creds.Institute, formatter.Dim("(stored)"))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Delete the stored credentials",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Credentials.Delete(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("Credentials deleted.")
				return nil
			},
		},
	)

	return cmd
}
