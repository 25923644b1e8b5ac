package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// WhoamiCmd creates the whoami command
func WhoamiCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := app.Session.Current()
			if identity == nil {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("Email: %s\n", identity.Email)
			fmt.Printf("Role:  %s\n", identity.Role)
			if app.Session.Expired() {
				fmt.Println("\n⚠️  The stored token has expired; log in again before making changes.")
			}
			return nil
		},
	}
}
