package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Session.Current() == nil {
				fmt.Println("Not logged in.")
				return nil
			}
			app.Session.Logout()
			fmt.Println("✓ Logged out")
			return nil
		},
	}
}
