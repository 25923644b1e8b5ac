package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]

			fmt.Print("Password: ")
			reader := bufio.NewReader(os.Stdin)
			password, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = strings.TrimRight(password, "\r\n")

			if !app.Session.Login(app.Ctx, email, password) {
				fmt.Println("\n❌ Login failed. Check your email and password.")
				return nil
			}

			identity := app.Session.Current()
			fmt.Printf("\n✓ Logged in as %s (%s)\n", identity.Email, identity.Role)
			return nil
		},
	}
}
