package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ActionItemsCmd creates the actionItems command
func ActionItemsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actionItems",
		Short: "List admin comments raised against entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, _, err := app.Authed()
			if err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")

			comments, err := api.ListAdminComments(app.Ctx)
			if err != nil {
				return app.HandleAPIError(err)
			}

			shown := 0
			fmt.Println()
			for _, c := range comments {
				if status != "" && c.Status != status {
					continue
				}
				shown++
				fmt.Printf("- [%s] %s (entry %s, %s)\n    %s\n", c.Status, c.ID, c.EntryID, c.CreatedAt, c.Comment)
			}
			fmt.Printf("\n%d of %d action items shown\n", shown, len(comments))
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status")
	return cmd
}
