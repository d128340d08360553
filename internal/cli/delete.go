package cli

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the saved game",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := rt.store.Delete(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Save deleted.")
		return nil
	},
}
