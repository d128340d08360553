// Package cli wires configuration, storage, the Gemini engine and the TUI
// into the aetheria command.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "aetheria",
	Short: "Chronicles of Aetheria: The Second Life",
	Long: `A narrative role-playing game in the terminal. An AI dungeon master
narrates your reincarnation in Aetheria after an embarrassing death on Earth.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(deleteCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
