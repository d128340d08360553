package cli

import (
	"github.com/spf13/cobra"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume the saved game",
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	rt, err := setupSession(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := rt.session.Resume(cmd.Context()); err != nil {
		if errors.IsNotFound(err) {
			return errors.NotFound("no saved game, start one with `aetheria new --name <name>`")
		}
		return err
	}

	abandoned, err := tui.Run(rt.session, nil)
	if err != nil {
		return err
	}
	printExit(cmd, abandoned)
	return nil
}
