package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/aetheria/internal/errors"
	"github.com/tatianab/aetheria/internal/models"
	"github.com/tatianab/aetheria/internal/tui"
)

var (
	newName  string
	newRace  string
	newClass string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new game, replacing any existing save",
	Long: fmt.Sprintf("Start a new game, replacing any existing save.\n\nRaces: %s\nClasses: %s",
		joinEnum(models.Races), joinEnum(models.Classes)),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "character name")
	newCmd.Flags().StringVar(&newRace, "race", string(models.RaceHuman), "character race")
	newCmd.Flags().StringVar(&newClass, "class", string(models.ClassWarrior), "character class")
	_ = newCmd.MarkFlagRequired("name")
}

func runNew(cmd *cobra.Command, _ []string) error {
	race, err := models.ParseRace(newRace)
	if err != nil {
		return err
	}
	class, err := models.ParseClass(newClass)
	if err != nil {
		return err
	}
	if strings.TrimSpace(newName) == "" {
		return errors.InvalidArgument("--name cannot be blank")
	}

	rt, err := setupSession(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	abandoned, err := tui.Run(rt.session, &tui.NewGame{Name: newName, Race: race, Class: class})
	if err != nil {
		return err
	}
	printExit(cmd, abandoned)
	return nil
}

func printExit(cmd *cobra.Command, abandoned bool) {
	if abandoned {
		cmd.Println("Save deleted. Run `aetheria new --name <name>` to reincarnate again.")
		return
	}
	cmd.Println("Progress saved. Run `aetheria play` to continue.")
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
