package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormerge/internal/games/merge"
	"github.com/vovakirdan/colormerge/internal/platform/tui"
	"github.com/vovakirdan/colormerge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode: rhythm (default) or timer.

Controls:
  Arrows/WASD    - Slide the board
  Mouse drag     - Swipe the board
  R              - Restart
  Esc/Q/Ctrl+C   - Quit
  Ctrl+S         - Save a text screenshot

Difficulty options:
  easy   - Wider beat windows, longer turn timer
  normal - Tuning as configured
  hard   - Tighter beat windows, shorter turn timer

Examples:
  colormerge play
  colormerge play timer --difficulty easy
  colormerge play rhythm --sound
  colormerge play merge_timer --config ./my-tuning.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := merge.IDRhythm
	if len(args) == 1 {
		id, err := resolveGameID(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'colormerge list' to see available modes.")
			os.Exit(1)
		}
		gameID = id
	}

	e, err := newEnv(flagLogFile, true, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		e.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	e.logger.Info("starting game", "game", gameID, "seed", flagSeed)
	runErr := tui.Run(game, e.services(), runtimeConfig())

	// Close services before potential exit
	e.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
