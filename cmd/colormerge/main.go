// colormerge is a terminal tile-merge game with rhythm and timer scoring.
//
// Usage:
//
//	colormerge list              - List available modes
//	colormerge play [mode]       - Play a mode (rhythm or timer)
//	colormerge menu              - Start menu to pick modes interactively
//	colormerge serve             - Start SSH server for remote play
//	colormerge scores <mode>     - Show high scores for a mode
//
// Global flags:
//
//	--fps <rate>          - Set redraw rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--db <path>           - Set database path (default: ~/.colormerge/scores.db)
//	--config <path>       - Load tuning from a YAML file
//	--difficulty <preset> - easy, normal or hard
//	--sound               - Play clicks on the default audio device
//	--feed <addr>         - Broadcast session events over websocket
//	--log-file <path>     - Log file ("-" for stderr)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormerge/internal/logging"

	// Import games to register them
	_ "github.com/vovakirdan/colormerge/internal/games/merge"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagSound      bool
	flagFeed       string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colormerge",
	Short: "Color Merge - slide and merge tiles to the beat",
	Long: `Color Merge is a 4x4 tile-merge game for the terminal.

Slide the board with arrows, WASD or mouse swipes. Equal tiles merge into
the next level. Two scoring modes reward how you move:

  rhythm  - move on the beat to grow a score multiplier; misses cost health
  timer   - move fast for a flat bonus; run out the clock and the game ends

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  colormerge play rhythm
  colormerge play timer --difficulty hard
  colormerge menu --sound
  colormerge serve --ssh :2222
  colormerge scores timer`,
}

func init() {
	defaults := logging.DefaultOptions()

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Redraw rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.colormerge/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	rootCmd.PersistentFlags().StringVar(&flagFeed, "feed", "", "Serve session events over websocket at this address (e.g. :8090)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaults.Path, `Log file path ("-" for stderr, "" to disable)`)
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaults.Level, "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
