package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormerge/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show high scores for a mode",
	Long: `Display the persisted leaderboard and the 10 best recorded runs of a mode.

Examples:
  colormerge scores rhythm
  colormerge scores merge_timer
  colormerge scores timer --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the mode's runs, best score and leaderboard")
}

func runScores(_ *cobra.Command, args []string) {
	gameID, err := resolveGameID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'colormerge list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared scores for %s.\n", gameID)
		return
	}

	runs, err := store.TopRuns(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	keeper := store.Keeper(gameID, nil)

	fmt.Printf("High scores: %s\n\n", gameID)
	fmt.Printf("Best: %d\n", keeper.LoadBest())
	if board := keeper.LoadLeaderboard(); len(board) > 0 {
		fmt.Printf("Leaderboard: %v\n", []int(board))
	}
	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Games: %d  Average: %.0f  Last played: %s\n",
			stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Printf("No runs recorded yet. Play 'colormerge play %s' to set one.\n", gameID)
		return
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			r.Reason,
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}
	printTable([]string{"Rank", "Score", "Result", "Date"}, rows)
}
