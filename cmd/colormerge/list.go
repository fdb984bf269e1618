package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/colormerge/internal/platform/tui"
	"github.com/vovakirdan/colormerge/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Args:  cobra.NoArgs,
	Run:   runList,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// printTable writes a plain bordered table to stdout.
func printTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Println(t.Render())
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	rows := make([][]string, len(games))
	for i, g := range games {
		rows[i] = []string{strings.TrimPrefix(g.ID, "merge_"), g.ID, g.Title, tui.ModeBlurb(g.ID)}
	}
	printTable([]string{"Mode", "ID", "Title", "About"}, rows)
	fmt.Println("Run 'colormerge play <mode>' to play.")
}
