package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mineterm/mineterm/internal/storage"
	"github.com/mineterm/mineterm/internal/tui"
)

var timesCmd = &cobra.Command{
	Use:   "times [width height bombs]",
	Short: "Show best times",
	Long: `Display the fastest recorded times.

With no arguments, opens an interactive browser over every board shape
that has recorded wins. With a board shape, prints the top 10 times for
that shape.

Examples:
  mineterm times            # Interactive browser
  mineterm times 9 9 10     # Top 10 for the beginner board`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 3 {
			return fmt.Errorf("expected no arguments or exactly 3 (width height bombs), got %d", len(args))
		}
		return nil
	},
	Run: runTimes,
}

func runTimes(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening times database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunTimes(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	w, h, bombs, err := parseBoardArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	board := storage.BoardKey(w, h, bombs)

	times, err := store.TopTimes(board, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving times: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Times - %s\n", board)
	fmt.Println()

	if len(times) == 0 {
		fmt.Println("No wins recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mineterm %d %d %d' to set the first time!\n", w, h, bombs)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "----", "----")

	for i, entry := range times {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, formatTimesMillis(entry.Millis), dateStr)
	}

	fmt.Println()
	best, err := store.BestTime(board)
	if err == nil && best > 0 {
		fmt.Printf("Best: %s\n", formatTimesMillis(best))
	}
}

// formatTimesMillis renders a result as m:ss.mmm for plain-text output.
func formatTimesMillis(millis int64) string {
	secs := millis / 1000
	return fmt.Sprintf("%d:%02d.%03d", secs/60, secs%60, millis%1000)
}
