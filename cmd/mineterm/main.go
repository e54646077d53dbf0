// mineterm is a terminal Minesweeper played with the keyboard.
//
// Usage:
//
//	mineterm <width> <height> <bombs>   - Play a board of the given shape
//	mineterm serve                      - Start SSH server for remote play
//	mineterm times [width height bombs] - Show best times
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible boards
//	--db <path>      - Set database path (default: ~/.mineterm/times.db)
//	--theme <path>   - Path to custom theme YAML
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mineterm/mineterm/internal/config"
	"github.com/mineterm/mineterm/internal/core"
	"github.com/mineterm/mineterm/internal/mines"
	"github.com/mineterm/mineterm/internal/storage"
	"github.com/mineterm/mineterm/internal/tui"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagTheme  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mineterm <width> <height> <bombs>",
	Short: "Minesweeper in your terminal",
	Long: `mineterm is a keyboard-driven Minesweeper for the terminal.

The first reveal is always safe: mines are placed after it, away from
the cell you picked. Clear every safe cell to win.

Controls:
  WASD/Arrows - Move cursor
  Space       - Toggle flag
  Enter       - Reveal (chord on a revealed number)
  R           - Restart
  Q/Ctrl+C    - Quit

Examples:
  mineterm 9 9 10       # Beginner
  mineterm 16 16 40     # Intermediate
  mineterm 30 16 99     # Expert
  mineterm serve        # SSH server for remote play
  mineterm times        # Browse best times`,
	Args: cobra.ExactArgs(3),
	Run:  runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mineterm/times.db", "Path to best-times database")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Path to custom theme YAML")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(timesCmd)
}

// parseBoardArgs converts three positional arguments to board parameters.
func parseBoardArgs(args []string) (width, height, bombs int, err error) {
	names := [3]string{"width", "height", "bombs"}
	var vals [3]int
	for i, a := range args {
		vals[i], err = strconv.Atoi(a)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("%s must be a number, got %q", names[i], a)
		}
	}
	return vals[0], vals[1], vals[2], nil
}

func runPlay(cmd *cobra.Command, args []string) {
	width, height, bombs, err := parseBoardArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game, err := mines.NewGame(width, height, bombs, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size for the initial screen buffer
	screenW, screenH := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		screenW = w
		screenH = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  screenW,
		ScreenH:  screenH,
		TickRate: flagFPS,
		Seed:     seed,
	}

	theme, err := config.LoadTheme(flagTheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load theme: %v\n", err)
		theme = config.DefaultTheme()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open times database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}

	runErr := tui.Run(game, store, theme, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
