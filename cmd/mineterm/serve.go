package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mineterm/mineterm/internal/config"
	"github.com/mineterm/mineterm/internal/mines"
	"github.com/mineterm/mineterm/internal/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHDBPath   string
	flagIdleTimeout int
	flagServeWidth  int
	flagServeHeight int
	flagServeBombs  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the mineterm SSH server",
	Long: `Start an SSH server so users can connect and play remotely.

Every connection gets its own board of the configured shape. Best times
are stored per-server, so all users share the leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mineterm/host_key

Examples:
  mineterm serve                              # :23234, 9x9 beginner board
  mineterm serve --ssh :2222                  # Listen on port 2222
  mineterm serve --width 30 --height 16 --bombs 99
  mineterm serve --host-key ./my_host_key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHDBPath, "db", "~/.mineterm/times.db", "Path to best-times database")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagServeWidth, "width", 9, "Board width served to sessions")
	serveCmd.Flags().IntVar(&flagServeHeight, "height", 9, "Board height served to sessions")
	serveCmd.Flags().IntVar(&flagServeBombs, "bombs", 10, "Mine count served to sessions")
}

func runServe(_ *cobra.Command, _ []string) {
	// Validate the board shape before accepting connections.
	if _, err := mines.NewGame(flagServeWidth, flagServeHeight, flagServeBombs, 1); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	theme, err := config.LoadTheme(flagTheme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load theme: %v\n", err)
		theme = config.DefaultTheme()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagSSHDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Width:       flagServeWidth,
		Height:      flagServeHeight,
		MineCount:   flagServeBombs,
	}

	server, err := tui.NewSSHServer(cfg, theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting mineterm SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
