package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/platform/tui"
	"github.com/vovakirdan/spacewar/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Space War SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own game. Sound is off for remote players.
Scores are stored per-server (all users share the same high score and
run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.spacewar/host_key

Examples:
  spacewar serve                           # Listen on :23234 with auto-generated key
  spacewar serve --ssh :2222               # Listen on port 2222
  spacewar serve --host-key ./my_host_key  # Use specific host key
  spacewar serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr, "spacewar-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		logger.Fatal("cannot load config", "err", err)
	}

	store, err := storage.Open(context.Background(), flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		store = nil
	}
	defer store.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Game = gameCfg

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		logger.Fatal("cannot create server", "err", err)
	}

	fmt.Printf("Starting Space War SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		logger.Error("server error", "err", err)
		store.Close()
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return port
}
