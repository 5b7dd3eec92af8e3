// spacewar is a terminal arcade shooter: hold the bottom of the screen
// against an ever faster stream of enemies.
//
// Usage:
//
//	spacewar play            - Play in this terminal
//	spacewar serve           - Start SSH server for remote play
//	spacewar scores          - Show the high score and best runs
//	spacewar simulate        - Run a headless game driven by an autopilot
//	spacewar config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.spacewar/scores.db)
//	--config <path>      - Load a custom config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacewar",
	Short: "Space War - a terminal arcade shooter",
	Long: `Space War is an arcade shooter for the terminal. Move along the
bottom of the screen, shoot the enemies falling from above and do not
let them reach you. The game speeds up the longer you survive.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View the high score and run history
  simulate  - Run a headless game with an autopilot
  config    - Print the effective configuration

Examples:
  spacewar play
  spacewar play --difficulty hard
  spacewar serve --ssh :2222
  spacewar simulate --seed 42
  spacewar scores`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spacewar/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig loads the config file and applies the difficulty flag.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// newLogger creates a logger writing to w at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	}), nil
}

// newRand returns a generator for seed, or a time-seeded one for 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// dataPath returns a path inside ~/.spacewar, creating the directory.
func dataPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".spacewar")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, name), nil
}
