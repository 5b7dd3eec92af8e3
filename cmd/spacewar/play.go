package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/spacewar/internal/assets"
	"github.com/vovakirdan/spacewar/internal/audio"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/platform/tui"
	"github.com/vovakirdan/spacewar/internal/sim"
	"github.com/vovakirdan/spacewar/internal/storage"
)

var flagMuted bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start the game in the current terminal.

Controls:
  Left/A, Right/D  - Move
  Space/Up         - Fire
  Enter            - Start / back to menu
  P/Esc            - Pause
  M                - Mute
  C                - Controls
  R                - Records
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow speed-up
  normal - Default speed-up
  hard   - Fast speed-up, enemies spawn sooner
  fixed  - No speed-up

Logs are written to ~/.spacewar/spacewar.log.

Examples:
  spacewar play
  spacewar play --difficulty hard
  spacewar play --config ./my-spacewar.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMuted, "mute", false, "Start with sound muted")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to a file
	logPath, err := dataPath("spacewar.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "spacewar")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size early for the first frame
	rc := core.DefaultConfig()
	rc.TickRate = flagFPS
	rc.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}

	// Open score storage
	store, err := storage.Open(context.Background(), flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "err", err)
		// Continue without storage - game still works
		store = nil
	}

	speaker := audio.NewManager(gameCfg.Audio)
	if gameCfg.Audio.Enabled {
		if err := speaker.Init(); err != nil {
			logger.Warn("audio unavailable, playing silently", "err", err)
		}
	}

	game := sim.New(sim.Options{
		Config: gameCfg,
		Audio:  speaker,
		Store:  tui.ScoreStore(store),
		Logger: logger,
		Rand:   newRand(rc.Seed),
		Muted:  flagMuted || gameCfg.Audio.Muted,
	})

	logger.Info("session started", "fps", rc.TickRate, "seed", rc.Seed, "difficulty", flagDifficulty)

	runErr := tui.Run(tui.Options{
		Sim:      game,
		Loader:   assets.NewLoader(speaker.SampleRate(), logger),
		Sounds:   speaker,
		Records:  tui.RecordStore(store),
		TickRate: rc.TickRate,
		Width:    rc.ScreenW,
		Height:   rc.ScreenH,
		Logger:   logger,
	})

	// Release the device and the database before potential exit
	speaker.Close()
	if store != nil {
		store.Close()
	}

	stats := game.Stats()
	logger.Info("session ended", "frames", stats.Frames, "high_score", game.HighScore())

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
