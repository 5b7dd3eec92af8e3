package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/spacewar/internal/audio"
	"github.com/vovakirdan/spacewar/internal/platform/tui"
	"github.com/vovakirdan/spacewar/internal/sim"
	"github.com/vovakirdan/spacewar/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimRealtime bool
	flagSimSweep    time.Duration
	flagSimRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a headless game driven by an autopilot",
	Long: `Run one game without a terminal UI. An autopilot sweeps the ship
left and right while firing constantly. The run ends at game over or when
--duration of play time has passed, and the statistics are printed.

By default frames are produced as fast as possible with virtual time, so
a fixed --seed always gives the same result. --realtime paces frames with
the wall clock instead.

Examples:
  spacewar simulate --seed 42
  spacewar simulate --duration 2m --difficulty hard
  spacewar simulate --realtime --duration 30s --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 10*time.Minute, "Maximum play time")
	simulateCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames with the wall clock")
	simulateCmd.Flags().DurationVar(&flagSimSweep, "sweep", 1500*time.Millisecond, "Time the autopilot holds each direction")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the scores database")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, "spacewar-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gameCfg, err := loadGameConfig()
	if err != nil {
		logger.Fatal("cannot load config", "err", err)
	}

	var store *storage.Store
	if flagSimRecord {
		store, err = storage.Open(context.Background(), flagDBPath)
		if err != nil {
			logger.Fatal("cannot open scores database", "path", flagDBPath, "err", err)
		}
		defer store.Close()
	}

	game := sim.New(sim.Options{
		Config: gameCfg,
		Input:  sim.NewAutopilot(flagSimSweep),
		Audio:  audio.Nop{},
		Store:  tui.ScoreStore(store),
		Logger: logger,
		Rand:   newRand(flagSeed),
		Muted:  true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fps := max(flagFPS, 1)
	step := time.Second / time.Duration(fps)
	frames := int(flagSimDuration / step)

	start := time.Now()
	game.RequestStart()
	game.LoadComplete(start)

	var ticks <-chan time.Time
	if flagSimRealtime {
		ticker := time.NewTicker(step)
		defer ticker.Stop()
		ticks = limit(ctx, ticker.C, frames)
	} else {
		ticks = limit(ctx, sim.VirtualTicks(ctx, start.Add(step), step), frames)
	}

	logger.Info("simulation started", "fps", fps, "seed", flagSeed, "realtime", flagSimRealtime)
	if err := sim.Run(ctx, game, ticks); err != nil {
		logger.Warn("simulation interrupted", "err", err)
	}

	stats := game.Stats()
	snap := game.Snapshot()
	fmt.Println("Space War - Simulation")
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "Result", game.State())
	fmt.Printf("  %-12s %d\n", "Score", snap.Score)
	fmt.Printf("  %-12s %d\n", "High score", game.HighScore())
	fmt.Printf("  %-12s %s\n", "Play time", stats.PlayTime.Round(time.Millisecond))
	fmt.Printf("  %-12s x%.2f\n", "Difficulty", snap.Difficulty)
	fmt.Printf("  %-12s %d\n", "Frames", stats.Frames)
	fmt.Printf("  %-12s %d\n", "Spawned", stats.Spawned)
	fmt.Printf("  %-12s %d\n", "Shots", stats.Shots)
	fmt.Printf("  %-12s %d\n", "Kills", stats.Kills)
	fmt.Printf("  %-12s %d\n", "Hits taken", stats.Hits)
}

// limit forwards at most n ticks from in and then closes.
func limit(ctx context.Context, in <-chan time.Time, n int) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		for range n {
			var now time.Time
			select {
			case <-ctx.Done():
				return
			case now = <-in:
			}
			select {
			case <-ctx.Done():
				return
			case out <- now:
			}
		}
	}()
	return out
}
