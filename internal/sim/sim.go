// Package sim ties the simulation subsystems together: the frame loop, the
// physics world, the entity registry, spawning, collisions, cleanup and the
// game state machine. A Simulation is driven by calling Frame from a single
// goroutine; only its input record may be written concurrently.
package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/spacewar/internal/collision"
	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
	"github.com/vovakirdan/spacewar/internal/lifecycle"
	"github.com/vovakirdan/spacewar/internal/physics"
	"github.com/vovakirdan/spacewar/internal/registry"
	"github.com/vovakirdan/spacewar/internal/spawn"
)

// InputSource provides the player's intent once per tick.
type InputSource interface {
	Sample(now time.Time) core.Intent
	Clear()
}

// AudioSink plays sounds. Calls never block the tick.
type AudioSink interface {
	PlayEffect(name string)
	PlayLoop(name string) (stop func())
	SetMuted(muted bool)
}

// HighScoreStore persists the best score under a key.
type HighScoreStore interface {
	HighScore(key string) (int, error)
	SetHighScore(key string, v int) error
}

// ScoreRecorder is implemented by stores that also keep a score history.
type ScoreRecorder interface {
	SaveRun(score int, playTime time.Duration) (int64, error)
}

// Options configures a Simulation. Zero values select working defaults.
type Options struct {
	Config config.Config
	Input  InputSource
	Audio  AudioSink
	Store  HighScoreStore
	Logger *log.Logger
	Rand   *rand.Rand
	Muted  bool
}

// Stats counts what happened during the current or last run.
type Stats struct {
	Frames   int
	Spawned  int
	Shots    int
	Kills    int
	Hits     int
	PlayTime time.Duration
}

// Simulation is the game context. It owns every subsystem; nothing in the
// simulation lives in package-level state.
type Simulation struct {
	cfg    config.Config
	canvas core.Canvas
	input  InputSource
	audio  AudioSink
	store  HighScoreStore
	log    *log.Logger

	state    State
	loop     *Loop
	world    *physics.World
	reg      *registry.Registry
	table    []entity.Archetype
	diff     *spawn.Difficulty
	sched    *spawn.Scheduler
	spawner  *spawn.Spawner
	resolver *collision.Resolver
	sweeper  *lifecycle.Sweeper
	backdrop *Backdrop

	player       *entity.Player
	playerHandle physics.Handle

	highScore int
	muted     bool
	stopMusic func()
	stats     Stats
}

// New creates a simulation in the Menu state.
func New(opts Options) *Simulation {
	cfg := opts.Config
	if cfg.HighScoreKey == "" {
		cfg = config.Default()
	}
	if opts.Input == nil {
		opts.Input = core.NewInputState()
	}
	if opts.Audio == nil {
		opts.Audio = silent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Simulation{
		cfg:      cfg,
		canvas:   core.Canvas{W: cfg.Canvas.Width, H: cfg.Canvas.Height},
		input:    opts.Input,
		audio:    opts.Audio,
		store:    opts.Store,
		log:      opts.Logger,
		loop:     NewLoop(cfg.Loop.MaxStep),
		world:    physics.NewWorld(cfg.Physics),
		reg:      registry.New(),
		table:    entity.Archetypes(cfg.Enemies),
		diff:     spawn.NewDifficulty(cfg.Difficulty),
		sched:    spawn.NewScheduler(cfg.Spawn),
		backdrop: NewBackdrop(cfg.Backdrop),
		muted:    opts.Muted,
	}
	s.spawner = spawn.NewSpawner(s.world, s.reg, s.table, s.canvas, opts.Rand)
	s.resolver = collision.NewResolver(s.audio)
	s.sweeper = lifecycle.NewSweeper(s.world, s.reg, s.canvas, cfg.Projectile.TopTolerance)
	s.world.OnContact(s.onContact)

	s.audio.SetMuted(s.muted)
	s.highScore = s.loadHighScore()
	s.enterState(StateMenu)
	return s
}

// State returns the active state.
func (s *Simulation) State() State {
	return s.state
}

// Input returns the input record the simulation samples.
func (s *Simulation) Input() InputSource {
	return s.input
}

// HighScore returns the best score known to the simulation.
func (s *Simulation) HighScore() int {
	return s.highScore
}

// Stats returns counters for the current or last run.
func (s *Simulation) Stats() Stats {
	return s.stats
}

// Muted reports whether sound is muted.
func (s *Simulation) Muted() bool {
	return s.muted
}

// RequestStart moves Menu to Loading. The caller loads assets and then
// calls LoadComplete. Reports whether the transition happened.
func (s *Simulation) RequestStart() bool {
	if s.state != StateMenu {
		return false
	}
	s.enterState(StateLoading)
	return true
}

// LoadComplete starts a run once assets are ready. Ignored outside Loading.
func (s *Simulation) LoadComplete(now time.Time) bool {
	if s.state != StateLoading {
		return false
	}
	s.startGame(now)
	return true
}

// TogglePause switches between Playing and Paused. Ignored in other states.
func (s *Simulation) TogglePause() bool {
	switch s.state {
	case StatePlaying:
		s.enterState(StatePaused)
	case StatePaused:
		s.enterState(StatePlaying)
	default:
		return false
	}
	return true
}

// ReturnToMenu moves GameOver to Menu. Ignored in other states.
func (s *Simulation) ReturnToMenu() bool {
	if s.state != StateGameOver {
		return false
	}
	s.enterState(StateMenu)
	return true
}

// ToggleMute flips the mute flag. Menu music follows it.
func (s *Simulation) ToggleMute() bool {
	s.muted = !s.muted
	s.audio.SetMuted(s.muted)
	if s.state == StateMenu {
		if s.muted {
			s.stopLoop()
		} else {
			s.startMusic()
		}
	}
	s.log.Debug("mute toggled", "muted", s.muted)
	return s.muted
}

// Frame is one iteration of the loop. It does nothing while the loop is
// stopped. Background effects run in every active state; the game tick runs
// only in Playing.
func (s *Simulation) Frame(now time.Time) {
	dt, ok := s.loop.Tick(now)
	if !ok {
		return
	}
	s.stats.Frames++
	s.backdrop.Update(now)
	if s.state == StatePlaying {
		s.tick(dt, now)
	}
}

// Running reports whether the frame loop is active.
func (s *Simulation) Running() bool {
	return s.loop.Running()
}

func (s *Simulation) tick(dt float64, now time.Time) {
	s.stats.PlayTime += time.Duration(dt * float64(time.Second))

	if n := s.diff.Update(dt); n > 0 {
		s.log.Debug("difficulty increased", "factor", s.diff.Factor, "elapsed_ms", s.diff.Elapsed)
	}
	if s.sched.Update(dt, s.diff.Factor) {
		h, e := s.spawner.SpawnEnemy(s.diff.Factor)
		s.stats.Spawned++
		s.log.Debug("enemy spawned", "handle", h, "variant", e.Variant)
	}

	intent := s.input.Sample(now)
	s.movePlayer(intent)
	if intent.Fire && s.player.TryFire(s.stats.PlayTime) {
		s.fire()
	}

	// Contacts are dispatched from inside Step through onContact
	s.world.Step(dt)
	s.sweeper.Sweep()

	if !s.player.Alive() {
		s.gameOver()
	}
}

func (s *Simulation) movePlayer(in core.Intent) {
	var vx float64
	if in.Left {
		vx -= s.player.Speed
	}
	if in.Right {
		vx += s.player.Speed
	}
	h := s.playerHandle
	if err := s.world.SetVelocity(h, core.Vec{X: vx}); err != nil {
		s.log.Warn("player body missing", "err", err)
		return
	}

	pos, _ := s.world.Position(h)
	r := s.player.Radius()
	clamped := core.ClampF(pos.X, r, s.canvas.W-r)
	if clamped != pos.X {
		_ = s.world.SetPosition(h, core.Vec{X: clamped, Y: pos.Y})
		_ = s.world.SetVelocity(h, core.Vec{})
	}
}

func (s *Simulation) fire() {
	pos, err := s.world.Position(s.playerHandle)
	if err != nil {
		return
	}
	pc := s.cfg.Projectile
	start := core.Vec{X: pos.X, Y: pos.Y - s.player.Radius() - pc.Gap}
	h := s.world.CreateBody(start, pc.Radius, true)
	_ = s.world.SetVelocity(h, core.Vec{Y: -pc.Speed})
	s.reg.Register(h, entity.NewProjectile(pc))
	s.stats.Shots++
	s.audio.PlayEffect(core.SoundShoot)
}

func (s *Simulation) onContact(a, b physics.Handle) {
	if s.state != StatePlaying {
		return
	}
	ea, okA := s.reg.Get(a)
	eb, okB := s.reg.Get(b)
	if !okA || !okB {
		return
	}
	switch s.resolver.Resolve(ea, eb) {
	case collision.EnemyShot:
		s.stats.Kills++
	case collision.PlayerHit:
		s.stats.Hits++
		s.log.Debug("player hit", "life", s.player.Life)
	}
}

func (s *Simulation) startGame(now time.Time) {
	s.sweeper.Clear()
	s.diff.Reset()
	s.sched.Reset()
	s.backdrop.Reset(now)
	s.stats = Stats{}

	s.player = entity.NewPlayer(s.cfg.Player)
	start := core.Vec{X: s.canvas.W / 2, Y: s.canvas.H - s.cfg.Player.StartOffset}
	s.playerHandle = s.world.CreateBody(start, s.player.Radius(), true)
	s.reg.Register(s.playerHandle, s.player)
	s.resolver.Reset(s.player)

	s.enterState(StatePlaying)
	s.loop.Start(now)
}

func (s *Simulation) gameOver() {
	s.enterState(StateGameOver)
	s.audio.PlayEffect(core.SoundGameOver)
	s.commitScore()
	s.loop.Stop()
	s.log.Info("game over",
		"score", s.player.Score,
		"high_score", s.highScore,
		"play_time", s.stats.PlayTime.Round(time.Millisecond),
		"kills", s.stats.Kills)
}

// commitScore replaces the stored high score only when the final score
// beats it, and appends the run to the history when the store keeps one.
func (s *Simulation) commitScore() {
	score := s.player.Score
	best := max(s.highScore, s.loadHighScore())
	if score > best {
		best = score
		if s.store != nil {
			if err := s.store.SetHighScore(s.cfg.HighScoreKey, score); err != nil {
				s.log.Error("save high score", "err", err)
			}
		}
	}
	s.highScore = best

	if rec, ok := s.store.(ScoreRecorder); ok {
		if _, err := rec.SaveRun(score, s.stats.PlayTime); err != nil {
			s.log.Error("save score history", "err", err)
		}
	}
}

func (s *Simulation) loadHighScore() int {
	if s.store == nil {
		return 0
	}
	v, err := s.store.HighScore(s.cfg.HighScoreKey)
	if err != nil {
		s.log.Warn("load high score", "err", err)
		return 0
	}
	return v
}

func (s *Simulation) enterState(next State) {
	prev := s.state
	s.input.Clear()
	s.stopLoop()
	s.state = next
	if next == StateMenu && !s.muted {
		s.startMusic()
	}
	if prev != next {
		s.log.Info("state changed", "from", prev, "to", next)
	}
}

func (s *Simulation) startMusic() {
	if s.stopMusic == nil {
		s.stopMusic = s.audio.PlayLoop(core.SoundMenu)
	}
}

func (s *Simulation) stopLoop() {
	if s.stopMusic != nil {
		s.stopMusic()
		s.stopMusic = nil
	}
}

type silent struct{}

func (silent) PlayEffect(string)             {}
func (silent) PlayLoop(string) (stop func()) { return func() {} }
func (silent) SetMuted(bool)                 {}
