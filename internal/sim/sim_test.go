package sim

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/spacewar/internal/config"
	"github.com/vovakirdan/spacewar/internal/core"
	"github.com/vovakirdan/spacewar/internal/entity"
)

const frame = 16 * time.Millisecond

type recorder struct {
	effects []string
	loops   int
	stops   int
	muted   bool
}

func (r *recorder) PlayEffect(name string) { r.effects = append(r.effects, name) }
func (r *recorder) SetMuted(m bool)        { r.muted = m }
func (r *recorder) PlayLoop(string) func() {
	r.loops++
	return func() { r.stops++ }
}

func (r *recorder) count(name string) int {
	n := 0
	for _, e := range r.effects {
		if e == name {
			n++
		}
	}
	return n
}

type memStore struct {
	values  map[string]int
	sets    int
	history []int
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{values: map[string]int{}}
}

func (m *memStore) HighScore(key string) (int, error) {
	if m.failGet {
		return 0, errors.New("store unavailable")
	}
	return m.values[key], nil
}

func (m *memStore) SetHighScore(key string, v int) error {
	m.sets++
	m.values[key] = v
	return nil
}

func (m *memStore) SaveRun(score int, _ time.Duration) (int64, error) {
	m.history = append(m.history, score)
	return int64(len(m.history)), nil
}

type fixture struct {
	sim   *Simulation
	input *core.InputState
	audio *recorder
	store *memStore
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		input: core.NewInputState(),
		audio: &recorder{},
		store: newMemStore(),
		now:   time.Unix(1_700_000_000, 0),
	}
	f.sim = New(Options{
		Config: config.Default(),
		Input:  f.input,
		Audio:  f.audio,
		Store:  f.store,
		Rand:   rand.New(rand.NewSource(42)),
	})
	return f
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	if !f.sim.RequestStart() {
		t.Fatalf("RequestStart() refused in %v", f.sim.State())
	}
	if !f.sim.LoadComplete(f.now) {
		t.Fatalf("LoadComplete() refused in %v", f.sim.State())
	}
}

func (f *fixture) step(n int) {
	for range n {
		f.now = f.now.Add(frame)
		f.sim.Frame(f.now)
	}
}

func (f *fixture) playerPos(t *testing.T) core.Vec {
	t.Helper()
	pos, err := f.sim.world.Position(f.sim.playerHandle)
	if err != nil {
		t.Fatalf("player position: %v", err)
	}
	return pos
}

func TestStateMachineTransitions(t *testing.T) {
	f := newFixture(t)
	s := f.sim

	if s.State() != StateMenu {
		t.Fatalf("initial state = %v, want Menu", s.State())
	}
	if f.audio.loops != 1 {
		t.Errorf("menu music started %d times, want 1", f.audio.loops)
	}
	if s.Running() {
		t.Error("loop should not run in Menu")
	}

	if s.TogglePause() || s.ReturnToMenu() || s.LoadComplete(f.now) {
		t.Error("Menu should only accept RequestStart")
	}

	if !s.RequestStart() || s.State() != StateLoading {
		t.Fatalf("RequestStart: state = %v, want Loading", s.State())
	}
	if f.audio.stops != 1 {
		t.Errorf("menu music stopped %d times, want 1", f.audio.stops)
	}
	if s.RequestStart() {
		t.Error("RequestStart accepted while Loading")
	}

	if !s.LoadComplete(f.now) || s.State() != StatePlaying {
		t.Fatalf("LoadComplete: state = %v, want Playing", s.State())
	}
	if !s.Running() {
		t.Error("loop should run in Playing")
	}
	if s.ReturnToMenu() {
		t.Error("ReturnToMenu accepted while Playing")
	}

	if !s.TogglePause() || s.State() != StatePaused {
		t.Fatalf("TogglePause: state = %v, want Paused", s.State())
	}
	if !s.Running() {
		t.Error("loop should keep running while Paused")
	}
	if !s.TogglePause() || s.State() != StatePlaying {
		t.Fatalf("TogglePause: state = %v, want Playing", s.State())
	}

	s.player.Life = 0
	f.step(1)
	if s.State() != StateGameOver {
		t.Fatalf("state = %v after life reached 0, want GameOver", s.State())
	}
	if s.Running() {
		t.Error("loop should stop on GameOver")
	}
	if f.audio.count(core.SoundGameOver) != 1 {
		t.Errorf("gameover sound played %d times, want 1", f.audio.count(core.SoundGameOver))
	}
	if s.TogglePause() {
		t.Error("TogglePause accepted in GameOver")
	}

	if !s.ReturnToMenu() || s.State() != StateMenu {
		t.Fatalf("ReturnToMenu: state = %v, want Menu", s.State())
	}
	if f.audio.loops != 2 {
		t.Errorf("menu music started %d times, want 2", f.audio.loops)
	}
}

func TestTransitionsClearInput(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	f.input.Set(core.Intent{Left: true, Fire: true})
	f.sim.TogglePause()
	if got := f.input.Sample(f.now); got != (core.Intent{}) {
		t.Errorf("input after transition = %+v, want empty", got)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.step(40)

	before := f.sim.Snapshot()
	f.sim.TogglePause()
	f.step(100)
	after := f.sim.Snapshot()

	if len(before.Entities) != len(after.Entities) {
		t.Fatalf("entity count changed while paused: %d -> %d", len(before.Entities), len(after.Entities))
	}
	for i := range before.Entities {
		if before.Entities[i].Pos != after.Entities[i].Pos {
			t.Errorf("entity %d moved while paused: %v -> %v", i, before.Entities[i].Pos, after.Entities[i].Pos)
		}
	}
	if before.Difficulty != after.Difficulty || before.PlayTime != after.PlayTime {
		t.Error("difficulty or play time advanced while paused")
	}
}

func TestEnemyRamsPlayer(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim

	e := entity.NewEnemy(s.table[0], 0)
	h := s.world.CreateBody(f.playerPos(t).Add(core.Vec{Y: -10}), e.Radius(), true)
	s.reg.Register(h, e)

	f.step(1)

	if s.player.Life != 75 {
		t.Errorf("player life = %d, want 75", s.player.Life)
	}
	if s.player.Score != 0 {
		t.Errorf("player score = %d, want 0", s.player.Score)
	}
	if _, ok := s.reg.Get(h); ok {
		t.Error("enemy should be removed in the same tick")
	}
	if s.world.Contains(h) {
		t.Error("enemy body should be destroyed in the same tick")
	}
	if f.audio.count(core.SoundHit) != 1 {
		t.Errorf("hit played %d times, want 1", f.audio.count(core.SoundHit))
	}
	if s.State() != StatePlaying {
		t.Errorf("state = %v, want Playing", s.State())
	}
}

func TestFireRespectsRate(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim

	f.input.Set(core.Intent{Fire: true})
	f.step(1)
	if got := projectiles(s.Snapshot()); got != 1 {
		t.Fatalf("projectiles after first frame = %d, want 1", got)
	}
	if f.audio.count(core.SoundShoot) != 1 {
		t.Errorf("shoot played %d times, want 1", f.audio.count(core.SoundShoot))
	}

	// 8 shots per second means nothing new for the next 125ms
	f.step(5)
	if got := projectiles(s.Snapshot()); got != 1 {
		t.Errorf("projectiles after 6 frames = %d, want 1", got)
	}
	f.step(3)
	if got := projectiles(s.Snapshot()); got != 2 {
		t.Errorf("projectiles after 9 frames = %d, want 2", got)
	}
}

func TestProjectileStartsAbovePlayer(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim

	pos := f.playerPos(t)
	s.fire()
	snap := s.Snapshot()
	for _, v := range snap.Entities {
		if v.Kind != entity.KindProjectile {
			continue
		}
		want := pos.Y - s.player.Radius() - s.cfg.Projectile.Gap
		if math.Abs(v.Pos.X-pos.X) > 1e-9 || math.Abs(v.Pos.Y-want) > 1e-9 {
			t.Errorf("projectile at %v, want (%v, %v)", v.Pos, pos.X, want)
		}
		return
	}
	t.Fatal("no projectile in snapshot")
}

func TestPlayerClampedToCanvas(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim
	r := s.player.Radius()
	slack := s.player.Speed * frame.Seconds()

	f.input.Set(core.Intent{Left: true})
	f.step(150)
	if x := f.playerPos(t).X; x < r-slack-1e-6 {
		t.Errorf("player x = %v, left of %v", x, r-slack)
	}

	f.input.Set(core.Intent{Right: true})
	f.step(300)
	if x := f.playerPos(t).X; x > s.canvas.W-r+slack+1e-6 {
		t.Errorf("player x = %v, right of %v", x, s.canvas.W-r+slack)
	}
}

func TestHighScoreCommittedOnlyWhenExceeded(t *testing.T) {
	tests := []struct {
		name   string
		stored int
		final  int
		want   int
		writes int
	}{
		{"lower score keeps record", 500, 300, 500, 0},
		{"lower again keeps record", 500, 200, 500, 0},
		{"higher score replaces record", 500, 700, 700, 1},
		{"equal score keeps record", 500, 500, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			key := f.sim.cfg.HighScoreKey
			f.store.values[key] = tt.stored
			f.start(t)

			f.sim.player.Score = tt.final
			f.sim.player.Life = 0
			f.step(1)

			if f.sim.State() != StateGameOver {
				t.Fatalf("state = %v, want GameOver", f.sim.State())
			}
			if got := f.store.values[key]; got != tt.want {
				t.Errorf("stored high score = %d, want %d", got, tt.want)
			}
			if f.store.sets != tt.writes {
				t.Errorf("SetHighScore called %d times, want %d", f.store.sets, tt.writes)
			}
			if f.sim.HighScore() != tt.want {
				t.Errorf("HighScore() = %d, want %d", f.sim.HighScore(), tt.want)
			}
			if len(f.store.history) != 1 || f.store.history[0] != tt.final {
				t.Errorf("history = %v, want [%d]", f.store.history, tt.final)
			}
		})
	}
}

func TestHighScoreStoreFailureDoesNotStopRun(t *testing.T) {
	f := newFixture(t)
	f.store.failGet = true
	f.start(t)

	f.sim.player.Score = 100
	f.sim.player.Life = 0
	f.step(1)
	if f.sim.State() != StateGameOver {
		t.Fatalf("state = %v, want GameOver", f.sim.State())
	}
	if f.sim.HighScore() != 100 {
		t.Errorf("HighScore() = %d, want 100", f.sim.HighScore())
	}
}

func TestNewRunResetsEverything(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim

	f.input.Set(core.Intent{Fire: true})
	f.step(600)
	if s.reg.Len() < 2 {
		t.Fatalf("expected enemies or projectiles after 600 frames, have %d entities", s.reg.Len())
	}
	if s.diff.Factor <= 1 {
		t.Fatalf("difficulty did not increase: %v", s.diff.Factor)
	}

	s.player.Life = 0
	f.step(1)
	s.ReturnToMenu()
	f.start(t)

	if s.reg.Len() != 1 {
		t.Errorf("registry holds %d entries, want only the player", s.reg.Len())
	}
	if s.world.Len() != 1 {
		t.Errorf("world holds %d bodies, want only the player", s.world.Len())
	}
	if s.diff.Factor != 1 || s.diff.Elapsed != 0 {
		t.Errorf("difficulty = %v/%v, want 1/0", s.diff.Factor, s.diff.Elapsed)
	}
	if s.sched.Timer != 0 {
		t.Errorf("spawn timer = %v, want 0", s.sched.Timer)
	}
	if s.player.Score != 0 || s.player.Life != 100 {
		t.Errorf("player score/life = %d/%d, want 0/100", s.player.Score, s.player.Life)
	}
	want := core.Vec{X: s.canvas.W / 2, Y: s.canvas.H - 50}
	if got := f.playerPos(t); got != want {
		t.Errorf("player at %v, want %v", got, want)
	}
}

func TestRegistryAndWorldStayInSync(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim
	f.input.Set(core.Intent{Fire: true})

	for range 300 {
		f.step(1)
		if s.reg.Len() != s.world.Len() {
			t.Fatalf("registry %d entries, world %d bodies", s.reg.Len(), s.world.Len())
		}
		for h := range s.reg.All() {
			if !s.world.Contains(h) {
				t.Fatalf("handle %d registered without a body", h)
			}
		}
		if s.State() != StatePlaying {
			break
		}
	}
}

func TestMuteControlsMenuMusic(t *testing.T) {
	f := newFixture(t)
	s := f.sim

	if !s.ToggleMute() || !f.audio.muted {
		t.Fatal("ToggleMute should mute")
	}
	if f.audio.stops != 1 {
		t.Errorf("menu music stops = %d, want 1", f.audio.stops)
	}
	if s.ToggleMute() || f.audio.muted {
		t.Fatal("second ToggleMute should unmute")
	}
	if f.audio.loops != 2 {
		t.Errorf("menu music starts = %d, want 2", f.audio.loops)
	}
}

func TestMutedSimulationSkipsMenuMusic(t *testing.T) {
	audio := &recorder{}
	s := New(Options{Config: config.Default(), Audio: audio, Muted: true})
	if audio.loops != 0 {
		t.Errorf("menu music started %d times while muted", audio.loops)
	}
	if !s.Snapshot().Muted {
		t.Error("snapshot should report muted")
	}
}

func TestSeededRunsAreDeterministic(t *testing.T) {
	run := func() Snapshot {
		s := New(Options{
			Config: config.Default(),
			Input:  NewAutopilot(time.Second),
			Rand:   rand.New(rand.NewSource(7)),
		})
		now := time.Unix(0, 0)
		s.RequestStart()
		s.LoadComplete(now)
		for range 400 {
			now = now.Add(frame)
			s.Frame(now)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Life != b.Life {
		t.Errorf("score/life differ: %d/%d vs %d/%d", a.Score, a.Life, b.Score, b.Life)
	}
	if len(a.Entities) != len(b.Entities) {
		t.Fatalf("entity counts differ: %d vs %d", len(a.Entities), len(b.Entities))
	}
	for i := range a.Entities {
		if a.Entities[i] != b.Entities[i] {
			t.Errorf("entity %d differs: %+v vs %+v", i, a.Entities[i], b.Entities[i])
		}
	}
}

func TestSnapshotViews(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	s := f.sim

	e := entity.NewEnemy(s.table[1], 1)
	h := s.world.CreateBody(core.Vec{X: 100, Y: 100}, e.Radius(), true)
	s.reg.Register(h, e)

	snap := s.Snapshot()
	if !snap.HasPlayer || snap.Player.Kind != entity.KindPlayer {
		t.Fatalf("snapshot player = %+v", snap.Player)
	}
	if len(snap.Entities) != 1 {
		t.Fatalf("snapshot entities = %d, want 1", len(snap.Entities))
	}
	v := snap.Entities[0]
	if v.Handle != h || v.Variant != 1 || v.Tag != "blue" || v.Radius != 20 {
		t.Errorf("enemy view = %+v", v)
	}
	if snap.Life != 100 || snap.Score != 0 || snap.State != StatePlaying {
		t.Errorf("snapshot HUD = life %d score %d state %v", snap.Life, snap.Score, snap.State)
	}
}

func TestRunStopsAtGameOver(t *testing.T) {
	f := newFixture(t)
	f.start(t)
	f.sim.player.Life = 0

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, f.sim, VirtualTicks(ctx, f.now.Add(frame), frame)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if f.sim.State() != StateGameOver {
		t.Errorf("state = %v, want GameOver", f.sim.State())
	}
}

func TestRunHonoursContext(t *testing.T) {
	f := newFixture(t)
	f.start(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ticks := make(chan time.Time)
	if err := Run(ctx, f.sim, ticks); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}

	close(ticks)
	if err := Run(context.Background(), f.sim, ticks); err != nil {
		t.Errorf("Run() on closed ticks = %v, want nil", err)
	}
}

func TestAutopilotSweeps(t *testing.T) {
	a := NewAutopilot(time.Second)
	t0 := time.Unix(0, 0)

	if in := a.Sample(t0); !in.Left || in.Right || !in.Fire {
		t.Errorf("first leg = %+v, want left+fire", in)
	}
	if in := a.Sample(t0.Add(1500 * time.Millisecond)); in.Left || !in.Right {
		t.Errorf("second leg = %+v, want right", in)
	}
	a.Clear()
	if in := a.Sample(t0.Add(10 * time.Second)); !in.Left {
		t.Errorf("after Clear = %+v, want left", in)
	}
}

func projectiles(s Snapshot) int {
	n := 0
	for _, v := range s.Entities {
		if v.Kind == entity.KindProjectile {
			n++
		}
	}
	return n
}
