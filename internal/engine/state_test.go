package engine

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

// constRand always returns the same values.
type constRand struct {
	n int
	f float64
}

func (c constRand) Intn(k int) int   { return c.n % k }
func (c constRand) Float64() float64 { return c.f }

func newState(t *testing.T, cfg Config, seed int64) *State {
	t.Helper()
	s, err := New(cfg, rand.New(rand.NewSource(seed)), epoch)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

// after returns the time n move intervals past epoch.
func after(n int) time.Time {
	return epoch.Add(time.Duration(n) * DefaultMoveInterval)
}

func TestNewClassicLayout(t *testing.T) {
	s := newState(t, ClassicConfig(), 1)

	want := []Position{{10, 10}, {9, 10}, {8, 10}}
	got := s.Snake()
	if len(got) != len(want) {
		t.Fatalf("snake length = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("snake[%d] = %v, expected %v", i, got[i], want[i])
		}
	}

	if s.Direction() != Right {
		t.Errorf("initial direction = %v, expected right", s.Direction())
	}
	if s.Score() != 0 {
		t.Errorf("initial score = %d, expected 0", s.Score())
	}
	if s.Status() != StatusRunning {
		t.Errorf("initial status = %v, expected running", s.Status())
	}

	// Every edge cell holds a knife
	for i := 0; i < 20; i++ {
		for _, p := range []Position{{i, 0}, {i, 19}, {0, i}, {19, i}} {
			if !s.IsObstacle(p) {
				t.Errorf("expected knife at %v", p)
			}
		}
	}
	if s.IsObstacle(Position{1, 1}) {
		t.Error("inner cell (1,1) should be free")
	}

	target, ok := s.Target()
	if !ok {
		t.Fatal("expected a target on the board")
	}
	if s.IsObstacle(target) || s.onSnake(target) {
		t.Errorf("target %v overlaps snake or obstacle", target)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	base := ClassicConfig()
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"grid too small", func(c *Config) { c.GridSize = 3 }},
		{"zero length", func(c *Config) { c.InitialLength = 0 }},
		{"snake wider than grid", func(c *Config) { c.InitialLength = 11 }},
		{"negative interval", func(c *Config) { c.MoveInterval = -time.Second }},
		{"zero capture value", func(c *Config) { c.CaptureValue = 0 }},
		{"negative growth", func(c *Config) { c.GrowthPerCapture = -1 }},
		{"negative win score", func(c *Config) { c.WinScore = -5 }},
		{"negative clusters", func(c *Config) { c.TerrainClusters = -1 }},
		{"flee chance above one", func(c *Config) { c.FleeChance = 1.5 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.modify(&cfg)
			_, err := New(cfg, rand.New(rand.NewSource(1)), epoch)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("New() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New(base, nil, epoch); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() with nil rng error = %v, expected ErrInvalidConfig", err)
	}
}

func TestStepMovesAfterInterval(t *testing.T) {
	s := newState(t, ClassicConfig(), 2)
	s.target = Position{X: 3, Y: 3}

	// Too early: nothing happens
	out, err := s.Step(epoch.Add(DefaultMoveInterval / 2))
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if out.Moved {
		t.Fatal("Step() before the interval should not move")
	}
	if s.Head() != (Position{10, 10}) {
		t.Fatalf("head moved early to %v", s.Head())
	}

	out, err = s.Step(after(1))
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if !out.Moved {
		t.Fatal("Step() after the interval should move")
	}

	want := []Position{{11, 10}, {10, 10}, {9, 10}}
	got := s.Snake()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("snake[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
	if s.Len() != 3 {
		t.Errorf("length = %d, expected 3", s.Len())
	}
	if s.Score() != 0 {
		t.Errorf("score = %d, expected 0", s.Score())
	}

	// Interval is measured from the last accepted step
	if out, _ := s.Step(after(1).Add(DefaultMoveInterval - time.Millisecond)); out.Moved {
		t.Error("second step inside the interval should be gated")
	}
}

func TestStepCapturesTarget(t *testing.T) {
	s := newState(t, ClassicConfig(), 3)
	s.target = Position{X: 11, Y: 10}

	out, err := s.Step(after(1))
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if !out.Captured {
		t.Fatal("expected a capture")
	}
	if s.Score() != 1 {
		t.Errorf("score = %d, expected 1", s.Score())
	}
	if s.Len() != 4 {
		t.Errorf("length = %d, expected 4", s.Len())
	}

	target, ok := s.Target()
	if !ok {
		t.Fatal("target should be relocated")
	}
	if target == (Position{11, 10}) || s.onSnake(target) || s.IsObstacle(target) {
		t.Errorf("relocated target %v is not a free cell", target)
	}
}

func TestGrowthAfterCaptures(t *testing.T) {
	tests := []struct {
		name   string
		growth int
	}{
		{"one cell per capture", 1},
		{"two cells per capture", 2},
		{"no growth", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ClassicConfig()
			cfg.GrowthPerCapture = tc.growth
			s := newState(t, cfg, 4)

			captures := 2
			tick := 0
			for i := 0; i < captures; i++ {
				tick++
				s.target = s.Head().Add(s.Direction())
				if out, _ := s.Step(after(tick)); !out.Captured {
					t.Fatalf("step %d: expected capture", tick)
				}
				s.target = Position{X: 2, Y: 2}
				// Let pending growth play out
				for j := 1; j < tc.growth; j++ {
					tick++
					s.Step(after(tick))
				}
			}

			if s.Status() != StatusRunning {
				t.Fatalf("status = %v, expected running", s.Status())
			}
			want := cfg.InitialLength + captures*tc.growth
			if s.Len() != want {
				t.Errorf("length = %d, expected %d", s.Len(), want)
			}
		})
	}
}

func TestStepIntoKnifeEndsGame(t *testing.T) {
	s := newState(t, ClassicConfig(), 5)
	s.snake = []Position{{2, 10}, {3, 10}, {4, 10}}
	s.direction = Left
	s.target = Position{X: 15, Y: 15}

	s.Step(after(1)) // (1,10)
	out, err := s.Step(after(2))
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if out.Collision != CollisionObstacle {
		t.Errorf("collision = %v, expected obstacle", out.Collision)
	}
	if s.Status() != StatusGameOver {
		t.Fatalf("status = %v, expected game over", s.Status())
	}

	before := s.Snapshot()
	for i := 3; i < 10; i++ {
		if out, _ := s.Step(after(i)); out.Moved {
			t.Fatal("Step() after game over should not move")
		}
	}
	afterSnap := s.Snapshot()
	if before.Head() != afterSnap.Head() || len(before.Snake) != len(afterSnap.Snake) || before.Score != afterSnap.Score {
		t.Error("state changed after game over")
	}
}

func TestStepOutOfBounds(t *testing.T) {
	cfg := ClassicConfig()
	cfg.BoundaryKnives = false
	s := newState(t, cfg, 6)
	s.snake = []Position{{19, 5}, {18, 5}, {17, 5}}
	s.target = Position{X: 1, Y: 1}

	out, _ := s.Step(after(1))
	if out.Collision != CollisionBounds {
		t.Errorf("collision = %v, expected out of bounds", out.Collision)
	}
	if !s.Snapshot().GameOver {
		t.Error("leaving the grid should end the game")
	}
	if s.Head() != (Position{19, 5}) {
		t.Errorf("head = %v, expected it to stay at (19,5)", s.Head())
	}
}

func TestSelfCollision(t *testing.T) {
	s := newState(t, ClassicConfig(), 7)
	s.snake = []Position{
		{5, 5}, // Head
		{5, 6},
		{6, 6},
		{6, 5},
		{6, 4},
	}
	s.direction = Right
	s.target = Position{X: 15, Y: 15}

	out, _ := s.Step(after(1))
	if out.Collision != CollisionSelf {
		t.Errorf("collision = %v, expected self", out.Collision)
	}
	if s.Status() != StatusGameOver {
		t.Error("running into the body should end the game")
	}
}

func TestSetDirection(t *testing.T) {
	s := newState(t, ClassicConfig(), 8)

	if s.SetDirection(Left) {
		t.Error("reversing from right to left should be rejected")
	}
	if s.Direction() != Right {
		t.Errorf("direction = %v, expected right", s.Direction())
	}

	for i := 0; i < 3; i++ {
		if !s.SetDirection(Up) {
			t.Fatal("turning up should be accepted")
		}
		if s.Direction() != Up {
			t.Fatalf("direction = %v, expected up", s.Direction())
		}
	}

	if s.SetDirection(Down) {
		t.Error("reversing from up to down should be rejected")
	}

	for _, d := range []Direction{{0, 0}, {1, 1}, {2, 0}, {0, -3}} {
		if s.SetDirection(d) {
			t.Errorf("non-unit direction %v should be rejected", d)
		}
	}
	if s.Direction() != Up {
		t.Errorf("direction = %v, expected up", s.Direction())
	}
}

func TestTogglePause(t *testing.T) {
	s := newState(t, ClassicConfig(), 9)
	s.target = Position{X: 2, Y: 2}

	s.TogglePause()
	if s.Status() != StatusPaused {
		t.Fatalf("status = %v, expected paused", s.Status())
	}
	if out, _ := s.Step(after(5)); out.Moved {
		t.Error("paused game should not move")
	}

	s.TogglePause()
	if out, _ := s.Step(after(6)); !out.Moved {
		t.Error("resumed game should move")
	}

	// Pause has no effect on terminal states
	s.gameOver = true
	s.TogglePause()
	if s.Status() != StatusGameOver {
		t.Errorf("status = %v, expected game over", s.Status())
	}
	s.TogglePause()
	if s.Status() != StatusGameOver {
		t.Errorf("status = %v, expected game over", s.Status())
	}
}

func TestSetMoveInterval(t *testing.T) {
	s := newState(t, ClassicConfig(), 10)
	s.target = Position{X: 2, Y: 2}

	s.SetMoveInterval(50 * time.Millisecond)
	if out, _ := s.Step(epoch.Add(50 * time.Millisecond)); !out.Moved {
		t.Fatal("step should be accepted after the shortened interval")
	}

	s.SetMoveInterval(-time.Second)
	if s.Config().MoveInterval != 50*time.Millisecond {
		t.Errorf("negative interval applied: %v", s.Config().MoveInterval)
	}
	if out, _ := s.Step(epoch.Add(80 * time.Millisecond)); out.Moved {
		t.Error("step before the interval elapsed should be gated")
	}
}

func TestCaptureVariantWin(t *testing.T) {
	cfg := CaptureConfig()
	cfg.FleeChance = 0
	cfg.TerrainClusters = 0
	s := newState(t, cfg, 10)

	tick := 0
	for i := 0; i < 4; i++ {
		tick++
		s.target = s.Head().Add(s.Direction())
		out, err := s.Step(after(tick))
		if err != nil {
			t.Fatalf("Step() error: %v", err)
		}
		if !out.Captured {
			t.Fatalf("capture %d missed", i+1)
		}
		if s.Score() != (i+1)*5 {
			t.Errorf("score = %d, expected %d", s.Score(), (i+1)*5)
		}
	}

	if s.Status() != StatusWin {
		t.Fatalf("status = %v, expected win", s.Status())
	}
	target, _ := s.Target()
	if target != s.Head() {
		t.Errorf("target = %v, expected it to stay on the captured cell %v", target, s.Head())
	}
	if s.Len() != 7 {
		t.Errorf("length = %d, expected 7", s.Len())
	}
	if out, _ := s.Step(after(tick + 1)); out.Moved {
		t.Error("won game should not move")
	}
}

func TestBoardFullEndsInWin(t *testing.T) {
	cfg := ClassicConfig()
	cfg.GridSize = 4
	cfg.BoundaryKnives = false
	s := newState(t, cfg, 11)

	// Snake (2,2),(1,2),(0,2); leave (3,2) for the target
	s.target = Position{X: 3, Y: 2}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := Position{X: x, Y: y}
			if y == 2 {
				continue
			}
			s.obstacles[p] = ObstacleWell
		}
	}

	out, err := s.Step(after(1))
	if err != nil {
		t.Fatalf("Step() error: %v", err)
	}
	if !out.Captured || !out.BoardFull {
		t.Errorf("outcome = %+v, expected capture with full board", out)
	}
	if s.Status() != StatusWin {
		t.Errorf("status = %v, expected win", s.Status())
	}
	if _, ok := s.Target(); ok {
		t.Error("no target should remain on a full board")
	}
}

func TestStepCorruptState(t *testing.T) {
	var nilState *State
	if _, err := nilState.Step(after(1)); !errors.Is(err, ErrCorruptState) {
		t.Errorf("nil state error = %v, expected ErrCorruptState", err)
	}

	s := newState(t, ClassicConfig(), 12)
	s.snake = nil
	if _, err := s.Step(after(1)); !errors.Is(err, ErrCorruptState) {
		t.Errorf("empty snake error = %v, expected ErrCorruptState", err)
	}

	s = newState(t, ClassicConfig(), 12)
	s.direction = Direction{}
	if _, err := s.Step(after(1)); !errors.Is(err, ErrCorruptState) {
		t.Errorf("zero direction error = %v, expected ErrCorruptState", err)
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	configs := map[string]Config{
		"classic": ClassicConfig(),
		"capture": CaptureConfig(),
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				rng := rand.New(rand.NewSource(seed + 100))
				s := newState(t, cfg, seed)

				for tick := 1; tick <= 400 && !s.Status().Terminal(); tick++ {
					if rng.Intn(4) == 0 {
						s.SetDirection(Directions[rng.Intn(4)])
					}
					if _, err := s.Step(after(tick)); err != nil {
						t.Fatalf("seed %d tick %d: Step() error: %v", seed, tick, err)
					}
					if s.Status() == StatusGameOver {
						break
					}
					checkInvariants(t, s)
				}
			}
		})
	}
}

func checkInvariants(t *testing.T, s *State) {
	t.Helper()

	head := s.Head()
	if !s.inBounds(head) {
		t.Fatalf("head %v out of bounds", head)
	}

	seen := make(map[Position]bool, len(s.snake))
	for i, seg := range s.snake {
		if seen[seg] {
			t.Fatalf("snake overlaps itself at %v", seg)
		}
		seen[seg] = true
		if s.IsObstacle(seg) {
			t.Fatalf("snake segment %v on an obstacle", seg)
		}
		if i > 0 {
			prev := s.snake[i-1]
			if abs(prev.X-seg.X)+abs(prev.Y-seg.Y) != 1 {
				t.Fatalf("segments %v and %v are not adjacent", prev, seg)
			}
		}
	}

	if s.Len() < s.cfg.InitialLength {
		t.Fatalf("length %d below initial %d", s.Len(), s.cfg.InitialLength)
	}

	if s.Status() == StatusRunning || s.Status() == StatusPaused {
		if target, ok := s.Target(); ok && (seen[target] || s.IsObstacle(target)) {
			t.Fatalf("target %v overlaps snake or obstacle", target)
		}
	}
}
