package engine

import (
	"testing"
)

func newFleeState(t *testing.T, rng Rand) *State {
	t.Helper()
	cfg := CaptureConfig()
	cfg.TerrainClusters = 0
	cfg.FleeChance = 0.5
	s, err := New(cfg, rng, epoch)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestFleeMovesAwayFromHead(t *testing.T) {
	tests := []struct {
		name   string
		target Position
		want   Position
	}{
		// Right is strictly farthest
		{"straight ahead", Position{12, 10}, Position{13, 10}},
		// Right and down tie at 13; right comes first
		{"diagonal tie", Position{12, 12}, Position{13, 12}},
		// Down is farthest, up would close in
		{"below the head", Position{10, 12}, Position{10, 13}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newFleeState(t, constRand{n: 0, f: 0})
			s.target = tc.target

			if !s.flee() {
				t.Fatal("flee() should move the target")
			}
			if s.target != tc.want {
				t.Errorf("target = %v, expected %v", s.target, tc.want)
			}
		})
	}
}

func TestFleeCornered(t *testing.T) {
	s := newFleeState(t, constRand{n: 0, f: 0})
	s.snake = []Position{{17, 19}, {16, 19}, {15, 19}}
	s.target = Position{X: 19, Y: 19}

	// Only up keeps the distance
	if !s.flee() || s.target != (Position{19, 18}) {
		t.Fatalf("target = %v, expected (19,18)", s.target)
	}

	s.target = Position{X: 19, Y: 19}
	s.obstacles[Position{X: 19, Y: 18}] = ObstacleWell
	if s.flee() {
		t.Error("cornered target should stay put")
	}
	if s.target != (Position{19, 19}) {
		t.Errorf("target = %v, expected (19,19)", s.target)
	}
}

func TestFleeChance(t *testing.T) {
	s := newFleeState(t, constRand{n: 0, f: 0.9})
	s.target = Position{X: 12, Y: 10}

	if s.flee() {
		t.Error("roll above the flee chance should not move the target")
	}
	if s.target != (Position{12, 10}) {
		t.Errorf("target = %v, expected (12,10)", s.target)
	}
}

func TestTargetFallbacks(t *testing.T) {
	// Every sample lands on the knife at (0,0)
	s, err := New(ClassicConfig(), constRand{n: 0}, epoch)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	target, ok := s.Target()
	if !ok || target != (Position{10, 7}) {
		t.Fatalf("target = %v, expected the default (10,7)", target)
	}

	// Default blocked: first free cell in row order
	s.obstacles[Position{X: 10, Y: 7}] = ObstacleWell
	if !s.placeTarget() {
		t.Fatal("placeTarget() should find a free cell")
	}
	if s.target != (Position{1, 1}) {
		t.Errorf("target = %v, expected (1,1)", s.target)
	}

	// Nothing free
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if p := (Position{X: x, Y: y}); !s.onSnake(p) {
				s.obstacles[p] = ObstacleWell
			}
		}
	}
	if s.placeTarget() {
		t.Error("placeTarget() should fail on a full grid")
	}
}

func TestTerrainKeepsStartLaneClear(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		s := newState(t, CaptureConfig(), seed)

		kinds := 0
		for p, k := range s.obstacles {
			if k == ObstacleKnife {
				t.Fatalf("seed %d: capture variant should have no knives", seed)
			}
			if s.onSnake(p) {
				t.Fatalf("seed %d: terrain on snake at %v", seed, p)
			}
			kinds++
		}
		if kinds == 0 {
			t.Errorf("seed %d: expected some terrain", seed)
		}

		head := s.Head()
		for dx := 1; dx <= 4; dx++ {
			if p := (Position{X: head.X + dx, Y: head.Y}); s.IsObstacle(p) {
				t.Errorf("seed %d: terrain blocks the opening lane at %v", seed, p)
			}
		}

		target, ok := s.Target()
		if !ok || s.IsObstacle(target) || s.onSnake(target) {
			t.Errorf("seed %d: bad target %v", seed, target)
		}
	}
}

func TestLayTerrainSkipsWhenFull(t *testing.T) {
	s := newFleeState(t, constRand{n: 0, f: 0})
	// Cover the grid so no cluster can fit
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if p := (Position{X: x, Y: y}); !s.onSnake(p) {
				s.obstacles[p] = ObstacleTree
			}
		}
	}
	if n := s.layTerrain(5); n != 0 {
		t.Errorf("layTerrain() placed %d clusters on a full grid", n)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newState(t, ClassicConfig(), 13)
	snap := s.Snapshot()
	snap.Snake[0] = Position{X: -5, Y: -5}

	if s.Head() == (Position{-5, -5}) {
		t.Error("mutating the snapshot changed the state")
	}
	if snap.GridSize != 20 || snap.Status != StatusRunning || snap.TargetKind != TargetFood {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}

	// Row-major obstacle order
	for i := 1; i < len(snap.Obstacles); i++ {
		a, b := snap.Obstacles[i-1].Pos, snap.Obstacles[i].Pos
		if a.Y > b.Y || (a.Y == b.Y && a.X >= b.X) {
			t.Fatalf("obstacles out of order at %d: %v then %v", i, a, b)
		}
	}
}
