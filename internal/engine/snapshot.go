package engine

import "sort"

// Obstacle is a single obstacle cell in a Snapshot.
type Obstacle struct {
	Pos  Position
	Kind ObstacleKind
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	GridSize   int
	Snake      []Position // Head first
	Direction  Direction
	Obstacles  []Obstacle // Row-major order
	Target     Position
	HasTarget  bool
	TargetKind TargetKind
	Score      int
	WinScore   int
	GameOver   bool
	Win        bool
	Paused     bool
	Status     Status
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	obstacles := make([]Obstacle, 0, len(s.obstacles))
	for p, k := range s.obstacles {
		obstacles = append(obstacles, Obstacle{Pos: p, Kind: k})
	}
	sort.Slice(obstacles, func(i, j int) bool {
		a, b := obstacles[i].Pos, obstacles[j].Pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})

	return Snapshot{
		GridSize:   s.cfg.GridSize,
		Snake:      s.Snake(),
		Direction:  s.direction,
		Obstacles:  obstacles,
		Target:     s.target,
		HasTarget:  s.hasTarget,
		TargetKind: s.cfg.Target,
		Score:      s.score,
		WinScore:   s.cfg.WinScore,
		GameOver:   s.gameOver,
		Win:        s.win,
		Paused:     s.paused,
		Status:     s.Status(),
	}
}

// Head returns the snake head in the snapshot.
func (sn Snapshot) Head() Position {
	if len(sn.Snake) == 0 {
		return Position{X: -1, Y: -1}
	}
	return sn.Snake[0]
}
