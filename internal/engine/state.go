package engine

import (
	"fmt"
	"time"
)

// State is the authoritative grid state for one game session.
// It is not safe for concurrent use.
type State struct {
	cfg Config
	rng Rand

	snake     []Position // Head at index 0
	direction Direction
	growth    int // Steps left during which the tail stays put

	obstacles map[Position]ObstacleKind
	target    Position
	hasTarget bool

	score    int
	gameOver bool
	win      bool
	paused   bool

	lastStep time.Time
}

// New builds a fresh game. The snake is centred with its head at
// (size/2, size/2) and its body extending to the left, heading right.
// Obstacles and the target are placed with rng. The first step is accepted
// once cfg.MoveInterval has passed after now.
func New(cfg Config, rng Rand, now time.Time) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	s := &State{
		cfg:       cfg,
		rng:       rng,
		direction: Right,
		obstacles: make(map[Position]ObstacleKind),
		lastStep:  now,
	}

	center := cfg.GridSize / 2
	s.snake = make([]Position, 0, cfg.InitialLength)
	for i := range cfg.InitialLength {
		s.snake = append(s.snake, Position{X: center - i, Y: center})
	}

	if cfg.BoundaryKnives {
		s.layKnives()
	}
	if cfg.TerrainClusters > 0 {
		s.layTerrain(cfg.TerrainClusters)
	}
	s.hasTarget = s.placeTarget()

	return s, nil
}

// Config returns the configuration the state was built with.
func (s *State) Config() Config {
	return s.cfg
}

// Snake returns a copy of the snake body, head first.
func (s *State) Snake() []Position {
	out := make([]Position, len(s.snake))
	copy(out, s.snake)
	return out
}

// Head returns the snake's head cell.
func (s *State) Head() Position {
	if len(s.snake) == 0 {
		return Position{X: -1, Y: -1}
	}
	return s.snake[0]
}

// Len returns the snake length.
func (s *State) Len() int {
	return len(s.snake)
}

// Direction returns the current heading.
func (s *State) Direction() Direction {
	return s.direction
}

// Target returns the target cell and whether one is on the board.
func (s *State) Target() (Position, bool) {
	return s.target, s.hasTarget
}

// Score returns the current score.
func (s *State) Score() int {
	return s.score
}

// IsObstacle reports whether p holds an obstacle.
func (s *State) IsObstacle(p Position) bool {
	_, ok := s.obstacles[p]
	return ok
}

// Status returns the current state machine position. Terminal states take
// precedence over pause.
func (s *State) Status() Status {
	switch {
	case s.gameOver:
		return StatusGameOver
	case s.win:
		return StatusWin
	case s.paused:
		return StatusPaused
	default:
		return StatusRunning
	}
}

// SetDirection changes the heading. Reversals and non-unit vectors are
// ignored and reported as false.
func (s *State) SetDirection(d Direction) bool {
	if !d.IsUnit() || d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// TogglePause flips the pause flag. It does not affect terminal states.
func (s *State) TogglePause() {
	s.paused = !s.paused
}

// SetMoveInterval changes the minimum time between accepted steps.
// Negative intervals are ignored.
func (s *State) SetMoveInterval(d time.Duration) {
	if d < 0 {
		return
	}
	s.cfg.MoveInterval = d
}

// Step evaluates one move if the state is running and the move interval has
// elapsed since the last accepted step. Calls that are gated return an
// Outcome with Moved unset and leave the state untouched.
func (s *State) Step(now time.Time) (Outcome, error) {
	if s == nil {
		return Outcome{}, fmt.Errorf("%w: nil state", ErrCorruptState)
	}
	if s.paused || s.gameOver || s.win {
		return Outcome{Status: s.Status()}, nil
	}
	if now.Sub(s.lastStep) < s.cfg.MoveInterval {
		return Outcome{Status: s.Status()}, nil
	}
	if len(s.snake) == 0 {
		return Outcome{}, fmt.Errorf("%w: empty snake", ErrCorruptState)
	}
	if !s.direction.IsUnit() {
		return Outcome{}, fmt.Errorf("%w: direction %s", ErrCorruptState, s.direction)
	}
	s.lastStep = now

	var out Outcome
	newHead := s.snake[0].Add(s.direction)

	if c := s.collision(newHead); c != CollisionNone {
		s.gameOver = true
		out.Moved = true
		out.Collision = c
		out.Status = s.Status()
		return out, nil
	}

	s.snake = append(s.snake, Position{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = newHead
	out.Moved = true

	if s.hasTarget && newHead == s.target {
		out.Captured = true
		s.score += s.cfg.CaptureValue
		s.growth += s.cfg.GrowthPerCapture

		if s.cfg.WinScore > 0 && s.score >= s.cfg.WinScore {
			s.win = true
			s.trimTail()
			out.Status = s.Status()
			return out, nil
		}

		if !s.placeTarget() {
			s.hasTarget = false
			s.win = true
			s.trimTail()
			out.BoardFull = true
			out.Status = s.Status()
			return out, nil
		}
	}

	s.trimTail()

	if s.cfg.FleeChance > 0 && s.hasTarget {
		out.TargetMoved = s.flee()
	}

	out.Status = s.Status()
	return out, nil
}

// collision reports what, if anything, occupies the cell the head moves into.
// The whole body counts, tail included.
func (s *State) collision(p Position) Collision {
	switch {
	case !s.inBounds(p):
		return CollisionBounds
	case s.onSnake(p):
		return CollisionSelf
	case s.IsObstacle(p):
		return CollisionObstacle
	}
	return CollisionNone
}

// trimTail drops the tail unless the snake still has growth pending.
func (s *State) trimTail() {
	if s.growth > 0 {
		s.growth--
		return
	}
	if len(s.snake) > 1 {
		s.snake = s.snake[:len(s.snake)-1]
	}
}

func (s *State) inBounds(p Position) bool {
	return p.X >= 0 && p.X < s.cfg.GridSize && p.Y >= 0 && p.Y < s.cfg.GridSize
}

func (s *State) onSnake(p Position) bool {
	for _, seg := range s.snake {
		if seg == p {
			return true
		}
	}
	return false
}
