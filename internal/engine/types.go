// Package engine implements the snake game state machine: movement, collision
// detection, target placement and scoring on a fixed square grid.
//
// The engine owns no timers and no goroutines. Callers drive it by calling
// Step with the current time; a step is only taken once the configured move
// interval has elapsed since the previous accepted step.
package engine

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is returned by New when a Config cannot produce a playable grid.
	ErrInvalidConfig = errors.New("engine: invalid config")

	// ErrCorruptState is returned by Step when a state invariant no longer holds.
	// Callers are expected to discard the state and start over.
	ErrCorruptState = errors.New("engine: corrupt state")
)

// Position is a cell on the grid.
type Position struct {
	X, Y int
}

// Add returns p moved by one step in direction d.
func (p Position) Add(d Direction) Position {
	return Position{X: p.X + d.DX, Y: p.Y + d.DY}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// distSq returns the squared Euclidean distance between two cells.
func distSq(a, b Position) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Direction is a unit movement vector.
type Direction struct {
	DX, DY int
}

// The four legal movement directions.
var (
	Right = Direction{DX: 1, DY: 0}
	Left  = Direction{DX: -1, DY: 0}
	Down  = Direction{DX: 0, DY: 1}
	Up    = Direction{DX: 0, DY: -1}
)

// Directions lists the legal directions in evaluation order.
var Directions = [4]Direction{Right, Left, Down, Up}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsUnit reports whether d moves exactly one cell along one axis.
func (d Direction) IsUnit() bool {
	return (d.DX == 0) != (d.DY == 0) && abs(d.DX)+abs(d.DY) == 1
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Down:
		return "down"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Status is the engine's position in its state machine.
type Status int

const (
	StatusRunning Status = iota
	StatusPaused
	StatusGameOver
	StatusWin
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusGameOver:
		return "game_over"
	case StatusWin:
		return "win"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further steps can be taken.
func (s Status) Terminal() bool {
	return s == StatusGameOver || s == StatusWin
}

// ObstacleKind distinguishes obstacle cells for rendering. All kinds end the
// game on contact.
type ObstacleKind int

const (
	ObstacleKnife ObstacleKind = iota
	ObstacleHouse
	ObstacleTree
	ObstacleWell
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleKnife:
		return "knife"
	case ObstacleHouse:
		return "house"
	case ObstacleTree:
		return "tree"
	case ObstacleWell:
		return "well"
	default:
		return "unknown"
	}
}

// TargetKind describes what the snake is chasing.
type TargetKind int

const (
	TargetFood  TargetKind = iota // Stationary
	TargetHuman                   // Steps away from the snake's head
)

func (k TargetKind) String() string {
	if k == TargetHuman {
		return "human"
	}
	return "food"
}

// Collision names what ended a game.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionBounds
	CollisionSelf
	CollisionObstacle
)

func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionBounds:
		return "out_of_bounds"
	case CollisionSelf:
		return "self"
	case CollisionObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Outcome reports what a single Step call did.
type Outcome struct {
	Moved       bool      // A step was accepted and evaluated
	Captured    bool      // The head reached the target
	TargetMoved bool      // The target took an evasive step
	BoardFull   bool      // No free cell was left for a new target
	Collision   Collision // Set when the step ended the game
	Status      Status    // Status after the call
}

// Rand is the random source used for placement and evasion.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Config parameterizes a game.
type Config struct {
	GridSize         int           // Width and height of the square grid
	InitialLength    int           // Snake length at start
	MoveInterval     time.Duration // Minimum time between accepted steps
	CaptureValue     int           // Points per capture
	GrowthPerCapture int           // Cells gained per capture
	WinScore         int           // Score that wins the game; 0 disables winning
	BoundaryKnives   bool          // Line every edge cell with knives
	TerrainClusters  int           // Village terrain clusters to scatter
	Target           TargetKind
	FleeChance       float64 // Per-step probability that the target evades
}

// DefaultMoveInterval is the step interval both variants use.
const DefaultMoveInterval = 200 * time.Millisecond

// ClassicConfig returns the knife-bordered food variant.
func ClassicConfig() Config {
	return Config{
		GridSize:         20,
		InitialLength:    3,
		MoveInterval:     DefaultMoveInterval,
		CaptureValue:     1,
		GrowthPerCapture: 1,
		BoundaryKnives:   true,
		Target:           TargetFood,
	}
}

// CaptureConfig returns the village variant with a fleeing human.
func CaptureConfig() Config {
	return Config{
		GridSize:         20,
		InitialLength:    3,
		MoveInterval:     DefaultMoveInterval,
		CaptureValue:     5,
		GrowthPerCapture: 1,
		WinScore:         20,
		TerrainClusters:  8,
		Target:           TargetHuman,
		FleeChance:       0.3,
	}
}

// Validate checks that the snake fits the grid and every field is in range.
func (c Config) Validate() error {
	margin := 0
	if c.BoundaryKnives {
		margin = 1
	}
	center := c.GridSize / 2
	switch {
	case c.GridSize < 4:
		return fmt.Errorf("%w: grid size %d is below 4", ErrInvalidConfig, c.GridSize)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initial length %d", ErrInvalidConfig, c.InitialLength)
	case center-(c.InitialLength-1) < margin:
		return fmt.Errorf("%w: snake of length %d does not fit a %dx%d grid", ErrInvalidConfig, c.InitialLength, c.GridSize, c.GridSize)
	case center+1 >= c.GridSize-margin:
		return fmt.Errorf("%w: no room ahead of the snake on a %dx%d grid", ErrInvalidConfig, c.GridSize, c.GridSize)
	case c.MoveInterval < 0:
		return fmt.Errorf("%w: negative move interval", ErrInvalidConfig)
	case c.CaptureValue <= 0:
		return fmt.Errorf("%w: capture value must be positive", ErrInvalidConfig)
	case c.GrowthPerCapture < 0:
		return fmt.Errorf("%w: negative growth", ErrInvalidConfig)
	case c.WinScore < 0:
		return fmt.Errorf("%w: negative win score", ErrInvalidConfig)
	case c.TerrainClusters < 0:
		return fmt.Errorf("%w: negative terrain cluster count", ErrInvalidConfig)
	case c.FleeChance < 0 || c.FleeChance > 1:
		return fmt.Errorf("%w: flee chance %.2f outside [0,1]", ErrInvalidConfig, c.FleeChance)
	}
	return nil
}
