// Package snake adapts the grid engine to the game registry. It registers
// the classic variant ("snake") and the village hunt ("snake_capture").
package snake

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/registry"
)

// RecoveryMessage is shown after a faulty state was discarded.
const RecoveryMessage = "State error - game restarted"

// Game implements registry.Game on top of engine.State.
type Game struct {
	id         string
	title      string
	cfg        config.SnakeConfig
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	state      *engine.State
	difficulty *config.DifficultyManager
	tick       uint64

	// Transient notice drawn on the grid frame
	message      string
	messageTicks int

	tooSmall bool
}

// Package-level settings applied on every Reset
var (
	configPath       string
	difficultyPreset string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets a custom YAML config path. Empty means the search order.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger routes game diagnostics to l. Nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// New creates the classic snake game.
func New() *Game {
	return &Game{id: config.ClassicID, title: "Snake"}
}

// NewCapture creates the village hunt variant.
func NewCapture() *Game {
	return &Game{id: config.CaptureID, title: "Snake: Village Hunt"}
}

func init() {
	registry.Register(config.ClassicID, func() registry.Game {
		return New()
	})
	registry.Register(config.CaptureID, func() registry.Game {
		return NewCapture()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and starts a fresh game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.message = ""
	g.messageTicks = 0

	cfg, err := config.LoadSnake(g.id, configPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "game", g.id, "error", err)
	}
	if preset, ok := config.ParsePreset(difficultyPreset); ok {
		config.ApplySnakePreset(&cfg, preset)
	} else {
		logger.Warn("unknown difficulty preset", "game", g.id, "preset", difficultyPreset)
	}
	g.cfg = cfg
	g.tooSmall = rc.ScreenW > 0 && rc.ScreenH > 0 && !g.fits(rc.ScreenW, rc.ScreenH)

	g.start()
}

// start replaces the engine state. An invalid config falls back to the
// built-in defaults for the variant.
func (g *Game) start() {
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	st, err := engine.New(engineConfig(g.cfg), g.rng, g.runtime.Now())
	if err != nil {
		logger.Warn("invalid config, using defaults", "game", g.id, "error", err)
		g.cfg = config.DefaultFor(g.id)
		g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
		st, err = engine.New(engineConfig(g.cfg), g.rng, g.runtime.Now())
		if err != nil {
			logger.Error("default config rejected", "game", g.id, "error", err)
		}
	}
	g.state = st

	logger.Debug("game started", "game", g.id, "grid", g.cfg.Grid.Size, "seed", g.runtime.Seed)
}

// restart begins a new round with a seed drawn from the current generator.
func (g *Game) restart() {
	g.runtime.Seed = g.rng.Int63()
	g.rng = rand.New(rand.NewSource(g.runtime.Seed))
	g.message = ""
	g.messageTicks = 0
	g.start()
}

// engineConfig converts the YAML config into engine parameters.
func engineConfig(c config.SnakeConfig) engine.Config {
	target := engine.TargetFood
	if c.Target.Kind == config.TargetHuman {
		target = engine.TargetHuman
	}
	return engine.Config{
		GridSize:         c.Grid.Size,
		InitialLength:    c.Snake.InitialLength,
		MoveInterval:     c.Snake.MoveInterval(),
		CaptureValue:     c.Scoring.CaptureValue,
		GrowthPerCapture: c.Scoring.GrowthPerCapture,
		WinScore:         c.Scoring.WinScore,
		BoundaryKnives:   c.Terrain.BoundaryKnives,
		TerrainClusters:  c.Terrain.Clusters,
		Target:           target,
		FleeChance:       c.Target.FleeChance,
	}
}

// Step advances the game by one platform tick. Engine errors and panics
// never escape: the state is rebuilt and the fault reported in the result.
func (g *Game) Step(input core.InputFrame) (res core.StepResult) {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	defer func() {
		if r := recover(); r != nil {
			res = g.restartAfterFault(fmt.Errorf("%w: panic: %v", engine.ErrCorruptState, r))
		}
	}()

	if g.state == nil {
		return g.restartAfterFault(fmt.Errorf("%w: no state", engine.ErrCorruptState))
	}

	if input.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) {
		g.state.TogglePause()
	}

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.processInput(input)

	base := g.cfg.Snake.MoveInterval()
	g.state.SetMoveInterval(g.difficulty.Interval(base, g.state.Score()))

	out, err := g.state.Step(g.runtime.Now())
	if err != nil {
		return g.restartAfterFault(err)
	}
	g.logOutcome(out)

	return core.StepResult{State: g.State()}
}

// processInput maps direction actions onto the engine. Reversals are
// rejected by the engine itself.
func (g *Game) processInput(input core.InputFrame) {
	switch {
	case input.Has(core.ActionUp):
		g.state.SetDirection(engine.Up)
	case input.Has(core.ActionDown):
		g.state.SetDirection(engine.Down)
	case input.Has(core.ActionLeft):
		g.state.SetDirection(engine.Left)
	case input.Has(core.ActionRight):
		g.state.SetDirection(engine.Right)
	}
}

func (g *Game) logOutcome(out engine.Outcome) {
	switch {
	case out.Collision != engine.CollisionNone:
		logger.Info("game over", "game", g.id, "score", g.state.Score(), "length", g.state.Len(), "collision", out.Collision)
	case out.BoardFull:
		logger.Info("board full", "game", g.id, "score", g.state.Score(), "length", g.state.Len())
	case out.Status == engine.StatusWin:
		logger.Info("game won", "game", g.id, "score", g.state.Score(), "length", g.state.Len())
	case out.Captured:
		logger.Debug("capture", "game", g.id, "score", g.state.Score())
	}
}

// restartAfterFault discards the current state and starts over.
func (g *Game) restartAfterFault(err error) core.StepResult {
	logger.Error("state error, restarting", "game", g.id, "tick", g.tick, "error", err)

	g.start()
	g.message = RecoveryMessage
	g.messageTicks = 3 * g.tickRate()

	return core.StepResult{State: g.State(), Recovered: err}
}

func (g *Game) tickRate() int {
	if g.runtime.TickRate > 0 {
		return g.runtime.TickRate
	}
	return 60
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	status := g.state.Status()
	return core.GameState{
		Score:    g.state.Score(),
		GameOver: status.Terminal(),
		Won:      status == engine.StatusWin,
		Paused:   status == engine.StatusPaused,
	}
}

// Length returns the current snake length.
func (g *Game) Length() int {
	if g.state == nil {
		return 0
	}
	return g.state.Len()
}

// Message returns the transient notice, if any.
func (g *Game) Message() string {
	return g.message
}
