package snake

import "github.com/vovakirdan/tui-snake/internal/engine"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	engine.Snapshot
	GameID  string
	Tick    uint64
	Message string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		GameID:  g.id,
		Tick:    g.tick,
		Message: g.message,
	}
	if g.state != nil {
		snap.Snapshot = g.state.Snapshot()
	}
	return snap
}
