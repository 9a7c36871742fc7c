package snake

import (
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

func TestAutopilotAvoidsObstacle(t *testing.T) {
	snap := engine.Snapshot{
		GridSize:  5,
		Snake:     []engine.Position{{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}},
		Direction: engine.Right,
		Obstacles: []engine.Obstacle{{Pos: engine.Position{X: 4, Y: 2}, Kind: engine.ObstacleKnife}},
		Target:    engine.Position{X: 4, Y: 0},
		HasTarget: true,
	}
	if d := Autopilot(snap); d != engine.Up {
		t.Errorf("Autopilot() = %v, want up", d)
	}
}

func TestAutopilotNeverReverses(t *testing.T) {
	// Target straight behind the head
	snap := engine.Snapshot{
		GridSize:  10,
		Snake:     []engine.Position{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}},
		Direction: engine.Right,
		Target:    engine.Position{X: 1, Y: 5},
		HasTarget: true,
	}
	if d := Autopilot(snap); d == engine.Left {
		t.Error("Autopilot() chose a reversal")
	}
}

func TestAutopilotTrapped(t *testing.T) {
	snap := engine.Snapshot{
		GridSize:  3,
		Snake:     []engine.Position{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		Direction: engine.Right,
		Obstacles: []engine.Obstacle{
			{Pos: engine.Position{X: 2, Y: 0}},
			{Pos: engine.Position{X: 2, Y: 2}},
		},
	}
	if d := Autopilot(snap); d != engine.Right {
		t.Errorf("trapped Autopilot() = %v, want current heading", d)
	}
}

func TestAutopilotPlaysClassic(t *testing.T) {
	g, clock := newGame(t, "snake", 2024)

	for i := 0; i < 400 && !g.State().GameOver; i++ {
		clock.Advance(engine.DefaultMoveInterval)
		res := g.Step(press(ActionFor(Autopilot(g.Snapshot().Snapshot))))
		if res.Recovered != nil {
			t.Fatalf("unexpected recovery at move %d: %v", i, res.Recovered)
		}
	}
	if g.State().Score == 0 {
		t.Error("autopilot never reached the food")
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		dir  engine.Direction
		want core.Action
	}{
		{engine.Up, core.ActionUp},
		{engine.Down, core.ActionDown},
		{engine.Left, core.ActionLeft},
		{engine.Right, core.ActionRight},
		{engine.Direction{}, core.ActionNone},
	}
	for _, tt := range tests {
		if got := ActionFor(tt.dir); got != tt.want {
			t.Errorf("ActionFor(%v) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}
