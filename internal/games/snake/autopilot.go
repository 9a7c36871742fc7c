package snake

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

// Autopilot picks the next heading greedily: among the moves that do not
// collide, the one closest to the target wins, with more open neighbours
// breaking ties. With no safe move it keeps the current heading.
func Autopilot(snap engine.Snapshot) engine.Direction {
	if len(snap.Snake) == 0 {
		return snap.Direction
	}

	blocked := make(map[engine.Position]bool, len(snap.Obstacles)+len(snap.Snake))
	for _, o := range snap.Obstacles {
		blocked[o.Pos] = true
	}
	for _, p := range snap.Snake {
		blocked[p] = true
	}
	free := func(p engine.Position) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < snap.GridSize && p.Y < snap.GridSize && !blocked[p]
	}

	head := snap.Head()
	best := snap.Direction
	bestDist, bestOpen := -1, -1
	for _, d := range engine.Directions {
		if d == snap.Direction.Opposite() {
			continue
		}
		next := head.Add(d)
		if !free(next) {
			continue
		}

		dist := 0
		if snap.HasTarget {
			dx, dy := next.X-snap.Target.X, next.Y-snap.Target.Y
			dist = dx*dx + dy*dy
		}
		open := 0
		for _, d2 := range engine.Directions {
			if free(next.Add(d2)) {
				open++
			}
		}
		// A dead end is only worth it when it holds the target
		if open == 0 && !(snap.HasTarget && next == snap.Target) {
			dist += 1 << 20
		}

		if bestDist < 0 || dist < bestDist || (dist == bestDist && open > bestOpen) {
			best, bestDist, bestOpen = d, dist, open
		}
	}
	return best
}

// ActionFor maps a heading onto the input action that requests it.
func ActionFor(d engine.Direction) core.Action {
	switch d {
	case engine.Up:
		return core.ActionUp
	case engine.Down:
		return core.ActionDown
	case engine.Left:
		return core.ActionLeft
	case engine.Right:
		return core.ActionRight
	default:
		return core.ActionNone
	}
}
