package engine

// maxPlacementAttempts bounds every rejection-sampling loop.
const maxPlacementAttempts = 100

// clusterShapes are the terrain footprints, as offsets from an anchor cell.
var clusterShapes = []struct {
	kind  ObstacleKind
	cells []Position
}{
	{ObstacleHouse, []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}},
	{ObstacleHouse, []Position{{0, 0}, {1, 0}, {2, 0}}},
	{ObstacleTree, []Position{{0, 0}, {1, 1}}},
	{ObstacleTree, []Position{{0, 0}, {0, 1}, {1, 1}}},
	{ObstacleWell, []Position{{0, 0}}},
}

// layKnives puts a knife on every edge cell.
func (s *State) layKnives() {
	last := s.cfg.GridSize - 1
	for i := range s.cfg.GridSize {
		s.obstacles[Position{X: i, Y: 0}] = ObstacleKnife
		s.obstacles[Position{X: i, Y: last}] = ObstacleKnife
		s.obstacles[Position{X: 0, Y: i}] = ObstacleKnife
		s.obstacles[Position{X: last, Y: i}] = ObstacleKnife
	}
}

// layTerrain scatters up to n village clusters. Each cluster gets
// maxPlacementAttempts tries; a cluster that never fits is skipped.
func (s *State) layTerrain(n int) int {
	reserved := s.startLane()
	placed := 0
	for range n {
		shape := clusterShapes[s.rng.Intn(len(clusterShapes))]
		for range maxPlacementAttempts {
			anchor := Position{X: s.rng.Intn(s.cfg.GridSize), Y: s.rng.Intn(s.cfg.GridSize)}
			if s.fits(anchor, shape.cells, reserved) {
				for _, off := range shape.cells {
					s.obstacles[Position{X: anchor.X + off.X, Y: anchor.Y + off.Y}] = shape.kind
				}
				placed++
				break
			}
		}
	}
	return placed
}

// startLane returns the cells the snake will cross in its first moves, plus
// the cells around its head, so terrain never makes the opening move fatal.
func (s *State) startLane() map[Position]bool {
	lane := make(map[Position]bool)
	head := s.snake[0]
	for dx := -1; dx <= 4; dx++ {
		for dy := -1; dy <= 1; dy++ {
			lane[Position{X: head.X + dx, Y: head.Y + dy}] = true
		}
	}
	return lane
}

func (s *State) fits(anchor Position, cells []Position, reserved map[Position]bool) bool {
	for _, off := range cells {
		p := Position{X: anchor.X + off.X, Y: anchor.Y + off.Y}
		if !s.isFree(p) || reserved[p] {
			return false
		}
	}
	return true
}

// isFree reports whether p is in bounds and holds neither snake nor obstacle.
func (s *State) isFree(p Position) bool {
	return s.inBounds(p) && !s.onSnake(p) && !s.IsObstacle(p)
}

// defaultTarget is where the target goes when sampling keeps missing.
func (s *State) defaultTarget() Position {
	half := s.cfg.GridSize / 2
	return Position{X: half, Y: half - 3}
}

// placeTarget moves the target to a random free cell. After
// maxPlacementAttempts misses it tries the fixed default cell, then the first
// free cell in row order. It returns false only when the grid has no free
// cell left.
func (s *State) placeTarget() bool {
	for range maxPlacementAttempts {
		p := Position{X: s.rng.Intn(s.cfg.GridSize), Y: s.rng.Intn(s.cfg.GridSize)}
		if s.isFree(p) {
			s.target = p
			return true
		}
	}

	if def := s.defaultTarget(); s.isFree(def) {
		s.target = def
		return true
	}

	for y := range s.cfg.GridSize {
		for x := range s.cfg.GridSize {
			if p := (Position{X: x, Y: y}); s.isFree(p) {
				s.target = p
				return true
			}
		}
	}
	return false
}

// flee gives the target one chance to step away from the snake's head. It
// moves to the free neighbour farthest from the head among those that do not
// bring it closer; ties go to the earlier entry in Directions.
func (s *State) flee() bool {
	if s.rng.Float64() >= s.cfg.FleeChance {
		return false
	}

	head := s.snake[0]
	current := distSq(s.target, head)
	best := s.target
	bestDist := current
	found := false

	for _, d := range Directions {
		c := s.target.Add(d)
		if !s.isFree(c) {
			continue
		}
		dist := distSq(c, head)
		if dist < current {
			continue
		}
		if !found || dist > bestDist {
			best, bestDist, found = c, dist, true
		}
	}

	if !found {
		return false
	}
	s.target = best
	return true
}
