package agentlogic

import "github.com/talgya/tidemarket/internal/world"

// randomPassableNeighbor picks a uniformly random neighbor of from that's
// walkable (or sailable, if sail is set), or reports false if none exist.
func randomPassableNeighbor(v *View, from world.Pos, sail bool) (world.Pos, bool) {
	neighbors := v.Grid.Neighbors(from)
	var valid []world.Pos
	for _, n := range neighbors {
		if passable(v, n, sail) {
			valid = append(valid, n)
		}
	}
	if len(valid) == 0 {
		return world.Pos{}, false
	}
	return valid[v.RNG.Intn(len(valid))], true
}

func passable(v *View, p world.Pos, sail bool) bool {
	if sail {
		return v.Grid.Sailable(p)
	}
	return v.Grid.Walkable(p)
}

// stepToward computes one greedy step from a non-adjacent from toward
// target: with probability Config.UnstuckifierChance it takes the single
// toroidal step that most closes the distance (falling through to the
// random fallback if that tile isn't passable), otherwise it goes straight
// to the random fallback (design doc Section 4.5.7).
func stepToward(v *View, from, target world.Pos, sail bool) (world.Pos, bool) {
	if v.RNG.Bernoulli(v.Config.UnstuckifierChance) {
		d := world.Delta(from, target, v.Grid.Width, v.Grid.Height)
		cand := v.Grid.Wrap(from.Step(d))
		if passable(v, cand, sail) {
			return cand, true
		}
	}
	return randomPassableNeighbor(v, from, sail)
}

// MoveOnto computes a step toward literally occupying target, unlike
// Pathfind's adjacency-arrival semantics for approaching buildings and
// resources. Used when the agent means to stand on the target tile itself
// (a Fisher sailing toward open water). Returns false once from == target,
// since there's nothing left to step toward.
func MoveOnto(v *View, from, target world.Pos, sail bool) (world.Pos, bool) {
	if from == target {
		return world.Pos{}, false
	}
	return stepToward(v, from, target, sail)
}

// Pathfind is the agent's single pathfinding entry point. When target is
// nil it emits a random walk step. When from is already adjacent to
// *target it reports arrived with no move. Otherwise it computes a greedy
// step with jitter. hasMove is false when no passable tile was found in
// either case (design doc Section 4.5.7's "no-target case" and fallback).
func Pathfind(v *View, from world.Pos, target *world.Pos, sail bool) (move world.Pos, hasMove bool, arrived bool) {
	if target == nil {
		p, ok := randomPassableNeighbor(v, from, sail)
		return p, ok, false
	}
	if from.IsAdjacent(*target) {
		return world.Pos{}, false, true
	}
	p, ok := stepToward(v, from, *target, sail)
	return p, ok, false
}
