// Package ai implements mob decision-making: picking a next Action for a
// goal, and advancing a completed goal to its successor. Grounded on
// original_source/engine/src/ai.rs (Entity::decide, next_goal, Goal enum),
// re-expressed as free functions over this module's ecs/placement/clock
// types in the same style as the action package.
package ai

import (
	"voxelrogue/ecs"
	"voxelrogue/lattice"
)

// Kind distinguishes the variants of Goal: spec.md §4.8's indirect orders.
type Kind int

const (
	None Kind = iota
	// FollowPlayer is the standing order for party member mobs; cannot be
	// assigned to the player.
	FollowPlayer
	// StartAutoexplore looks for an unexplored adjacent zone before
	// dropping into the regular Autoexplore state.
	StartAutoexplore
	// Autoexplore walks the Dijkstra map towards the nearest unexplored
	// reachable cell within Zone.
	Autoexplore
	// GoTo moves towards Destination, optionally fighting along the way.
	GoTo
	// Attack pursues and fights Target until it dies.
	Attack
	// Escort follows Target until it dies, never initiating combat itself.
	Escort
)

// Goal is an indirect, multi-turn order a mob works towards one Decide call
// at a time.
type Goal struct {
	Kind         Kind
	Zone         lattice.Box    // Autoexplore, StartAutoexplore
	Destination  lattice.Location // GoTo
	IsAttackMove bool           // GoTo: fight targets of opportunity en route
	Target       ecs.Entity     // Attack, Escort
}

// IsNPC reports whether e is a non-player mob, the condition original_source
// uses to decide whether a completed goal falls back to FollowPlayer or
// clears entirely.
func IsNPC(w *ecs.World, e ecs.Entity) bool {
	return ecs.IsMob(w, e) && !ecs.IsPlayer(w, e)
}

// NextGoal advances e's goal once its current one has been exhausted
// (Decide returned false), per original_source's next_goal FSM.
func NextGoal(w *ecs.World, e ecs.Entity) {
	g := ecs.With[Goal](w, e, ecs.KindGoal)
	npc := IsNPC(w, e)

	switch g.Kind {
	case None:
		return
	case FollowPlayer:
		ecs.Remove(w, e, ecs.KindGoal)
	case StartAutoexplore:
		ecs.Set(w, e, ecs.KindGoal, Goal{Kind: Autoexplore, Zone: g.Zone})
	case Autoexplore:
		if npc {
			ecs.Set(w, e, ecs.KindGoal, Goal{Kind: FollowPlayer})
		} else {
			ecs.Remove(w, e, ecs.KindGoal)
		}
	case GoTo:
		if g.IsAttackMove && npc {
			ecs.Set(w, e, ecs.KindGoal, Goal{Kind: FollowPlayer})
		} else {
			ecs.Remove(w, e, ecs.KindGoal)
		}
	case Attack, Escort:
		if npc {
			ecs.Set(w, e, ecs.KindGoal, Goal{Kind: FollowPlayer})
		} else {
			ecs.Remove(w, e, ecs.KindGoal)
		}
	}
}

// ClearGoal drops e back to Goal{Kind: None}.
func ClearGoal(w *ecs.World, e ecs.Entity) {
	ecs.Remove(w, e, ecs.KindGoal)
}

// SetGoal assigns g to e, overwriting whatever goal it had.
func SetGoal(w *ecs.World, e ecs.Entity, g Goal) {
	ecs.Set(w, e, ecs.KindGoal, g)
}

// CurrentGoal reads e's goal, defaulting to Goal{Kind: None} when absent.
func CurrentGoal(w *ecs.World, e ecs.Entity) Goal {
	return ecs.With[Goal](w, e, ecs.KindGoal)
}
