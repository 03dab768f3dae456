package runtime

import (
	"sort"

	"voxelrogue/action"
	"voxelrogue/ai"
	"voxelrogue/clock"
	"voxelrogue/ecs"
)

// PlayerAct executes a against the player entity directly, outside the
// goal-driven NPC loop: the player is never assigned a Goal, so Tick's
// decide-or-advance step always leaves it passing. Returns false if it
// isn't the player's turn yet (its stored ActsNext is still in the
// future).
func (rt *Runtime) PlayerAct(a action.Action) bool {
	if !rt.actsThisFrame(rt.player) {
		return false
	}
	action.Execute(rt.action, rt.player, a)
	return true
}

// actsThisFrame reports whether e is eligible to act on the scheduler's
// current instant. completePhase/completeTurn (action package) stamp an
// entity's ActsNext with the instant its next action becomes available;
// a freshly spawned entity has no ActsNext component, which With defaults
// to the zero Instant, always earlier than config.StartInstant, so new
// entities always act on their first eligible tick.
func (rt *Runtime) actsThisFrame(e ecs.Entity) bool {
	next := ecs.With[clock.Instant](rt.ECS, e, ecs.KindActsNext)
	return next <= rt.Clock.Now()
}

// Tick advances the simulation by one action frame: spec.md §4.8's four
// numbered steps (bump the world cache, clear expired momentum, run every
// acting entity's goal, advance the clock and sweep the dead). Grounded on
// original_source/world/src/sim.rs's Sim::tick.
func (rt *Runtime) Tick() {
	rt.bumpCache()
	rt.clearMomentum()
	rt.runActingEntities()
	rt.Clock.Advance(1)
	rt.sweepUnplaced()
}

// bumpCache realizes terrain and spawns pods around wherever the player
// currently stands, so the world is never more than one tick stale at the
// player's position. spec.md §4.5/§4.8 step 1.
func (rt *Runtime) bumpCache() {
	loc, ok := rt.Places.LocationOf(rt.player)
	if !ok {
		return
	}
	rt.materialize(rt.World.PopulateAround(loc))
}

// clearMomentum drops the last-turn displacement bonus for any entity
// starting a new action frame, so a step taken two turns ago doesn't keep
// compounding its free-adjacent-tile arithmetic. spec.md §4.8 step 2.
func (rt *Runtime) clearMomentum() {
	rt.ECS.Each(func(e ecs.Entity) {
		if !ecs.IsMob(rt.ECS, e) {
			return
		}
		if rt.actsThisFrame(e) {
			ecs.Set(rt.ECS, e, ecs.KindMomentum, ecs.Momentum{})
		}
	})
}

// runActingEntities collects every mob eligible to act this frame and
// processes them in LIFO id order (newest-spawned first), each expiring
// its buffs, then either progressing its current goal or, once that goal
// is exhausted, advancing to the next one. spec.md §4.8 step 3.
func (rt *Runtime) runActingEntities() {
	var acting []ecs.Entity
	rt.ECS.Each(func(e ecs.Entity) {
		if ecs.IsMob(rt.ECS, e) && rt.actsThisFrame(e) {
			acting = append(acting, e)
		}
	})
	sort.Slice(acting, func(i, j int) bool { return acting[i].ID() > acting[j].ID() })

	for _, e := range acting {
		if !rt.ECS.Alive(e) {
			continue
		}
		rt.expireBuffs(e)

		ai.ScanFOV(rt.ai, e)
		goal := ai.CurrentGoal(rt.ECS, e)
		if a, ok := ai.Decide(rt.ai, e, goal); ok {
			action.Execute(rt.action, e, a)
		} else {
			ai.NextGoal(rt.ECS, e)
		}
	}
}

// expireBuffs decrements every active buff's remaining-turns count,
// dropping any that reach zero. spec.md §4.8 step 3a.
func (rt *Runtime) expireBuffs(e ecs.Entity) {
	buffs, ok := ecs.Get[ecs.Buffs](rt.ECS, e, ecs.KindBuffs)
	if !ok || len(buffs) == 0 {
		return
	}
	next := make(ecs.Buffs, len(buffs))
	for name, turns := range buffs {
		turns--
		if turns > 0 {
			next[name] = turns
		}
	}
	if len(next) == 0 {
		ecs.Remove(rt.ECS, e, ecs.KindBuffs)
		return
	}
	ecs.Set(rt.ECS, e, ecs.KindBuffs, next)
}

// sweepUnplaced despawns any entity left without a placement.Index entry
// (killed and removed mid-frame by an attack, or dropped from its
// container) so the ecs store doesn't accumulate orphans. spec.md §4.8
// step 4.
func (rt *Runtime) sweepUnplaced() {
	var gone []ecs.Entity
	rt.ECS.Each(func(e ecs.Entity) {
		if _, ok := rt.Places.Get(e); !ok {
			gone = append(gone, e)
		}
	})
	for _, e := range gone {
		rt.ECS.Despawn(e)
	}
}
