// Package action implements the atomic player/mob action variants and their
// resolution against the world: spec.md §4.8. Grounded on
// original_source/engine/src/action.rs almost step for step (Entity::step,
// attack_step, try_to_hit, shout), generalized from hecs-style
// impl-on-Entity methods to free functions taking an explicit *Runtime-like
// context, matching the teacher's free-function systems style
// (Afromullet-TinkerRogue/combat/attackingsystem.go's PerformAttack).
package action

import (
	"fmt"

	"voxelrogue/clock"
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/gamedata"
	"voxelrogue/lattice"
	"voxelrogue/msg"
	"voxelrogue/odds"
	"voxelrogue/placement"
	"voxelrogue/rng"
)

// Kind discriminates an Action's payload.
type Kind int

const (
	Pass Kind = iota
	Bump
	Shoot
	Drop
	Cast
	Use
	Throw
	Equip
	Unequip
)

// Action is one atomic, single-step command an entity may be given to
// execute this frame.
type Action struct {
	Kind  Kind
	Dir   lattice.Dir4
	Item  ecs.Entity
	Power gamedata.Power // Cast only; Use/Throw read Power off Item itself.
}

// Context bundles the subsystems a step needs to resolve. Runtime (built
// later) satisfies this by embedding its own World/Placement/Scheduler.
type Context struct {
	World     *ecs.World
	Places    *placement.Index
	Scheduler *clock.Scheduler
	Terrain   interface {
		CanBeStoodIn(lattice.Location) bool
	}
	Bus       *msg.Bus
	WorldSeed uint64

	// Alert is called for each allied mob in shout range; wired by the
	// runtime to ai.SetGoal(Attack(enemy)) so this package never needs to
	// import the ai package's Goal encoding.
	Alert func(ally, enemy ecs.Entity)
}

// Execute dispatches action for e against ctx.
func Execute(ctx *Context, e ecs.Entity, a Action) {
	switch a.Kind {
	case Pass:
		pass(ctx, e)
	case Bump:
		attackStep(ctx, e, a.Dir)
	case Shoot:
		shoot(ctx, e, a.Dir)
	case Equip:
		equip(ctx, e, a.Item)
	case Unequip:
		unequip(ctx, e, a.Item)
	case Drop:
		drop(ctx, e, a.Item)
	case Cast:
		cast(ctx, e, a.Power, a.Dir)
	case Use:
		use(ctx, e, a.Item, a.Dir)
	case Throw:
		throw(ctx, e, a.Item, a.Dir)
	default:
		pass(ctx, e)
	}
}

func pass(ctx *Context, e ecs.Entity) {
	completePhase(ctx, e)
}

// completePhase marks e as having taken a short action: its next eligible
// instant becomes the next action frame for its speed.
func completePhase(ctx *Context, e ecs.Entity) {
	speed := clock.Speed(ctx.World, e)
	next := nextActionFrame(ctx.Scheduler.Now(), speed)
	ecs.Set(ctx.World, e, ecs.KindActsNext, next)
}

// completeTurn marks e as having taken a long action: PHASES_IN_TURN later
// than the later of its current ActsNext and the current instant.
func completeTurn(ctx *Context, e ecs.Entity) {
	cur := ecs.With[clock.Instant](ctx.World, e, ecs.KindActsNext)
	now := ctx.Scheduler.Now()
	if cur < now {
		cur = now
	}
	ecs.Set(ctx.World, e, ecs.KindActsNext, cur.Add(config.PhasesInTurn))
}

func nextActionFrame(from clock.Instant, speed int) clock.Instant {
	for i := int64(1); i <= int64(config.PhasesInTurn); i++ {
		t := from.Add(i)
		if t.IsActionFrame(speed) {
			return t
		}
	}
	return from.Add(int64(config.PhasesInTurn))
}

// Step moves e one cell in dir, following the walk-neighbor relation and
// the displacement rule of spec.md §4.8. Returns whether the move
// succeeded.
func Step(ctx *Context, e ecs.Entity, dir lattice.Dir4) bool {
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return false
	}
	newLoc, ok := walkStep(ctx, loc, dir)
	if !ok {
		return false
	}

	var displaced ecs.Entity
	hasDisplaced := false
	if mob, ok := mobAt(ctx, newLoc); ok {
		if canDisplace(ctx, e, mob) {
			displaced, hasDisplaced = mob, true
			ctx.Places.Remove(mob)
		} else {
			return false
		}
	}

	if !canEnter(ctx, e, newLoc) {
		if hasDisplaced {
			ctx.Places.Insert(placement.At(newLoc), displaced)
		}
		return false
	}

	ctx.Places.Insert(placement.At(newLoc), e)
	ecs.Set(ctx.World, e, ecs.KindMomentum, ecs.Momentum{DX: dir.DX, DY: dir.DY})
	completePhase(ctx, e)

	if hasDisplaced {
		ctx.Places.Insert(placement.At(loc), displaced)
	}
	return true
}

func walkStep(ctx *Context, loc lattice.Location, dir lattice.Dir4) (lattice.Location, bool) {
	flat := loc.Step(dir)
	for _, cand := range []lattice.Location{flat.Up(), flat, flat.Down()} {
		if ctx.Terrain.CanBeStoodIn(cand) {
			return cand, true
		}
	}
	return lattice.Location{}, false
}

func mobAt(ctx *Context, loc lattice.Location) (ecs.Entity, bool) {
	for _, e := range ctx.Places.At(loc) {
		if ecs.IsMob(ctx.World, e) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// canDisplace reports whether mover may push aside an ally already
// standing at its destination: spec.md §4.8 step 2. Momentum must be zero
// (the ally didn't just move itself) and the two must be allied.
func canDisplace(ctx *Context, mover, other ecs.Entity) bool {
	if !isAlly(ctx, mover, other) {
		return false
	}
	m := ecs.With[ecs.Momentum](ctx.World, other, ecs.KindMomentum)
	return m.DX == 0 && m.DY == 0
}

func isAlly(ctx *Context, a, b ecs.Entity) bool {
	return ecs.With[bool](ctx.World, a, ecs.KindIsFriendly) == ecs.With[bool](ctx.World, b, ecs.KindIsFriendly)
}

func canEnter(ctx *Context, e ecs.Entity, loc lattice.Location) bool {
	if !ctx.Terrain.CanBeStoodIn(loc) {
		return false
	}
	if ecs.IsMob(ctx.World, e) {
		if _, occupied := mobAt(ctx, loc); occupied {
			return false
		}
	}
	return true
}

// attackStep performs a melee attack if an enemy is reachable in dir,
// otherwise attempts to step.
func attackStep(ctx *Context, e ecs.Entity, dir lattice.Dir4) bool {
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return false
	}
	target := loc.Step(dir)
	if mob, ok := mobAt(ctx, target); ok && !isAlly(ctx, e, mob) {
		Attack(ctx, e, mob)
		return true
	}
	return Step(ctx, e, dir)
}

func shoot(ctx *Context, e ecs.Entity, dir lattice.Dir4) {
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return
	}
	ctx.Bus.Emit(msg.Fire(msg.EntityID(e.String()), dir.DX, dir.DY))

	cur := loc
	for i := 0; i < config.ThrowRange; i++ {
		cur = cur.Step(dir)
		if mob, ok := mobAt(ctx, cur); ok {
			if !isAlly(ctx, e, mob) {
				Attack(ctx, e, mob)
				return
			}
			continue
		}
		if !ctx.Terrain.CanBeStoodIn(cur) {
			break
		}
	}
	completeTurn(ctx, e)
}

// Attack resolves a to-hit roll and, on success, applies damage. Completes
// a long action (turn) for e regardless of outcome. Grounded on
// action.rs's Entity::attack / try_to_hit.
func Attack(ctx *Context, e, target ecs.Entity) {
	stats := ecs.With[ecs.Stats](ctx.World, e, ecs.KindStats)
	targetStats := ecs.With[ecs.Stats](ctx.World, target, ecs.KindStats)

	src := rng.Derive(ctx.WorldSeed, "to-hit", ctx.Scheduler.Now(), e.ID(), target.ID())
	hit := odds.Bernoulli(stats.Hit-targetStats.Ev, src)

	if hit {
		applyDamage(ctx, target, stats)
		ctx.Bus.Emit(msg.Hurt(msg.EntityID(target.String())))
	} else {
		ctx.Bus.Emit(msg.Miss(msg.EntityID(target.String())))
	}

	completeTurn(ctx, e)
	Shout(ctx, e, target)
}

// applyDamage subtracts the attacker's damage stat and emits a death event
// when the defender's wounds bottom out.
func applyDamage(ctx *Context, target ecs.Entity, attacker ecs.Stats) {
	var loc lattice.Location
	if l, ok := ctx.Places.LocationOf(target); ok {
		loc = l
	}

	var dead bool
	ecs.WithMut(ctx.World, target, ecs.KindWounds, func(w *ecs.Wounds) {
		if w.Max == 0 {
			w.Max = 1
			w.Current = 1
		}
		w.Current -= attacker.Dmg
		dead = w.Dead()
	})

	if dead {
		ctx.Bus.Emit(msg.Death(loc.X, loc.Y, loc.Z))
		ctx.Places.Remove(target)
		ctx.World.Despawn(target)
	}
}

// Shout emits an audible alert from e, waking allied mobs within
// SHOUT_RADIUS toward enemy. Grounded on action.rs's Entity::shout.
func Shout(ctx *Context, e, enemy ecs.Entity) {
	voice := ecs.With[string](ctx.World, e, ecs.KindVoice)
	if voice == "" || voice == "silent" {
		return
	}
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return
	}
	ctx.Bus.Emit(msg.Message(fmt.Sprintf("%s %s.", ecs.Desc(ctx.World, e, ecs.Count(ctx.World, e)), voiceVerb(voice))))

	if ctx.Alert == nil {
		return
	}
	ctx.World.Each(func(ally ecs.Entity) {
		if ally.ID() == e.ID() || !ecs.IsMob(ctx.World, ally) || !isAlly(ctx, e, ally) {
			return
		}
		allyLoc, ok := ctx.Places.LocationOf(ally)
		if !ok {
			return
		}
		if loc.ManhattanDistance2D(allyLoc) > config.ShoutRadius {
			return
		}
		ctx.Alert(ally, enemy)
	})
}

func voiceVerb(voice string) string {
	switch voice {
	case "shout":
		return "shouts angrily"
	case "hiss":
		return "hisses"
	case "gibber":
		return "gibbers"
	case "roar":
		return "roars"
	default:
		return "makes a noise"
	}
}

func equip(ctx *Context, e, item ecs.Entity) {
	if !ctx.Places.Contains(e, item) {
		return
	}
	kind := gamedata.ItemKindFromName(ecs.With[string](ctx.World, item, ecs.KindItemKind))
	slot, ok := gamedata.FindEquipSlot(ctx.World, ctx.Places, e, kind)
	if !ok {
		return
	}
	ecs.Set(ctx.World, item, ecs.KindEquippedAt, gamedata.SlotName(slot))
	completePhase(ctx, e)
}

func unequip(ctx *Context, e, item ecs.Entity) {
	ecs.Remove(ctx.World, item, ecs.KindEquippedAt)
	completePhase(ctx, e)
}

func drop(ctx *Context, e, item ecs.Entity) {
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return
	}
	ctx.Places.Insert(placement.At(loc), item)
	completePhase(ctx, e)
}

const (
	lightningDamage    = 14
	fireballDamage     = 10
	fireballRange      = 12
	thrownImpactDamage = 2
	healAmount         = 10
)

// cast resolves power directly (no carrying item): a scroll/wand-less
// spell, or a power a mob's innate Powers grants it. Always spends a
// turn. Grounded on original_source's Entity::cast/Power::invoke.
func cast(ctx *Context, e ecs.Entity, power gamedata.Power, dir lattice.Dir4) {
	castPower(ctx, e, power, dir)
	completeTurn(ctx, e)
}

// use invokes item's stored power on behalf of e (quaffing a potion,
// reading a scroll) and consumes it.
func use(ctx *Context, e, item ecs.Entity, dir lattice.Dir4) {
	if !ctx.Places.Contains(e, item) {
		return
	}
	power := ecs.With[gamedata.Power](ctx.World, item, ecs.KindItemPower)
	castPower(ctx, e, power, dir)
	consumeItem(ctx, item)
	completeTurn(ctx, e)
}

// throw hurls item in dir: a powerless item (a weapon, a rock) lands at
// its traced target and deals a small impact hit; a powered item (a
// potion, a scroll) is consumed for its effect instead of landing.
func throw(ctx *Context, e, item ecs.Entity, dir lattice.Dir4) {
	if !ctx.Places.Contains(e, item) {
		return
	}
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return
	}
	ctx.Bus.Emit(msg.Fire(msg.EntityID(e.String()), dir.DX, dir.DY))

	power := ecs.With[gamedata.Power](ctx.World, item, ecs.KindItemPower)
	if power != gamedata.PowerNone {
		castPower(ctx, e, power, dir)
		consumeItem(ctx, item)
	} else {
		target := traceTarget(ctx, e, loc, dir, config.ThrowRange)
		if mob, ok := mobAt(ctx, target); ok && !isAlly(ctx, e, mob) {
			applyDamage(ctx, mob, ecs.Stats{Dmg: thrownImpactDamage})
		}
		ctx.Places.Remove(item)
		ctx.Places.Insert(placement.At(target), item)
	}
	completeTurn(ctx, e)
}

// consumeItem removes one unit of a stack, or despawns item outright once
// its stack is exhausted.
func consumeItem(ctx *Context, item ecs.Entity) {
	count := ecs.Count(ctx.World, item)
	if count > 1 {
		ecs.Set(ctx.World, item, ecs.KindCount, count-1)
		return
	}
	ctx.Places.Remove(item)
	ctx.World.Despawn(item)
}

// castPower dispatches a power's effect at e's current location. Grounded
// on original_source's engine/src/power.rs Power::invoke and its
// fireball/lightning/magic_map methods.
func castPower(ctx *Context, e ecs.Entity, power gamedata.Power, dir lattice.Dir4) {
	loc, ok := ctx.Places.LocationOf(e)
	if !ok {
		return
	}
	switch power {
	case gamedata.PowerCallLightning:
		lightning(ctx, e, loc)
	case gamedata.PowerFireball:
		fireball(ctx, e, loc, dir)
	case gamedata.PowerMagicMapping:
		magicMap(ctx, loc)
	case gamedata.PowerHealSelf:
		healSelf(ctx, e)
	default:
		// PowerNone ("no power", an unenchanted item) and Confusion:
		// original_source's own Power::invoke leaves Confusion as a stub
		// ("TODO!"); Summon has no engine-level resolution there either
		// (it only appears as a scenario-building PodObject payload, a
		// different Power enum than engine::Power casts). Both fizzle.
	}
}

// traceTarget walks from along dir up to rng cells, stopping one short of
// the first cell that blocks standing (a wall) or landing on the first
// cell holding a non-ally mob. Grounded on
// original_source/engine/src/power.rs's Runtime::trace_target.
func traceTarget(ctx *Context, e ecs.Entity, from lattice.Location, dir lattice.Dir4, rng int) lattice.Location {
	cur := from
	for i := 0; i < rng; i++ {
		next := cur.Step(dir)
		if !ctx.Terrain.CanBeStoodIn(next) {
			return cur
		}
		cur = next
		if mob, ok := mobAt(ctx, cur); ok && !isAlly(ctx, e, mob) {
			return cur
		}
	}
	return cur
}

// fireball explodes a FIREBALL_RANGE-traced target in a 3x3 ground patch,
// damaging every mob caught in it. Grounded on power.rs's Runtime::fireball.
func fireball(ctx *Context, e ecs.Entity, from lattice.Location, dir lattice.Dir4) {
	target := traceTarget(ctx, e, from, dir, fireballRange)
	ctx.Bus.Emit(msg.Explosion(target.X, target.Y, target.Z))

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cell := lattice.At(target.X+dx, target.Y+dy, target.Z)
			if mob, ok := mobAt(ctx, cell); ok {
				applyDamage(ctx, mob, ecs.Stats{Dmg: fireballDamage})
			}
		}
	}
}

// lightning strikes the nearest enemy mob within FOVRadius of the caster,
// or fizzles harmlessly if none is in range. Grounded on power.rs's
// Runtime::lightning.
func lightning(ctx *Context, e ecs.Entity, from lattice.Location) {
	var target ecs.Entity
	found := false
	best := 0

	ctx.World.Each(func(cand ecs.Entity) {
		if cand.ID() == e.ID() || !ecs.IsMob(ctx.World, cand) || isAlly(ctx, e, cand) {
			return
		}
		cloc, ok := ctx.Places.LocationOf(cand)
		if !ok {
			return
		}
		d := from.ChebyshevDistance2D(cloc)
		if d > config.FOVRadius {
			return
		}
		if !found || d < best {
			target, best, found = cand, d, true
		}
	})

	if !found {
		ctx.Bus.Emit(msg.Message("You hear distant thunder."))
		return
	}

	tloc, _ := ctx.Places.LocationOf(target)
	ctx.Bus.Emit(msg.LightningBolt(tloc.X, tloc.Y, tloc.Z))
	applyDamage(ctx, target, ecs.Stats{Dmg: lightningDamage})
}

// magicMap reveals from's sector onto the message bus as a grid of
// walkable/blocked cells; applying that into a caller's own fog-of-war
// memory is its responsibility, the same as every other cosmetic Msg
// variant. Grounded on power.rs's Runtime::magic_map, simplified from its
// sight-blocking dijkstra flood to a flat sector scan since this package
// has no sight-tracing of its own (fovsim lives one layer up, in ai).
func magicMap(ctx *Context, from lattice.Location) {
	sector := from.Sector()
	cells := make([]msg.MagicMapCell, 0, sector.Width()*sector.Height())
	sector.Iter(func(l lattice.Location) bool {
		v := 0
		if ctx.Terrain.CanBeStoodIn(l) {
			v = 1
		}
		cells = append(cells, msg.MagicMapCell{X: l.X, Y: l.Y, Z: l.Z, Value: v})
		return true
	})
	ctx.Bus.Emit(msg.MagicMap(cells))
}

// healSelf restores e's wounds, capped at its maximum.
func healSelf(ctx *Context, e ecs.Entity) {
	ecs.WithMut(ctx.World, e, ecs.KindWounds, func(w *ecs.Wounds) {
		w.Current += healAmount
		if w.Current > w.Max {
			w.Current = w.Max
		}
	})
}
