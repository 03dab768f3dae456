package ai

import (
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/grammar"
	"voxelrogue/msg"
)

// noun builds the grammar.Noun a world entity is referred to by in
// templated messages: original_source's Entity::noun.
func noun(w *ecs.World, e ecs.Entity) grammar.Noun {
	if ecs.IsPlayer(w, e) {
		return grammar.NounYou()
	}
	if ecs.Count(w, e) > 1 {
		return grammar.NounPlural(ecs.Desc(w, e, ecs.Count(w, e)))
	}
	return grammar.NounIt(ecs.Desc(w, e, 1))
}

func announce(bus *msg.Bus, resolve grammar.Resolver, template string) {
	if bus == nil {
		return
	}
	text, err := grammar.Templatize(resolve, template)
	if err != nil {
		return
	}
	bus.Emit(msg.Message(text))
}

// AlertHandler builds the callback action.Context.Alert expects: an allied
// mob within shout range switches to Attack(enemy) only if it was
// otherwise idle, per spec.md §4.8's shout rule and original_source's
// Entity::alert_to.
func AlertHandler(w *ecs.World) func(ally, enemy ecs.Entity) {
	return func(ally, enemy ecs.Entity) {
		if !ecs.IsMob(w, ally) || ecs.IsPlayer(w, ally) {
			return
		}
		g := CurrentGoal(w, ally)
		if isLookingForFight(g) {
			SetGoal(w, ally, Goal{Kind: Attack, Target: enemy})
		}
	}
}

// isLookingForFight mirrors original_source's is_looking_for_fight: a mob
// with no standing order, or merely wandering/escorting, is free to be
// redirected onto a fight; one already chasing a target, exploring, or
// following isn't interrupted.
func isLookingForFight(g Goal) bool {
	switch g.Kind {
	case None, GoTo, Escort:
		return true
	default:
		return false
	}
}

// ScanFOV updates e's shared fog-of-war memory with everything visible from
// its current position, sets a fight goal on first sighting an enemy, and
// alerts that enemy (if it was idle) that it has been spotted. Grounded on
// original_source's Entity::scan_fov, simplified from its two-way
// alert_to/shout exchange to a direct one-way wakeup since this module has
// no separate "first spotter makes noise" distinction to preserve. Runtime
// calls this once per mob per turn before Decide.
func ScanFOV(ctx *Context, e ecs.Entity) {
	if !ecs.IsMob(ctx.Action.World, e) {
		return
	}
	loc, ok := ctx.Action.Places.LocationOf(e)
	if !ok {
		return
	}

	w := ctx.Action.World
	lookingForTarget := isLookingForFight(CurrentGoal(w, e))
	aligned := isPlayerAligned(ctx, e)

	for _, cell := range visibleCellsOrdered(ctx, loc, config.FOVRadius) {
		if mob, ok := mobAt(ctx, cell); ok && isEnemy(ctx, e, mob) {
			if lookingForTarget {
				lookingForTarget = false
				SetGoal(w, e, Goal{Kind: Attack, Target: mob})
				if aligned {
					sentence := grammar.Sentence{Subject: noun(w, e), Object: noun(w, mob)}
					announce(ctx.Action.Bus, sentence.Convert, "[One] spot[s] [a thing].")
				}
			}
			if isLookingForFight(CurrentGoal(w, mob)) {
				SetGoal(w, mob, Goal{Kind: Attack, Target: e})
			}
		}

		if aligned && ctx.Reveal != nil && !ctx.explored(cell) {
			ctx.Reveal(cell)
		}
	}
}
