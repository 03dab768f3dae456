package ecs

import "fmt"

// Component kind string constants, used instead of bare literals at call
// sites so a typo is a compile error.
const (
	KindName       = "name"
	KindNickname   = "nickname"
	KindIcon       = "icon"
	KindIsMob      = "is_mob"
	KindIsFriendly = "is_friendly"
	KindIsEphemeral = "is_ephemeral"
	KindIsPlayer   = "is_player"
	KindSpeed      = "speed"
	KindActsNext   = "acts_next"
	KindStats      = "stats"
	KindWounds     = "wounds"
	KindCash       = "cash"
	KindNumDeaths  = "num_deaths"
	KindCount      = "count"
	KindMomentum   = "momentum"
	KindVoice      = "voice"
	KindGoal       = "goal"
	KindBuffs      = "buffs"
	KindItemKind   = "item_kind"
	KindItemPower  = "item_power"
	KindEquippedAt = "equipped_at"
	KindPowers     = "powers"
	KindLocation   = "location"
)

// Stats holds an entity's combat attributes, summed across equipment:
// spec.md §3.6's Stats{level, hit, ev, dmg}.
type Stats struct {
	Level int
	Hit   int // deciban bonus on the attacker's to-hit roll
	Ev    int // deciban bonus on the defender's to-hit roll (evasion)
	Dmg   int // damage dealt on a successful hit
}

// Wounds tracks current and maximum hit points.
type Wounds struct {
	Current, Max int
}

// Dead reports whether Current has been driven to zero or below.
func (w Wounds) Dead() bool { return w.Current <= 0 }

// Momentum is the per-turn displacement bonus cleared at the start of each
// entity's next action frame; grounded on original_source's
// Entity::tick clearing Momentum at the start of the acting frame.
type Momentum struct {
	DX, DY int
}

// Buffs is the set of active timed modifiers on an entity, keyed by name
// with remaining-turns counts.
type Buffs map[string]int

// BaseDesc is an entity's name without count or nickname decoration.
func BaseDesc(w *World, e Entity) string {
	return With[string](w, e, KindName)
}

// Desc renders an entity's display description: nickname substitution for
// proper-named entities, "Nickname the Name" for mobs, "Name called
// Nickname" for items, and a leading count for stacks greater than one.
// Grounded on original_source/engine/src/entity.rs's Entity::desc.
func Desc(w *World, e Entity, count int) string {
	nickname := With[string](w, e, KindNickname)
	name := BaseDesc(w, e)
	if count > 1 {
		name = fmt.Sprintf("%d %s", count, pluralize(name))
	}

	isProper := len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'

	if nickname == "" {
		return name
	}
	if isProper {
		return nickname
	}
	if With[bool](w, e, KindIsMob) {
		return fmt.Sprintf("%s the %s", nickname, name)
	}
	return fmt.Sprintf("%s called %s", name, nickname)
}

// pluralize is the irreducible-minimum fallback used when gamedata's plural
// exception table (spec.md §7.4 supplemented feature) has no entry: append
// an "s". Callers with access to the gamedata package should prefer its
// Pluralize, which consults the exception table first.
func pluralize(s string) string {
	if s == "" {
		return s
	}
	return s + "s"
}

// Count returns an entity's current stack size, treating an absent Count
// component as a non-stackable singleton (count 1).
func Count(w *World, e Entity) int {
	c := With[int](w, e, KindCount)
	if c == 0 {
		return 1
	}
	return c
}

// IsPlayer reports whether e is the player-controlled entity.
func IsPlayer(w *World, e Entity) bool { return With[bool](w, e, KindIsPlayer) }

// IsMob reports whether e occupies the mob role (has AI, takes turns).
func IsMob(w *World, e Entity) bool { return With[bool](w, e, KindIsMob) }

// IsEphemeral reports whether e should be dropped from serialization and
// skipped by autoexplore/threat scans (spec.md §7.2: effects, thrown
// projectiles mid-flight).
func IsEphemeral(w *World, e Entity) bool { return With[bool](w, e, KindIsEphemeral) }

// CanStackWith reports whether a and b are mergeable into one stack: same
// base name, same item kind, neither carrying a nickname. Grounded on
// original_source's can_stack_with (referenced from try_merge_in).
func CanStackWith(w *World, a, b Entity) bool {
	if a.silo != SiloItem || b.silo != SiloItem {
		return false
	}
	if With[string](w, a, KindNickname) != "" || With[string](w, b, KindNickname) != "" {
		return false
	}
	if BaseDesc(w, a) != BaseDesc(w, b) {
		return false
	}
	return With[string](w, a, KindItemKind) == With[string](w, b, KindItemKind)
}
