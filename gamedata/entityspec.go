package gamedata

import (
	"voxelrogue/ecs"
)

// baseSpeed is every monster's starting Speed component value. Grounded on
// entity_spec.rs's EntitySpec impl for Monster, which hardcodes Speed(3).
const baseSpeed = 3

// monsterMaxHP derives a starting wound capacity from a monster's level,
// since original_source's EntitySpec never sets Wounds (see DESIGN.md's
// Open Questions entry on the Wounds representation).
func monsterMaxHP(level int) int {
	hp := 10 + level*5
	if hp < 1 {
		hp = 1
	}
	return hp
}

// BuildMonster spawns a base mob entity from the named bestiary entry,
// unplaced. Grounded on entity_spec.rs's EntitySpec impl for Monster.
func (d *Data) BuildMonster(w *ecs.World, name string) (ecs.Entity, bool) {
	m, ok := d.Bestiary[name]
	if !ok {
		return ecs.Entity{}, false
	}

	e := w.Spawn(ecs.SiloMob)
	ecs.Set(w, e, ecs.KindName, name)
	ecs.Set(w, e, ecs.KindIcon, m.Icon)
	ecs.Set(w, e, ecs.KindSpeed, baseSpeed)
	ecs.Set(w, e, ecs.KindIsMob, true)
	ecs.Set(w, e, ecs.KindStats, ecs.Stats{
		Level: m.Level,
		Hit:   0,
		Ev:    m.Evasion,
		Dmg:   m.AttackDamage,
	})
	maxHP := monsterMaxHP(m.Level)
	ecs.Set(w, e, ecs.KindWounds, ecs.Wounds{Current: maxHP, Max: maxHP})
	return e, true
}

// BuildItem spawns a base item entity from the named armory entry,
// unplaced. Grounded on entity_spec.rs's EntitySpec impl for Item.
func (d *Data) BuildItem(w *ecs.World, name string) (ecs.Entity, bool) {
	it, ok := d.Armory[name]
	if !ok {
		return ecs.Entity{}, false
	}

	e := w.Spawn(ecs.SiloItem)
	ecs.Set(w, e, ecs.KindName, name)
	ecs.Set(w, e, ecs.KindIcon, it.Kind.Icon())
	ecs.Set(w, e, ecs.KindItemPower, it.Power)
	ecs.Set(w, e, ecs.KindItemKind, itemKindName(it.Kind))
	ecs.Set(w, e, ecs.KindStats, ecs.Stats{Level: it.Level})
	if it.Kind.IsStacking() {
		ecs.Set(w, e, ecs.KindCount, 1)
	}
	return e, true
}

// itemKindName renders an ItemKind as the string stored in the
// KindItemKind component slot, matching ecs.CanStackWith's string
// comparison of that kind.
func itemKindName(k ItemKind) string {
	switch k {
	case ItemMeleeWeapon:
		return "melee-weapon"
	case ItemRangedWeapon:
		return "ranged-weapon"
	case ItemArmor:
		return "armor"
	case ItemRing:
		return "ring"
	case ItemScroll:
		return "scroll"
	case ItemPotion:
		return "potion"
	case ItemTreasure:
		return "treasure"
	default:
		return ""
	}
}
