package gamedata

import (
	"voxelrogue/ecs"
	"voxelrogue/placement"
)

// slotOrder is the fixed scan order FindEquipSlot tries candidate slots in.
var slotOrder = []EquippedAt{SlotRunHand, SlotGunHand, SlotBody, SlotRing1, SlotRing2}

// SlotName renders an EquippedAt as the string stored in a KindEquippedAt
// component slot.
func SlotName(s EquippedAt) string {
	switch s {
	case SlotRunHand:
		return "run-hand"
	case SlotGunHand:
		return "gun-hand"
	case SlotBody:
		return "body"
	case SlotRing1:
		return "ring-1"
	case SlotRing2:
		return "ring-2"
	default:
		return ""
	}
}

// ItemKindFromName is the inverse of itemKindName, used to recover an
// equipped/carried item's kind from its KindItemKind component.
func ItemKindFromName(name string) ItemKind {
	switch name {
	case "melee-weapon":
		return ItemMeleeWeapon
	case "ranged-weapon":
		return ItemRangedWeapon
	case "armor":
		return ItemArmor
	case "ring":
		return ItemRing
	case "scroll":
		return ItemScroll
	case "potion":
		return ItemPotion
	case "treasure":
		return ItemTreasure
	default:
		return ItemNone
	}
}

// FindEquipSlot picks the first slot kind fits that isn't already occupied
// by another item mob is carrying, or reports false if none is free.
// Grounded on spec.md §4.7 step 3's "attempt to auto-equip each child" and
// ItemKind::fits (data.rs).
func FindEquipSlot(w *ecs.World, places *placement.Index, mob ecs.Entity, kind ItemKind) (EquippedAt, bool) {
	occupied := map[string]bool{}
	for _, carried := range places.In(mob) {
		if slot := ecs.With[string](w, carried, ecs.KindEquippedAt); slot != "" {
			occupied[slot] = true
		}
	}

	for _, slot := range slotOrder {
		if !kind.Fits(slot) {
			continue
		}
		if !occupied[SlotName(slot)] {
			return slot, true
		}
	}
	return SlotNone, false
}
