package gamedata

import (
	"testing"

	"voxelrogue/ecs"
	"voxelrogue/placement"
)

func TestBuildMonsterSetsStatsFromBestiary(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()

	e, ok := d.BuildMonster(w, "goblin")
	if !ok {
		t.Fatal("expected goblin to build")
	}
	if !ecs.IsMob(w, e) {
		t.Error("a built monster should be a mob")
	}
	stats := ecs.With[ecs.Stats](w, e, ecs.KindStats)
	if stats.Ev != 2 || stats.Dmg != 3 {
		t.Errorf("stats should come from the bestiary entry, got %+v", stats)
	}
	wounds := ecs.With[ecs.Wounds](w, e, ecs.KindWounds)
	if wounds.Current != wounds.Max || wounds.Max <= 0 {
		t.Errorf("a freshly built monster should start at full, positive hp, got %+v", wounds)
	}
}

func TestBuildMonsterUnknownNameFails(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()
	if _, ok := d.BuildMonster(w, "nonexistent"); ok {
		t.Error("expected building an unregistered monster name to fail")
	}
}

func TestBuildItemSetsKindAndStacking(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()

	potion, ok := d.BuildItem(w, "potion")
	if !ok {
		t.Fatal("expected potion to build")
	}
	if ecs.Count(w, potion) != 1 {
		t.Errorf("a fresh stackable item should start as a stack of 1, got %d", ecs.Count(w, potion))
	}

	sword, ok := d.BuildItem(w, "short sword")
	if !ok {
		t.Fatal("expected short sword to build")
	}
	if ecs.With[string](w, sword, ecs.KindItemKind) != "melee-weapon" {
		t.Errorf("expected melee-weapon item kind, got %v", ecs.With[string](w, sword, ecs.KindItemKind))
	}
}

func TestFindEquipSlotPicksFirstFittingFreeSlot(t *testing.T) {
	w := ecs.NewWorld()
	ix := placement.NewIndex()
	mob := w.Spawn(ecs.SiloMob)

	slot, ok := FindEquipSlot(w, ix, mob, ItemMeleeWeapon)
	if !ok || slot != SlotRunHand {
		t.Errorf("expected melee weapon to fit run-hand, got %v %v", slot, ok)
	}

	_, ok = FindEquipSlot(w, ix, mob, ItemTreasure)
	if ok {
		t.Error("treasure fits no equip slot")
	}
}
