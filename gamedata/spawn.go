package gamedata

import (
	"voxelrogue/ecs"
	"voxelrogue/lattice"
	"voxelrogue/placement"
	"voxelrogue/skeleton"
	"voxelrogue/terrain"
)

// SpawnPod realizes a Pod tree at loc, following spec.md §4.7's
// build-count-clone-recurse-place sequence:
//  1. Build one base entity from the static data via BuildMonster/BuildItem.
//  2. If count > 1 and the entity is stackable, set Count(count); otherwise
//     spawn count independent clones.
//  3. Recursively spawn the children; if the parent is a mob, attempt to
//     auto-equip each child. Place each top-level spawn at loc via
//     FindOpenSpot/InsertMerge.
//
// Returns the top-level entities it placed, each at the open spot
// FindOpenSpot picked near loc (or the existing stack it merged into).
// Children spawned inside them are not included; callers that need them
// can walk placement.In on the returned entities.
func SpawnPod(w *ecs.World, ix *placement.Index, store *terrain.Store, d *Data, loc lattice.Location, pod skeleton.Pod) []ecs.Entity {
	var out []ecs.Entity
	for _, entry := range pod {
		out = append(out, spawnEntry(w, ix, store, d, loc, entry)...)
	}
	return out
}

// spawnEntry spawns one PodEntry (and its children, if the spawned mob has
// any) near loc, each independent clone finding its own open spot.
func spawnEntry(w *ecs.World, ix *placement.Index, store *terrain.Store, d *Data, loc lattice.Location, entry skeleton.PodEntry) []ecs.Entity {
	count := entry.Object.Count
	if count < 1 {
		count = 1
	}
	stackable := entry.Object.Kind == skeleton.PodItem && d.itemStackable(entry.Object.Name)

	place := func(stackCount int) (ecs.Entity, bool) {
		e, ok := buildFromPod(w, d, entry.Object)
		if !ok {
			return ecs.Entity{}, false
		}
		if stackCount > 1 {
			ecs.Set(w, e, ecs.KindCount, stackCount)
		}
		spot, ok := placement.FindOpenSpot(ix, store, w, loc)
		if !ok {
			w.Despawn(e)
			return ecs.Entity{}, false
		}
		e = placement.InsertMerge(ix, w, placement.At(spot), e)
		spawnChildren(w, ix, d, e, entry.Children)
		return e, true
	}

	if stackable {
		e, ok := place(count)
		if !ok {
			return nil
		}
		return []ecs.Entity{e}
	}

	var placed []ecs.Entity
	for i := 0; i < count; i++ {
		if e, ok := place(0); ok {
			placed = append(placed, e)
		}
	}
	return placed
}

// spawnChildren spawns a parent's pod children inside it (inventory
// placement), auto-equipping them if the parent is a mob.
func spawnChildren(w *ecs.World, ix *placement.Index, d *Data, parent ecs.Entity, children skeleton.Pod) {
	for _, entry := range children {
		child, ok := buildFromPod(w, d, entry.Object)
		if !ok {
			continue
		}
		child = placement.InsertMerge(ix, w, placement.In(parent), child)
		spawnChildren(w, ix, d, child, entry.Children)

		if ecs.IsMob(w, parent) {
			autoEquip(w, ix, parent, child)
		}
	}
}

func autoEquip(w *ecs.World, ix *placement.Index, mob, item ecs.Entity) {
	kindName := ecs.With[string](w, item, ecs.KindItemKind)
	if kindName == "" {
		return
	}
	kind := ItemKindFromName(kindName)
	slot, ok := FindEquipSlot(w, ix, mob, kind)
	if !ok {
		return
	}
	ecs.Set(w, item, ecs.KindEquippedAt, SlotName(slot))
}

// buildFromPod dispatches to BuildMonster or BuildItem by the pod object's
// recorded kind, resolving PodUnresolved objects by checking the bestiary
// first (a prefab SectorMap's legend doesn't record which table a name
// belongs to).
func buildFromPod(w *ecs.World, d *Data, obj skeleton.PodObject) (ecs.Entity, bool) {
	switch obj.Kind {
	case skeleton.PodMonster:
		return d.BuildMonster(w, obj.Name)
	case skeleton.PodItem:
		return d.BuildItem(w, obj.Name)
	default:
		if e, ok := d.BuildMonster(w, obj.Name); ok {
			return e, true
		}
		return d.BuildItem(w, obj.Name)
	}
}

func (d *Data) itemStackable(name string) bool {
	it, ok := d.Armory[name]
	return ok && it.Kind.IsStacking()
}
