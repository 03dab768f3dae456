package placement

import (
	"voxelrogue/ecs"
	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

// FindOpenSpot does a breadth-first search outward from origin for the
// nearest cell a mover can stand in. A mob-occupied cell is never eligible;
// an item-occupied cell is fine, since items share a tile. Grounded on
// original_source's open_placement_spot (referenced from spec.md §4.7 step
// 3's pod-spawning sequence).
func FindOpenSpot(ix *Index, store *terrain.Store, w *ecs.World, origin lattice.Location) (lattice.Location, bool) {
	seen := map[lattice.Location]struct{}{origin: {}}
	queue := []lattice.Location{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if store.CanBeStoodIn(cur) && !ix.mobAt(w, cur) {
			return cur, true
		}
		for _, n := range store.WalkNeighbors4(cur) {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			queue = append(queue, n)
		}
	}
	return lattice.Location{}, false
}

func (ix *Index) mobAt(w *ecs.World, loc lattice.Location) bool {
	for _, e := range ix.At(loc) {
		if ecs.IsMob(w, e) {
			return true
		}
	}
	return false
}

// InsertMerge places e at p, merging it into an already-present stackable
// item instead of inserting a duplicate when one exists: spec.md §3.7's
// placement invariant ("inserting at a place where an equivalent stackable
// item already exists merges the two, growing the existing stack's Count
// by the new one's and destroying the new entity"). Reports the entity
// that ended up holding the stack (the existing one on merge, e otherwise).
func InsertMerge(ix *Index, w *ecs.World, p Place, e ecs.Entity) ecs.Entity {
	if loc, ok := p.Location(); ok {
		for _, existing := range ix.At(loc) {
			if existing.ID() != e.ID() && ecs.CanStackWith(w, existing, e) {
				mergeStacks(w, existing, e)
				return existing
			}
		}
	} else if holder, ok := p.Container(); ok {
		for _, existing := range ix.In(holder) {
			if existing.ID() != e.ID() && ecs.CanStackWith(w, existing, e) {
				mergeStacks(w, existing, e)
				return existing
			}
		}
	}
	ix.Insert(p, e)
	return e
}

func mergeStacks(w *ecs.World, into, from ecs.Entity) {
	ecs.Set(w, into, ecs.KindCount, ecs.Count(w, into)+ecs.Count(w, from))
	w.Despawn(from)
}
