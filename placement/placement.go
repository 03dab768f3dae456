// Package placement is the spatial index tying entities to locations and to
// each other: spec.md §4.5. Grounded on original_source's placement.rs
// (Place enum + bidirectional Placement index) and on
// Afromullet-TinkerRogue/common's PositionSystem, which plays the same
// O(1)-lookup role for the teacher's flat grid.
package placement

import (
	"fmt"

	"voxelrogue/ecs"
	"voxelrogue/lattice"
)

// Place is where an entity sits: either a world Location, or inside another
// entity (a container, a creature's pack).
type Place struct {
	loc      lattice.Location
	holder   ecs.Entity
	isEntity bool
}

// At builds a Place anchored to a world location.
func At(loc lattice.Location) Place { return Place{loc: loc} }

// In builds a Place anchored inside a container entity.
func In(e ecs.Entity) Place { return Place{holder: e, isEntity: true} }

// Location returns the place's location and true, or the zero Location and
// false if this place is inside a container.
func (p Place) Location() (lattice.Location, bool) {
	if p.isEntity {
		return lattice.Location{}, false
	}
	return p.loc, true
}

// Container returns the place's holding entity and true, or the zero Entity
// and false if this place is a world location.
func (p Place) Container() (ecs.Entity, bool) {
	if !p.isEntity {
		return ecs.Entity{}, false
	}
	return p.holder, true
}

func (p Place) key() any {
	if p.isEntity {
		return p.holder.ID()
	}
	return p.loc
}

// bucket is the set of entities at one Place, kept in the order they were
// inserted: spec.md §4.5/§3.7 calls a place's contents an ordered set, and
// §8 property 10 (byte-identical serialization across runs) depends on that
// order being stable rather than Go's randomized map iteration.
type bucket struct {
	order []uint64
	byID  map[uint64]ecs.Entity
}

func (b *bucket) add(e ecs.Entity) {
	if _, ok := b.byID[e.ID()]; !ok {
		b.order = append(b.order, e.ID())
	}
	b.byID[e.ID()] = e
}

func (b *bucket) remove(id uint64) {
	if _, ok := b.byID[id]; !ok {
		return
	}
	delete(b.byID, id)
	for i, oid := range b.order {
		if oid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *bucket) entities() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}

// Index is the bidirectional entity<->place map: spec.md §4.5's
// "every entity has at most one place; every place indexes the entities at
// it". Grounded on original_source's Placement struct (places + entities
// maps kept in lockstep by insert/remove).
type Index struct {
	places   map[uint64]Place
	byID     map[uint64]ecs.Entity
	entities map[any]*bucket
}

// NewIndex builds an empty Index.
func NewIndex() *Index {
	return &Index{
		places:   make(map[uint64]Place),
		byID:     make(map[uint64]ecs.Entity),
		entities: make(map[any]*bucket),
	}
}

// Get returns e's current place, or false if e has never been placed.
func (ix *Index) Get(e ecs.Entity) (Place, bool) {
	p, ok := ix.places[e.ID()]
	return p, ok
}

// At returns every entity directly placed at loc, in insertion order.
func (ix *Index) At(loc lattice.Location) []ecs.Entity {
	return ix.bucket(At(loc))
}

// In returns every entity directly contained by e, in insertion order.
func (ix *Index) In(e ecs.Entity) []ecs.Entity {
	return ix.bucket(In(e))
}

func (ix *Index) bucket(p Place) []ecs.Entity {
	b, ok := ix.entities[p.key()]
	if !ok {
		return nil
	}
	return b.entities()
}

// LocationOf resolves e's ultimate world location, following container
// chains (an item in a creature's pack resolves to the creature's
// location). Returns false if e is unplaced or the chain bottoms out inside
// a despawned container.
func (ix *Index) LocationOf(e ecs.Entity) (lattice.Location, bool) {
	seen := map[uint64]struct{}{}
	for {
		if _, looped := seen[e.ID()]; looped {
			return lattice.Location{}, false
		}
		seen[e.ID()] = struct{}{}

		p, ok := ix.places[e.ID()]
		if !ok {
			return lattice.Location{}, false
		}
		if loc, ok := p.Location(); ok {
			return loc, true
		}
		holder, _ := p.Container()
		e = holder
	}
}

// Contains reports whether e is (directly or transitively) inside
// container.
func (ix *Index) Contains(container, e ecs.Entity) bool {
	for _, child := range ix.In(container) {
		if child.ID() == e.ID() {
			return true
		}
		if ix.Contains(child, e) {
			return true
		}
	}
	return false
}

// Insert places e at p, first removing any previous placement. Panics if p
// would place e inside itself or create a containment cycle, matching
// original_source's assertion in Placement::insert.
func (ix *Index) Insert(p Place, e ecs.Entity) {
	if holder, ok := p.Container(); ok {
		if holder.ID() == e.ID() || ix.Contains(e, holder) {
			panic(fmt.Sprintf("placement: containment loop placing %s in %s", e, holder))
		}
	}

	ix.Remove(e)
	ix.places[e.ID()] = p
	ix.byID[e.ID()] = e
	b, ok := ix.entities[p.key()]
	if !ok {
		b = &bucket{byID: make(map[uint64]ecs.Entity)}
		ix.entities[p.key()] = b
	}
	b.add(e)
}

// Remove clears e's placement, if any.
func (ix *Index) Remove(e ecs.Entity) {
	p, ok := ix.places[e.ID()]
	if !ok {
		return
	}
	delete(ix.places, e.ID())
	delete(ix.byID, e.ID())
	if b, ok := ix.entities[p.key()]; ok {
		b.remove(e.ID())
	}
}

// All returns every placed entity, in no particular order.
func (ix *Index) All() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(ix.byID))
	for _, e := range ix.byID {
		out = append(out, e)
	}
	return out
}
