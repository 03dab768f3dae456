// Package ecs wraps github.com/bytearena/ecs with a component set and an
// Entity handle shaped for this simulation: spec.md §4.6, "components are
// typed slots; a missing slot and its zero value are the same state"
// (defaults-elide-to-absence). Grounded on
// Afromullet-TinkerRogue/common/ecsutil.go (EntityManager wrapping
// *ecs.Manager plus tag table) and combat/combatcomponents.go (component +
// tag declaration pattern).
package ecs

import (
	"fmt"
	"strings"

	"github.com/bytearena/ecs"
)

// Silo records which subsystem minted an entity (monsters, items,
// fixtures, ...). It is not part of the entity's display form: String
// encodes only the slot and generation.
type Silo uint8

const (
	SiloMob Silo = iota
	SiloItem
	SiloFixture
	SiloEffect
)

// Entity is a handle into a World (spec.md §6.4): an opaque, generational
// id. slot is the (possibly reused) index it occupies; gen counts how many
// times that slot has been recycled, so a handle captured before a
// despawn/respawn of the same slot compares unequal to the new occupant's
// handle. raw is the bytearena entity that actually carries components.
// The zero Entity is never valid; use World.Spawn to mint one.
type Entity struct {
	raw  *ecs.Entity
	slot uint32
	gen  uint32
	silo Silo
}

// Valid reports whether e refers to a live entity handle (non-zero raw
// entity). It does not check that the entity is still alive in its World;
// use World.Alive for that.
func (e Entity) Valid() bool { return e.raw != nil }

// ID returns e's packed generational id: the low 32 bits are its slot, the
// high 32 bits are the generation that slot was minted at. Stable for e's
// lifetime; a later occupant of the same slot always carries a higher
// generation and therefore a distinct ID.
func (e Entity) ID() uint64 { return uint64(e.slot) | uint64(e.gen)<<32 }

// Silo reports which subsystem minted e.
func (e Entity) Silo() Silo { return e.silo }

// String renders e as the compact opaque handle of spec.md §6.4: the
// generational id's slot and generation halves bit-interleaved (even bits
// from the slot, odd bits from the generation) into one 64-bit value, then
// rendered in the handle alphabet. Parse inverts this exactly.
func (e Entity) String() string {
	if !e.Valid() {
		return "#0"
	}
	return "#" + encodeHandle(interleave(uint64(e.slot), uint64(e.gen)))
}

// Parse decodes a handle produced by Entity.String back into the packed
// generational id (the same layout Entity.ID returns) it encodes. It
// rejects any input not starting with '#' and any body left empty once
// normalized; normalization drops characters outside the handle alphabet.
func Parse(s string) (uint64, error) {
	if len(s) < 2 || s[0] != '#' {
		return 0, fmt.Errorf("ecs: bad entity handle %q: missing '#' prefix", s)
	}
	v, err := decodeHandle(s[1:])
	if err != nil {
		return 0, fmt.Errorf("ecs: bad entity handle %q: %w", s, err)
	}
	slot, gen := deinterleave(v)
	return slot | gen<<32, nil
}

// handleAlphabet is the opaque, case-insensitive alphabet handles are
// rendered in: digits plus consonant-heavy letters, omitting I/L/O/S since
// they're easily confused with 1/1/0/5 (folded onto those digits on
// decode). Grounded on original_source/util/src/silo.rs's ALPHABET.
const handleAlphabet = "0123456789ABCDEFGHJKMNPQRTUVWXYZ"

// encodeHandle renders v as a minimal-length handleAlphabet string, most
// significant quintet first.
func encodeHandle(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf []byte
	for v > 0 {
		buf = append(buf, handleAlphabet[v&0x1f])
		v >>= 5
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// decodeHandle inverts encodeHandle, first normalizing s the way
// original_source's Silo::new does: uppercase, fold O/I/L/S onto their
// digit look-alikes, and drop anything left that still isn't in the
// alphabet (punctuation, whitespace).
func decodeHandle(s string) (uint64, error) {
	s = normalizeHandle(s)
	if s == "" {
		return 0, fmt.Errorf("empty handle body")
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		idx := strings.IndexByte(handleAlphabet, s[i])
		if idx < 0 {
			return 0, fmt.Errorf("character %q not in handle alphabet", s[i])
		}
		v = v<<5 | uint64(idx)
	}
	return v, nil
}

func normalizeHandle(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		switch r {
		case 'O':
			r = '0'
		case 'I', 'L':
			r = '1'
		case 'S':
			r = '5'
		}
		if strings.ContainsRune(handleAlphabet, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// interleave combines lo and hi (each treated as 32 meaningful bits) into
// one 64-bit value with lo's bits at even positions and hi's at odd
// positions: spec.md §6.4's "interleave the lower and upper 32 bits ... by
// a factor of 2." deinterleave is its exact inverse.
func interleave(lo, hi uint64) uint64 {
	return spread32(lo) | spread32(hi)<<1
}

func deinterleave(v uint64) (lo, hi uint64) {
	return compact32(v), compact32(v >> 1)
}

// spread32 inserts a zero bit after each of x's low 32 bits (a standard
// Morton-code bit spread); compact32 is its inverse.
func spread32(x uint64) uint64 {
	x &= 0x00000000FFFFFFFF
	x = (x | (x << 16)) & 0x0000FFFF0000FFFF
	x = (x | (x << 8)) & 0x00FF00FF00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x << 2)) & 0x3333333333333333
	x = (x | (x << 1)) & 0x5555555555555555
	return x
}

func compact32(x uint64) uint64 {
	x &= 0x5555555555555555
	x = (x | (x >> 1)) & 0x3333333333333333
	x = (x | (x >> 2)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x >> 4)) & 0x00FF00FF00FF00FF
	x = (x | (x >> 8)) & 0x0000FFFF0000FFFF
	x = (x | (x >> 16)) & 0x00000000FFFFFFFF
	return x
}

// entityMeta is what World tracks per live bytearena entity: the slot/
// generation/silo that together make up its Entity handle.
type entityMeta struct {
	slot uint32
	gen  uint32
	silo Silo
}

// World owns the component store and the live entity set.
type World struct {
	mgr  *ecs.Manager
	meta map[ecs.EntityID]entityMeta

	nextSlot  uint32
	freeSlots []uint32
	genOf     map[uint32]uint32

	components map[string]*ecs.Component
}

// NewWorld builds an empty World with every component kind registered.
func NewWorld() *World {
	w := &World{
		mgr:        ecs.NewManager(),
		meta:       make(map[ecs.EntityID]entityMeta),
		genOf:      make(map[uint32]uint32),
		components: make(map[string]*ecs.Component),
	}
	for _, name := range componentNames {
		w.components[name] = w.mgr.NewComponent()
	}
	return w
}

// allocSlot hands out a recycled slot (one whose prior occupant was
// despawned) ahead of a fresh one, so a long-running world's handles stay
// compact instead of growing without bound.
func (w *World) allocSlot() uint32 {
	if n := len(w.freeSlots); n > 0 {
		slot := w.freeSlots[n-1]
		w.freeSlots = w.freeSlots[:n-1]
		return slot
	}
	slot := w.nextSlot
	w.nextSlot++
	return slot
}

// Spawn mints a new entity in the given silo with no components set.
func (w *World) Spawn(silo Silo) Entity {
	raw := w.mgr.NewEntity()
	slot := w.allocSlot()
	gen := w.genOf[slot]
	w.meta[raw.GetID()] = entityMeta{slot: slot, gen: gen, silo: silo}
	return Entity{raw: raw, slot: slot, gen: gen, silo: silo}
}

// SpawnClone mints a new entity in the same silo as src, copying every
// component src has set. Grounded on original_source/engine/src/entity.rs's
// spawn_clone, used for item stack splitting and monster cloning effects.
func (w *World) SpawnClone(src Entity) Entity {
	dst := w.Spawn(src.silo)
	for _, comp := range w.components {
		if data, ok := src.raw.GetComponentData(comp); ok {
			dst.raw.AddComponent(comp, data)
		}
	}
	return dst
}

// Despawn removes e and all of its components from the world, and bumps
// its slot's generation so a stale copy of e's handle never again compares
// alive, even once the slot is recycled by a later Spawn.
func (w *World) Despawn(e Entity) {
	if !e.Valid() {
		return
	}
	w.mgr.DisposeEntity(e.raw)
	delete(w.meta, e.raw.GetID())
	w.genOf[e.slot] = e.gen + 1
	w.freeSlots = append(w.freeSlots, e.slot)
}

// Alive reports whether e is still present in the world under the exact
// slot/generation it was minted with.
func (w *World) Alive(e Entity) bool {
	if !e.Valid() {
		return false
	}
	m, ok := w.meta[e.raw.GetID()]
	return ok && m.slot == e.slot && m.gen == e.gen
}

// Each calls f for every live entity, in no particular order.
func (w *World) Each(f func(Entity)) {
	for _, res := range w.mgr.Query(ecs.BuildTag()) {
		m, ok := w.meta[res.Entity.GetID()]
		if !ok {
			continue
		}
		f(Entity{raw: res.Entity, slot: m.slot, gen: m.gen, silo: m.silo})
	}
}

// EachInSilo calls f for every live entity minted in silo.
func (w *World) EachInSilo(silo Silo, f func(Entity)) {
	w.Each(func(e Entity) {
		if e.silo == silo {
			f(e)
		}
	})
}
