// Package skeleton turns a scenario into the fixed per-sector connectivity
// graph generators run against: spec.md §3.5/§4.2/§4.3/§4.4. Grounded on
// original_source's world/src/world.rs (Segment, unfold, build_skeleton,
// stairwell snap) and content/src/mapgen.rs (MapGenerator, Lot, Patch,
// bigroom).
package skeleton

import (
	"voxelrogue/lattice"
	"voxelrogue/rng"
	"voxelrogue/terrain"
)

// Lot is the bounds and topology a MapGenerator is asked to fill: a single
// sector volume, which of its four horizontal neighbors it must connect
// to, and where its up/down stairwells land if it has them.
type Lot struct {
	Volume lattice.Box

	// Sides is a NESW bitmask (bit 0 = north, 1 = east, 2 = south, 3 =
	// west) of which horizontal neighbors this lot must connect to.
	Sides uint8

	Up     lattice.Location
	HasUp  bool
	Down   lattice.Location
	HasDown bool
}

const (
	SideNorth uint8 = 1 << iota
	SideEast
	SideSouth
	SideWest
)

// PodKind says whether a PodObject names a bestiary or armory entry.
// Resolving the name to concrete stats is gamedata's job, not skeleton's.
// A prefab SectorMap's legend doesn't record which it is, so its spawns
// carry PodUnresolved until gamedata looks the name up.
type PodKind int

const (
	PodUnresolved PodKind = iota
	PodMonster
	PodItem
)

// PodObject is one entry in a Pod: count copies of a named bestiary/armory
// thing. Name is left unresolved here the same way scenario.Spawn defers
// name-to-entity resolution to gamedata.
type PodObject struct {
	Count int
	Name  string
	Kind  PodKind
}

// PodEntry pairs a PodObject with whatever it hatches alongside it — a
// mount's rider, a chest's contents, a monster's held weapon.
type PodEntry struct {
	Object   PodObject
	Children Pod
}

// Pod is a forest of spawn entries: a flat list at the top level, each
// entry free to carry its own nested Pod of children. A single named
// spawn is a one-entry, childless Pod (see NewPod).
type Pod []PodEntry

// NewPod builds the common case: a single object with no children.
func NewPod(name string, kind PodKind) Pod {
	return Pod{{Object: PodObject{Count: 1, Name: name, Kind: kind}}}
}

// Objects flattens the forest into every PodObject it contains, parents
// before children, depth first.
func (p Pod) Objects() []PodObject {
	var out []PodObject
	for _, e := range p {
		out = append(out, e.Object)
		out = append(out, e.Children.Objects()...)
	}
	return out
}

// PatchSpawn is one pending spawn at a location.
type PatchSpawn struct {
	Loc   lattice.Location
	Spawn Pod
}

// Patch is the outcome of running a MapGenerator: the voxel overrides it
// wants written into the world, plus an ordered list of spawns.
type Patch struct {
	Terrain map[lattice.Location]terrain.Voxel
	Spawns  []PatchSpawn
}

// Run lets Patch satisfy MapGenerator by returning a copy of itself: a
// pre-baked prefab sector is its own generator.
func (p Patch) Run(_ *rng.Source, _ Lot) (Patch, error) {
	return p.clone(), nil
}

// HasWaypoint reports whether this patch placed an altar: spec.md §4.9
// treats an altar as a rest point, the thing the waypoint graph builds
// its cover around.
func (p Patch) HasWaypoint() bool {
	for _, v := range p.Terrain {
		if v.Block == terrain.Altar && !v.IsNone() {
			return true
		}
	}
	return false
}

func (p Patch) clone() Patch {
	terr := make(map[lattice.Location]terrain.Voxel, len(p.Terrain))
	for k, v := range p.Terrain {
		terr[k] = v
	}
	spawns := make([]PatchSpawn, len(p.Spawns))
	copy(spawns, p.Spawns)
	return Patch{Terrain: terr, Spawns: spawns}
}

// MapGenerator fills a Lot with terrain and spawns, deterministically
// given its rng. HasWaypoint tells the waypoint graph builder whether this
// generator's sector should be treated as a rest point (spec.md §4.9),
// true for prefab sectors with an altar glyph and false for everything
// else.
type MapGenerator interface {
	Run(rng *rng.Source, lot Lot) (Patch, error)
	HasWaypoint() bool
}
