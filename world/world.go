// Package world ties the skeleton, procedural generation, and the terrain
// store together into a single mutable, on-demand-realized game world.
// spec.md §4.5. Grounded on original_source's world/src/world.rs (World,
// Segment, build_skeleton, construct_lot, populate_around, generate_sector),
// reusing skeleton.BuildSkeleton/ConstructLot for the parts already ported
// there.
package world

import (
	"fmt"
	"log"

	"voxelrogue/lattice"
	"voxelrogue/rng"
	"voxelrogue/scenario"
	"voxelrogue/skeleton"
	"voxelrogue/terrain"
)

// genStatus tracks how far a sector's on-demand realization has gone:
// absent means never generated, edge means generated but its neighborhood
// might not be, core means both it and its neighborhood are generated.
type genStatus int

const (
	statusEdge genStatus = iota + 1
	statusCore
)

// World is the overall runtime game world: the fixed per-sector skeleton
// built once from a scenario, the terrain store generators and runtime
// edits write into, and the bookkeeping that drives on-demand realization.
type World struct {
	seed     uint64
	scenario scenario.Scenario

	store *terrain.Store

	skel     map[lattice.Box]*skeleton.Segment
	genStat  map[lattice.Box]genStatus
	spawned  map[lattice.Box]bool
	entrance lattice.Location
}

// New builds a World's skeleton from sc and seed; genericGen resolves a
// scenario.GenericSector (a region marked for procedural generation rather
// than prefab) into the MapGenerator a sector's Lot is eventually run
// through.
func New(seed uint64, sc scenario.Scenario, genericGen func(scenario.GenericSector) (skeleton.MapGenerator, error)) (*World, error) {
	entrance, skel, err := skeleton.BuildSkeleton(seed, sc, genericGen)
	if err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}

	return &World{
		seed:     seed,
		scenario: sc,
		store:    terrain.NewStore(),
		skel:     skel,
		genStat:  make(map[lattice.Box]genStatus),
		spawned:  make(map[lattice.Box]bool),
		entrance: entrance,
	}, nil
}

// Seed returns the world's PRNG seed, the same one every per-sector
// generator reseeds from via rng.Derive.
func (w *World) Seed() uint64 { return w.seed }

// PlayerEntrance is the location the player starts at, from the scenario's
// one Site/Hall region entrance.
func (w *World) PlayerEntrance() lattice.Location { return w.entrance }

// Store exposes the terrain store generators and gameplay code read and
// write voxels through.
func (w *World) Store() *terrain.Store { return w.store }

// Levels returns every sector box the skeleton defines, in no particular
// order.
func (w *World) Levels() []lattice.Box {
	out := make([]lattice.Box, 0, len(w.skel))
	for s := range w.skel {
		out = append(out, s)
	}
	return out
}

// PopulateAround realizes every sector needed for the player to safely
// stand at loc: the sector containing loc, plus its 10-neighborhood (the 8
// horizontal neighbors and the sectors directly above and below), so that
// FOV and pathing never run off the edge of generated terrain. Returns
// every pod spawn produced by sectors generated for the first time by this
// call. spec.md §4.5.
func (w *World) PopulateAround(loc lattice.Location) []skeleton.PatchSpawn {
	s := loc.Sector()

	if w.genStat[s] == statusCore {
		return nil
	}

	var spawns []skeleton.PatchSpawn
	for _, s2 := range sectorNeighborhood10(s) {
		if _, ok := w.genStat[s2]; !ok {
			w.generateSector(s2, &spawns)
		}
	}

	w.genStat[s] = statusCore
	return spawns
}

// generateSector runs s's generator once, caching its terrain and
// collecting its spawns into spawns unless s was already spawned by an
// earlier call (a sector can be re-entered as someone else's neighbor
// before it's ever a populate_around center, and should only ever spawn
// its pods once). spec.md §4.5 generate_sector.
func (w *World) generateSector(s lattice.Box, spawns *[]skeleton.PatchSpawn) {
	if _, ok := w.genStat[s]; ok {
		return
	}
	w.genStat[s] = statusEdge

	segment := w.skel[s]
	if segment == nil {
		// Outside the scenario's defined world; leave it at DefaultVoxel.
		return
	}

	spawnsDone := w.spawned[s]
	lot := skeleton.ConstructLot(w.skel, s)
	w.spawned[s] = true

	if spawnsDone {
		log.Printf("world: generating %v (skipping spawns)", s)
	} else {
		log.Printf("world: generating %v", s)
	}

	src := rng.Derive(w.seed, "sector", s)
	patch, err := segment.Generator.Run(src, lot)
	if err != nil {
		log.Panicf("world: sector procgen failed for %v: %v", s, err)
	}

	for loc, v := range patch.Terrain {
		if v != terrain.DefaultVoxel {
			w.store.CacheVoxel(loc, v)
		}
	}

	if !spawnsDone {
		*spawns = append(*spawns, patch.Spawns...)
	}
}

// sectorNeighborhood10 lists s and the ten sectors spec.md §4.5 requires
// realized around it: its 8 horizontal neighbors, plus the sectors
// directly above and below at the same x,y. Ungrounded: original_source's
// Level::cache_volume lives in a util crate outside the retrieved pack, so
// this is a fresh implementation of the same 10-neighborhood spec.md §4.5
// names explicitly.
func sectorNeighborhood10(s lattice.Box) []lattice.Box {
	out := make([]lattice.Box, 0, 11)
	out = append(out, s)

	w, h := s.Width(), s.Height()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			shift := lattice.Location{X: dx * w, Y: dy * h, Z: 0}
			out = append(out, lattice.Box{Min: s.Min.Add(shift), Max: s.Max.Add(shift)})
		}
	}

	out = append(out, lattice.Box{Min: s.Min.Up(), Max: s.Max.Up()})
	out = append(out, lattice.Box{Min: s.Min.Down(), Max: s.Max.Down()})

	return out
}
