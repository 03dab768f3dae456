package skeleton

import (
	"voxelrogue/lattice"
	"voxelrogue/scenario"
)

// patchFromSectorMap renders a prefab SectorMap into a Patch anchored at
// origin, so a Site/Hall region's prefab map doubles as its own
// MapGenerator. Grounded on content/src/mapgen.rs::Patch::from_sector_map.
func patchFromSectorMap(origin lattice.Location, m scenario.SectorMap) (Patch, error) {
	terrain, err := m.Terrain(origin)
	if err != nil {
		return Patch{}, err
	}
	spawns, err := m.Spawns(origin)
	if err != nil {
		return Patch{}, err
	}

	out := Patch{Terrain: terrain}
	for _, s := range spawns {
		out.Spawns = append(out.Spawns, PatchSpawn{Loc: s.Loc, Spawn: NewPod(s.Name, PodUnresolved)})
	}
	return out, nil
}
