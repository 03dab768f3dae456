package gamedata

import (
	"sort"

	"voxelrogue/skeleton"
)

// MonsterSpawns returns every bestiary entry eligible at depth, weighted by
// SpawnWeight. Satisfies skeleton.SpawnSource so a *Data can feed the big
// room generator directly. Grounded on data.rs's depth/rarity filtering
// (SpawnDist::min_depth, SpawnDist::spawn_weight).
func (d *Data) MonsterSpawns(depth int) []skeleton.SpawnCandidate {
	return spawnCandidates(d.Bestiary, skeleton.PodMonster, depth, func(m Monster) SpawnDist { return m })
}

// ItemSpawns returns every armory entry eligible at depth, weighted by
// SpawnWeight.
func (d *Data) ItemSpawns(depth int) []skeleton.SpawnCandidate {
	return spawnCandidates(d.Armory, skeleton.PodItem, depth, func(i Item) SpawnDist { return i })
}

func spawnCandidates[T any](table map[string]T, kind skeleton.PodKind, depth int, dist func(T) SpawnDist) []skeleton.SpawnCandidate {
	var names []string
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []skeleton.SpawnCandidate
	for _, name := range names {
		sd := dist(table[name])
		if sd.MinDepth() > depth {
			continue
		}
		weight := SpawnWeight(sd)
		if weight <= 0 {
			continue
		}
		out = append(out, skeleton.SpawnCandidate{Name: name, Kind: kind, Weight: weight})
	}
	return out
}
