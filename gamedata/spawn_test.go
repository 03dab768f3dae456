package gamedata

import (
	"testing"

	"voxelrogue/ecs"
	"voxelrogue/lattice"
	"voxelrogue/placement"
	"voxelrogue/skeleton"
	"voxelrogue/terrain"
)

func openFloorStore(locs ...lattice.Location) *terrain.Store {
	store := terrain.NewStore()
	for _, l := range locs {
		store.SetVoxel(l, terrain.None)
	}
	return store
}

func floorArea(z int, n int) []lattice.Location {
	var out []lattice.Location
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			out = append(out, lattice.At(x, y, z))
		}
	}
	return out
}

func TestSpawnPodPlacesMonsterOnOpenFloor(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()
	ix := placement.NewIndex()
	store := openFloorStore(floorArea(0, 5)...)

	pod := skeleton.NewPod("goblin", skeleton.PodMonster)
	placed := SpawnPod(w, ix, store, &d, lattice.At(2, 2, 0), pod)

	if len(placed) != 1 {
		t.Fatalf("expected one monster placed, got %d", len(placed))
	}
	loc, ok := ix.LocationOf(placed[0])
	if !ok {
		t.Fatal("spawned monster should have a location")
	}
	if !store.CanBeStoodIn(loc) {
		t.Errorf("spawned monster should land on open floor, got %v", loc)
	}
}

func TestSpawnPodStacksCountedItems(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()
	ix := placement.NewIndex()
	store := openFloorStore(floorArea(0, 5)...)

	pod := skeleton.Pod{{Object: skeleton.PodObject{Count: 3, Name: "potion", Kind: skeleton.PodItem}}}
	placed := SpawnPod(w, ix, store, &d, lattice.At(2, 2, 0), pod)

	if len(placed) != 1 {
		t.Fatalf("expected a stackable item to spawn as a single entity, got %d", len(placed))
	}
	if got := ecs.Count(w, placed[0]); got != 3 {
		t.Errorf("expected stack count 3, got %d", got)
	}
}

func TestSpawnPodSpawnsIndependentCopiesForNonStackingCount(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()
	ix := placement.NewIndex()
	store := openFloorStore(floorArea(0, 8)...)

	pod := skeleton.Pod{{Object: skeleton.PodObject{Count: 3, Name: "goblin", Kind: skeleton.PodMonster}}}
	placed := SpawnPod(w, ix, store, &d, lattice.At(2, 2, 0), pod)

	if len(placed) != 3 {
		t.Fatalf("expected 3 independent goblin clones, got %d", len(placed))
	}
	seen := map[lattice.Location]bool{}
	for _, e := range placed {
		loc, ok := ix.LocationOf(e)
		if !ok {
			t.Fatal("each clone should have a location")
		}
		if seen[loc] {
			t.Errorf("mob clones should not share a cell, duplicate at %v", loc)
		}
		seen[loc] = true
	}
}

func TestSpawnPodAutoEquipsMobChildren(t *testing.T) {
	d := sampleData()
	w := ecs.NewWorld()
	ix := placement.NewIndex()
	store := openFloorStore(floorArea(0, 5)...)

	pod := skeleton.Pod{{
		Object:   skeleton.PodObject{Count: 1, Name: "goblin", Kind: skeleton.PodMonster},
		Children: skeleton.NewPod("short sword", skeleton.PodItem),
	}}
	placed := SpawnPod(w, ix, store, &d, lattice.At(2, 2, 0), pod)
	if len(placed) != 1 {
		t.Fatalf("expected one goblin placed, got %d", len(placed))
	}

	children := ix.In(placed[0])
	if len(children) != 1 {
		t.Fatalf("expected the sword to be carried by the goblin, got %d", len(children))
	}
	if slot := ecs.With[string](w, children[0], ecs.KindEquippedAt); slot != "run-hand" {
		t.Errorf("expected the sword to be auto-equipped to run-hand, got %q", slot)
	}
}
