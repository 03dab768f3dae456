package skeleton

import (
	"testing"

	"voxelrogue/config"
	"voxelrogue/lattice"
	"voxelrogue/rng"
)

func TestBigRoomOpensFloorAndStairwells(t *testing.T) {
	volume := lattice.At(0, 0, 0).Sector()
	up := lattice.At(volume.Min.X+3, volume.Min.Y+3, 0)
	down := lattice.At(volume.Min.X+10, volume.Min.Y+10, 0)
	lot := Lot{
		Volume: volume,
		Sides:  SideNorth | SideSouth,
		Up:     up, HasUp: true,
		Down: down, HasDown: true,
	}

	patch, err := bigRoom(rng.Derive(1, "test"), lot, config.DefaultTuning(), nil)
	if err != nil {
		t.Fatalf("bigRoom: %v", err)
	}

	z := volume.Max.Z - 1
	upFloor := lattice.At(up.X, up.Y, z)
	downFloor := lattice.At(down.X, down.Y, z)
	if v := patch.Terrain[upFloor]; !v.IsNone() {
		t.Errorf("upstairs cell should be open floor, got %+v", v)
	}
	if v := patch.Terrain[downFloor]; !v.IsNone() {
		t.Errorf("downstairs cell should be open floor, got %+v", v)
	}

	// A corner away from any scattered pillar should still be open, since
	// pillars stay clear of the border.
	corner := lattice.At(volume.Min.X, volume.Min.Y, z)
	if v := patch.Terrain[corner]; !v.IsNone() {
		t.Errorf("border cell should stay open so neighboring sectors always connect, got %+v", v)
	}
}

func TestBigRoomScattersWeightedSpawns(t *testing.T) {
	volume := lattice.At(0, 0, 0).Sector()
	lot := Lot{Volume: volume}
	src := fakeSpawns{
		monsters: []SpawnCandidate{{Name: "goblin", Weight: 1}},
	}
	patch, err := bigRoom(rng.Derive(7, "test"), lot, config.DefaultTuning(), src)
	if err != nil {
		t.Fatalf("bigRoom: %v", err)
	}
	if len(patch.Spawns) == 0 {
		t.Error("expected at least one monster spawn to be scattered")
	}
	for _, s := range patch.Spawns {
		objs := s.Spawn.Objects()
		if len(objs) != 1 || objs[0].Name != "goblin" || objs[0].Kind != PodMonster {
			t.Errorf("unexpected spawn %+v", objs)
		}
		if v := patch.Terrain[s.Loc]; !v.IsNone() {
			t.Errorf("spawn at %v should land on open floor, got %+v", s.Loc, v)
		}
	}
}

type fakeSpawns struct {
	monsters []SpawnCandidate
	items    []SpawnCandidate
}

func (f fakeSpawns) MonsterSpawns(int) []SpawnCandidate { return f.monsters }
func (f fakeSpawns) ItemSpawns(int) []SpawnCandidate    { return f.items }
