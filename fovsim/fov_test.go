package fovsim

import (
	"testing"

	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

func TestComputeSeesOpenFloor(t *testing.T) {
	store := terrain.NewStore()
	vp := lattice.At(5, 5, 0)
	// Carve out a small open room at z=0 with support below.
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			store.SetVoxel(lattice.At(x, y, 0), terrain.None)
		}
	}

	visible := Compute(store, vp, 5, nil)
	if _, ok := visible[vp]; !ok {
		t.Error("the viewpoint's own cell should always be visible")
	}
	if _, ok := visible[lattice.At(6, 5, 0)]; !ok {
		t.Error("adjacent open floor within radius should be visible")
	}
}

func TestComputeStopsAtWall(t *testing.T) {
	store := terrain.NewStore()
	vp := lattice.At(0, 0, 0)
	for x := -10; x < 10; x++ {
		for y := -10; y < 10; y++ {
			store.SetVoxel(lattice.At(x, y, 0), terrain.None)
		}
	}
	// A solid wall two cells east, with a solid ceiling so it reads as Wall.
	store.SetVoxel(lattice.At(2, 0, 0), terrain.Some(terrain.Stone))
	store.SetVoxel(lattice.At(2, 0, 1), terrain.Some(terrain.Stone))

	visible := Compute(store, vp, 8, nil)
	if _, ok := visible[lattice.At(5, 0, 0)]; ok {
		t.Error("cell behind a wall should not be visible")
	}
}

func TestComputeClampedToOwnSector(t *testing.T) {
	store := terrain.NewStore()
	b := lattice.At(0, 0, 0).Sector()
	vp := lattice.At(b.Max.X-1, b.Min.Y, 0)
	for x := b.Min.X - 5; x < b.Max.X+5; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			store.SetVoxel(lattice.At(x, y, 0), terrain.None)
		}
	}

	visible := Compute(store, vp, 20, nil)
	outside := lattice.At(b.Max.X+2, b.Min.Y, 0)
	if _, ok := visible[outside]; ok {
		t.Error("FOV should not cross the viewpoint sector's boundary")
	}
}
