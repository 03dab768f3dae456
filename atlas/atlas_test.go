package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

func TestCharAtlasRoundTrip(t *testing.T) {
	origin := lattice.At(0, 0, 0)
	src := map[lattice.Location]terrain.Voxel{
		lattice.At(0, 0, 0): terrain.Some(terrain.Stone),
		lattice.At(1, 0, 0): terrain.None,
		lattice.At(0, 1, 0): terrain.Some(terrain.Door),
	}
	a := FromVoxels(origin, 2, 2, func(l lattice.Location) (terrain.Voxel, bool) {
		v, ok := src[l]
		return v, ok
	})

	got := a.Voxels()
	assert.Equal(t, src, got)
}

// TestBitAtlasRoundTrip is spec.md §8 property 1: for every finite set
// S ⊂ ℤ³, BitAtlas::iter(BitAtlas::from(S)) == S.
func TestBitAtlasRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(rt, "n")
		seen := map[lattice.Location]struct{}{}
		var locs []lattice.Location
		for i := 0; i < n; i++ {
			l := lattice.At(
				rapid.IntRange(-20, 20).Draw(rt, "x"),
				rapid.IntRange(-20, 20).Draw(rt, "y"),
				rapid.IntRange(-3, 3).Draw(rt, "z"),
			)
			if _, dup := seen[l]; dup {
				continue
			}
			seen[l] = struct{}{}
			locs = append(locs, l)
		}

		ba := FromCloud(locs)
		got := ba.Locations()

		gotSet := map[lattice.Location]struct{}{}
		for _, l := range got {
			gotSet[l] = struct{}{}
		}
		if len(gotSet) != len(seen) {
			rt.Fatalf("round-trip changed cardinality: want %d got %d", len(seen), len(gotSet))
		}
		for l := range seen {
			if _, ok := gotSet[l]; !ok {
				rt.Fatalf("lost point %v in round-trip", l)
			}
		}
	})
}
