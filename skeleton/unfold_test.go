package skeleton

import (
	"testing"

	"voxelrogue/lattice"
	"voxelrogue/rng"
	"voxelrogue/scenario"
)

type dummyGen struct{}

func (dummyGen) Run(*rng.Source, Lot) (Patch, error) { return Patch{}, nil }
func (dummyGen) HasWaypoint() bool                   { return false }

func dummyGeneric(scenario.GenericSector) (MapGenerator, error) { return dummyGen{}, nil }

func TestUnfoldRepeatDescendsZ(t *testing.T) {
	b := &branch{regions: map[lattice.Location]scenario.Region{}}
	slice := []scenario.Region{scenario.NewRepeat(3, scenario.NewGenerate(scenario.Dungeon))}
	if err := unfold(1, lattice.At(0, 0, 0), b, map[[2]int]bool{}, slice); err != nil {
		t.Fatalf("unfold: %v", err)
	}
	if len(b.order) != 3 {
		t.Fatalf("expected 3 emitted regions, got %d", len(b.order))
	}
	for i, want := range []int{0, -1, -2} {
		if b.order[i].Z != want {
			t.Errorf("region %d: z = %d, want %d", i, b.order[i].Z, want)
		}
	}
}

func TestUnfoldBranchNoRoomErrors(t *testing.T) {
	shafts := map[[2]int]bool{}
	origin := lattice.At(0, 0, 0)
	for _, d := range lattice.Dirs4 {
		n := origin.Step(d)
		shafts[[2]int{n.X, n.Y}] = true
	}
	b := &branch{regions: map[lattice.Location]scenario.Region{}}
	slice := []scenario.Region{scenario.NewBranch([]scenario.Region{scenario.NewGenerate(scenario.Dungeon)})}
	if err := unfold(1, origin, b, shafts, slice); err == nil {
		t.Error("expected an error when every neighboring shaft position is occupied")
	}
}

func TestUnfoldSiteHeightRule(t *testing.T) {
	b := &branch{regions: map[lattice.Location]scenario.Region{}}
	slice := []scenario.Region{
		scenario.NewSite(scenario.SectorMap{Map: "@"}),
		scenario.NewSite(scenario.SectorMap{Map: "."}),
		scenario.NewGenerate(scenario.Dungeon),
	}
	if err := unfold(1, lattice.At(0, 0, 0), b, map[[2]int]bool{}, slice); err != nil {
		t.Fatalf("unfold: %v", err)
	}
	zs := map[int]bool{}
	for _, p := range b.order {
		zs[p.Z] = true
	}
	for _, want := range []int{1, 0, -1} {
		if !zs[want] {
			t.Errorf("expected a region at z=%d, got positions %v", want, b.order)
		}
	}
}

func TestUnfoldUndergroundSiteErrors(t *testing.T) {
	b := &branch{regions: map[lattice.Location]scenario.Region{}}
	slice := []scenario.Region{scenario.NewSite(scenario.SectorMap{Map: "@"})}
	if err := unfold(1, lattice.At(0, 0, -1), b, map[[2]int]bool{}, slice); err == nil {
		t.Error("expected an error for a surface site at an underground branch origin")
	}
}

func TestBuildSkeletonSinglePlayerEntrance(t *testing.T) {
	sc := scenario.Scenario{
		Map: "A",
		Legend: []scenario.LegendEntry{
			{Char: 'A', Stack: []scenario.Region{
				scenario.NewSite(scenario.SectorMap{Map: "@"}),
				scenario.NewGenerate(scenario.Dungeon),
			}},
		},
	}
	start, skel, err := BuildSkeleton(1, sc, dummyGeneric)
	if err != nil {
		t.Fatalf("BuildSkeleton: %v", err)
	}
	if start != (lattice.At(0, 0, 0)) {
		t.Errorf("expected start at origin, got %v", start)
	}
	if len(skel) != 2 {
		t.Errorf("expected 2 skeleton segments, got %d", len(skel))
	}
}

func TestBuildSkeletonMultipleEntrancesErrors(t *testing.T) {
	sc := scenario.Scenario{
		Map: "AB",
		Legend: []scenario.LegendEntry{
			{Char: 'A', Stack: []scenario.Region{scenario.NewSite(scenario.SectorMap{Map: "@"})}},
			{Char: 'B', Stack: []scenario.Region{scenario.NewSite(scenario.SectorMap{Map: "@"})}},
		},
	}
	if _, _, err := BuildSkeleton(1, sc, dummyGeneric); err == nil {
		t.Error("expected an error for more than one player entrance")
	}
}

func TestBuildSkeletonNoEntranceErrors(t *testing.T) {
	sc := scenario.Scenario{
		Map: "A",
		Legend: []scenario.LegendEntry{
			{Char: 'A', Stack: []scenario.Region{scenario.NewGenerate(scenario.Dungeon)}},
		},
	}
	if _, _, err := BuildSkeleton(1, sc, dummyGeneric); err == nil {
		t.Error("expected an error when no region defines a player entrance")
	}
}

func TestBuildSkeletonMisalignedFixedUpstairsErrors(t *testing.T) {
	sc := scenario.Scenario{
		Map: "A",
		Legend: []scenario.LegendEntry{
			{Char: 'A', Stack: []scenario.Region{
				scenario.NewSite(scenario.SectorMap{Map: "@"}),
				scenario.NewGenerate(scenario.Dungeon),
				scenario.NewHall(scenario.SectorMap{Map: "<"}),
			}},
		},
	}
	if _, _, err := BuildSkeleton(1, sc, dummyGeneric); err == nil {
		t.Error("expected an error for a fixed upstairs that doesn't land on a valid stairwell cell")
	}
}
