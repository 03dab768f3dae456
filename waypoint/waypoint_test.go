package waypoint

import (
	"testing"

	"voxelrogue/config"
	"voxelrogue/lattice"
	"voxelrogue/rng"
	"voxelrogue/skeleton"
)

type stubGenerator struct{ waypoint bool }

func (g stubGenerator) Run(*rng.Source, skeleton.Lot) (skeleton.Patch, error) {
	return skeleton.Patch{}, nil
}
func (g stubGenerator) HasWaypoint() bool { return g.waypoint }

// corridor builds a straight west-to-east chain of n sectors at z=0,
// waypoints (altars) only at the two ends.
func corridor(n int) map[lattice.Box]*skeleton.Segment {
	skel := map[lattice.Box]*skeleton.Segment{}
	for i := 0; i < n; i++ {
		box := lattice.At(i*config.SectorWidth, 0, 0).Sector()
		skel[box] = &skeleton.Segment{
			ConnectedWest: i > 0,
			Generator:     stubGenerator{waypoint: i == 0 || i == n-1},
		}
	}
	return skel
}

func corridorBox(i int) lattice.Box {
	return lattice.At(i*config.SectorWidth, 0, 0).Sector()
}

func TestConstructWaypointGeometryConnectsEndpoints(t *testing.T) {
	skel := corridor(5)
	geo := ConstructWaypointGeometry(skel)

	a, b := corridorBox(0), corridorBox(4)
	pair := NewWaypointPair(a, b)
	if _, ok := geo.SegmentCover[pair]; !ok {
		t.Fatalf("expected a segment cover entry for the only two waypoints, got %v", geo.SegmentCover)
	}
}

func TestAreaBetweenWaypointsCoversWholeCorridor(t *testing.T) {
	skel := corridor(5)
	geo := ConstructWaypointGeometry(skel)

	area := geo.AreaBetweenWaypoints(corridorBox(0), corridorBox(4))
	for i := 0; i < 5; i++ {
		if _, ok := area[corridorBox(i)]; !ok {
			t.Errorf("expected sector %d to be in the area between the corridor's two waypoints", i)
		}
	}
}

func TestAreaBetweenWaypointsEmptyForUnreachable(t *testing.T) {
	skel := corridor(5)
	// Cut the corridor in the middle.
	skel[corridorBox(2)].ConnectedWest = false
	geo := ConstructWaypointGeometry(skel)

	area := geo.AreaBetweenWaypoints(corridorBox(0), corridorBox(4))
	if len(area) != 0 {
		t.Errorf("expected no area between waypoints that can't reach each other, got %v", area)
	}
}

func TestNewWaypointPairNormalizesOrder(t *testing.T) {
	a, b := corridorBox(0), corridorBox(1)
	if NewWaypointPair(a, b) != NewWaypointPair(b, a) {
		t.Error("WaypointPair should not depend on argument order")
	}
}

func TestComputeSegmentCoverMiddleTiesBothWaypoints(t *testing.T) {
	// 5-sector corridor: the middle sector (index 2) is equidistant from
	// both endpoint waypoints and unoccluded by either, so both should
	// cover it.
	skel := corridor(5)
	cover := computeSegmentCover(skel)

	mid := corridorBox(2)
	pair := NewWaypointPair(corridorBox(0), corridorBox(4))
	levs, ok := cover[pair]
	if !ok {
		t.Fatalf("expected the endpoint pair to have a cover set")
	}
	if _, ok := levs[mid]; !ok {
		t.Errorf("expected the midpoint sector to be covered by both endpoint waypoints, got %v", levs)
	}
}
