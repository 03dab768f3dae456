package skeleton

import (
	"fmt"
	"sort"

	"voxelrogue/config"
	"voxelrogue/lattice"
	"voxelrogue/rng"
	"voxelrogue/scenario"
)

// branch collects one Branch/Repeat unfolding pass: the primitive regions
// it produced, keyed by their 3D position, plus insertion order (scenario
// connectivity reads this in the order regions were unfolded, not sorted
// order).
type branch struct {
	regions map[lattice.Location]scenario.Region
	order   []lattice.Location
}

// unfold expands the structural Branch/Repeat region variants in slice
// into primitive (Generate/Site/Hall) regions, recording each one's
// position in b. Grounded on original_source's world/src/world.rs::unfold.
func unfold(seed uint64, origin lattice.Location, b *branch, shafts map[[2]int]bool, slice []scenario.Region) error {
	if len(slice) == 0 {
		return nil
	}

	shafts[[2]int{origin.X, origin.Y}] = true

	siteCount := 0
	for _, r := range slice {
		if !r.IsSite() {
			break
		}
		siteCount += r.Height()
	}
	if siteCount > 0 && origin.Z < 0 {
		return fmt.Errorf("skeleton: surface sites present at underground branch at %v", origin)
	}
	if siteCount > 1 {
		origin.Z = siteCount - 1
	}

	pos := origin
	for _, r := range slice {
		if r.Kind == scenario.Branch {
			var options []lattice.Location
			for _, d := range lattice.Dirs4 {
				np := pos.Step(d)
				if !shafts[[2]int{np.X, np.Y}] {
					options = append(options, np)
				}
			}
			if len(options) == 0 {
				return fmt.Errorf("skeleton: no room left for branch shaft at %v", pos)
			}
			src := rng.Derive(seed, "branch", pos)
			dir := options[src.Intn(len(options))]
			if err := unfold(seed, dir, b, shafts, r.Stack); err != nil {
				return err
			}
			continue
		}

		var err error
		pos, err = insertRegion(pos, r, b)
		if err != nil {
			return err
		}
	}

	return nil
}

// insertRegion places a Repeat or primitive region (never a Branch) into
// b starting at pos, returning the position the next sibling should start
// at (one z below the last primitive emitted).
func insertRegion(pos lattice.Location, r scenario.Region, b *branch) (lattice.Location, error) {
	switch r.Kind {
	case scenario.Branch:
		return pos, fmt.Errorf("skeleton: unfold passed a branch to insertRegion")
	case scenario.Repeat:
		if r.Inner == nil {
			return pos, nil
		}
		for i := 0; i < r.Count; i++ {
			var err error
			pos, err = insertRegion(pos, *r.Inner, b)
			if err != nil {
				return pos, err
			}
		}
		return pos, nil
	default:
		b.regions[pos] = r
		b.order = append(b.order, pos)
		return pos.Down(), nil
	}
}

// BuildSkeleton unfolds every region in sc's scenario map into a
// sector-keyed skeleton, deterministically reseeded from worldSeed.
// Grounded on original_source's world/src/world.rs::build_skeleton.
func BuildSkeleton(worldSeed uint64, sc scenario.Scenario, genericGen func(scenario.GenericSector) (MapGenerator, error)) (lattice.Location, map[lattice.Box]*Segment, error) {
	regionsByPoint, err := sc.Regions()
	if err != nil {
		return lattice.Location{}, nil, err
	}

	points := make([]scenario.Point, 0, len(regionsByPoint))
	for p := range regionsByPoint {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})

	skeleton := make(map[lattice.Box]*Segment)
	shafts := map[[2]int]bool{}
	var startPos lattice.Location
	haveStart := false

	for _, p := range points {
		slice := regionsByPoint[p]
		b := &branch{regions: map[lattice.Location]scenario.Region{}}
		origin := lattice.At(p.X, p.Y, 0)
		if err := unfold(worldSeed, origin, b, shafts, slice); err != nil {
			return lattice.Location{}, nil, err
		}

		for _, bp := range b.order {
			r := b.regions[bp]
			// bp counts in whole sectors (one map cell or branch step each);
			// scale it to the sector's voxel origin.
			sectorBox := lattice.At(bp.X*config.SectorWidth, bp.Y*config.SectorHeight, bp.Z).Sector()
			sectorOrigin := sectorBox.Min

			_, hasAbove := b.regions[bp.Up()]
			isTop := !hasAbove

			_, hasNorth := b.regions[bp.Step(lattice.North)]
			_, northHasAbove := b.regions[bp.Step(lattice.North).Up()]
			connectedNorth := hasNorth && (isTop || !northHasAbove)

			_, hasWest := b.regions[bp.Step(lattice.West)]
			_, westHasAbove := b.regions[bp.Step(lattice.West).Up()]
			connectedWest := hasWest && (isTop || !westHasAbove)

			var connectedDown lattice.Location
			hasConnectedDown := false
			if below, ok := b.regions[bp.Down()]; ok {
				switch {
				case r.IsPrefab():
					// Prefab maps connect however their own layout does;
					// don't second-guess it here.
				default:
					if upPos, fixed := below.FixedUpstairs(); fixed {
						loc := lattice.At(sectorOrigin.X+upPos.X, sectorOrigin.Y+upPos.Y, bp.Z-1)
						aligned := SnapStairwellPosition(loc)
						if loc != aligned {
							return lattice.Location{}, nil, fmt.Errorf(
								"skeleton: upstairs at %v misaligned at %v, closest matching is %v", bp.Down(), loc, aligned)
						}
						connectedDown, hasConnectedDown = loc, true
					} else {
						connectedDown, hasConnectedDown = DefaultDownStairs(worldSeed, sectorBox), true
					}
				}
			}

			var seg *Segment
			switch r.Kind {
			case scenario.Generate:
				generator, err := genericGen(r.Sector)
				if err != nil {
					return lattice.Location{}, nil, err
				}
				seg = &Segment{
					ConnectedNorth:   connectedNorth,
					ConnectedWest:    connectedWest,
					ConnectedDown:    connectedDown,
					HasConnectedDown: hasConnectedDown,
					Generator:        generator,
				}
			case scenario.Site, scenario.Hall:
				for _, e := range r.Map.Entrances() {
					entrance := lattice.At(sectorOrigin.X+e.X, sectorOrigin.Y+e.Y, bp.Z)
					if haveStart {
						return lattice.Location{}, nil, fmt.Errorf("skeleton: scenario defines more than one player entrance")
					}
					startPos, haveStart = entrance, true
				}

				patch, err := patchFromSectorMap(sectorOrigin, r.Map)
				if err != nil {
					return lattice.Location{}, nil, err
				}

				down, hasDown := r.Map.FindDownstairs()
				seg = &Segment{Generator: patch}
				if hasDown {
					seg.ConnectedDown = lattice.At(sectorOrigin.X+down.X, sectorOrigin.Y+down.Y, bp.Z-1)
					seg.HasConnectedDown = true
				}
			default:
				return lattice.Location{}, nil, fmt.Errorf("skeleton: unfold left a structural region (%v) in output", r.Kind)
			}

			skeleton[sectorBox] = seg
		}
	}

	if !haveStart {
		return lattice.Location{}, nil, fmt.Errorf("skeleton: no player start position specified")
	}

	return startPos, skeleton, nil
}
