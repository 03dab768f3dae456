package skeleton

import "voxelrogue/lattice"

// ConstructLot builds the Lot a sector's generator should run against from
// its own and its neighbors' skeleton entries. Grounded on
// original_source's world/src/world.rs::World::construct_lot.
func ConstructLot(skel map[lattice.Box]*Segment, sectorBox lattice.Box) Lot {
	east := lattice.At(sectorBox.Max.X, sectorBox.Min.Y, sectorBox.Min.Z).Sector()
	south := lattice.At(sectorBox.Min.X, sectorBox.Max.Y, sectorBox.Min.Z).Sector()
	above := lattice.At(sectorBox.Min.X, sectorBox.Min.Y, sectorBox.Min.Z+1).Sector()

	var sides uint8
	if s := skel[sectorBox]; s != nil && s.ConnectedNorth {
		sides |= SideNorth
	}
	if s := skel[east]; s != nil && s.ConnectedWest {
		sides |= SideEast
	}
	if s := skel[south]; s != nil && s.ConnectedNorth {
		sides |= SideSouth
	}
	if s := skel[sectorBox]; s != nil && s.ConnectedWest {
		sides |= SideWest
	}

	lot := Lot{Volume: sectorBox, Sides: sides}
	if s := skel[above]; s != nil && s.HasConnectedDown {
		lot.Up, lot.HasUp = s.ConnectedDown, true
	}
	if s := skel[sectorBox]; s != nil && s.HasConnectedDown {
		lot.Down, lot.HasDown = s.ConnectedDown, true
	}

	return lot
}
