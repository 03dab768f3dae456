package lattice

// WidePoint is a location in the wide-unfolded (doubled-x) display
// projection: (2x, y, z). Cells at odd x are "interstitial" and display the
// mix of their two real neighbors.
type WidePoint struct {
	X, Y, Z int
}

// Widen projects a real location into wide-unfolded coordinates.
func (l Location) Widen() WidePoint {
	return WidePoint{2 * l.X, l.Y, l.Z}
}

// IsInterstitial reports whether a wide point sits between two real cells.
func (w WidePoint) IsInterstitial() bool {
	return w.X%2 != 0
}

// FoldPrimary folds a wide point back to its primary real location, using
// Euclidean rounding: ((x+1) div 2, y, z).
func (w WidePoint) FoldPrimary() Location {
	return Location{divEuclid(w.X+1, 2), w.Y, w.Z}
}

// FoldSides returns the two real locations an interstitial wide point may
// fold to: the one at w.X-1 and the one at w.X+1 (both divided by 2).
func (w WidePoint) FoldSides() (a, b Location) {
	return Location{divEuclid(w.X-1, 2), w.Y, w.Z},
		Location{divEuclid(w.X+1, 2), w.Y, w.Z}
}
