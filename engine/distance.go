package engine

import "math"

// Distance selects the metric used by spatially-gated animations.
type Distance int

const (
	Euclidean Distance = iota
	Chebyshev
	Manhattan
	Rook
	Bishop
)

// distanceCount is the selector modulus. Slot 5 is reserved, so only five
// metrics are live and selector value 5 resolves to Euclidean.
const distanceCount = 6

// Unreachable is the sentinel Rook and Bishop return for cells they cannot
// reach. Larger than any real grid distance; animations treat it as "no
// effect here".
const Unreachable = 1024.0

// DistanceFromInt resolves a selector value, floor-modulo distanceCount.
func DistanceFromInt(i int) Distance {
	switch floorMod(i, distanceCount) {
	case 0:
		return Euclidean
	case 1:
		return Chebyshev
	case 2:
		return Manhattan
	case 3:
		return Rook
	case 4:
		return Bishop
	default: // reserved slot 5
		return Euclidean
	}
}

func (d Distance) String() string {
	switch d {
	case Euclidean:
		return "Euclidean"
	case Chebyshev:
		return "Chebyshev"
	case Manhattan:
		return "Manhattan"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	}
	return "Unknown"
}

// Eval returns the scalar distance from (x0,y0) to (x1,y1) under the metric.
func (d Distance) Eval(x0, y0, x1, y1 int) float64 {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	switch d {
	case Euclidean:
		return math.Sqrt(dx*dx + dy*dy)
	case Chebyshev:
		return math.Max(dx, dy)
	case Manhattan:
		return dx + dy
	case Rook:
		if dx == 0 {
			return dy
		}
		if dy == 0 {
			return dx
		}
		return Unreachable
	case Bishop:
		if dx == dy {
			return dx
		}
		return Unreachable
	}
	return Unreachable
}

// floorMod wraps i into [0,n) for negative i too.
func floorMod(i, n int) int {
	return ((i % n) + n) % n
}
