package engine

import "math"

// Window is a bell curve with peak 1 at v=0, decaying symmetrically.
// thickness stretches the curve, turning a signed offset from an edge or
// ring into a soft intensity.
func Window(v, thickness float64) float64 {
	r := 2.5 * v / thickness
	return math.Exp(-(r * r))
}

// Saturate tone-maps an accumulated channel into [0,1) without hard
// clipping. Saturate(0) = 0.
func Saturate(x float64) float64 {
	return 1 - math.Exp(-x)
}
