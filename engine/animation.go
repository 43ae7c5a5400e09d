package engine

// Animation selects one of the catalog's visual effects.
type Animation int

const (
	Ripple Animation = iota
	Cross
	VWave
	Stream
	DropTheBass
)

// AnimationCount is the selector modulus.
const AnimationCount = 5

// AnimationFromInt resolves a selector value, floor-modulo AnimationCount.
func AnimationFromInt(i int) Animation {
	return Animation(floorMod(i, AnimationCount))
}

func (a Animation) String() string {
	switch a {
	case Ripple:
		return "Ripple"
	case Cross:
		return "Cross"
	case VWave:
		return "VWave"
	case Stream:
		return "Stream"
	case DropTheBass:
		return "DropTheBass"
	}
	return "Unknown"
}

// Gated reports whether the variant sustains until an explicit release
// instead of expiring on its own.
func (a Animation) Gated() bool {
	switch a {
	case VWave, Stream, DropTheBass:
		return true
	default:
		return false
	}
}

// DropTheBass artwork: four block letters spelling BASS, one per grid
// quadrant, each with its own fixed hue. Coordinates are (x,y) with y=0
// the bottom row.
var glyphLetters = [4][][2]int{
	// B, top left
	{{0, 7}, {1, 7}, {0, 6}, {2, 6}, {0, 5}, {1, 5}, {0, 4}, {1, 4}, {2, 4}},
	// A, top right
	{{5, 7}, {4, 6}, {6, 6}, {4, 5}, {5, 5}, {6, 5}, {4, 4}, {6, 4}},
	// S, bottom left
	{{1, 3}, {2, 3}, {0, 2}, {2, 1}, {0, 0}, {1, 0}},
	// S, bottom right
	{{5, 3}, {6, 3}, {4, 2}, {6, 1}, {4, 0}, {5, 0}},
}

// magenta, red, blue, cyan
var glyphHues = [4]float64{300, 0, 240, 180}

var glyphColors [4]RGB

func init() {
	for i, h := range glyphHues {
		glyphColors[i] = HueColor(h)
	}
}
