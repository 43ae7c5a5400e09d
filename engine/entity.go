package engine

import "math"

// Config is the persisted, user-editable recipe for a spawned entity.
// Duration and Thickness are not clamped; knob edits can drive them to
// zero or negative and the resulting NaN/Inf contributions are absorbed
// by the tone-mapping step.
type Config struct {
	Animation int     `yaml:"animation"`
	Hue       float64 `yaml:"hue"`       // degrees, wraps through color conversion
	Duration  float64 `yaml:"duration"`  // envelope time constant, in ticks
	Thickness float64 `yaml:"thickness"` // spatial width of the rendered shape
	Rate      float64 `yaml:"rate"`      // per-animation speed multiplier
	Distance  int     `yaml:"distance"`
}

// DefaultConfig is the recipe a pad gets on first use.
func DefaultConfig() Config {
	return Config{
		Animation: 0,
		Hue:       0,
		Duration:  15,
		Thickness: 1,
		Rate:      0,
		Distance:  0,
	}
}

// Slot identifies one live entity. Gated entities occupy their pad's slot,
// so pressing the pad again replaces the held entity; momentary entities
// each take a fresh counter value and stack independently. Two distinct
// cases rather than one integer space, so the counter can never collide
// with a pad index.
type Slot struct {
	Pad   int
	Fresh uint64
}

func PadSlot(pad int) Slot     { return Slot{Pad: pad} }
func FreshSlot(id uint64) Slot { return Slot{Pad: -1, Fresh: id} }

// ReleaseTicks is the fade-out window granted to a gated entity on release.
const ReleaseTicks = 5

// Entity is one spawned animation instance anchored at a grid cell.
type Entity struct {
	Anim  Animation
	Dist  Distance
	X, Y  int
	Color RGB
	T0    float64 // creation tick
	T1    float64 // scheduled expiry, meaningful only while not gated
	Gated bool

	// Params is a frozen copy of the spawning config; later table edits
	// never reach a live entity.
	Params Config
}

// NewEntity spawns an entity from a config snapshot at tick t.
func NewEntity(cfg Config, t float64, x, y int) *Entity {
	anim := AnimationFromInt(cfg.Animation)
	return &Entity{
		Anim:   anim,
		Dist:   DistanceFromInt(cfg.Distance),
		X:      x,
		Y:      y,
		Color:  HueColor(cfg.Hue),
		T0:     t,
		T1:     t + cfg.Duration,
		Gated:  anim.Gated(),
		Params: cfg,
	}
}

// phase is linear progress through the scheduled life: frozen at 0 while
// gated, unclamped past 1 otherwise.
func (e *Entity) phase(t float64) float64 {
	if e.Gated {
		return 0
	}
	return (t - e.T0) / e.Params.Duration
}

// decay fades a contribution out over the entity's life. Linear.
func (e *Entity) decay(t float64) float64 {
	return 1 - e.phase(t)
}

// IsDead reports whether the entity should be evicted at tick t. Gated
// entities never die by time alone.
func (e *Entity) IsDead(t float64) bool {
	return !e.Gated && t >= e.T1
}

// Release moves a gated entity into its short fade-out window. No-op once
// released.
func (e *Entity) Release(t float64) {
	if !e.Gated {
		return
	}
	e.Gated = false
	e.T1 = t + ReleaseTicks
}

// Render returns the entity's color contribution at cell (x,y) for tick t.
func (e *Entity) Render(t float64, x, y int) RGB {
	switch e.Anim {
	case Ripple:
		// expanding ring
		r := e.Dist.Eval(e.X, e.Y, x, y) - e.phase(t)*12
		return e.Color.Scale(Window(r, e.Params.Thickness))

	case Cross:
		// plus shape growing along the origin's row and column
		if y == e.Y {
			return e.Color.Scale(Window(math.Abs(float64(x-e.X))-e.phase(t)*8, e.Params.Thickness))
		}
		if x == e.X {
			return e.Color.Scale(Window(math.Abs(float64(y-e.Y))-e.phase(t)*8, e.Params.Thickness))
		}
		return RGB{}

	case VWave:
		// traveling sine ripple
		theta := math.Pi * t * e.Params.Rate
		phaseX := math.Pi * float64(x-e.X) / 4
		amp := math.Sin(theta+phaseX) * 4
		return e.Color.Scale(Window(amp-float64(y-e.Y), e.Params.Thickness) * e.decay(t))

	case Stream:
		// interference pattern gated to a radius
		d := e.Dist.Eval(e.X, e.Y, x, y)
		if d >= 12 {
			return RGB{}
		}
		amp := math.Sin(t/e.Params.Duration - d*e.Params.Rate)
		return e.Color.Scale(Window(amp, e.Params.Thickness) * e.decay(t))

	case DropTheBass:
		// fixed overlay, independent of origin and distance
		k := e.decay(t)
		for i, letter := range glyphLetters {
			for _, p := range letter {
				if p[0] == x && p[1] == y {
					return glyphColors[i].Scale(k)
				}
			}
		}
		return RGB{}
	}
	return RGB{}
}
