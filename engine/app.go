package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"push-paint/debug"
	"push-paint/midi"
)

// Knob bindings. The midi layer hands the engine abstract knob indices:
// 0-7 for the top-row encoders, 8 for the master encoder, 9 for the jog
// wheel. Turns on any other index are logged and ignored.
const (
	KnobDistance  = 0
	KnobThickness = 1
	KnobRate      = 2
	KnobDuration  = 7
	KnobHue       = 8
	KnobAnimation = 9
)

const eventQueueSize = 256

// autosaveTicks flushes the table about once a second at the default rate.
const autosaveTicks = 30

// App owns the live entity set and the parameter table. A single Run loop
// applies control events and renders; nothing else mutates either.
type App struct {
	mu sync.Mutex

	events   chan midi.Event
	entities map[Slot]*Entity
	nextID   uint64
	table    *Table
	sink     FrameSink

	tick      float64
	active    int // pad whose configuration the knobs edit
	assigning bool
	touched   map[int]bool // knob indices currently touched

	frame   Frame
	status  string
	saveErr string

	// UpdateChan pulses after each frame, for display code.
	UpdateChan chan struct{}
}

// NewApp creates a compositor over the given table and frame sink.
func NewApp(table *Table, sink FrameSink) *App {
	return &App{
		events:     make(chan midi.Event, eventQueueSize),
		entities:   make(map[Slot]*Entity),
		table:      table,
		sink:       sink,
		touched:    make(map[int]bool),
		UpdateChan: make(chan struct{}, 1),
	}
}

// Submit queues a control event for the next frame. Order-preserving; the
// send only blocks if producers outrun the loop by the full queue depth.
func (a *App) Submit(ev midi.Event) {
	a.events <- ev
}

// Run renders frames at the fixed tick rate until ctx is cancelled. The
// loop never waits for input; each tick drains whatever is queued and
// renders regardless of event arrival gaps.
func (a *App) Run(ctx context.Context, tickRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Step()
		}
	}
}

// Step runs one frame: drain pending events, render and tone-map the grid,
// hand it to the sink, evict dead entities, advance the tick.
func (a *App) Step() {
	a.mu.Lock()

drain:
	for {
		select {
		case ev := <-a.events:
			a.handle(ev)
		default:
			break drain
		}
	}

	a.renderFrame()
	a.status = a.formatStatus()
	frame := a.frame
	a.mu.Unlock()

	if a.sink != nil {
		if err := a.sink.Frame(&frame); err != nil {
			debug.Log("frame", "sink: %v", err)
		}
	}

	a.mu.Lock()
	for slot, e := range a.entities {
		if e.IsDead(a.tick) {
			delete(a.entities, slot)
		}
	}
	a.tick++

	if int(a.tick)%autosaveTicks == 0 {
		if err := a.table.Save(); err != nil {
			a.saveErr = err.Error()
			debug.Log("save", "%v", err)
		} else {
			a.saveErr = ""
		}
	}
	a.mu.Unlock()

	select {
	case a.UpdateChan <- struct{}{}:
	default:
	}
}

// renderFrame fills a.frame for the current tick. In assigning mode every
// assigned pad shows its configured hue as a flat preview instead of the
// live entities.
func (a *App) renderFrame() {
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			var accum RGB
			if a.assigning {
				if cfg, ok := a.table.Assignments[y*GridSize+x]; ok {
					accum = HueColor(cfg.Hue)
				}
			} else {
				for _, e := range a.entities {
					accum = accum.Add(e.Render(a.tick, x, y))
				}
			}
			a.frame[y][x] = RGB{Saturate(accum.R), Saturate(accum.G), Saturate(accum.B)}
		}
	}
}

func (a *App) handle(ev midi.Event) {
	switch ev.Type {
	case midi.KnobTurn:
		a.turnKnob(ev.Index, ev.Dir)
	case midi.KnobTouch:
		if ev.Pressed {
			a.touched[ev.Index] = true
		} else {
			delete(a.touched, ev.Index)
		}
	case midi.PadPress:
		a.pressPad(ev.Index)
	case midi.PadRelease:
		if e, ok := a.entities[PadSlot(ev.Index)]; ok {
			e.Release(a.tick)
		}
	case midi.ModeToggle:
		a.assigning = ev.Pressed
	default:
		debug.Log("event", "ignored type=%d index=%d", ev.Type, ev.Index)
	}
}

// turnKnob mutates exactly one field of the active pad's configuration.
func (a *App) turnKnob(knob, dir int) {
	cfg := a.table.Get(a.active)

	switch knob {
	case KnobDistance:
		cfg.Distance += dir
	case KnobAnimation:
		cfg.Animation = floorMod(cfg.Animation+dir, AnimationCount)
	case KnobThickness:
		if dir > 0 {
			cfg.Thickness *= 1.01
		} else {
			cfg.Thickness /= 1.01
		}
	case KnobRate:
		cfg.Rate += 0.01 * float64(dir)
	case KnobDuration:
		if dir > 0 {
			cfg.Duration *= 1.01
		} else {
			cfg.Duration /= 1.01
		}
	case KnobHue:
		cfg.Hue += float64(dir)
	default:
		debug.Log("event", "knob %d unbound", knob)
		return
	}

	a.table.Set(a.active, cfg)
}

// pressPad makes the pad active, writes its assignment if needed, and
// spawns an entity from the (possibly fresh) configuration.
func (a *App) pressPad(pad int) {
	// First press of an unassigned pad, or any press while assigning,
	// copies the active configuration onto it.
	prev := a.table.Get(a.active)
	if !a.table.Has(pad) || a.assigning {
		a.table.Set(pad, prev)
	}
	a.active = pad
	cfg := a.table.Get(pad)

	e := NewEntity(cfg, a.tick, pad%GridSize, pad/GridSize)

	var slot Slot
	if e.Gated {
		slot = PadSlot(pad)
	} else {
		a.nextID++
		slot = FreshSlot(a.nextID)
	}
	a.entities[slot] = e
}

// formatStatus summarizes the active pad's configuration for display.
func (a *App) formatStatus() string {
	cfg := a.table.Get(a.active)
	return fmt.Sprintf("pad %02d  %s/%.1ff  %s  hue %.0f  w %.2f  rate %.2f",
		a.active, AnimationFromInt(cfg.Animation), cfg.Duration,
		DistanceFromInt(cfg.Distance), cfg.Hue, cfg.Thickness, cfg.Rate)
}

// Snapshot is a consistent view of the app state for display code.
type Snapshot struct {
	Frame     [GridSize][GridSize][3]uint8
	Tick      float64
	Status    string
	ActivePad int
	Assigning bool
	Touched   []int
	Entities  int
	SaveErr   string
}

// Snapshot copies the current display state.
func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := Snapshot{
		Tick:      a.tick,
		Status:    a.status,
		ActivePad: a.active,
		Assigning: a.assigning,
		Entities:  len(a.entities),
		SaveErr:   a.saveErr,
	}
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			s.Frame[y][x] = a.frame.RGB255(x, y)
		}
	}
	for k := range a.touched {
		s.Touched = append(s.Touched, k)
	}
	sort.Ints(s.Touched)
	return s
}
