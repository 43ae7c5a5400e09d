package engine

import (
	"strings"
	"testing"

	"push-paint/midi"
)

type recordSink struct {
	frames int
	last   Frame
}

func (r *recordSink) Frame(f *Frame) error {
	r.frames++
	r.last = *f
	return nil
}

func newTestApp() (*App, *recordSink) {
	sink := &recordSink{}
	return NewApp(NewTable(), sink), sink
}

func press(a *App, pad int) {
	a.Submit(midi.Event{Type: midi.PadPress, Index: pad, Velocity: 100})
}

func release(a *App, pad int) {
	a.Submit(midi.Event{Type: midi.PadRelease, Index: pad})
}

func turn(a *App, knob, dir int) {
	a.Submit(midi.Event{Type: midi.KnobTurn, Index: knob, Dir: dir})
}

func TestPadPressCreatesDefaultAndEntity(t *testing.T) {
	app, sink := newTestApp()

	press(app, 0)
	app.Step()

	if !app.table.Has(0) {
		t.Fatal("press did not create an assignment")
	}
	if got := app.table.Get(0); got != DefaultConfig() {
		t.Errorf("created assignment = %+v, want default", got)
	}
	if len(app.entities) != 1 {
		t.Fatalf("live entities = %d, want 1", len(app.entities))
	}
	for _, e := range app.entities {
		if e.X != 0 || e.Y != 0 {
			t.Errorf("entity origin = (%d,%d), want (0,0)", e.X, e.Y)
		}
	}
	if sink.last[0][0] == (RGB{}) {
		t.Error("cell (0,0) dark on the spawn frame")
	}
}

func TestMomentaryExpiresAfterDuration(t *testing.T) {
	app, sink := newTestApp()

	press(app, 0) // default config: momentary, duration 15

	// ticks 0..15; the entity dies on the frame where tick reaches t1
	for i := 0; i < 16; i++ {
		app.Step()
	}
	if len(app.entities) != 0 {
		t.Fatalf("entity still live after duration: %d", len(app.entities))
	}

	app.Step()
	if sink.last[0][0] != (RGB{}) {
		t.Errorf("cell (0,0) not back to background: %+v", sink.last[0][0])
	}
}

func TestSustainLifecycle(t *testing.T) {
	app, _ := newTestApp()

	cfg := DefaultConfig()
	cfg.Animation = int(Stream)
	app.table.Set(9, cfg)

	press(app, 9)
	app.Step()

	e, ok := app.entities[PadSlot(9)]
	if !ok {
		t.Fatal("gated entity not keyed by its pad slot")
	}
	if e.X != 1 || e.Y != 1 {
		t.Errorf("pad 9 origin = (%d,%d), want (1,1)", e.X, e.Y)
	}

	for i := 0; i < 10; i++ {
		app.Step()
		if len(app.entities) != 1 {
			t.Fatalf("gated entity gone at step %d", i)
		}
	}

	release(app, 9)
	app.Step() // release applied this frame

	for i := 0; i < 4; i++ {
		app.Step()
		if len(app.entities) != 1 {
			t.Fatalf("released entity gone %d ticks early", 4-i)
		}
	}
	app.Step()
	if len(app.entities) != 0 {
		t.Error("released entity still live after the release window")
	}
}

func TestGatedReplacedMomentaryStacks(t *testing.T) {
	app, _ := newTestApp()

	cfg := DefaultConfig()
	cfg.Animation = int(VWave)
	app.table.Set(9, cfg)

	press(app, 9)
	press(app, 9)
	app.Step()
	if len(app.entities) != 1 {
		t.Errorf("repressed gated pad holds %d entities, want 1", len(app.entities))
	}

	app2, _ := newTestApp()
	press(app2, 0)
	press(app2, 0)
	press(app2, 0)
	app2.Step()
	if len(app2.entities) != 3 {
		t.Errorf("stacked momentary presses = %d entities, want 3", len(app2.entities))
	}
}

func TestReleaseIgnoresMomentary(t *testing.T) {
	app, _ := newTestApp()

	press(app, 0)
	app.Step()
	release(app, 0)
	app.Step()

	if len(app.entities) != 1 {
		t.Errorf("momentary entity affected by pad release: %d live", len(app.entities))
	}
}

func TestAnimationKnobWrapsBothEnds(t *testing.T) {
	app, _ := newTestApp()

	turn(app, KnobAnimation, -1)
	app.Step()
	if got := app.table.Get(0).Animation; got != AnimationCount-1 {
		t.Errorf("counter-clockwise from 0 = %d, want %d", got, AnimationCount-1)
	}

	turn(app, KnobAnimation, 1)
	app.Step()
	if got := app.table.Get(0).Animation; got != 0 {
		t.Errorf("clockwise from %d = %d, want 0", AnimationCount-1, got)
	}
}

func TestKnobEdits(t *testing.T) {
	app, _ := newTestApp()

	turn(app, KnobDistance, 1)
	turn(app, KnobRate, 1)
	turn(app, KnobHue, -1)
	turn(app, KnobThickness, 1)
	turn(app, KnobDuration, -1)
	app.Step()

	cfg := app.table.Get(0)
	if cfg.Distance != 1 {
		t.Errorf("distance = %d, want 1", cfg.Distance)
	}
	if cfg.Rate != 0.01 {
		t.Errorf("rate = %v, want 0.01", cfg.Rate)
	}
	if cfg.Hue != -1 {
		t.Errorf("hue = %v, want -1", cfg.Hue)
	}
	if cfg.Thickness != 1.01 {
		t.Errorf("thickness = %v, want 1.01", cfg.Thickness)
	}
	if cfg.Duration != 15/1.01 {
		t.Errorf("duration = %v, want %v", cfg.Duration, 15/1.01)
	}
}

func TestUnboundKnobIgnored(t *testing.T) {
	app, _ := newTestApp()

	turn(app, 4, 1)
	app.Step()

	if got := app.table.Get(0); got != DefaultConfig() {
		t.Errorf("unbound knob changed the config: %+v", got)
	}
}

func TestAssignModePaintsAndPreviews(t *testing.T) {
	app, sink := newTestApp()

	cfg := DefaultConfig()
	cfg.Hue = 120
	app.table.Set(5, cfg)

	press(app, 5) // pad 5 becomes active
	app.Step()

	app.Submit(midi.Event{Type: midi.ModeToggle, Pressed: true})
	press(app, 12) // painted from pad 5's config
	app.Step()

	if got := app.table.Get(12).Hue; got != 120 {
		t.Errorf("painted pad hue = %v, want 120", got)
	}

	// preview: assigned pad 5 shows its hue, unassigned pad 63 stays dark
	if sink.last[0][5].G <= 0 {
		t.Errorf("assigned pad preview dark: %+v", sink.last[0][5])
	}
	if sink.last[7][7] != (RGB{}) {
		t.Errorf("unassigned pad lit in assign mode: %+v", sink.last[7][7])
	}
}

func TestAssignOverwritesExistingEntry(t *testing.T) {
	app, _ := newTestApp()

	target := DefaultConfig()
	target.Hue = 40
	app.table.Set(3, target)

	active := DefaultConfig()
	active.Hue = 300
	app.table.Set(20, active)
	press(app, 20)
	app.Step()

	// outside assign mode an assigned pad keeps its own entry
	press(app, 3)
	app.Step()
	if got := app.table.Get(3).Hue; got != 40 {
		t.Fatalf("plain press overwrote assignment: hue %v", got)
	}

	press(app, 20)
	app.Submit(midi.Event{Type: midi.ModeToggle, Pressed: true})
	press(app, 3)
	app.Step()
	if got := app.table.Get(3).Hue; got != 300 {
		t.Errorf("assign-mode press did not overwrite: hue %v", got)
	}
}

func TestEntityConfigFrozenAgainstKnobEdits(t *testing.T) {
	app, _ := newTestApp()

	press(app, 0)
	app.Step()

	turn(app, KnobDuration, 1)
	app.Step()

	for _, e := range app.entities {
		if e.Params.Duration != 15 {
			t.Errorf("live entity followed a table edit: duration %v", e.Params.Duration)
		}
	}
	if got := app.table.Get(0).Duration; got == 15 {
		t.Error("table entry was not edited")
	}
}

func TestSnapshot(t *testing.T) {
	app, _ := newTestApp()

	app.Submit(midi.Event{Type: midi.KnobTouch, Index: 2, Pressed: true})
	press(app, 0)
	app.Step()

	s := app.Snapshot()
	if len(s.Touched) != 1 || s.Touched[0] != 2 {
		t.Errorf("touched = %v, want [2]", s.Touched)
	}
	if s.Entities != 1 {
		t.Errorf("entities = %d, want 1", s.Entities)
	}
	if !strings.Contains(s.Status, "Ripple") {
		t.Errorf("status %q missing animation name", s.Status)
	}
	if s.Tick != 1 {
		t.Errorf("tick = %v, want 1", s.Tick)
	}

	app.Submit(midi.Event{Type: midi.KnobTouch, Index: 2, Pressed: false})
	app.Step()
	if got := app.Snapshot().Touched; len(got) != 0 {
		t.Errorf("touched after release = %v, want empty", got)
	}
}
