package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"push-paint/config"
	"push-paint/debug"
	"push-paint/engine"
	"push-paint/midi"
	"push-paint/tui"
)

// padSink converts rendered frames into Push 2 palette updates
type padSink struct {
	p2 *midi.Push2
}

func (s padSink) Frame(f *engine.Frame) error {
	var colors [64][3]uint8
	for y := 0; y < engine.GridSize; y++ {
		for x := 0; x < engine.GridSize; x++ {
			colors[y*engine.GridSize+x] = f.RGB255(x, y)
		}
	}
	return s.p2.SetPads(&colors)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug {
		debug.Enable()
	}

	paramsPath := cfg.ParamsPath
	if paramsPath == "" {
		paramsPath, err = config.DefaultParamsPath()
		if err != nil {
			fmt.Printf("assignments path: %v\n", err)
			os.Exit(1)
		}
	}

	table, err := engine.LoadTable(paramsPath)
	if err != nil {
		fmt.Printf("load assignments: %v\n", err)
		os.Exit(1)
	}

	p2, err := midi.Open(cfg.PortName)
	if err != nil {
		fmt.Printf("push 2: %v\n", err)
		os.Exit(1)
	}
	defer p2.Close()

	app := engine.NewApp(table, padSink{p2: p2})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Forward controller events into the engine queue
	go func() {
		for ev := range p2.Events() {
			app.Submit(ev)
		}
	}()

	runDone := make(chan struct{})
	go func() {
		app.Run(ctx, cfg.TickRate)
		close(runDone)
	}()

	m := tui.NewModel(app)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cancel()
	<-runDone

	if err := table.Save(); err != nil {
		fmt.Printf("save assignments: %v\n", err)
	}
}
