// Package main is a terminal host for the pan/zoom engine. It loads an
// HTML layout standing in for the host application's view tree, runs
// the engine against it, and translates terminal mouse wheel input into
// wheel events on the active surface.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/chowsonice/obsidian-panzoom/internal/config"
	"github.com/chowsonice/obsidian-panzoom/internal/dom"
	"github.com/chowsonice/obsidian-panzoom/internal/engine"
	"github.com/chowsonice/obsidian-panzoom/internal/layout"
	"github.com/chowsonice/obsidian-panzoom/internal/logging"
	"github.com/chowsonice/obsidian-panzoom/internal/reconcile"
	"github.com/chowsonice/obsidian-panzoom/internal/workspace"
)

// Version information (set via ldflags during build).
var version = "dev"

// wheelDelta is the per-notch delta reported for terminal wheel input,
// roughly one browser wheel line.
const wheelDelta = 30

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		layoutPath  string
		logPath     string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "panzoom.toml", "Path to configuration file")
	flag.StringVar(&layoutPath, "layout", "", "Layout HTML file (overrides config)")
	flag.StringVar(&logPath, "log", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("panzoom", version)
		return 0
	}

	opts, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if layoutPath != "" {
		opts.LayoutPath = layoutPath
	}

	// The terminal owns stderr once the screen is up, so logs default
	// to discard unless a log file is given.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log := logging.New(logOut, logging.ParseLevel(opts.LogLevel))

	doc, err := layout.LoadFile(opts.LayoutPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ws := workspace.New(doc)
	eng := engine.New(ws, log)
	if err := eng.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer eng.Shutdown()

	var changes <-chan struct{}
	if opts.WatchLayout {
		watcher, err := layout.NewWatcher(opts.LayoutPath)
		if err != nil {
			log.Warn("layout watcher disabled: %v", err)
		} else {
			defer watcher.Close()
			changes = watcher.Changes()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()
	screen.EnableMouse()

	// The host layout is "built" once the screen is running.
	ws.SignalLayoutReady()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)
	defer close(quit)

	active := 0
	for {
		surfaces := reconcile.Discover(doc)
		if active >= len(surfaces) {
			active = 0
		}
		draw(screen, eng, surfaces, active, opts.LayoutPath)

		select {
		case <-changes:
			if err := layout.Reload(doc, opts.LayoutPath); err != nil {
				log.Error("layout reload: %v", err)
			}

		case ev := <-events:
			switch tev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case tev.Key() == tcell.KeyEscape, tev.Key() == tcell.KeyCtrlC, tev.Rune() == 'q':
					return 0
				case tev.Key() == tcell.KeyTab:
					active++
				case tev.Rune() == 'h':
					hideSurface(surfaces, active)
					ws.Trigger(workspace.EventLayoutChange)
				case tev.Rune() == 'f':
					ws.Trigger(workspace.EventFileOpen)
				case tev.Rune() == 'v':
					ws.Trigger(workspace.EventActiveViewChange)
				}

			case *tcell.EventMouse:
				if wheel := wheelEvent(tev); wheel != nil && len(surfaces) > 0 {
					surfaces[active%len(surfaces)].DispatchWheel(wheel)
				}

			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}
}

// wheelEvent translates a terminal mouse event into a dom wheel event,
// or nil when no wheel button is involved.
func wheelEvent(ev *tcell.EventMouse) *dom.WheelEvent {
	var dx, dy float64
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		dy = -wheelDelta
	case ev.Buttons()&tcell.WheelDown != 0:
		dy = wheelDelta
	case ev.Buttons()&tcell.WheelLeft != 0:
		dx = -wheelDelta
	case ev.Buttons()&tcell.WheelRight != 0:
		dx = wheelDelta
	default:
		return nil
	}
	return &dom.WheelEvent{
		DeltaX:  dx,
		DeltaY:  dy,
		CtrlKey: ev.Modifiers()&tcell.ModCtrl != 0,
	}
}

// hideSurface marks the active surface display:none, the same way the
// host hides a backgrounded view.
func hideSurface(surfaces []*dom.Element, active int) {
	if len(surfaces) == 0 {
		return
	}
	surfaces[active%len(surfaces)].SetStyle("display", "none")
}

func draw(screen tcell.Screen, eng *engine.Engine, surfaces []*dom.Element, active int, layoutPath string) {
	screen.Clear()

	style := tcell.StyleDefault
	bold := style.Bold(true)

	drawText(screen, 0, 0, bold, fmt.Sprintf("panzoom — %s", layoutPath))
	drawText(screen, 0, 1, style, "wheel: pan   ctrl+wheel: zoom   tab: next surface   h: hide   f/v: host events   q: quit")

	row := 3
	entries := eng.Registry().Entries()
	for i, surface := range surfaces {
		marker := "  "
		if i == active%max(len(surfaces), 1) {
			marker = "> "
		}

		line := fmt.Sprintf("%ssurface %d <%s class=%q>", marker, i, surface.Tag(), surface.Attr("class"))
		if entry, ok := entries[surface]; ok {
			x, y := entry.Controller.Pan()
			line += fmt.Sprintf("  scale=%.2f pan=(%.0f, %.0f) contain=%s",
				entry.Controller.Scale(), x, y, entry.Controller.Contain())
			if entry.ScrollTarget != nil {
				line += fmt.Sprintf(" scroll=(%.0f, %.0f)",
					entry.ScrollTarget.ScrollLeft(), entry.ScrollTarget.ScrollTop())
			}
		} else {
			line += "  (unmanaged)"
		}

		lineStyle := style
		if i == active%max(len(surfaces), 1) {
			lineStyle = bold
		}
		drawText(screen, 0, row, lineStyle, line)
		row++
	}

	if len(surfaces) == 0 {
		drawText(screen, 0, row, style, "no eligible surfaces in layout")
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
