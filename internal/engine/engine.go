// Package engine assembles the pan/zoom system against a host
// workspace: it defers startup until the layout is ready, routes every
// host lifecycle and mutation notification into the debounced
// reconciler, and releases all registrations at shutdown.
package engine

import (
	"github.com/chowsonice/obsidian-panzoom/internal/dom"
	"github.com/chowsonice/obsidian-panzoom/internal/logging"
	"github.com/chowsonice/obsidian-panzoom/internal/reconcile"
	"github.com/chowsonice/obsidian-panzoom/internal/registry"
	"github.com/chowsonice/obsidian-panzoom/internal/workspace"
)

// Engine owns the lifetime of the gesture-to-transform machinery.
// It is started once and never re-entered after Shutdown.
type Engine struct {
	ws  *workspace.Workspace
	reg *registry.Registry
	rec *reconcile.Reconciler
	log *logging.Logger

	hooks     []workspace.HookRef
	observer  dom.ObserverID
	observing bool

	started bool
	stopped bool
}

// New creates an engine for the given workspace.
func New(ws *workspace.Workspace, log *logging.Logger) *Engine {
	reg := registry.New(log)
	return &Engine{
		ws:  ws,
		reg: reg,
		rec: reconcile.New(ws, reg, log),
		log: log.WithComponent("engine"),
	}
}

// Registry returns the engine's surface registry.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// Reconciler returns the engine's reconciler.
func (e *Engine) Reconciler() *reconcile.Reconciler {
	return e.rec
}

// Start arms the engine. All initialization is deferred until the host
// signals layout-ready; only then does the initial reconciliation run
// and do the lifecycle hooks and the mutation observer attach.
func (e *Engine) Start() error {
	if e.stopped {
		return ErrShutdown
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.started = true

	e.ws.OnLayoutReady(func() {
		if e.stopped {
			return
		}
		e.attach()
		e.rec.Trigger()
	})
	return nil
}

// attach registers the lifecycle hooks and the structural mutation
// observer, all routed through the reconciler's debounced entry point.
func (e *Engine) attach() {
	for _, ev := range []workspace.Event{
		workspace.EventActiveViewChange,
		workspace.EventLayoutChange,
		workspace.EventFileOpen,
	} {
		e.hooks = append(e.hooks, e.ws.On(ev, e.rec.Trigger))
	}

	e.observer = e.ws.Document().Observe(func(dom.MutationRecord) {
		e.rec.Trigger()
	})
	e.observing = true

	e.log.Info("attached to workspace")
}

// Shutdown releases every registration the engine holds and destroys
// all managed surfaces. It is safe to call more than once.
func (e *Engine) Shutdown() {
	if e.stopped {
		return
	}
	e.stopped = true

	for _, ref := range e.hooks {
		e.ws.Off(ref)
	}
	e.hooks = nil

	if e.observing {
		e.ws.Document().Disconnect(e.observer)
		e.observing = false
	}

	e.reg.DestroyAll()
	e.log.Info("shut down")
}
