// Package registry tracks the surfaces currently under pan/zoom
// management. It exclusively owns each surface's transform controller,
// gesture interpreter, and bound wheel listener, keyed by the surface's
// reference identity.
package registry

import (
	"github.com/google/uuid"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
	"github.com/chowsonice/obsidian-panzoom/internal/gesture"
	"github.com/chowsonice/obsidian-panzoom/internal/logging"
	"github.com/chowsonice/obsidian-panzoom/internal/transform"
	"github.com/chowsonice/obsidian-panzoom/internal/workspace"
)

// Entry binds one managed surface to everything created for it.
type Entry struct {
	// ID identifies the entry in logs.
	ID string

	// Controller owns the surface's transform state.
	Controller *transform.Controller

	// Interpreter drives the controller from wheel events.
	Interpreter *gesture.Interpreter

	// ScrollTarget is the cached native-scroll element, or nil.
	ScrollTarget *dom.Element

	listener dom.ListenerID
}

// Registry maps surfaces to their entries. All access happens on the
// host's single event-dispatch goroutine, so no locking is needed; what
// matters is that every mutation leaves the map consistent even when a
// per-surface step fails.
type Registry struct {
	entries map[*dom.Element]*Entry
	log     *logging.Logger
}

// New creates an empty registry.
func New(log *logging.Logger) *Registry {
	return &Registry{
		entries: make(map[*dom.Element]*Entry),
		log:     log.WithComponent("registry"),
	}
}

// Create registers a surface: it builds a transform controller, wires a
// gesture interpreter to it and to the surface's native-scroll target,
// and attaches the wheel listener. A surface that is already registered
// is left untouched. Construction failures are logged and leave the
// surface unregistered; they never abort the caller's sweep.
func (r *Registry) Create(surface *dom.Element) {
	if surface == nil {
		return
	}
	if _, ok := r.entries[surface]; ok {
		return
	}

	ctrl, err := transform.New(surface, transform.DefaultOptions())
	if err != nil {
		r.log.Error("transform controller for <%s>: %v", surface.Tag(), err)
		return
	}

	scrollTarget := surface.Query(workspace.ScrollTargetSelector)
	interp := gesture.New(ctrl, scrollTarget)

	entry := &Entry{
		ID:           uuid.NewString(),
		Controller:   ctrl,
		Interpreter:  interp,
		ScrollTarget: scrollTarget,
		listener:     surface.AddWheelListener(interp.HandleWheel),
	}
	r.entries[surface] = entry
	r.log.Debug("registered surface entry %s", entry.ID)
}

// Has reports whether a surface is registered.
func (r *Registry) Has(surface *dom.Element) bool {
	_, ok := r.entries[surface]
	return ok
}

// Len returns the number of registered surfaces.
func (r *Registry) Len() int {
	return len(r.entries)
}

// DestroyOne tears a surface down: the wheel listener is detached, the
// controller destroyed, and the entry removed. Unregistered surfaces
// are a no-op.
func (r *Registry) DestroyOne(surface *dom.Element) {
	entry, ok := r.entries[surface]
	if !ok {
		return
	}
	surface.RemoveWheelListener(entry.listener)
	entry.Controller.Destroy()
	delete(r.entries, surface)
	r.log.Debug("destroyed surface entry %s", entry.ID)
}

// DestroyAll tears down every entry. Used at shutdown.
func (r *Registry) DestroyAll() {
	for surface := range r.entries {
		r.DestroyOne(surface)
	}
}

// Entries returns a snapshot of the registered surfaces and their
// entries for reconciliation sweeps.
func (r *Registry) Entries() map[*dom.Element]*Entry {
	out := make(map[*dom.Element]*Entry, len(r.entries))
	for surface, entry := range r.entries {
		out[surface] = entry
	}
	return out
}
