// Package workspace models the host application surface the pan/zoom
// engine plugs into: the document it may scan, a layout-ready gate, and
// named lifecycle events with explicit subscribe/unsubscribe.
package workspace

import (
	"sync"

	"github.com/google/uuid"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
)

// Event names a host lifecycle notification.
type Event string

const (
	// EventActiveViewChange fires when the host switches the active view.
	EventActiveViewChange Event = "active-view-change"

	// EventLayoutChange fires when the host rearranges its layout.
	EventLayoutChange Event = "layout-change"

	// EventFileOpen fires when the host opens a file in a view.
	EventFileOpen Event = "file-open"
)

// Selectors the host uses for the regions the engine cares about.
const (
	// SurfaceSelector matches elements acting as pannable viewports.
	SurfaceSelector = ".view-content"

	// ScrollTargetSelector matches the editor's native scroll region
	// inside a surface.
	ScrollTargetSelector = ".cm-scroller"

	// PDFContainerSelector flags containers that render PDFs with
	// their own built-in pan/zoom.
	PDFContainerSelector = ".pdf-container"
)

// HookRef identifies one event registration for later release.
type HookRef struct {
	event Event
	id    string
}

// Workspace is the host handle given to the engine.
type Workspace struct {
	mu          sync.Mutex
	doc         *dom.Document
	layoutReady bool
	readyFns    []func()
	hooks       map[Event]map[string]func()
}

// New creates a workspace over the given document. The layout starts
// not-ready; the host signals readiness once its initial DOM is built.
func New(doc *dom.Document) *Workspace {
	return &Workspace{
		doc:   doc,
		hooks: make(map[Event]map[string]func()),
	}
}

// Document returns the workspace's document.
func (w *Workspace) Document() *dom.Document {
	return w.doc
}

// LayoutReady reports whether the host has finished building its layout.
func (w *Workspace) LayoutReady() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layoutReady
}

// OnLayoutReady runs fn once the layout is ready. If it already is, fn
// runs immediately.
func (w *Workspace) OnLayoutReady(fn func()) {
	w.mu.Lock()
	if w.layoutReady {
		w.mu.Unlock()
		fn()
		return
	}
	w.readyFns = append(w.readyFns, fn)
	w.mu.Unlock()
}

// SignalLayoutReady marks the layout ready and runs pending callbacks.
// Signaling more than once has no further effect.
func (w *Workspace) SignalLayoutReady() {
	w.mu.Lock()
	if w.layoutReady {
		w.mu.Unlock()
		return
	}
	w.layoutReady = true
	fns := w.readyFns
	w.readyFns = nil
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// On subscribes fn to a lifecycle event and returns a ref that releases
// exactly this registration.
func (w *Workspace) On(ev Event, fn func()) HookRef {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.hooks[ev] == nil {
		w.hooks[ev] = make(map[string]func())
	}
	id := uuid.NewString()
	w.hooks[ev][id] = fn
	return HookRef{event: ev, id: id}
}

// Off releases a registration. Unknown refs are ignored.
func (w *Workspace) Off(ref HookRef) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if m := w.hooks[ref.event]; m != nil {
		delete(m, ref.id)
	}
}

// Trigger fires a lifecycle event to all subscribers.
func (w *Workspace) Trigger(ev Event) {
	w.mu.Lock()
	fns := make([]func(), 0, len(w.hooks[ev]))
	for _, fn := range w.hooks[ev] {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// HookCount returns the number of live registrations for an event.
func (w *Workspace) HookCount(ev Event) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.hooks[ev])
}
