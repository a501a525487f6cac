// Package reconcile keeps the surface registry aligned with the set of
// surfaces currently eligible for pan/zoom. Discovery scans the
// document; the reconciler sweeps the registry against it whenever the
// host reports a relevant change, with bursts of notifications
// collapsed by a leading-edge debounce.
package reconcile

import (
	"sync/atomic"
	"time"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
	"github.com/chowsonice/obsidian-panzoom/internal/logging"
	"github.com/chowsonice/obsidian-panzoom/internal/registry"
	"github.com/chowsonice/obsidian-panzoom/internal/workspace"
)

// DebounceWindow is the quiet window collapsing trigger bursts.
const DebounceWindow = 150 * time.Millisecond

// Discover returns the surfaces currently eligible for management:
// attached, not hidden, and not inside a PDF container (PDF views ship
// their own pan/zoom).
func Discover(doc *dom.Document) []*dom.Element {
	var out []*dom.Element
	for _, el := range doc.QueryAll(workspace.SurfaceSelector) {
		if !el.IsVisible() {
			continue
		}
		if el.Closest(workspace.PDFContainerSelector) != nil {
			continue
		}
		out = append(out, el)
	}
	return out
}

// Reconciler runs debounced reconciliation sweeps over a registry.
type Reconciler struct {
	ws       *workspace.Workspace
	reg      *registry.Registry
	log      *logging.Logger
	debounce *Debouncer
	passes   atomic.Uint64
}

// New creates a reconciler for the given workspace and registry.
func New(ws *workspace.Workspace, reg *registry.Registry, log *logging.Logger) *Reconciler {
	r := &Reconciler{
		ws:  ws,
		reg: reg,
		log: log.WithComponent("reconcile"),
	}
	r.debounce = NewDebouncer(DebounceWindow, r.Reconcile)
	return r
}

// Trigger requests a reconciliation pass. All notification sources
// route through here; bursts within the debounce window run one pass.
func (r *Reconciler) Trigger() {
	r.debounce.Call()
}

// Reconcile runs one sweep immediately: entries whose surface is no
// longer visible are destroyed, then discovery registers any eligible
// surface not yet managed. Before the host signals layout-ready this is
// a no-op, not an error. The sweep is idempotent.
func (r *Reconciler) Reconcile() {
	if !r.ws.LayoutReady() {
		r.log.Debug("reconcile skipped: layout not ready")
		return
	}

	for surface := range r.reg.Entries() {
		if !surface.IsVisible() {
			r.reg.DestroyOne(surface)
		}
	}

	for _, surface := range Discover(r.ws.Document()) {
		if !r.reg.Has(surface) {
			r.reg.Create(surface)
		}
	}

	r.passes.Add(1)
	r.log.Debug("reconcile pass complete: %d surfaces managed", r.reg.Len())
}

// Passes returns the number of completed reconciliation sweeps.
func (r *Reconciler) Passes() uint64 {
	return r.passes.Load()
}
