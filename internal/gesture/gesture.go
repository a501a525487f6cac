// Package gesture interprets the wheel event stream for one surface. It
// classifies each event as a zoom or a pan+scroll gesture, applies the
// containment hysteresis, and drives the surface's transform controller
// and native-scroll target.
package gesture

import (
	"github.com/chowsonice/obsidian-panzoom/internal/dom"
	"github.com/chowsonice/obsidian-panzoom/internal/transform"
)

// Kind classifies a wheel event.
type Kind uint8

const (
	// KindNone indicates an event that drives nothing.
	KindNone Kind = iota
	// KindZoom indicates a modifier-held zoom gesture.
	KindZoom
	// KindPanScroll indicates a plain pan plus native scroll gesture.
	KindPanScroll
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindZoom:
		return "zoom"
	case KindPanScroll:
		return "pan-scroll"
	default:
		return "none"
	}
}

// Containment hysteresis thresholds. The two bounds differ on purpose:
// switching to outside at 1.1 on the way in and back to inside at 1.2
// on the way out prevents oscillation at a single boundary.
const (
	enterOutsideMaxScale = 1.1
	returnInsideMaxScale = 1.2
)

// Classify determines which gesture a wheel event represents.
func Classify(ev *dom.WheelEvent) Kind {
	if ev == nil {
		return KindNone
	}
	if ev.CtrlKey {
		return KindZoom
	}
	return KindPanScroll
}

// Interpreter drives one surface's controller from its wheel events.
// It is stateless across events; all carried state lives in the
// controller's scale and containment mode.
type Interpreter struct {
	ctrl         *transform.Controller
	scrollTarget *dom.Element
}

// New creates an interpreter for a controller and an optional
// native-scroll target. A nil scroll target skips scroll forwarding.
func New(ctrl *transform.Controller, scrollTarget *dom.Element) *Interpreter {
	return &Interpreter{ctrl: ctrl, scrollTarget: scrollTarget}
}

// HandleWheel processes one wheel event. The event's default action is
// suppressed unconditionally; a destroyed controller makes the rest a
// no-op.
func (i *Interpreter) HandleWheel(ev *dom.WheelEvent) {
	ev.PreventDefault()

	if i.ctrl == nil || i.ctrl.Destroyed() {
		return
	}

	switch Classify(ev) {
	case KindZoom:
		i.zoom(ev)
	case KindPanScroll:
		i.panScroll(ev)
	}
}

// zoom applies the containment hysteresis for this event's direction,
// then delegates the scale change to the controller so step size and
// clamping stay centralized there.
func (i *Interpreter) zoom(ev *dom.WheelEvent) {
	scale := i.ctrl.Scale()
	contain := i.ctrl.Contain()
	zoomingIn := ev.DeltaY < 0

	switch {
	case contain == transform.ContainInside && scale <= enterOutsideMaxScale && zoomingIn:
		i.ctrl.SetContain(transform.ContainOutside)
	case contain == transform.ContainOutside && scale <= returnInsideMaxScale && !zoomingIn:
		i.ctrl.SetContain(transform.ContainInside)
	}

	i.ctrl.ZoomWithWheel(ev)
}

// panScroll moves the transform opposite the wheel deltas (wheel-down
// pans content up) and forwards the raw deltas to the native-scroll
// target so caret and selection scrolling stay in sync with the pan.
func (i *Interpreter) panScroll(ev *dom.WheelEvent) {
	x, y := i.ctrl.Pan()
	i.ctrl.PanTo(x-ev.DeltaX, y-ev.DeltaY)

	if i.scrollTarget != nil {
		i.scrollTarget.ScrollBy(ev.DeltaX, ev.DeltaY)
	}
}
