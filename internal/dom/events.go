package dom

import "github.com/google/uuid"

// ListenerID identifies a registered wheel listener for exact removal.
type ListenerID string

// WheelEvent is a wheel gesture delivered to one element.
type WheelEvent struct {
	// DeltaX is the horizontal scroll delta.
	DeltaX float64

	// DeltaY is the vertical scroll delta. Negative means wheel-up.
	DeltaY float64

	// CtrlKey reports whether the ctrl-equivalent modifier was held.
	// Browsers also set this for pinch gestures on trackpads.
	CtrlKey bool

	defaultPrevented bool
}

// PreventDefault suppresses the default action for this event.
func (e *WheelEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *WheelEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// WheelHandler handles a wheel event.
type WheelHandler func(*WheelEvent)

type wheelListener struct {
	id ListenerID
	fn WheelHandler
}

// AddWheelListener registers a wheel handler on the element and returns
// an ID that removes exactly this registration.
func (e *Element) AddWheelListener(fn WheelHandler) ListenerID {
	id := ListenerID(uuid.NewString())
	e.listeners = append(e.listeners, wheelListener{id: id, fn: fn})
	return id
}

// RemoveWheelListener removes the listener registered under id.
// Unknown IDs are ignored.
func (e *Element) RemoveWheelListener(id ListenerID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// WheelListenerCount returns the number of registered wheel listeners.
func (e *Element) WheelListenerCount() int {
	return len(e.listeners)
}

// DispatchWheel delivers the event to the element's listeners in
// registration order. It reports whether the default action should
// still run, mirroring the browser's dispatchEvent return value.
func (e *Element) DispatchWheel(ev *WheelEvent) bool {
	listeners := make([]wheelListener, len(e.listeners))
	copy(listeners, e.listeners)
	for _, l := range listeners {
		l.fn(ev)
	}
	return !ev.defaultPrevented
}
