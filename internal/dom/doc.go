// Package dom provides the headless document tree the pan/zoom engine
// operates on.
//
// The tree wraps golang.org/x/net/html nodes. Every node is represented
// by exactly one canonical *Element, so elements have reference identity
// and can be used directly as map keys.
//
// # Queries
//
// Selector matching uses CSS selector syntax via cascadia:
//
//	surfaces := doc.QueryAll(".view-content")
//	scroller := surface.Query(".cm-scroller")
//	pdf := surface.Closest(".pdf-container")
//
// # Visibility
//
// An element is visible when it is attached to the document and neither
// it nor any ancestor carries display:none in its inline style.
//
// # Events
//
// Wheel listeners are registered per element and identified by opaque
// IDs so a listener can be removed exactly:
//
//	id := el.AddWheelListener(handler)
//	el.DispatchWheel(&dom.WheelEvent{DeltaY: 10})
//	el.RemoveWheelListener(id)
//
// # Mutations
//
// Structural changes made through AppendChild and RemoveChild notify
// every observer registered on the document, covering the whole subtree
// the way a childList+subtree mutation observer would.
package dom
