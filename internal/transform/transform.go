// Package transform implements the per-surface pan/zoom transform
// controller. It owns the transform state for one surface and renders
// it as an affine matrix; it binds no event listeners of its own, so
// gesture wiring stays with the caller.
package transform

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
)

// Containment governs how far content may be panned relative to the
// surface bounds.
type Containment string

const (
	// ContainInside keeps content within the surface.
	ContainInside Containment = "inside"

	// ContainOutside allows content to extend beyond the surface.
	ContainOutside Containment = "outside"
)

// Options configures a controller.
type Options struct {
	// MinScale and MaxScale bound the zoom factor.
	MinScale float64
	MaxScale float64

	// Step is the zoom factor change per wheel notch.
	Step float64

	// Contain is the initial containment mode.
	Contain Containment

	// Cursor is the cursor style rendered on the surface.
	Cursor string

	// DisableZoom makes ZoomWithWheel a no-op.
	DisableZoom bool
}

// DefaultOptions returns the fixed initial configuration for a surface.
func DefaultOptions() Options {
	return Options{
		MinScale: 1,
		MaxScale: 5,
		Step:     0.1,
		Contain:  ContainInside,
		Cursor:   "default",
	}
}

// Controller holds the pan/zoom state of one surface and renders it.
type Controller struct {
	el   *dom.Element
	opts Options

	scale     float64
	panX      float64
	panY      float64
	contain   Containment
	destroyed bool
}

// New creates a controller for the given surface. The surface must be
// attached to its document.
func New(el *dom.Element, opts Options) (*Controller, error) {
	if el == nil {
		return nil, ErrNilSurface
	}
	if !el.IsAttached() {
		return nil, fmt.Errorf("surface <%s>: %w", el.Tag(), ErrDetachedSurface)
	}
	if opts.MinScale <= 0 || opts.MaxScale < opts.MinScale {
		return nil, fmt.Errorf("scale bounds [%v, %v]: %w", opts.MinScale, opts.MaxScale, ErrInvalidOptions)
	}

	c := &Controller{
		el:      el,
		opts:    opts,
		scale:   1,
		contain: opts.Contain,
	}
	c.render()
	return c, nil
}

// Scale returns the current zoom factor.
func (c *Controller) Scale() float64 {
	return c.scale
}

// Contain returns the current containment mode.
func (c *Controller) Contain() Containment {
	return c.contain
}

// SetContain switches the containment mode. The change is rendered on
// the next transform update.
func (c *Controller) SetContain(mode Containment) {
	if c.destroyed {
		return
	}
	c.contain = mode
}

// Pan returns the current pan offset.
func (c *Controller) Pan() (x, y float64) {
	return c.panX, c.panY
}

// PanTo sets the absolute pan offset and re-renders the transform.
func (c *Controller) PanTo(x, y float64) {
	if c.destroyed {
		return
	}
	c.panX = x
	c.panY = y
	c.render()
}

// ZoomWithWheel applies the zoom delta implied by the event's vertical
// delta: wheel-up zooms in by one step, wheel-down zooms out. The
// resulting scale is clamped to the configured bounds.
func (c *Controller) ZoomWithWheel(ev *dom.WheelEvent) {
	if c.destroyed || c.opts.DisableZoom {
		return
	}

	scale := c.scale
	if ev.DeltaY < 0 {
		scale *= 1 + c.opts.Step
	} else {
		scale /= 1 + c.opts.Step
	}
	c.scale = clamp(scale, c.opts.MinScale, c.opts.MaxScale)
	c.render()
}

// Destroyed reports whether Destroy has been called.
func (c *Controller) Destroyed() bool {
	return c.destroyed
}

// Destroy releases the surface styling owned by the controller.
// Calling it again is a no-op.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.el.SetStyle("transform", "")
	c.el.SetStyle("cursor", "")
	c.el.SetAttr("data-contain", "")
}

// render writes the current transform to the surface. The affine matrix
// is composed as translate(panX, panY) * scale(s), matching CSS
// matrix(a, b, c, d, e, f) ordering.
func (c *Controller) render() {
	translate := mat.NewDense(3, 3, []float64{
		1, 0, c.panX,
		0, 1, c.panY,
		0, 0, 1,
	})
	scale := mat.NewDense(3, 3, []float64{
		c.scale, 0, 0,
		0, c.scale, 0,
		0, 0, 1,
	})

	var m mat.Dense
	m.Mul(translate, scale)

	c.el.SetStyle("transform", fmt.Sprintf("matrix(%g, %g, %g, %g, %g, %g)",
		m.At(0, 0), m.At(1, 0), m.At(0, 1), m.At(1, 1), m.At(0, 2), m.At(1, 2)))
	c.el.SetStyle("cursor", c.opts.Cursor)
	c.el.SetAttr("data-contain", string(c.contain))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
