package transform

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
)

func newSurface(t *testing.T) *dom.Element {
	t.Helper()
	doc, err := dom.ParseString(`<div class="view-content"></div>`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc.Query(".view-content")
}

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(newSurface(t), DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewDefaults(t *testing.T) {
	c := newController(t)

	if c.Scale() != 1 {
		t.Errorf("initial scale = %v, want 1", c.Scale())
	}
	if c.Contain() != ContainInside {
		t.Errorf("initial containment = %v, want inside", c.Contain())
	}
	if x, y := c.Pan(); x != 0 || y != 0 {
		t.Errorf("initial pan = (%v, %v), want (0, 0)", x, y)
	}
}

func TestNewErrors(t *testing.T) {
	doc, _ := dom.ParseString(`<div></div>`)
	detached := doc.CreateElement("div")

	tests := []struct {
		name string
		el   *dom.Element
		opts Options
		want error
	}{
		{"nil surface", nil, DefaultOptions(), ErrNilSurface},
		{"detached surface", detached, DefaultOptions(), ErrDetachedSurface},
		{"zero min scale", doc.Query("div"), Options{MaxScale: 5}, ErrInvalidOptions},
		{"inverted bounds", doc.Query("div"), Options{MinScale: 2, MaxScale: 1}, ErrInvalidOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.el, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("New error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestZoomScaleStaysClamped(t *testing.T) {
	c := newController(t)

	// Any zoom-in sequence stays within [1, 5].
	for i := 0; i < 100; i++ {
		c.ZoomWithWheel(&dom.WheelEvent{DeltaY: -10, CtrlKey: true})
		if c.Scale() < 1 || c.Scale() > 5 {
			t.Fatalf("scale %v escaped bounds after %d zoom-in events", c.Scale(), i+1)
		}
	}
	if c.Scale() != 5 {
		t.Errorf("scale after saturating zoom-in = %v, want 5", c.Scale())
	}

	for i := 0; i < 100; i++ {
		c.ZoomWithWheel(&dom.WheelEvent{DeltaY: 10, CtrlKey: true})
		if c.Scale() < 1 || c.Scale() > 5 {
			t.Fatalf("scale %v escaped bounds after %d zoom-out events", c.Scale(), i+1)
		}
	}
	if c.Scale() != 1 {
		t.Errorf("scale after saturating zoom-out = %v, want 1", c.Scale())
	}
}

func TestZoomStep(t *testing.T) {
	c := newController(t)

	c.ZoomWithWheel(&dom.WheelEvent{DeltaY: -10})
	if math.Abs(c.Scale()-1.1) > 1e-9 {
		t.Errorf("scale after one zoom-in = %v, want 1.1", c.Scale())
	}

	c.ZoomWithWheel(&dom.WheelEvent{DeltaY: 10})
	if math.Abs(c.Scale()-1) > 1e-9 {
		t.Errorf("scale after zoom back out = %v, want 1", c.Scale())
	}
}

func TestZoomDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.DisableZoom = true
	c, err := New(newSurface(t), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.ZoomWithWheel(&dom.WheelEvent{DeltaY: -10})
	if c.Scale() != 1 {
		t.Errorf("scale = %v, want 1 with zoom disabled", c.Scale())
	}
}

func TestPanTo(t *testing.T) {
	c := newController(t)

	c.PanTo(-12, 34)
	if x, y := c.Pan(); x != -12 || y != 34 {
		t.Errorf("pan = (%v, %v), want (-12, 34)", x, y)
	}
}

func TestRenderWritesTransform(t *testing.T) {
	surface := newSurface(t)
	c, err := New(surface, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.PanTo(10, 20)
	style := surface.Style("transform")
	if !strings.HasPrefix(style, "matrix(") {
		t.Fatalf("transform style = %q, want matrix(...)", style)
	}
	if !strings.Contains(style, "10") || !strings.Contains(style, "20") {
		t.Errorf("transform style %q missing pan offsets", style)
	}
	if got := surface.Attr("data-contain"); got != "inside" {
		t.Errorf("data-contain = %q, want inside", got)
	}
}

func TestSetContain(t *testing.T) {
	c := newController(t)

	c.SetContain(ContainOutside)
	if c.Contain() != ContainOutside {
		t.Errorf("containment = %v, want outside", c.Contain())
	}

	// Mode change is rendered on the next transform update.
	c.PanTo(0, 0)
	if got := c.el.Attr("data-contain"); got != "outside" {
		t.Errorf("data-contain after render = %q, want outside", got)
	}
}

func TestDestroy(t *testing.T) {
	surface := newSurface(t)
	c, err := New(surface, DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	c.PanTo(5, 5)
	c.Destroy()
	if !c.Destroyed() {
		t.Fatal("Destroyed() = false after Destroy")
	}
	if got := surface.Style("transform"); got != "" {
		t.Errorf("transform style after destroy = %q, want empty", got)
	}

	// Double destroy must not panic, and mutators become no-ops.
	c.Destroy()
	c.PanTo(9, 9)
	c.ZoomWithWheel(&dom.WheelEvent{DeltaY: -10})
	c.SetContain(ContainOutside)
	if x, y := c.Pan(); x != 5 || y != 5 {
		t.Errorf("pan mutated after destroy: (%v, %v)", x, y)
	}
	if c.Scale() != 1 || c.Contain() != ContainInside {
		t.Errorf("state mutated after destroy: scale=%v contain=%v", c.Scale(), c.Contain())
	}
}
