package registry

import (
	"io"
	"strings"
	"testing"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
	"github.com/chowsonice/obsidian-panzoom/internal/logging"
)

const paneMarkup = `
<div class="pane">
  <div class="view-content">
    <div class="cm-scroller"></div>
  </div>
  <div class="view-content bare"></div>
</div>`

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(paneMarkup)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func quietRegistry() *Registry {
	return New(logging.New(io.Discard, logging.LevelError))
}

func TestCreateAndHas(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()
	surface := doc.Query(".view-content")

	reg.Create(surface)
	if !reg.Has(surface) {
		t.Fatal("surface not registered after Create")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
	if surface.WheelListenerCount() != 1 {
		t.Errorf("wheel listeners = %d, want 1", surface.WheelListenerCount())
	}
}

func TestCreateAtMostOneEntry(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()
	surface := doc.Query(".view-content")

	for i := 0; i < 5; i++ {
		reg.Create(surface)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d after repeated Create, want 1", reg.Len())
	}
	if surface.WheelListenerCount() != 1 {
		t.Errorf("wheel listeners = %d after repeated Create, want 1", surface.WheelListenerCount())
	}
}

func TestCreateCachesScrollTarget(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()

	withScroller := doc.Query(".view-content")
	bare := doc.Query(".bare")
	reg.Create(withScroller)
	reg.Create(bare)

	entries := reg.Entries()
	if entries[withScroller].ScrollTarget != doc.Query(".cm-scroller") {
		t.Error("scroll target not cached for surface with scroller")
	}
	if entries[bare].ScrollTarget != nil {
		t.Error("bare surface should have nil scroll target")
	}
}

func TestCreateNil(t *testing.T) {
	reg := quietRegistry()
	reg.Create(nil)
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after Create(nil), want 0", reg.Len())
	}
}

func TestCreateFailureLeavesSurfaceUnregistered(t *testing.T) {
	doc := newDoc(t)
	var buf strings.Builder
	reg := New(logging.New(&buf, logging.LevelError))

	// A detached surface fails controller construction.
	detached := doc.CreateElement("div", "class", "view-content")
	reg.Create(detached)

	if reg.Has(detached) {
		t.Error("failed construction left a registry entry")
	}
	if detached.WheelListenerCount() != 0 {
		t.Error("failed construction left a wheel listener attached")
	}
	if !strings.Contains(buf.String(), "transform controller") {
		t.Errorf("construction failure not logged, log = %q", buf.String())
	}
}

func TestDestroyOne(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()
	surface := doc.Query(".view-content")

	reg.Create(surface)
	entry := reg.Entries()[surface]

	reg.DestroyOne(surface)
	if reg.Has(surface) {
		t.Fatal("surface still registered after DestroyOne")
	}
	if !entry.Controller.Destroyed() {
		t.Error("controller not destroyed")
	}
	if surface.WheelListenerCount() != 0 {
		t.Error("wheel listener still attached")
	}

	// Events dispatched after teardown reach nothing: the transform
	// state stays frozen.
	surface.DispatchWheel(&dom.WheelEvent{DeltaY: 10})
	if x, y := entry.Controller.Pan(); x != 0 || y != 0 {
		t.Errorf("pan moved after teardown: (%v, %v)", x, y)
	}

	// Destroying an absent surface is a no-op.
	reg.DestroyOne(surface)
}

func TestDestroyAll(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()

	for _, surface := range doc.QueryAll(".view-content") {
		reg.Create(surface)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}

	reg.DestroyAll()
	if reg.Len() != 0 {
		t.Errorf("Len() = %d after DestroyAll, want 0", reg.Len())
	}
	for _, surface := range doc.QueryAll(".view-content") {
		if surface.WheelListenerCount() != 0 {
			t.Errorf("surface %q still has listeners", surface.Attr("class"))
		}
	}
}

func TestEntriesSnapshot(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()
	surface := doc.Query(".view-content")
	reg.Create(surface)

	snapshot := reg.Entries()
	reg.DestroyOne(surface)
	if len(snapshot) != 1 {
		t.Error("snapshot mutated by registry changes")
	}
}

func TestWheelEventsDriveController(t *testing.T) {
	doc := newDoc(t)
	reg := quietRegistry()
	surface := doc.Query(".view-content")
	reg.Create(surface)

	surface.DispatchWheel(&dom.WheelEvent{DeltaY: 10})
	entry := reg.Entries()[surface]
	if x, y := entry.Controller.Pan(); x != 0 || y != -10 {
		t.Errorf("pan = (%v, %v), want (0, -10)", x, y)
	}

	scroller := doc.Query(".cm-scroller")
	if scroller.ScrollTop() != 10 {
		t.Errorf("scroll target top = %v, want 10", scroller.ScrollTop())
	}
}
