package dom

import (
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ObserverID identifies a registered mutation observer.
type ObserverID string

// MutationRecord describes one structural change to the tree.
type MutationRecord struct {
	// Target is the parent whose child list changed.
	Target *Element

	// Added holds elements inserted under Target.
	Added []*Element

	// Removed holds elements detached from Target.
	Removed []*Element
}

// MutationHandler receives mutation records.
type MutationHandler func(MutationRecord)

// Document is the root of a headless element tree.
type Document struct {
	mu        sync.Mutex
	root      *html.Node
	elements  map[*html.Node]*Element
	observers map[ObserverID]MutationHandler
}

// NewDocument creates an empty document with an html/body skeleton.
func NewDocument() *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlNode := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	root.AppendChild(htmlNode)
	htmlNode.AppendChild(body)

	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		observers: make(map[ObserverID]MutationHandler),
	}
}

// Parse builds a document from HTML markup.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		observers: make(map[ObserverID]MutationHandler),
	}, nil
}

// ParseString builds a document from an HTML string.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Body returns the document's body element, or nil if there is none.
func (d *Document) Body() *Element {
	for n := range descend(d.root) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return d.wrap(n)
		}
	}
	return nil
}

// CreateElement creates a detached element with the given tag and
// alternating attribute key/value pairs.
func (d *Document) CreateElement(tag string, attrs ...string) *Element {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return d.wrap(n)
}

// Observe registers a mutation observer over the whole document
// subtree. The returned ID disconnects it.
func (d *Document) Observe(h MutationHandler) ObserverID {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := ObserverID(uuid.NewString())
	d.observers[id] = h
	return id
}

// Disconnect removes a mutation observer. Unknown IDs are ignored.
func (d *Document) Disconnect(id ObserverID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.observers, id)
}

// wrap returns the canonical Element for a node, creating it on first use.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

// notify delivers a mutation record to every observer. Observers cover
// the attached subtree only; changes under a detached parent are not
// structural changes to the document.
func (d *Document) notify(rec MutationRecord) {
	if rec.Target != nil && !rec.Target.IsAttached() {
		return
	}
	d.mu.Lock()
	handlers := make([]MutationHandler, 0, len(d.observers))
	for _, h := range d.observers {
		handlers = append(handlers, h)
	}
	d.mu.Unlock()

	for _, h := range handlers {
		h(rec)
	}
}

// Element is one node in the document tree. Elements are canonical:
// the same underlying node always yields the same *Element.
type Element struct {
	doc  *Document
	node *html.Node

	listeners []wheelListener

	scrollTop  float64
	scrollLeft float64
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	for p != nil && p.Type != html.ElementNode {
		p = p.Parent
	}
	if p == nil {
		return nil
	}
	return e.doc.wrap(p)
}

// AppendChild attaches child as the last child of e and notifies
// mutation observers.
func (e *Element) AppendChild(child *Element) {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	e.node.AppendChild(child.node)
	e.doc.notify(MutationRecord{Target: e, Added: []*Element{child}})
}

// RemoveChild detaches child from e and notifies mutation observers.
// A child that is not attached to e is ignored.
func (e *Element) RemoveChild(child *Element) {
	if child.node.Parent != e.node {
		return
	}
	e.node.RemoveChild(child.node)
	e.doc.notify(MutationRecord{Target: e, Removed: []*Element{child}})
}

// Children returns the element-node children of e in order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Adopt rewraps an element from another document into d, so it can be
// inserted into d's tree. Listener registrations do not carry over.
func (d *Document) Adopt(el *Element) *Element {
	if el == nil || el.doc == d {
		return el
	}
	return d.wrap(el.node)
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(key string) string {
	for _, a := range e.node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing any existing value.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether the element's class attribute contains name.
func (e *Element) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// IsAttached reports whether the element is connected to its document.
func (e *Element) IsAttached() bool {
	for n := e.node; n != nil; n = n.Parent {
		if n == e.doc.root {
			return true
		}
	}
	return false
}

// ScrollBy adjusts the element's scroll offsets by the given deltas.
func (e *Element) ScrollBy(dx, dy float64) {
	e.scrollLeft += dx
	e.scrollTop += dy
	if e.scrollLeft < 0 {
		e.scrollLeft = 0
	}
	if e.scrollTop < 0 {
		e.scrollTop = 0
	}
}

// ScrollTop returns the vertical scroll offset.
func (e *Element) ScrollTop() float64 { return e.scrollTop }

// ScrollLeft returns the horizontal scroll offset.
func (e *Element) ScrollLeft() float64 { return e.scrollLeft }

// descend yields every node in the subtree rooted at n, including n.
func descend(n *html.Node) func(func(*html.Node) bool) {
	return func(yield func(*html.Node) bool) {
		var walk func(*html.Node) bool
		walk = func(cur *html.Node) bool {
			if !yield(cur) {
				return false
			}
			for c := cur.FirstChild; c != nil; c = c.NextSibling {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(n)
	}
}
