package dom

import (
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
)

// selectorCache memoizes compiled selectors. The engine queries with a
// small fixed set of selector constants, so this stays tiny.
var selectorCache sync.Map // string -> cascadia.Selector

func compileSelector(s string) (cascadia.Selector, bool) {
	if sel, ok := selectorCache.Load(s); ok {
		return sel.(cascadia.Selector), true
	}
	sel, err := cascadia.Compile(s)
	if err != nil {
		return nil, false
	}
	selectorCache.Store(s, sel)
	return sel, true
}

// QueryAll returns every element in the document matching the selector.
// An invalid selector yields no matches.
func (d *Document) QueryAll(selector string) []*Element {
	sel, ok := compileSelector(selector)
	if !ok {
		return nil
	}
	var out []*Element
	for _, n := range sel.MatchAll(d.root) {
		out = append(out, d.wrap(n))
	}
	return out
}

// Query returns the first element in the document matching the
// selector, or nil.
func (d *Document) Query(selector string) *Element {
	sel, ok := compileSelector(selector)
	if !ok {
		return nil
	}
	n := sel.MatchFirst(d.root)
	if n == nil {
		return nil
	}
	return d.wrap(n)
}

// Query returns the first descendant of e matching the selector, or nil.
func (e *Element) Query(selector string) *Element {
	sel, ok := compileSelector(selector)
	if !ok {
		return nil
	}
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if n := sel.MatchFirst(c); n != nil {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// Matches reports whether e itself matches the selector.
func (e *Element) Matches(selector string) bool {
	sel, ok := compileSelector(selector)
	if !ok {
		return false
	}
	return sel.Match(e.node)
}

// Closest returns the nearest element, starting at e and walking up
// through its ancestors, that matches the selector. Returns nil when no
// ancestor matches.
func (e *Element) Closest(selector string) *Element {
	sel, ok := compileSelector(selector)
	if !ok {
		return nil
	}
	for cur := e; cur != nil; cur = cur.Parent() {
		if sel.Match(cur.node) {
			return cur
		}
	}
	return nil
}

// IsVisible reports whether the element is attached to its document and
// neither it nor any ancestor is hidden via an inline display:none.
func (e *Element) IsVisible() bool {
	if !e.IsAttached() {
		return false
	}
	for cur := e; cur != nil; cur = cur.Parent() {
		if inlineDisplay(cur.Attr("style")) == "none" {
			return false
		}
	}
	return true
}

// inlineDisplay extracts the display property from an inline style
// attribute, or "" when unset.
func inlineDisplay(style string) string {
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "display" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// Style returns the value of one property from the element's inline
// style, or "" when unset.
func (e *Element) Style(property string) string {
	for _, decl := range strings.Split(e.Attr("style"), ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == property {
			return strings.TrimSpace(val)
		}
	}
	return ""
}

// SetStyle sets one property in the element's inline style, preserving
// the other declarations. An empty value removes the property.
func (e *Element) SetStyle(property, value string) {
	var decls []string
	for _, decl := range strings.Split(e.Attr("style"), ";") {
		key, _, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(key) == property {
			continue
		}
		decls = append(decls, strings.TrimSpace(decl))
	}
	if value != "" {
		decls = append(decls, property+": "+value)
	}
	e.SetAttr("style", strings.Join(decls, "; "))
}
