// Package layout loads the host layout from an HTML file into the
// document tree and keeps it in sync with edits to that file. Applying
// a layout goes through the dom mutation API, so the engine's mutation
// observer sees every reload as a structural change.
package layout

import (
	"fmt"
	"os"

	"github.com/chowsonice/obsidian-panzoom/internal/dom"
)

// LoadFile parses the HTML file at path into a fresh document.
func LoadFile(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening layout %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	return doc, nil
}

// Reload re-reads the layout file and replaces doc's body content with
// it, element by element, so mutation observers fire for the removals
// and the insertions.
func Reload(doc *dom.Document, path string) error {
	fresh, err := LoadFile(path)
	if err != nil {
		return err
	}

	body := doc.Body()
	freshBody := fresh.Body()
	if body == nil || freshBody == nil {
		return fmt.Errorf("layout %s: %w", path, ErrNoBody)
	}

	for _, child := range body.Children() {
		body.RemoveChild(child)
	}
	for _, child := range freshBody.Children() {
		body.AppendChild(doc.Adopt(child))
	}
	return nil
}
