package layout

import "errors"

// ErrNoBody indicates a layout document without a body element.
var ErrNoBody = errors.New("layout has no body")
