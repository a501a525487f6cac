// Package config loads the host application options from a TOML file.
// Only outer-app concerns live here; the engine's gesture constants
// (scale bounds, zoom step, hysteresis thresholds, debounce window) are
// fixed and not user-exposed.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Options holds the demo host configuration.
type Options struct {
	// LayoutPath is the HTML layout file to load.
	LayoutPath string `toml:"layout"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`

	// WatchLayout enables reloading the layout file on change.
	WatchLayout bool `toml:"watch_layout"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		LayoutPath:  "layout.html",
		LogLevel:    "info",
		WatchLayout: true,
	}
}

// Load reads options from a TOML file, over the defaults. A missing
// file is not an error; the defaults apply.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return opts, nil
}
