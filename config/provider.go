// Package config loads empower options from configuration providers.
package config

import (
	"fmt"

	"github.com/miruken-go/empower"
)

type (
	// Provider defines the api for configuration providers
	// to implement to expose configuration information.
	// output can be a pointer to a struct or map[string]any
	Provider interface {
		Unmarshal(path string, flat bool, output any) error
	}

	// Settings are the configurable part of empower.Options.
	// Handlers and loggers are code and are not configured.
	Settings struct {
		Patterns    []string `path:"patterns"`
		Destructive bool     `path:"destructive"`
	}
)

// Options converts the settings to empower.Options.
func (s Settings) Options() empower.Options {
	return empower.Options{
		Patterns:    s.Patterns,
		Destructive: s.Destructive,
	}
}

// Load reads the Settings at path and merges them over the
// default options.
func Load(p Provider, path string) (empower.Options, error) {
	if p == nil {
		panic("p cannot be nil")
	}
	var settings Settings
	if err := p.Unmarshal(path, false, &settings); err != nil {
		return empower.Options{}, fmt.Errorf("config: %w", err)
	}
	return empower.MergeOptions(settings.Options())
}
