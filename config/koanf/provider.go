package koanf

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/miruken-go/empower/config"
)

// provider of configurations populated by the koanf library.
// https://github.com/knadh/koanf
type provider struct {
	k *koanf.Koanf
}

func (f *provider) Unmarshal(path string, flat bool, output any) error {
	return f.k.UnmarshalWithConf(path, output,
		koanf.UnmarshalConf{Tag: "path", FlatPaths: flat})
}

// P returns a config.Provider using the Koanf instance.
func P(k *koanf.Koanf) config.Provider {
	if k == nil {
		panic("k cannot be nil")
	}
	return &provider{k}
}

// Load populates k from the files, choosing the parser by
// extension, and then from environment variables starting
// with prefix using "__" to separate levels.  Environment keys
// are lower cased so EMPOWER__DESTRUCTIVE reads as empower.destructive.
func Load(k *koanf.Koanf, prefix string, files ...string) error {
	if k == nil {
		panic("k cannot be nil")
	}
	for _, f := range files {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(f)) {
		case ".json":
			parser = json.Parser()
		case ".yaml", ".yml":
			parser = yaml.Parser()
		default:
			return fmt.Errorf("config: unsupported file %q", f)
		}
		if err := k.Load(file.Provider(f), parser, koanf.WithMergeFunc(Merge)); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if prefix != "" {
		if err := k.Load(env.Provider(prefix, "__", strings.ToLower), nil,
			koanf.WithMergeFunc(Merge)); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// Merge extends the default merge to include slice conversions.
func Merge(src, dest map[string]any) error {
	ConvertSlices(src)
	maps.Merge(src, dest)
	return nil
}

// ConvertSlices converts maps with all integral keys into a
// slice with corresponding indices.
// returns the slice and true if successful
func ConvertSlices(m map[string]any) (any, bool) {
	var (
		invalid bool
		slice   []any
	)
	for k, v := range m {
		if c, ok := v.(map[string]any); ok {
			if cs, ok := ConvertSlices(c); ok {
				m[k] = cs
			}
		}
		if invalid {
			continue
		}
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			invalid = true
			continue
		}
		if slice == nil {
			slice = make([]any, len(m))
		}
		if i >= len(slice) {
			grown := make([]any, i+1)
			copy(grown, slice)
			slice = grown
		}
		slice[i] = m[k]
	}
	if slice != nil && !invalid {
		return slice, true
	}
	return nil, false
}
