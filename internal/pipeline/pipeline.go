// pipeline chains named transforms over a decoded bitmap.
package pipeline

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/anas-shakeel/bmpfx/internal/adjustments"
	"github.com/anas-shakeel/bmpfx/internal/bmp"
	"github.com/anas-shakeel/bmpfx/internal/filters"
)

// Transform mutates an image in place.
type Transform func(*bmp.Image) error

// registry maps pipeline step names to transforms.
var registry = map[string]Transform{
	"cellshade":     filters.CellShade,
	"grayscale":     filters.Grayscale,
	"grayscaleluma": filters.GrayscaleLuma,
	"invert":        filters.Invert,
	"pixelate":      filters.Pixelate,
	"blur":          filters.Blur,
	"flipv":         adjustments.FlipVertical,
	"fliph":         adjustments.FlipHorizontal,
	"rot90":         adjustments.Rotate90,
	"rot180":        adjustments.Rotate180,
	"rot270":        adjustments.Rotate270,
	"flipd1":        adjustments.FlipDiagonal,
	"flipd2":        adjustments.FlipAntiDiagonal,
	"scaleup":       adjustments.ScaleUp,
	"scaledown":     adjustments.ScaleDown,
}

// Config is a pipeline file: an ordered list of transform names.
type Config struct {
	Transforms []string `yaml:"transforms"`
}

// Load reads and parses a YAML pipeline file.
func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read pipeline file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse pipeline file %q: %w", path, err)
	}
	return cfg, nil
}

// Lookup resolves a transform name (case-insensitive).
func Lookup(name string) (Transform, error) {
	t, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q (valid: %s)", name, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Names lists the registered transform names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run applies the named transforms to the image in order, stopping at the
// first failure.
func Run(b *bmp.Image, names []string) error {
	for _, name := range names {
		t, err := Lookup(name)
		if err != nil {
			return err
		}
		if err := t(b); err != nil {
			return fmt.Errorf("transform %s: %w", name, err)
		}
	}
	return nil
}
