package imagefilter

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownFilter is returned by NewFilter for names that are not registered.
var ErrUnknownFilter = errors.New("imagefilter: unknown filter")

// Default parameter values used by the command-line host.
const (
	DefaultBlurAmount = 3
	DefaultBrightness = 1.5
)

// Params carries the tunable parameters of the registered filters.
// Each filter reads only the fields it needs.
type Params struct {
	// BlurAmount is the blur radius in pixels.
	BlurAmount int `json:"blurAmount" yaml:"blurAmount"`

	// Brightness is the brighten scale factor.
	Brightness float32 `json:"brightness" yaml:"brightness"`
}

// DefaultParams returns the default filter parameters.
func DefaultParams() Params {
	return Params{
		BlurAmount: DefaultBlurAmount,
		Brightness: DefaultBrightness,
	}
}

// FilterInfo describes a registered filter.
type FilterInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Params      []string `json:"params,omitempty" yaml:"params,omitempty"`
}

type registration struct {
	info  FilterInfo
	build func(Params) (Filter, error)
}

var registry = map[string]registration{
	"blur": {
		info: FilterInfo{
			Name:        "blur",
			Description: "box blur; edges within the radius are left unwritten",
			Params:      []string{"blurAmount"},
		},
		build: func(p Params) (Filter, error) {
			if p.BlurAmount < 0 {
				return nil, fmt.Errorf("%w: blur amount %d", ErrInvalidParameter, p.BlurAmount)
			}
			return NewBlurFilter(p.BlurAmount), nil
		},
	},
	"sharpen": {
		info: FilterInfo{
			Name:        "sharpen",
			Description: "3x3 unsharp mask; the outer pixel ring is left unwritten",
		},
		build: func(Params) (Filter, error) {
			return NewSharpenFilter(), nil
		},
	},
	"brighten": {
		info: FilterInfo{
			Name:        "brighten",
			Description: "scale R, G, B by a factor with saturation; alpha kept",
			Params:      []string{"brightness"},
		},
		build: func(p Params) (Filter, error) {
			if p.Brightness < 0 {
				return nil, fmt.Errorf("%w: brightness %v", ErrInvalidParameter, p.Brightness)
			}
			return NewBrightnessFilter(p.Brightness), nil
		},
	},
	"grayscale": {
		info: FilterInfo{
			Name:        "grayscale",
			Description: "BT.601 luminance; alpha kept",
		},
		build: func(Params) (Filter, error) {
			return NewGrayscaleFilter(), nil
		},
	},
}

// Names returns the registered filter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns information about every registered filter, sorted by name.
func Describe() []FilterInfo {
	names := Names()
	infos := make([]FilterInfo, len(names))
	for i, name := range names {
		infos[i] = registry[name].info
	}
	return infos
}

// NewFilter creates the named filter configured from p.
func NewFilter(name string, p Params) (Filter, error) {
	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return r.build(p)
}

// NewChain creates a Chain of the named filters, all configured from p.
func NewChain(names []string, p Params) (Chain, error) {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		f, err := NewFilter(name, p)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}
