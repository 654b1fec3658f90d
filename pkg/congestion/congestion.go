// Package congestion buckets edges into ordered severity bands by their
// flow-to-capacity ratio and maps bands to colors.
package congestion

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Classifier maps flow/capacity ratios to bands of StepPercent percent each.
// Band Bands-1 absorbs every ratio beyond the last step.
type Classifier struct {
	StepPercent int
	Bands       int
}

// Default returns 8 bands of 20%: ratios of 1.4 and above share the last band.
func Default() Classifier { return Classifier{StepPercent: 20, Bands: 8} }

// Classify returns the band of an edge carrying flow with the given capacity.
// A non-positive capacity yields the last band, a non-positive flow the first.
// NaN counts as non-positive.
func (c Classifier) Classify(flow, capacity float64) int {
	last := max(c.Bands-1, 0)
	if !(capacity > 0) {
		return last
	}
	if !(flow > 0) {
		return 0
	}
	level := math.Floor(flow * 100 / (capacity * float64(c.StepPercent)))
	if level >= float64(last) {
		return last
	}
	return int(level)
}

// Validate reports whether the classifier has at least one band and a
// positive step.
func (c Classifier) Validate() error {
	if c.StepPercent <= 0 {
		return fmt.Errorf("congestion: step must be positive, got %d%%", c.StepPercent)
	}
	if c.Bands <= 0 {
		return fmt.Errorf("congestion: need at least one band, got %d", c.Bands)
	}
	return nil
}

// reds holds ColorBrewer's 9-class Reds scheme, lightest first.
var reds = []string{
	"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a",
	"#ef3b2c", "#cb181d", "#a50f15", "#67000d",
}

// Palette assigns a color to every band.
type Palette []colorful.Color

// DefaultPalette returns Reds classes 1 through 8, one per default band. The
// lightest class is skipped so that free-flowing edges stay visible on white.
func DefaultPalette() Palette {
	p, err := ParsePalette(reds[1:]...)
	if err != nil {
		panic(err)
	}
	return p
}

// ParsePalette parses hex colors such as "#fc9272".
func ParsePalette(hex ...string) (Palette, error) {
	p := make(Palette, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("congestion: color %d: %w", i, err)
		}
		p[i] = c
	}
	return p, nil
}

// Blend returns a palette of n colors interpolated in Lab space from the
// lightest to the darkest color of p. It is used when a classifier has more
// or fewer bands than the palette has colors.
func (p Palette) Blend(n int) Palette {
	if n <= 0 || len(p) == 0 {
		return nil
	}
	if n == 1 {
		return Palette{p[len(p)-1]}
	}
	out := make(Palette, n)
	for i := range out {
		pos := float64(i) * float64(len(p)-1) / float64(n-1)
		lo := int(pos)
		if lo >= len(p)-1 {
			out[i] = p[len(p)-1]
			continue
		}
		if pos == float64(lo) {
			out[i] = p[lo]
			continue
		}
		out[i] = p[lo].BlendLab(p[lo+1], pos-float64(lo)).Clamped()
	}
	return out
}

// Color returns the color of band b, clamped to the palette range.
func (p Palette) Color(b int) color.Color {
	if len(p) == 0 {
		return color.Black
	}
	b = max(0, min(b, len(p)-1))
	return p[b]
}
