package render

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Variant selects the direction of a colour shift.
type Variant int

const (
	Dark Variant = iota
	Light
)

// lightnessStep is the Lab lightness change per grade.
const lightnessStep = 0.18

// ColorVariant shifts a hex colour darker or lighter by grade steps in Lab space.
func ColorVariant(hex string, variant Variant, grade float64) (string, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return "", fmt.Errorf("invalid colour %q: %w", hex, err)
	}

	l, a, b := c.Lab()
	delta := lightnessStep * grade
	if variant == Dark {
		delta = -delta
	}
	return colorful.Lab(clamp01(l+delta), a, b).Clamped().Hex(), nil
}

// ColorVariantOr is ColorVariant returning fallback when hex is not a valid colour.
func ColorVariantOr(hex string, variant Variant, grade float64, fallback string) string {
	out, err := ColorVariant(hex, variant, grade)
	if err != nil {
		return fallback
	}
	return out
}

func clamp01(v float64) float64 {
	return min(1, max(0, v))
}
