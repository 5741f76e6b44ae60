package colour

import (
	"cmp"
	"math"
	"slices"
)

// Luminance709 is the BT.709 weighted sum applied straight to 8-bit channel
// values, without linearisation. Range is [0, 255].
func Luminance709(c RGB) float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// OrderByLuminance returns a copy of palette sorted brightest first by
// Luminance709. Equal luminances keep their input order.
func OrderByLuminance(palette []RGB) []RGB {
	ordered := slices.Clone(palette)
	slices.SortStableFunc(ordered, func(a, b RGB) int {
		return cmp.Compare(Luminance709(b), Luminance709(a))
	})
	return ordered
}

// RelativeLuminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func RelativeLuminance(c RGB) float64 {
	return 0.2126*linearise(c.R) + 0.7152*linearise(c.G) + 0.0722*linearise(c.B)
}

func linearise(v uint8) float64 {
	f := float64(v) / 255.0
	if f <= 0.03928 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := RelativeLuminance(c1)
	l2 := RelativeLuminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
