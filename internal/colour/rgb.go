// Package colour provides palette extraction by median-cut quantization.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrChannelRange is returned when a channel value falls outside [0, 255].
	ErrChannelRange = errors.New("channel value out of range")

	// ErrInvalidHex is returned when a string is not a #RRGGBB colour.
	ErrInvalidHex = errors.New("invalid hex colour")
)

// RGB is a single colour sample. Alpha is never carried.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NewRGB builds an RGB from integer channels, rejecting values outside [0, 255]
// instead of clamping them.
func NewRGB(r, g, b int) (RGB, error) {
	for _, ch := range []struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.v < 0 || ch.v > 255 {
			return RGB{}, fmt.Errorf("%w: %s=%d", ErrChannelRange, ch.name, ch.v)
		}
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as an uppercase "#RRGGBB" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// RGBA implements color.Color. Samples are always opaque.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// HSL returns hue in degrees [0, 360) with saturation and lightness in [0, 1].
func (c RGB) HSL() (h, s, l float64) {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()
}

// CSSHsl formats the colour as "hsl(h, s%, l%)" with whole-number components.
func (c RGB) CSSHsl() string {
	h, s, l := c.HSL()
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, s*100, l*100)
}

// ToHex encodes a colour as "#RRGGBB".
func ToHex(c RGB) string {
	return c.Hex()
}

// ParseHex parses "#RRGGBB" or "RRGGBB" in either case.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
