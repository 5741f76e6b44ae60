package image

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// Size is a target canvas size in pixels. The zero value means "no scaling".
type Size struct {
	Width  int
	Height int
}

// IsZero reports whether no target was set.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// String returns the size as "WxH", or "" for the zero value.
func (s Size) String() string {
	if s.IsZero() {
		return ""
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses "WxH" (e.g. "640x480"). An empty string is the zero Size.
func ParseSize(s string) (Size, error) {
	if s == "" {
		return Size{}, nil
	}

	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return Size{}, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return Size{}, fmt.Errorf("invalid width in %q", s)
	}
	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return Size{}, fmt.Errorf("invalid height in %q", s)
	}
	return Size{Width: width, Height: height}, nil
}

// FitWithin scales img by a single ratio so it just fits inside target,
// enlarging or shrinking as needed. The result is an *image.NRGBA anchored at
// the origin. A zero target returns img unchanged.
func FitWithin(img image.Image, target Size) image.Image {
	src := img.Bounds()
	if target.IsZero() || src.Empty() {
		return img
	}

	ratio := math.Min(
		float64(target.Width)/float64(src.Dx()),
		float64(target.Height)/float64(src.Dy()),
	)
	w := max(1, int(math.Round(float64(src.Dx())*ratio)))
	h := max(1, int(math.Round(float64(src.Dy())*ratio)))
	if w == src.Dx() && h == src.Dy() {
		return img
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}
