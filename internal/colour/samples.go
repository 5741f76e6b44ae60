package colour

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// ErrMalformedBuffer is returned when a pixel buffer is not a whole number of
// RGBA quadruplets.
var ErrMalformedBuffer = errors.New("pixel buffer length is not a multiple of 4")

// ExtractSamples turns an interleaved RGBA buffer into colour samples,
// dropping the alpha byte of every pixel. Scan order is preserved.
func ExtractSamples(pix []byte) ([]RGB, error) {
	if len(pix)%4 != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMalformedBuffer, len(pix))
	}

	samples := make([]RGB, len(pix)/4)
	for i := range samples {
		p := pix[i*4 : i*4+3 : i*4+3]
		samples[i] = RGB{R: p[0], G: p[1], B: p[2]}
	}
	return samples, nil
}

// SamplesFromImage flattens a decoded image into colour samples.
// The image is first drawn onto a non-premultiplied RGBA canvas so every
// decoder's pixel model ends up in the same byte layout.
func SamplesFromImage(img image.Image) []RGB {
	bounds := img.Bounds()
	canvas, ok := img.(*image.NRGBA)
	if !ok || canvas.Stride != 4*bounds.Dx() {
		canvas = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	}

	// The canvas stride is exactly 4*width, so the buffer is well formed.
	samples, _ := ExtractSamples(canvas.Pix[:4*bounds.Dx()*bounds.Dy()])
	return samples
}
