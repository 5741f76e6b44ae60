//go:build ignore

// Writes testdata/sample.png, a hue sweep over a dark-to-light ramp, for
// trying swatch by hand: go run testdata/generate_test_image.go
package main

import (
	"image"
	"image/png"
	"log"
	"os"

	"github.com/lucasb-eyer/go-colorful"
)

func main() {
	const width, height = 360, 120

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		l := 0.15 + 0.7*float64(y)/float64(height-1)
		for x := range width {
			img.Set(x, y, colorful.Hsl(float64(x), 0.8, l).Clamped())
		}
	}

	f, err := os.Create("testdata/sample.png")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
	log.Println("wrote testdata/sample.png")
}
