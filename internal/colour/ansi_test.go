package colour

import (
	"strings"
	"testing"
)

func TestReadableOn(t *testing.T) {
	tests := []struct {
		name string
		bg   RGB
		want RGB
	}{
		{name: "white background", bg: white, want: black},
		{name: "black background", bg: black, want: white},
		{name: "yellow background", bg: RGB{R: 255, G: 255}, want: black},
		{name: "navy background", bg: RGB{B: 128}, want: white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadableOn(tt.bg); got != tt.want {
				t.Errorf("ReadableOn(%v) = %v, want %v", tt.bg, got, tt.want)
			}
		})
	}
}

func TestColourPreviewWithText(t *testing.T) {
	got := ColourPreviewWithText(white, "#FFFFFF", 9)
	if !strings.Contains(got, " #FFFFFF ") {
		t.Errorf("ColourPreviewWithText() = %q, text not centred", got)
	}
	if !strings.Contains(got, "\033[38;2;0;0;0m") {
		t.Errorf("ColourPreviewWithText() = %q, want black text on white", got)
	}

	got = ColourPreviewWithText(RGB{R: 1, G: 2, B: 3}, "", 0)
	if !strings.HasPrefix(got, "\033[48;2;1;2;3m") || strings.Count(got, " ") != defaultWidth {
		t.Errorf("ColourPreviewWithText() = %q, want a blank default-width block", got)
	}

	got = ColourPreviewWithText(black, "truncated", 4)
	if !strings.Contains(got, "trun\033[0m") {
		t.Errorf("ColourPreviewWithText() = %q, want truncated text", got)
	}
}
