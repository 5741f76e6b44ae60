package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func encode(t *testing.T, format string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, testImage())
	case "jpeg":
		err = jpeg.Encode(&buf, testImage(), nil)
	case "gif":
		err = gif.Encode(&buf, testImage(), nil)
	case "bmp":
		err = bmp.Encode(&buf, testImage())
	case "tiff":
		err = tiff.Encode(&buf, testImage(), nil)
	default:
		t.Fatalf("unknown format %s", format)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", format, err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	loader := NewFileLoader()

	for _, format := range []string{"png", "jpeg", "gif", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			path := writeFile(t, "test."+format, encode(t, format))
			img, info, err := Load(context.Background(), loader, path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
				t.Errorf("Load() bounds = %v, want 8x4", b)
			}
			if info.Width != 8 || info.Height != 4 || info.Name != "test."+format {
				t.Errorf("Load() info = %+v", info)
			}
		})
	}
}

func TestFileLoaderErrors(t *testing.T) {
	loader := NewFileLoader()
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty path", path: "", want: "cannot be empty"},
		{name: "missing file", path: filepath.Join(dir, "nope.png"), want: "not found"},
		{name: "directory", path: dir, want: "directory"},
		{name: "garbage", path: writeFile(t, "bad.png", []byte("dummy image data")), want: "not a valid image file type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(context.Background(), loader, tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestSmartLoader(t *testing.T) {
	pngData := encode(t, "png")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(pngData)
	}))
	defer srv.Close()

	loader := NewSmartLoader()

	t.Run("url", func(t *testing.T) {
		img, info, err := Load(context.Background(), loader, srv.URL+"/image.png")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if img.Bounds().Dx() != 8 {
			t.Errorf("Load() width = %d, want 8", img.Bounds().Dx())
		}
		if info.Name != "image.png" || info.MIMEType != "image/png" {
			t.Errorf("Load() info = %+v", info)
		}
	})

	t.Run("url not found", func(t *testing.T) {
		if _, _, err := Load(context.Background(), loader, srv.URL+"/missing.png"); err == nil {
			t.Error("Load() expected error for 404")
		}
	})

	t.Run("local file", func(t *testing.T) {
		path := writeFile(t, "local.png", pngData)
		if _, _, err := Load(context.Background(), loader, path); err != nil {
			t.Errorf("Load() error = %v", err)
		}
	})
}

func TestIsURL(t *testing.T) {
	for in, want := range map[string]bool{
		"https://example.com/a.png": true,
		"http://example.com/a.png":  true,
		"ftp://example.com/a.png":   false,
		"/tmp/a.png":                false,
	} {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		data     []byte
		wantMIME string
		wantErr  error
	}{
		{name: "png", file: "a.png", data: encode(t, "png"), wantMIME: "image/png"},
		{name: "jpeg", file: "a.jpg", data: encode(t, "jpeg"), wantMIME: "image/jpeg"},
		{name: "bmp", file: "a.bmp", data: encode(t, "bmp"), wantMIME: "image/bmp"},
		{name: "tiff", file: "a.tif", data: encode(t, "tiff"), wantMIME: "image/tiff"},
		{name: "misnamed png", file: "a.gif", data: encode(t, "png"), wantMIME: "image/png"},
		{
			name:     "icon without decoder",
			file:     "favicon.ico",
			data:     []byte{0, 0, 1, 0, 1, 0, 16, 16, 0, 0, 1, 0, 32, 0},
			wantMIME: "image/x-icon",
			wantErr:  ErrNoDecoder,
		},
		{
			name:     "svg without decoder",
			file:     "logo.svg",
			data:     []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`),
			wantMIME: "image/svg+xml",
			wantErr:  ErrNoDecoder,
		},
		{
			name:    "text",
			file:    "notes.txt",
			data:    []byte("not an image at all"),
			wantErr: ErrUnsupportedType,
		},
		{
			name:    "corrupt png is not trusted by extension",
			file:    "broken.png",
			data:    []byte("dummy image data"),
			wantErr: ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Inspect("/some/dir/"+tt.file, tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Inspect() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Inspect() error = %v", err)
			}

			if tt.wantMIME != "" && info.MIMEType != tt.wantMIME {
				t.Errorf("MIMEType = %q, want %q", info.MIMEType, tt.wantMIME)
			}
			if info.Name != tt.file {
				t.Errorf("Name = %q, want %q", info.Name, tt.file)
			}
			if tt.wantErr == nil && (info.Width != 8 || info.Height != 4) {
				t.Errorf("dimensions = %dx%d, want 8x4", info.Width, info.Height)
			}
		})
	}
}

func TestFileInfoHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{size: 12, want: "12 B"},
		{size: 1536, want: "1.5 KiB"},
		{size: 3 << 20, want: "3.0 MiB"},
	}

	for _, tt := range tests {
		if got := (FileInfo{Size: tt.size}).HumanSize(); got != tt.want {
			t.Errorf("HumanSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestAllowedMIMETypes(t *testing.T) {
	for _, mt := range []string{"image/png", "image/webp", "image/svg+xml", "image/pjpeg"} {
		if !IsAllowedMIMEType(mt) {
			t.Errorf("IsAllowedMIMEType(%q) = false", mt)
		}
	}
	if IsAllowedMIMEType("image/heic") {
		t.Error("IsAllowedMIMEType(image/heic) = true")
	}
}
