// Package image provides utilities for loading and inspecting images.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/swatch/internal/util/http"
)

// MaxFileBytes caps how much of a local file is read.
const MaxFileBytes = httputil.DefaultMaxBytes

// Loader fetches raw image bytes from a source.
type Loader interface {
	// Read returns the bytes stored at path.
	Read(ctx context.Context, path string) ([]byte, error)
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// FileLoader reads images from the local filesystem.
type FileLoader struct{}

var (
	_ Loader = (*FileLoader)(nil)
	_ Loader = (*SmartLoader)(nil)
)

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Read returns the raw bytes of a local image file.
func (l *FileLoader) Read(_ context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() > MaxFileBytes {
		return nil, fmt.Errorf("image file too large: %d bytes (maximum: %d)", info.Size(), MaxFileBytes)
	}

	data, err := os.ReadFile(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}
	return data, nil
}

// SmartLoader reads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetchOpts  httputil.FetchOptions
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
	}
}

// Read returns the raw bytes behind a local path or HTTP(S) URL.
func (l *SmartLoader) Read(ctx context.Context, path string) ([]byte, error) {
	if !IsURL(path) {
		return l.fileLoader.Read(ctx, path)
	}

	data, err := httputil.Fetch(ctx, path, l.fetchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	return data, nil
}

// Load reads path through l, checks it against the image allow-list and
// decodes it. The returned FileInfo describes the bytes as read.
func Load(ctx context.Context, l Loader, path string) (image.Image, FileInfo, error) {
	data, err := l.Read(ctx, path)
	if err != nil {
		return nil, FileInfo{}, err
	}

	info, err := Inspect(path, data)
	if err != nil {
		return nil, info, err
	}

	img, err := Decode(data)
	if err != nil {
		return nil, info, err
	}
	return img, info, nil
}

// Decode decodes image bytes with any registered decoder.
func Decode(data []byte) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}
