package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"mime"
	"net/http"
	"path"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

var (
	// ErrUnsupportedType is returned for content outside the image allow-list.
	ErrUnsupportedType = errors.New("not a valid image file type")

	// ErrNoDecoder is returned for allowed image types this build cannot decode.
	ErrNoDecoder = errors.New("no decoder for image type")
)

// decoderMIME maps image.Decode format names to MIME types.
var decoderMIME = map[string]string{
	"bmp":  "image/bmp",
	"gif":  "image/gif",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// AllowedMIMETypes returns the image types accepted as input.
// https://developer.mozilla.org/en-US/docs/Web/Media/Formats/Image_types
func AllowedMIMETypes() []string {
	return []string{
		"image/apng",
		"image/bmp",
		"image/gif",
		"image/jpeg",
		"image/pjpeg",
		"image/png",
		"image/svg+xml",
		"image/tiff",
		"image/webp",
		"image/x-icon",
	}
}

// IsAllowedMIMEType reports whether mimeType is on the allow-list.
func IsAllowedMIMEType(mimeType string) bool {
	return slices.Contains(AllowedMIMETypes(), mimeType)
}

// FileInfo describes an input image before quantization.
type FileInfo struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// HumanSize returns the size in binary units, e.g. "1.5 KiB".
func (fi FileInfo) HumanSize() string {
	return humanize.IBytes(uint64(fi.Size))
}

// String returns a one-line summary for display.
func (fi FileInfo) String() string {
	return fmt.Sprintf("File name: %s, File size: %s, Type: %s, Dimensions: %dx%d",
		fi.Name, fi.HumanSize(), fi.MIMEType, fi.Width, fi.Height)
}

// DetectMIMEType identifies the type of image data. Decodable formats are
// identified by their decoder; anything else falls back to content sniffing
// and then to the file extension in name.
func DetectMIMEType(name string, data []byte) string {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		if mt, ok := decoderMIME[format]; ok {
			return mt
		}
	}

	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}

	// Only trust the extension for types without a decoder; a .png that
	// failed to decode is not a PNG.
	byExt, _, err := mime.ParseMediaType(mime.TypeByExtension(strings.ToLower(path.Ext(name))))
	if err == nil && strings.HasPrefix(byExt, "image/") && !hasDecoder(byExt) {
		return byExt
	}
	return sniffed
}

func hasDecoder(mimeType string) bool {
	for _, mt := range decoderMIME {
		if mt == mimeType {
			return true
		}
	}
	return false
}

// Inspect validates image data against the allow-list and reports its
// dimensions. name is only used for display and extension fallback.
func Inspect(name string, data []byte) (FileInfo, error) {
	info := FileInfo{
		Name:     path.Base(name),
		Size:     int64(len(data)),
		MIMEType: DetectMIMEType(name, data),
	}

	if !IsAllowedMIMEType(info.MIMEType) {
		return info, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, info.Name, info.MIMEType)
	}

	if !hasDecoder(info.MIMEType) && info.MIMEType != "image/apng" {
		return info, fmt.Errorf("%w: %s (%s)", ErrNoDecoder, info.Name, info.MIMEType)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return info, fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	info.Width, info.Height = cfg.Width, cfg.Height

	return info, nil
}
