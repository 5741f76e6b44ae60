package colour

import (
	"context"
	"fmt"
	"image"
	"slices"
)

// Extractor defines the interface for palette extraction algorithms.
type Extractor interface {
	// Extract builds a palette from an image.
	Extract(ctx context.Context, img image.Image) (*Palette, error)
}

// Algorithm represents the palette extraction algorithm type.
type Algorithm string

const (
	// AlgorithmMedianCut recursively halves the colour set along its widest channel.
	AlgorithmMedianCut Algorithm = "mediancut"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmMedianCut,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	return slices.Contains(ValidAlgorithms(), alg)
}

// ExtractorConfig holds configuration for palette extraction.
type ExtractorConfig struct {
	Algorithm Algorithm
	Depth     int
	Split     SplitPolicy
	Empty     EmptyPolicy
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm: AlgorithmMedianCut,
		Depth:     DefaultDepth,
		Split:     SplitLossless,
		Empty:     EmptyInherit,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s (valid algorithms: %v)", c.Algorithm, ValidAlgorithms())
	}
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: %d (valid: 0-%d)", ErrDepthRange, c.Depth, MaxDepth)
	}
	switch c.Split {
	case SplitLossless, SplitDropMidpoint:
	default:
		return fmt.Errorf("invalid split policy: %s", c.Split)
	}
	switch c.Empty {
	case EmptyInherit, EmptyOmit:
	default:
		return fmt.Errorf("invalid empty bucket policy: %s", c.Empty)
	}
	return nil
}

// NewExtractor creates a new Extractor from the configuration.
func NewExtractor(cfg ExtractorConfig) (Extractor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Algorithm {
	case AlgorithmMedianCut:
		return NewMedianCutExtractor(cfg.Depth, WithSplitPolicy(cfg.Split), WithEmptyPolicy(cfg.Empty)), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", cfg.Algorithm, ValidAlgorithms())
	}
}

// MedianCutExtractor runs the full pipeline: flatten, quantize, order by luminance.
type MedianCutExtractor struct {
	depth int
	opts  []QuantizeOption
}

// NewMedianCutExtractor creates an extractor producing up to 2^depth colours.
func NewMedianCutExtractor(depth int, opts ...QuantizeOption) *MedianCutExtractor {
	return &MedianCutExtractor{
		depth: depth,
		opts:  opts,
	}
}

// Extract builds a brightest-first palette from an image.
func (e *MedianCutExtractor) Extract(ctx context.Context, img image.Image) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	samples := SamplesFromImage(img)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	colours, err := Quantize(samples, e.depth, e.opts...)
	if err != nil {
		return nil, fmt.Errorf("quantization failed: %w", err)
	}

	return NewPalette(OrderByLuminance(colours)), nil
}
