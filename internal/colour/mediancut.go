package colour

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

const (
	// DefaultDepth is the recursion depth used when none is configured (16 colours).
	DefaultDepth = 4

	// MaxDepth caps the recursion depth (256 colours).
	MaxDepth = 8
)

// ErrDepthRange is returned when the requested depth is outside [0, MaxDepth].
var ErrDepthRange = errors.New("depth out of range")

// SplitPolicy decides what happens to the sample sitting at the median index
// when a bucket is cut in two.
type SplitPolicy int

const (
	// SplitLossless cuts into [0, mid) and [mid, n). Every sample survives.
	SplitLossless SplitPolicy = iota

	// SplitDropMidpoint cuts into [0, mid) and (mid, n), discarding the median
	// sample at every cut, as in-place median-cut implementations commonly do.
	SplitDropMidpoint
)

// String returns the flag spelling of the policy.
func (p SplitPolicy) String() string {
	switch p {
	case SplitLossless:
		return "lossless"
	case SplitDropMidpoint:
		return "drop-midpoint"
	default:
		return fmt.Sprintf("SplitPolicy(%d)", int(p))
	}
}

// ParseSplitPolicy parses the flag spelling of a SplitPolicy.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch s {
	case "lossless":
		return SplitLossless, nil
	case "drop-midpoint":
		return SplitDropMidpoint, nil
	default:
		return 0, fmt.Errorf("unknown split policy: %s (valid: lossless, drop-midpoint)", s)
	}
}

// EmptyPolicy decides how a bucket with no samples is resolved.
type EmptyPolicy int

const (
	// EmptyInherit resolves an empty bucket to the mean of the bucket it was
	// cut from.
	EmptyInherit EmptyPolicy = iota

	// EmptyOmit drops empty buckets, so the palette may come out shorter than
	// 2^depth.
	EmptyOmit
)

// String returns the flag spelling of the policy.
func (p EmptyPolicy) String() string {
	switch p {
	case EmptyInherit:
		return "inherit"
	case EmptyOmit:
		return "omit"
	default:
		return fmt.Sprintf("EmptyPolicy(%d)", int(p))
	}
}

// ParseEmptyPolicy parses the flag spelling of an EmptyPolicy.
func ParseEmptyPolicy(s string) (EmptyPolicy, error) {
	switch s {
	case "inherit":
		return EmptyInherit, nil
	case "omit":
		return EmptyOmit, nil
	default:
		return 0, fmt.Errorf("unknown empty bucket policy: %s (valid: inherit, omit)", s)
	}
}

// QuantizeOption configures a Quantize call.
type QuantizeOption func(*quantizer)

// WithSplitPolicy selects how buckets are cut at the median.
func WithSplitPolicy(p SplitPolicy) QuantizeOption {
	return func(q *quantizer) { q.split = p }
}

// WithEmptyPolicy selects how empty buckets are resolved.
func WithEmptyPolicy(p EmptyPolicy) QuantizeOption {
	return func(q *quantizer) { q.empty = p }
}

type quantizer struct {
	maxDepth int
	split    SplitPolicy
	empty    EmptyPolicy
}

// Quantize reduces samples to at most 2^maxDepth colours by median cut.
//
// Each step picks the channel with the widest value range, sorts the bucket
// along it and cuts at len/2. Buckets reaching maxDepth resolve to their
// rounded mean colour. Results are in cut order, left before right.
//
// The caller's slice is never reordered. An empty input yields an empty
// palette.
func Quantize(samples []RGB, maxDepth int, opts ...QuantizeOption) ([]RGB, error) {
	if maxDepth < 0 || maxDepth > MaxDepth {
		return nil, fmt.Errorf("%w: %d (valid: 0-%d)", ErrDepthRange, maxDepth, MaxDepth)
	}

	q := quantizer{maxDepth: maxDepth}
	for _, opt := range opts {
		opt(&q)
	}

	out := make([]RGB, 0, 1<<maxDepth)
	if len(samples) == 0 {
		return out, nil
	}

	return q.cut(slices.Clone(samples), 0, nil, out), nil
}

// cut resolves one bucket. parent is the mean of the enclosing bucket and is
// nil only at the root.
func (q *quantizer) cut(bucket []RGB, depth int, parent *RGB, out []RGB) []RGB {
	if len(bucket) == 0 {
		if q.empty == EmptyInherit && parent != nil {
			return append(out, *parent)
		}
		return out
	}
	if depth == q.maxDepth {
		return append(out, Mean(bucket))
	}

	ch := widestChannel(bucket)
	slices.SortStableFunc(bucket, func(a, b RGB) int {
		return cmp.Compare(ch.of(a), ch.of(b))
	})

	mid := len(bucket) / 2
	left, right := bucket[:mid], bucket[mid:]
	if q.split == SplitDropMidpoint {
		right = bucket[mid+1:]
	}

	var inherited *RGB
	if q.empty == EmptyInherit && (len(left) == 0 || len(right) == 0) {
		m := Mean(bucket)
		inherited = &m
	}

	out = q.cut(left, depth+1, inherited, out)
	return q.cut(right, depth+1, inherited, out)
}

// Mean returns the per-channel mean of samples, each channel rounded half up.
// It returns black for an empty slice.
func Mean(samples []RGB) RGB {
	n := uint64(len(samples))
	if n == 0 {
		return RGB{}
	}

	var r, g, b uint64
	for _, s := range samples {
		r += uint64(s.R)
		g += uint64(s.G)
		b += uint64(s.B)
	}

	// floor(sum/n + 1/2) without leaving integer arithmetic.
	round := func(sum uint64) uint8 { return uint8((2*sum + n) / (2 * n)) }
	return RGB{R: round(r), G: round(g), B: round(b)}
}

type channel int

const (
	channelRed channel = iota
	channelGreen
	channelBlue
)

func (ch channel) of(c RGB) uint8 {
	switch ch {
	case channelRed:
		return c.R
	case channelGreen:
		return c.G
	default:
		return c.B
	}
}

// widestChannel returns the channel with the largest max-min spread.
// Ties go to red, then green.
func widestChannel(samples []RGB) channel {
	lo := RGB{R: 255, G: 255, B: 255}
	var hi RGB
	for _, s := range samples {
		lo.R, hi.R = min(lo.R, s.R), max(hi.R, s.R)
		lo.G, hi.G = min(lo.G, s.G), max(hi.G, s.G)
		lo.B, hi.B = min(lo.B, s.B), max(hi.B, s.B)
	}

	best, spread := channelRed, int(hi.R)-int(lo.R)
	if d := int(hi.G) - int(lo.G); d > spread {
		best, spread = channelGreen, d
	}
	if d := int(hi.B) - int(lo.B); d > spread {
		best = channelBlue
	}
	return best
}
