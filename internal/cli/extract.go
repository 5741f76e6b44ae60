package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
)

// previewWidth is the width in cells of each terminal colour swatch.
const previewWidth = 8

// extractOptions holds the flags of the extract command.
type extractOptions struct {
	config  colour.ExtractorConfig
	format  string
	output  string
	fit     string
	preview bool
	info    bool
	// envErrs holds rejected environment defaults by flag name.
	envErrs map[string]error
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{
		config: colour.DefaultExtractorConfig(),
	}

	cmd := &cobra.Command{
		Use:   "extract <image|url>",
		Short: "Extract colour palette from an image",
		Long: `Extract a colour palette from an image using median-cut quantization.

The image's pixels are recursively split along their widest colour channel
until 2^depth buckets remain. Each bucket becomes the average of its pixels
and the palette is printed brightest first.

Supported image formats: PNG, JPEG, GIF, WebP, BMP, TIFF

Examples:
  # Extract 16 colours (default) from an image
  swatch extract wallpaper.jpg

  # Extract 8 colours with a terminal preview
  swatch extract --depth 3 --preview wallpaper.png

  # Extract colours as JSON from a URL
  swatch extract --format json https://example.com/photo.webp

  # Scale the image into a 300x150 canvas first and drop median samples
  swatch extract --fit 300x150 --split drop-midpoint photo.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	splitFlag := splitPolicyValue{&opts.config.Split}
	emptyFlag := emptyPolicyValue{&opts.config.Empty}
	depth, depthErr := envInt(EnvDepth, colour.DefaultDepth)
	opts.envErrs = map[string]error{
		"depth": depthErr,
		"split": envDefault(EnvSplit, splitFlag),
		"empty": envDefault(EnvEmpty, emptyFlag),
	}

	flags.IntVarP(&opts.config.Depth, "depth", "d", depth,
		fmt.Sprintf("median-cut depth, yields up to 2^depth colours (0-%d)", colour.MaxDepth))
	flags.Var(splitFlag, "split", "median split policy (lossless, drop-midpoint)")
	flags.Var(emptyFlag, "empty", "empty bucket policy (inherit, omit)")
	flags.StringVarP(&opts.format, "format", "f", envString(EnvFormat, "hex"), "output format (hex, rgb, hsl, json)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVar(&opts.fit, "fit", "", "scale the image to fit a WxH canvas before sampling")
	flags.BoolVar(&opts.preview, "preview", false, "show colour previews in terminal")
	flags.BoolVar(&opts.info, "info", false, "print file name, size and type to stderr")

	return cmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, path string, opts *extractOptions) error {
	logger := newLogger(cmd)
	ctx := cmd.Context()

	if err := envError(cmd, opts.envErrs); err != nil {
		return fmt.Errorf("invalid environment: %w", err)
	}
	if err := opts.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !isValidFormat(opts.format) {
		return fmt.Errorf("unsupported format: %s (supported: hex, rgb, hsl, json)", opts.format)
	}
	fit, err := image.ParseSize(opts.fit)
	if err != nil {
		return fmt.Errorf("invalid --fit: %w", err)
	}

	logger.Debug("loading image", "path", path)
	img, info, err := image.Load(ctx, image.NewSmartLoader(), path)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}
	if opts.info {
		fmt.Fprintln(cmd.ErrOrStderr(), info.String())
	}
	logger.Debug("image loaded", "name", info.Name, "size", info.HumanSize(), "type", info.MIMEType,
		"width", info.Width, "height", info.Height)

	if !fit.IsZero() {
		img = image.FitWithin(img, fit)
		logger.Debug("image scaled", "target", fit.String(), "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	}

	extractor, err := colour.NewExtractor(opts.config)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	logger.Debug("extracting palette", "algorithm", opts.config.Algorithm, "depth", opts.config.Depth,
		"split", opts.config.Split, "empty", opts.config.Empty)
	palette, err := extractor.Extract(ctx, img)
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	if want := 1 << opts.config.Depth; palette.Len() != want {
		logger.Warn("palette size differs from 2^depth", "colours", palette.Len(), "expected", want)
	}
	logger.Debug("palette extracted", "colours", palette.Len())

	showPreview := opts.preview
	if showPreview && (opts.output != "" || !isTerminal(cmd.OutOrStdout())) {
		logger.Warn("preview disabled: output is not a terminal")
		showPreview = false
	}

	output, err := formatPalette(palette, opts.format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if opts.output != "" {
		logger.Debug("writing output", "path", opts.output)
		if err := os.WriteFile(opts.output, []byte(output), 0o644); err != nil { // #nosec G306 - Palette output is not sensitive
			return fmt.Errorf("failed to write output file: %w", err)
		}
		logger.Info("wrote palette", "path", opts.output, "colours", palette.Len())
		return nil
	}

	_, err = io.WriteString(cmd.OutOrStdout(), output)
	return err
}

func isValidFormat(format string) bool {
	switch format {
	case "hex", "rgb", "hsl", "json":
		return true
	default:
		return false
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	if format == "json" {
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	}

	var lines []string
	switch format {
	case "hex":
		lines = palette.ToHex()
	case "rgb", "hsl":
		for _, c := range palette.All() {
			if format == "rgb" {
				lines = append(lines, c.String())
			} else {
				lines = append(lines, c.CSSHsl())
			}
		}
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, hsl, json)", format)
	}

	var sb strings.Builder
	for i, line := range lines {
		if showPreview {
			sb.WriteString(colour.ColourPreviewWithText(palette.Colors[i], strconv.Itoa(i+1), previewWidth) + " ")
		}
		sb.WriteString(line + "\n")
	}
	return sb.String(), nil
}
