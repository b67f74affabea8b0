package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/logo"
	"github.com/matzehuels/qrforge/pkg/pipeline"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// defaultOutput is the base name used when --output is not given.
const defaultOutput = "qrcode"

// renderOpts holds the command-line flags for the render command.
// Zero values mean "use the config file".
type renderOpts struct {
	output    string  // output file (single format) or base path (multiple); "-" for stdout
	formats   string  // comma-separated formats
	size      int     // symbol size in pixels, excluding the quiet zone
	margin    int     // quiet zone in pixels
	logo      string  // logo file path
	logoRatio float64 // logo size relative to the symbol
	bg, fg    string  // colours
	ec        string  // error correction level
	quality   int     // raster quality
	noCache   bool    // bypass the artifact cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <text>",
		Short: "Render text as a QR code",
		Long: `Render text as a QR code in one or more formats.

A single format is written to --output (default qrcode.<ext>, "-" for stdout).
Several formats share --output as a base path and get one file per extension.
A missing --logo file is reported and the code is rendered without it.`,
		Example: `  qrforge render "https://example.com" -f png -o site.png
  qrforge render "hello" -f svg,png,webp --logo logo.png --size 400`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			applyRenderFlags(cmd, &cfg, &opts)

			formats, err := parseFormats(opts.formats)
			if err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			runner, err := c.newRunner(ctx, cfg, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			req, err := buildRequest(args[0], cfg, opts.logo)
			if err != nil {
				return err
			}
			return runRender(ctx, runner, req, formats, cfg.Quality, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, jpeg, webp (comma-separated)")
	cmd.Flags().IntVar(&opts.size, "size", qr.DefaultSize, "symbol size in pixels")
	cmd.Flags().IntVar(&opts.margin, "margin", 0, "quiet zone in pixels (default size/10)")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "logo image to centre on the code")
	cmd.Flags().Float64Var(&opts.logoRatio, "logo-ratio", qr.DefaultLogoSizeRatio, "logo size relative to the symbol (0-1]")
	cmd.Flags().StringVar(&opts.bg, "bg", qr.DefaultBackground, "background colour")
	cmd.Flags().StringVar(&opts.fg, "fg", qr.DefaultForeground, "foreground colour")
	cmd.Flags().StringVar(&opts.ec, "ec", qr.DefaultECLevel.String(), "error correction level: L, M, Q, H")
	cmd.Flags().IntVar(&opts.quality, "quality", pipeline.DefaultQuality, "raster quality (1-100)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")

	return cmd
}

// applyRenderFlags copies explicitly set flags over the config values.
func applyRenderFlags(cmd *cobra.Command, cfg *config, opts *renderOpts) {
	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Size = opts.size
	}
	if flags.Changed("margin") {
		m := opts.margin
		cfg.Margin = &m
	}
	if flags.Changed("logo-ratio") {
		cfg.LogoSizeRatio = opts.logoRatio
	}
	if flags.Changed("bg") {
		cfg.Background = opts.bg
	}
	if flags.Changed("fg") {
		cfg.Foreground = opts.fg
	}
	if flags.Changed("ec") {
		cfg.ErrorCorrection = opts.ec
	}
	if flags.Changed("quality") {
		cfg.Quality = opts.quality
	}
}

// buildRequest turns the merged settings into a request.
// The logo is resolved here so the warning is printed once for all formats.
func buildRequest(text string, cfg config, logoPath string) (*qr.Request, error) {
	level, err := qr.ParseECLevel(cfg.ErrorCorrection)
	if err != nil {
		return nil, err
	}

	req := qr.New(text,
		qr.WithSize(cfg.Size),
		qr.WithColors(cfg.Background, cfg.Foreground),
		qr.WithErrorCorrection(level),
		qr.WithLogoSizeRatio(cfg.LogoSizeRatio),
	)
	if cfg.Margin != nil {
		req.SetMargin(*cfg.Margin)
	}

	if logoPath != "" {
		src, notice := logo.Resolve(logo.Path(logoPath))
		if notice != "" {
			printWarning("%s", notice)
		}
		req.SetLogo(src, 0)
	}
	return req, nil
}

// parseFormats parses the --format flag into formats, defaulting to SVG.
// Duplicates are dropped.
func parseFormats(s string) ([]qr.Format, error) {
	if strings.TrimSpace(s) == "" {
		return []qr.Format{qr.FormatSVG}, nil
	}
	var out []qr.Format
	seen := make(map[qr.Format]bool)
	for _, part := range strings.Split(s, ",") {
		f, err := qr.ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// basePath strips a known format extension from output.
// An empty output yields the default base name.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if _, err := qr.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file a format is written to.
func outputPath(output string, format qr.Format, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output) + format.Ext()
}

// runRender renders req in every format and writes the results.
func runRender(ctx context.Context, runner *pipeline.Runner, req *qr.Request, formats []qr.Format, quality int, output string) error {
	logger := loggerFromContext(ctx)
	opts := []pipeline.CallOption{pipeline.WithQuality(quality)}

	if output == "-" {
		if len(formats) != 1 {
			return errors.New(errors.ErrCodeInvalidPath, "stdout output takes exactly one format")
		}
		res, err := runner.Render(ctx, req, formats[0], opts...)
		if err != nil {
			return err
		}
		_, err = stdout.Write(res.Bytes())
		return err
	}

	prog := newProgress(logger)
	multiple := len(formats) > 1
	for _, f := range formats {
		path := outputPath(output, f, multiple)
		res, err := runner.WriteFile(ctx, req, f, path, opts...)
		if err != nil {
			return err
		}
		logger.Debug("rendered", "format", f, "tag", res.Tag, "key", res.Key)
		printSuccess("Rendered %s", strings.ToUpper(string(f)))
		printFile(path)
		printStats(res)
	}
	prog.done("Rendered " + plural(len(formats), "file"))
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
