package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrforge/pkg/cache"
	"github.com/matzehuels/qrforge/pkg/errors"
	"github.com/matzehuels/qrforge/pkg/pipeline"
	"github.com/matzehuels/qrforge/pkg/qr"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output  string
	format  string
	width   int
	height  int
	quality int
}

// convertCommand creates the convert command, which rasterizes an SVG file.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert <file.svg>",
		Short: "Rasterize an SVG file to PNG, JPEG or WebP",
		Long: `Rasterize an SVG document. The format defaults to the output file's
extension. Width and height default to the document's viewBox; giving only one
of them keeps the aspect ratio.`,
		Example: `  qrforge convert code.svg -o code.png --width 1024`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("quality") {
				opts.quality = cfg.Quality
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil, c.Logger)
			return runConvert(ctx, runner, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, jpeg, webp (default from --output, else png)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "output width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "output height in pixels")
	cmd.Flags().IntVar(&opts.quality, "quality", pipeline.DefaultQuality, "raster quality (1-100)")

	return cmd
}

// convertFormat picks the target format from the flag or the output extension.
func convertFormat(flag, output string) (qr.Format, error) {
	if flag != "" {
		return qr.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(output), "."); ext != "" {
		return qr.ParseFormat(ext)
	}
	return qr.FormatPNG, nil
}

// runConvert reads input, rasterizes it and writes the result.
func runConvert(ctx context.Context, runner *pipeline.Runner, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	format, err := convertFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	if !format.IsRaster() {
		return errors.New(errors.ErrCodeInvalidFormat, "convert produces raster formats only, got %s", format)
	}

	svg, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "read %s", input)
	}
	logger.Infof("Converting %s", input)

	data, err := runner.Convert(ctx, svg, format, pipeline.ConvertOptions{
		Width:   opts.width,
		Height:  opts.height,
		Quality: opts.quality,
	})
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + format.Ext()
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	if err := pipeline.WriteAtomic(ctx, output, data); err != nil {
		return err
	}

	printSuccess("Converted to %s", strings.ToUpper(string(format)))
	printFile(output)
	printDetail("%s", formatBytes(len(data)))
	return nil
}
