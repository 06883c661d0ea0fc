package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/internal/capture"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// ExportOptions holds options for the export command.
type ExportOptions struct {
	Out        string
	Zoom       bool
	Background bool
	Shadow     bool
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <module> [variant]",
		Short: "Export a story variant as a PNG file",
		Long: `Render a variant headlessly and save it as an image.

The file is named {module}__{variant}.png inside the export directory unless
--file is given. Exporting while zoomed needs export.allow_zoom (or
--allow-zoom); the file then gets an "@x2" suffix.`,
		Example: `  # Default variant into the export directory
  showcase export atoms__Button

  # Explicit file, with the checkered background
  showcase export atoms__Button dark --background -f button-dark.png`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeModules,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "file", "f", "", "Output file (default: <out-dir>/<module>__<variant>.png)")
	cmd.Flags().String("out-dir", "", "Directory for exported files")
	cmd.Flags().Bool("allow-zoom", false, "Permit exporting while zoomed")
	cmd.Flags().BoolVar(&opts.Zoom, "zoom", false, "Export at double scale")
	cmd.Flags().BoolVar(&opts.Background, "background", false, "Draw the checkered background")
	cmd.Flags().BoolVar(&opts.Shadow, "shadow", false, "Draw the shadow box")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, opts *ExportOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	_, reg, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	variant := ""
	if len(args) > 1 {
		variant = args[1]
	}
	rt, err := openHeadless(cmd.Context(), reg, args[0], variant, showcase.Options{
		AllowZoomExport: cfg.Export.AllowZoom,
		Logger:          cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	if opts.Zoom {
		rt.Toggle(showcase.FlagZoom)
	}
	if opts.Background {
		rt.Toggle(showcase.FlagBackground)
	}
	if opts.Shadow {
		rt.Toggle(showcase.FlagShadow)
	}

	dl, err := rt.Export(cmd.Context(), capture.New())
	if errors.Is(err, showcase.ErrZoomExport) {
		return fmt.Errorf("%w (set export.allow_zoom or pass --allow-zoom)", err)
	}
	if err != nil {
		return err
	}

	path := opts.Out
	if path == "" {
		path = filepath.Join(cfg.Export.OutDir, dl.Filename)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, dl.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmdCtx.Logger.Debug("exported", "file", path, "bytes", len(dl.Data))
	cmdCtx.Renderer.Println(path)
	return nil
}
