package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/internal/catalog"
)

// GenerateOptions holds options for the generate command.
type GenerateOptions struct {
	Watch bool
	Quiet bool
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	opts := &GenerateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the Go story registry",
		Long: `Scan the stories directory and write a Go file declaring Registry(),
for hosts that mount the showcase from their own binary.

With --watch the file is rewritten whenever a story file is added, renamed or
removed.`,
		Example: `  # Write src/showcase_catalog_gen.go
  showcase generate

  # Custom location and package, regenerated on change
  showcase generate --out internal/stories/catalog_gen.go --package stories --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().String("out", "", "Generated file (default: <stories-dir>/"+catalog.DefaultGenerateOut+")")
	cmd.Flags().String("package", "", "Package of the generated file (default: "+catalog.DefaultGeneratePackage+")")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Regenerate when story files change")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Do not report written files")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	out := cfg.Generate.Out
	if out == "" {
		out = filepath.Join(cfg.StoriesDir, catalog.DefaultGenerateOut)
	}
	genOpts := catalog.GenerateOptions{Package: cfg.Generate.Package, Filename: out}

	generate := func() error {
		cat, err := catalog.Scan(cfg.StoriesDir, cfg.Patterns)
		if err != nil {
			return fmt.Errorf("failed to scan stories: %w", err)
		}
		if err := catalog.WriteFile(out, cat, genOpts); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		if !opts.Quiet {
			cmdCtx.Renderer.Status("wrote %s (%d modules)", out, len(cat.Entries))
		}
		return nil
	}

	if err := generate(); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}

	cmdCtx.Renderer.Status("watching %s for changes (Ctrl+C to stop)", cfg.StoriesDir)
	return catalog.Watch(cmd.Context(), cfg.StoriesDir, cmdCtx.Logger, func() {
		if err := generate(); err != nil {
			cmdCtx.Logger.Error("generate failed", "error", err)
		}
	})
}
