package commands

import (
	"context"
	"sync"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/internal/capture"
	"github.com/leapstack-labs/showcase/internal/catalog"
	"github.com/leapstack-labs/showcase/internal/cli/config"
	"github.com/leapstack-labs/showcase/internal/tui"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// NewTUICommand creates the tui command.
func NewTUICommand() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse components in the terminal",
		Long: `Browse story modules in the terminal.

Previews are shown as text converted from the story HTML. Keys:
  ↑/↓ move   enter open/close   ←/→ variant
  b background   z zoom   s shadow   e export   q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, noColor)
		},
	}

	cmd.Flags().Bool("watch", true, "Reload when story files change")
	cmd.Flags().Bool("allow-zoom", false, "Permit exporting while zoomed")
	cmd.Flags().String("out-dir", "", "Directory for exported files")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors")

	return cmd
}

func runTUI(cmd *cobra.Command, noColor bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	_, reg, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	profile := termenv.EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}

	tcfg := tui.Config{
		Runtime: showcase.New(reg, 1, showcase.Options{
			AllowZoomExport: cfg.Export.AllowZoom,
			Logger:          cmdCtx.Logger,
		}),
		Capturer: capture.New(),
		OutDir:   cfg.Export.OutDir,
		Profile:  &profile,
		Logger:   cmdCtx.Logger,
	}
	if cfg.UI.Watch {
		tcfg.Updates = watchRegistry(ctx, cfg, cmdCtx)
	}

	return tui.Run(ctx, tcfg)
}

// watchRegistry rescans the stories directory on change and publishes the
// new registry with a fresh token. A failed rescan keeps the old registry.
// The channel is never closed; the program stops reading when it exits.
func watchRegistry(ctx context.Context, cfg *config.Config, cmdCtx *CommandContext) <-chan tui.Update {
	updates := make(chan tui.Update, 1)
	go func() {
		var mu sync.Mutex
		var token showcase.RenderToken = 1
		_ = catalog.Watch(ctx, cfg.StoriesDir, cmdCtx.Logger, func() {
			mu.Lock()
			defer mu.Unlock()
			_, reg, err := catalog.Load(cfg.StoriesDir, cfg.Patterns)
			if err != nil {
				cmdCtx.Logger.Error("reload failed, keeping previous stories", "error", err)
				reg = nil
			}
			token++
			select {
			case updates <- tui.Update{Registry: reg, Token: token}:
			case <-ctx.Done():
			}
		})
	}()
	return updates
}
