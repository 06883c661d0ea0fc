package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/internal/capture"
	"github.com/leapstack-labs/showcase/internal/catalog"
	"github.com/leapstack-labs/showcase/internal/cli/config"
	"github.com/leapstack-labs/showcase/internal/ui"
	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var dev bool

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"ui"},
		Short:   "Start the component browser",
		Long: `Start a local web server with the component browser.

The browser provides:
- Sidebar of story modules by group
- Live preview of every variant with background, zoom and shadow toggles
- PNG export of the active variant
- Reload on story file changes (--watch)`,
		Example: `  # Start on the default port
  showcase serve

  # Custom port, no browser window
  showcase ui --port 3000 --no-browser`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, dev)
		},
	}

	cmd.Flags().Int("port", 0, fmt.Sprintf("Port to serve on (default: %d)", config.DefaultPort))
	cmd.Flags().Bool("no-browser", false, "Don't auto-open browser")
	cmd.Flags().Bool("watch", true, "Watch for story file changes")
	cmd.Flags().Bool("allow-zoom", false, "Permit exporting while zoomed")
	cmd.Flags().String("session-secret", "", "Secret for the session cookie")
	cmd.Flags().BoolVar(&dev, "dev", false, "Serve assets from disk and fail loudly on UI contract errors")

	return cmd
}

func runServe(cmd *cobra.Command, dev bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	if err := cfg.ValidateDirectories(); err != nil {
		return err
	}

	load := func() (*core.Registry, error) {
		_, reg, err := catalog.Load(cfg.StoriesDir, cfg.Patterns)
		return reg, err
	}

	server, err := ui.NewServer(ui.Config{
		Load:            load,
		Capturer:        capture.New(),
		Port:            cfg.UI.Port,
		Watch:           cfg.UI.Watch,
		Dev:             dev,
		SessionSecret:   cfg.UI.SessionSecret,
		StoriesDir:      cfg.StoriesDir,
		AllowZoomExport: cfg.Export.AllowZoom,
		Logger:          cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://localhost:%d%s", cfg.UI.Port, showcase.Route)
	if cfg.UI.AutoOpen {
		go openBrowser(url)
	}

	reg, _ := server.Library().Current()
	cmdCtx.Renderer.Status("Serving %d modules on %s", reg.Len(), url)
	cmdCtx.Renderer.Status("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
