// Package commands implements the showcase subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/internal/catalog"
	"github.com/leapstack-labs/showcase/internal/cli/config"
	"github.com/leapstack-labs/showcase/internal/cli/output"
	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the loaded config, the logger and a renderer for cmd.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}, nil
}

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to environment variables.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		StoriesDir:   getEnvOrDefault(config.EnvPrefix+"STORIES_DIR", config.DefaultStoriesDir),
		OutputFormat: getEnvOrDefault(config.EnvPrefix+"OUTPUT", config.DefaultOutput),
		UI: config.UIConfig{
			Port:          config.DefaultPort,
			AutoOpen:      true,
			Watch:         true,
			SessionSecret: getEnvOrDefault(config.EnvPrefix+"UI_SESSION_SECRET", config.DefaultSessionSecret),
		},
		Export:   config.ExportConfig{OutDir: config.DefaultExportDir},
		Generate: config.GenerateConfig{Package: catalog.DefaultGeneratePackage},
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadCatalog scans the configured stories directory.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, *core.Registry, error) {
	if err := cfg.ValidateDirectories(); err != nil {
		return nil, nil, err
	}
	cat, reg, err := catalog.Load(cfg.StoriesDir, cfg.Patterns)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan stories: %w", err)
	}
	return cat, reg, nil
}

// resolveModule finds name in reg, ignoring case when there is no exact match.
func resolveModule(reg *core.Registry, name string) (string, error) {
	if _, ok := reg.Get(name); ok {
		return name, nil
	}
	for _, n := range reg.Names() {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	err := fmt.Errorf("%w: %s", showcase.ErrUnknownModule, name)
	if s := catalog.Suggest(reg.Names(), name, 3); len(s) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(s, ", "))
	}
	return "", err
}

// openHeadless loads module into a fresh runtime and activates variant, or
// the default variant when variant is empty.
func openHeadless(ctx context.Context, reg *core.Registry, module, variant string, opts showcase.Options) (*showcase.Runtime, error) {
	name, err := resolveModule(reg, module)
	if err != nil {
		return nil, err
	}

	rt := showcase.New(reg, 0, opts)
	req := rt.Open(name)
	if req == nil {
		return nil, fmt.Errorf("%w: %s", showcase.ErrUnknownModule, name)
	}
	rt.Settle(req.Run(ctx))

	v := rt.View()
	if v.Error != "" {
		return nil, fmt.Errorf("%s", v.Error)
	}
	if variant != "" && !rt.SelectVariant(variant) {
		return nil, fmt.Errorf("no such variant %q in %s (variants: %s)", variant, name, strings.Join(v.VariantIDs, ", "))
	}
	if !rt.HasActiveVariant() {
		return nil, fmt.Errorf("%s has no variants", name)
	}
	return rt, nil
}

// completeModules offers module names from the configured stories directory.
func completeModules(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	_, reg, err := loadCatalog(getConfig())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return reg.Names(), cobra.ShellCompDirectiveNoFileComp
}
