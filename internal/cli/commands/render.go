package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/internal/capture"
	"github.com/leapstack-labs/showcase/internal/cli/output"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	Format   string
	Zoom     bool
	Controls map[string]string
}

// renderResult is the JSON shape of a rendered variant.
type renderResult struct {
	Module   string            `json:"module"`
	Variant  string            `json:"variant"`
	Title    string            `json:"title,omitempty"`
	Dark     bool              `json:"dark"`
	HTML     string            `json:"html"`
	Markdown string            `json:"markdown"`
	Toolbar  string            `json:"toolbar,omitempty"`
	Controls map[string]string `json:"controls,omitempty"`
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <module> [variant]",
		Short: "Render one story variant without a browser",
		Long: `Load a module headlessly and print a variant's output.

Without a variant the module's default variant is rendered. Toolbar
controls keep their defaults unless set with --control.`,
		Example: `  # Default variant as Markdown
  showcase render atoms__Button

  # A specific variant as raw HTML
  showcase render atoms__Button sized --format html --control size=lg

  # Machine-readable
  showcase render atoms__Button dark --output json`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeModules,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "markdown", "Output format (html|markdown)")
	cmd.Flags().BoolVar(&opts.Zoom, "zoom", false, "Render as if zoom were active")
	cmd.Flags().StringToStringVar(&opts.Controls, "control", nil, "Toolbar control value as name=value (repeatable)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"html", "markdown"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts *RenderOptions) error {
	if opts.Format != "html" && opts.Format != "markdown" {
		return fmt.Errorf("unknown format %q (want html or markdown)", opts.Format)
	}

	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	_, reg, err := loadCatalog(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	variant := ""
	if len(args) > 1 {
		variant = args[1]
	}
	rt, err := openHeadless(cmd.Context(), reg, args[0], variant, showcase.Options{Logger: cmdCtx.Logger})
	if err != nil {
		return err
	}
	if opts.Zoom {
		rt.Toggle(showcase.FlagZoom)
	}
	names := make([]string, 0, len(opts.Controls))
	for name := range opts.Controls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rt.SetControl(name, opts.Controls[name])
	}

	p := rt.Render(cmd.Context())
	if p.Err != nil {
		return fmt.Errorf("render %s/%s: %w", p.Module, p.Variant, p.Err)
	}
	md, err := capture.Text(p)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		story, _ := rt.ActiveStory()
		return r.JSON(renderResult{
			Module:   p.Module,
			Variant:  p.Variant,
			Title:    story.Title,
			Dark:     p.Dark,
			HTML:     p.HTML,
			Markdown: md,
			Toolbar:  p.Toolbar,
			Controls: opts.Controls,
		})
	}

	if opts.Format == "html" {
		r.Println(p.HTML)
		return nil
	}
	r.Println(md)
	return nil
}
