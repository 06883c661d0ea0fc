package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Variants bool
	Group    string
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the story modules",
		Long: `List every story module found in the stories directory with its group and source file.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all modules
  showcase list

  # Include the variant ids of every module (loads each story file)
  showcase list --variants

  # Only the atoms group, as JSON
  showcase list --group atoms --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Variants, "variants", false, "Load each module and list its variants")
	cmd.Flags().StringVar(&opts.Group, "group", "", "Only list modules of this group")

	return cmd
}

func runList(cmd *cobra.Command, opts *ListOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cat, reg, err := loadCatalog(cmdCtx.Cfg)
	if err != nil {
		return err
	}

	cols := []string{"module", "group", "source"}
	if opts.Variants {
		cols = append(cols, "variants")
	}

	var rows [][]string
	for _, e := range cat.Entries {
		if opts.Group != "" && !strings.EqualFold(e.Group, opts.Group) {
			continue
		}
		row := []string{e.Name, e.Group, e.Path}
		if opts.Variants {
			row = append(row, describeVariants(cmd.Context(), reg, e.Name))
		}
		rows = append(rows, row)
	}

	r := cmdCtx.Renderer
	r.Header(1, fmt.Sprintf("Stories (%d modules)", len(rows)))
	return r.Table(cols, rows)
}

// describeVariants loads one module; a failing module is reported inline.
func describeVariants(ctx context.Context, reg *core.Registry, name string) string {
	d, ok := reg.Get(name)
	if !ok {
		return ""
	}
	stories, err := d.Load(ctx)
	if err != nil {
		return "error: " + err.Error()
	}
	return strings.Join(stories.VariantIDs(), ", ")
}
