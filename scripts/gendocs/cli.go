package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/showcase/internal/cli"
	"github.com/leapstack-labs/showcase/internal/cli/config"
)

// generateCLIDocs writes index.md plus one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)
	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	commands := documented(root)

	pages := map[string][]byte{"index.md": cliIndex(root, commands)}
	for _, cmd := range commands {
		pages[cmd.Name()+".md"] = commandPage(cmd)
	}
	for name, data := range pages {
		if err := os.WriteFile(filepath.Join(outDir, name), data, 0600); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		log.Printf("  Generated %s", name)
	}
	return nil
}

// documented lists the commands that get a page, in cobra's sorted order.
func documented(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if cmd.IsAvailableCommand() && cmd.Name() != "help" {
			out = append(out, cmd)
		}
	}
	return out
}

func cliIndex(root *cobra.Command, commands []*cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", root.Short)

	w.Header(1, "CLI Reference")
	w.Paragraph(root.Long)

	var rows [][]string
	for _, cmd := range commands {
		name := fmt.Sprintf("[%s](/cli/%s)", code(cmd.Name()), cmd.Name())
		rows = append(rows, []string{name, aliases(cmd), oneLine(cmd.Short)})
	}
	w.Header(2, "Commands")
	w.Table([]string{"Command", "Aliases", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Table(flagColumns, flagRows(root.PersistentFlags()))

	w.Header(2, "Configuration")
	w.Paragraph(fmt.Sprintf(
		"Settings are read from %s, then from %s variables, then from flags. "+
			"See the [configuration reference](/concepts/configuration).",
		code(config.ConfigFileNames[0]), code(config.EnvPrefix+"*")))

	return w.Bytes()
}

func commandPage(cmd *cobra.Command) []byte {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)

	w.Header(1, "showcase "+cmd.Name())
	if cmd.Long != "" {
		w.Paragraph(cmd.Long)
	} else {
		w.Paragraph(cmd.Short)
	}

	w.CodeBlock("bash", cmd.UseLine())
	if a := aliases(cmd); a != "" {
		w.Paragraph("Aliases: " + a)
	}

	if cmd.HasAvailableSubCommands() {
		var rows [][]string
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() {
				rows = append(rows, []string{code(sub.Name()), oneLine(sub.Short)})
			}
		}
		w.Header(2, "Subcommands")
		w.Table([]string{"Subcommand", "Description"}, rows)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		w.Table(flagColumns, flagRows(cmd.LocalFlags()))
	}

	if examples := splitExamples(cmd.Example); len(examples) > 0 {
		w.Header(2, "Examples")
		for _, ex := range examples {
			if ex.title != "" {
				w.Paragraph(ex.title + ":")
			}
			w.CodeBlock("bash", ex.command)
		}
	}
	return w.Bytes()
}

var flagColumns = []string{"Flag", "Type", "Default", "Description"}

func flagRows(flags *pflag.FlagSet) [][]string {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", " + name
		}
		def := f.DefValue
		if def == "" || def == "[]" {
			def = "-"
		} else {
			def = code(def)
		}
		rows = append(rows, []string{code(name), f.Value.Type(), def, oneLine(f.Usage)})
	})
	return rows
}

func aliases(cmd *cobra.Command) string {
	out := make([]string, len(cmd.Aliases))
	for i, a := range cmd.Aliases {
		out[i] = code(a)
	}
	return strings.Join(out, ", ")
}

type example struct {
	title   string
	command string
}

// splitExamples turns a cobra Example block into titled commands. A "# ..."
// line titles the commands that follow it; blank lines separate examples.
func splitExamples(block string) []example {
	var (
		out []example
		cur example
	)
	flush := func() {
		if cur.command != "" {
			out = append(out, cur)
		}
		cur = example{}
	}
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
			flush()
			cur.title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		case cur.command == "":
			cur.command = line
		default:
			cur.command += "\n" + line
		}
	}
	flush()
	return out
}
