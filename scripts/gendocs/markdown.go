package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/showcase/internal/cli/output"
)

// MarkdownWriter builds a docs page. Headings and tables go through the CLI's
// markdown renderer so `showcase list -o markdown` and the docs look alike.
type MarkdownWriter struct {
	buf bytes.Buffer
	r   *output.Renderer
}

func NewMarkdownWriter() *MarkdownWriter {
	w := &MarkdownWriter{}
	w.r = output.NewRendererWithTTY(&w.buf, io.Discard, false, output.ModeMarkdown)
	return w
}

// Frontmatter writes the YAML frontmatter block of a docs page.
func (w *MarkdownWriter) Frontmatter(title, description string) {
	fmt.Fprintf(&w.buf, "---\ntitle: %q\ndescription: %q\n---\n\n", title, oneLine(description))
	w.buf.WriteString("<!-- Code generated by scripts/gendocs. DO NOT EDIT. -->\n\n")
}

func (w *MarkdownWriter) Header(level int, text string) {
	w.r.Header(level, text)
}

func (w *MarkdownWriter) Paragraph(text string) {
	if text = strings.TrimSpace(text); text == "" {
		return
	}
	w.buf.WriteString(text)
	w.buf.WriteString("\n\n")
}

func (w *MarkdownWriter) CodeBlock(lang, body string) {
	fmt.Fprintf(&w.buf, "```%s\n%s\n```\n\n", lang, strings.TrimRight(body, "\n"))
}

// Table writes a pipe table; an empty table writes nothing.
func (w *MarkdownWriter) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	_ = w.r.Table(headers, rows)
	w.buf.WriteByte('\n')
}

func (w *MarkdownWriter) Bytes() []byte {
	return w.buf.Bytes()
}

// code wraps s in backticks.
func code(s string) string {
	return "`" + s + "`"
}

// oneLine collapses whitespace and drops a trailing period.
func oneLine(s string) string {
	return strings.TrimSuffix(strings.Join(strings.Fields(s), " "), ".")
}
