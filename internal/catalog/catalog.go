// Package catalog discovers story files under a source tree and turns them
// into a module registry.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
	"github.com/leapstack-labs/showcase/pkg/stories"
)

// DefaultRoot is the directory scanned when none is configured.
const DefaultRoot = "src"

// DefaultGroup is used for story files that sit directly in the root.
const DefaultGroup = "components"

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"testdata":     true,
}

// Entry is one discovered story file.
type Entry struct {
	Name  string
	Group string
	// Path is relative to the catalog root, slash-separated
	Path string
}

// Catalog is the result of a scan.
type Catalog struct {
	Root    string
	Entries []Entry
}

// Scan walks root and collects story files. patterns are matched against file
// base names with path.Match; empty patterns mean every story extension.
// Entries are sorted by path. Two files that map to the same module name are
// an error.
func Scan(root string, patterns []string) (*Catalog, error) {
	if root == "" {
		root = DefaultRoot
	}
	for _, p := range patterns {
		if _, err := path.Match(p, ""); err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access stories directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("stories path is not a directory: %s", root)
	}

	cat := &Catalog{Root: root}
	seen := make(map[string]string)

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && (strings.HasPrefix(d.Name(), ".") || skipDirs[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if !stories.IsStoryFile(p) || !matches(d.Name(), patterns) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		entry := NewEntry(filepath.ToSlash(rel))
		if prev, dup := seen[entry.Name]; dup {
			return fmt.Errorf("module %q defined twice: %s and %s", entry.Name, prev, entry.Path)
		}
		seen[entry.Name] = entry.Path
		cat.Entries = append(cat.Entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(cat.Entries, func(i, j int) bool {
		return cat.Entries[i].Path < cat.Entries[j].Path
	})
	return cat, nil
}

func matches(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, p := range patterns {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// NewEntry derives the module name and group of a story file from its
// slash-separated path relative to the root.
//
//	atoms/Button/Button.stories.star  -> atoms__Button
//	atoms/Button/Primary.stories.yaml -> atoms__Button__Primary
//	Card.stories.toml                 -> Card
func NewEntry(rel string) Entry {
	dir := path.Dir(rel)
	stem := stories.Stem(rel)

	var segments []string
	name := stem
	if dir != "." {
		segments = strings.Split(dir, "/")
		name = strings.Join(segments, "__")
		if stem != segments[len(segments)-1] {
			name += "__" + stem
		}
	}
	return Entry{Name: name, Group: groupOf(segments), Path: rel}
}

// groupOf picks the deepest directory that is a conventional group name,
// falling back to the top-level directory.
func groupOf(segments []string) string {
	known := len(showcase.KnownGroups())
	for i := len(segments) - 1; i >= 0; i-- {
		if showcase.GroupRank(segments[i]) < known {
			return strings.ToLower(segments[i])
		}
	}
	if len(segments) > 0 {
		return segments[0]
	}
	return DefaultGroup
}

// Abs returns the entry's path joined to the catalog root.
func (c *Catalog) Abs(e Entry) string {
	return filepath.Join(c.Root, filepath.FromSlash(e.Path))
}

// Names returns the module names in scan order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		names[i] = e.Name
	}
	return names
}

// Registry builds a registry whose loaders read the story files lazily.
func (c *Catalog) Registry() (*core.Registry, error) {
	descs := make([]core.ModuleDescriptor, len(c.Entries))
	for i, e := range c.Entries {
		abs := c.Abs(e)
		descs[i] = core.ModuleDescriptor{
			Group:  e.Group,
			Name:   e.Name,
			Loader: stories.FileLoader(abs),
			Source: abs,
		}
	}
	return core.NewRegistry(descs...)
}

// Load scans root and builds its registry in one step.
func Load(root string, patterns []string) (*Catalog, *core.Registry, error) {
	cat, err := Scan(root, patterns)
	if err != nil {
		return nil, nil, err
	}
	reg, err := cat.Registry()
	if err != nil {
		return nil, nil, err
	}
	return cat, reg, nil
}
