package showcase

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/showcase/pkg/core"
)

// Group is one section of the navigation sidebar.
type Group struct {
	Name    string
	Modules []core.ModuleDescriptor
}

// groupOrder is the display priority of the conventional group names.
// Anything not listed sorts after all of these.
var groupOrder = []string{
	"icons",
	"assets",
	"components",
	"atoms",
	"molecules",
	"organisms",
	"templates",
	"views",
	"pages",
}

var groupRank = func() map[string]int {
	m := make(map[string]int, len(groupOrder))
	for i, name := range groupOrder {
		m[name] = i
	}
	return m
}()

// KnownGroups returns the conventional group names in display order.
func KnownGroups() []string {
	out := make([]string, len(groupOrder))
	copy(out, groupOrder)
	return out
}

// GroupRank returns the display priority of a group name (lower first).
// Unknown names share the lowest priority.
func GroupRank(name string) int {
	if r, ok := groupRank[strings.ToLower(name)]; ok {
		return r
	}
	return len(groupOrder)
}

// Index groups the registry by descriptor group and orders the groups by
// GroupRank. Groups with equal rank, and modules within a group, keep registry
// insertion order. The result depends only on reg.
func Index(reg *core.Registry) []Group {
	var groups []Group
	pos := make(map[string]int)

	for _, d := range reg.All() {
		i, ok := pos[d.Group]
		if !ok {
			i = len(groups)
			pos[d.Group] = i
			groups = append(groups, Group{Name: d.Group})
		}
		groups[i].Modules = append(groups[i].Modules, d)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return GroupRank(groups[i].Name) < GroupRank(groups[j].Name)
	})
	return groups
}

// ModuleLabel turns a module name into its sidebar label ("atoms__Button" -> "atoms / Button").
func ModuleLabel(name string) string {
	return strings.ReplaceAll(name, "__", " / ")
}
