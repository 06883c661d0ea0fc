package showcase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/showcase/pkg/core"
)

func groupNames(groups []Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return names
}

func moduleNames(g Group) []string {
	names := make([]string, len(g.Modules))
	for i, m := range g.Modules {
		names[i] = m.Name
	}
	return names
}

func TestIndex_GroupPriority(t *testing.T) {
	reg := core.MustRegistry(
		core.ModuleDescriptor{Group: "pages", Name: "Home"},
		core.ModuleDescriptor{Group: "widgets", Name: "Clock"},
		core.ModuleDescriptor{Group: "atoms", Name: "Button"},
		core.ModuleDescriptor{Group: "icons", Name: "Arrow"},
		core.ModuleDescriptor{Group: "atoms", Name: "Avatar"},
		core.ModuleDescriptor{Group: "gadgets", Name: "Knob"},
		core.ModuleDescriptor{Group: "components", Name: "Card"},
	)

	groups := Index(reg)
	assert.Equal(t, []string{"icons", "components", "atoms", "pages", "widgets", "gadgets"}, groupNames(groups))
	assert.Equal(t, []string{"Button", "Avatar"}, moduleNames(groups[2]))
}

func TestIndex_Deterministic(t *testing.T) {
	reg := core.MustRegistry(
		core.ModuleDescriptor{Group: "molecules", Name: "Form"},
		core.ModuleDescriptor{Group: "x", Name: "X1"},
		core.ModuleDescriptor{Group: "atoms", Name: "Input"},
		core.ModuleDescriptor{Group: "y", Name: "Y1"},
		core.ModuleDescriptor{Group: "x", Name: "X2"},
	)

	first := Index(reg)
	for range 20 {
		assert.Equal(t, first, Index(reg))
	}
	assert.Equal(t, []string{"atoms", "molecules", "x", "y"}, groupNames(first))
	assert.Equal(t, []string{"X1", "X2"}, moduleNames(first[2]))
}

func TestIndex_Empty(t *testing.T) {
	assert.Empty(t, Index(nil))
	assert.Empty(t, Index(core.MustRegistry()))
}

func TestGroupRank(t *testing.T) {
	known := KnownGroups()
	require.NotEmpty(t, known)
	for i, g := range known {
		assert.Equal(t, i, GroupRank(g))
	}
	assert.Equal(t, GroupRank("Atoms"), GroupRank("atoms"))
	assert.Equal(t, len(known), GroupRank("whatever"))
}

func TestModuleLabel(t *testing.T) {
	assert.Equal(t, "forms / Input", ModuleLabel("forms__Input"))
	assert.Equal(t, "Button", ModuleLabel("Button"))
}
