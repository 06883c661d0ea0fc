package core

import (
	"context"
	"errors"
)

// Loader fetches the story map of one module.
// It is called lazily, may be called any number of times, and each call may
// observe different content (story sources are edited during development).
type Loader func(ctx context.Context) (RawStoryMap, error)

// ModuleDescriptor describes one browsable module in the registry.
type ModuleDescriptor struct {
	// Group is the display category, e.g. "atoms" or "pages"
	Group string
	// Name uniquely identifies the module and is the source of its label
	Name string
	// Loader fetches the module's stories on demand
	Loader Loader
	// Source is the file the module was discovered from (informational)
	Source string
}

// ErrNoLoader is returned when a descriptor has no loader attached.
var ErrNoLoader = errors.New("module has no loader")

// Load invokes the descriptor's loader and normalizes the result.
func (d ModuleDescriptor) Load(ctx context.Context) (StoryMap, error) {
	if d.Loader == nil {
		return nil, ErrNoLoader
	}
	raw, err := d.Loader(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(raw)
}
