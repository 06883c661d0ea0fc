// Package core defines the shared language of the showcase system.
//
// This package contains:
//   - Module descriptors and the ordered module Registry
//   - Story entries (bare renderables or Story records) and their normalized form
//   - The Renderable contract and the options a story receives when drawn
//   - The Toolbar extension point stories write controls into
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
