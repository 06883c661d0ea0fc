package showcase

import "fmt"

// ViewFlags are the user-togglable display options.
type ViewFlags struct {
	ShowBackground  bool
	ZoomActive      bool
	ShadowBoxActive bool
}

// Flag names one of the view toggles.
type Flag string

// Toggleable flags.
const (
	FlagBackground Flag = "background"
	FlagZoom       Flag = "zoom"
	FlagShadow     Flag = "shadow"
)

// ParseFlag validates a flag name coming from the UI.
func ParseFlag(s string) (Flag, error) {
	switch f := Flag(s); f {
	case FlagBackground, FlagZoom, FlagShadow:
		return f, nil
	default:
		return "", fmt.Errorf("unknown view flag %q", s)
	}
}

// Toggle flips one view flag. Flags are independent of each other.
func (rt *Runtime) Toggle(f Flag) {
	switch f {
	case FlagBackground:
		rt.flags.ShowBackground = !rt.flags.ShowBackground
	case FlagZoom:
		rt.flags.ZoomActive = !rt.flags.ZoomActive
	case FlagShadow:
		rt.flags.ShadowBoxActive = !rt.flags.ShadowBoxActive
	}
}

// Flags returns the current view flags.
func (rt *Runtime) Flags() ViewFlags {
	return rt.flags
}

// SetControl records the value of a toolbar control of the active story.
// It reports false when no story is active.
func (rt *Runtime) SetControl(name, value string) bool {
	if !rt.HasActiveVariant() {
		return false
	}
	rt.controls[name] = value
	return true
}

// View is a read-only snapshot of everything the UI draws.
type View struct {
	Groups     []Group
	Phase      Phase
	Loading    string
	Refreshing bool
	Module     string
	VariantIDs []string
	Active     string
	// HasStory is true when Active names an existing variant
	HasStory bool
	Title    string
	// Description of the active story
	Description string
	// Dark comes from the active story's metadata, it is not user-togglable
	Dark      bool
	Flags     ViewFlags
	Exporting bool
	// ExportDisabled explains why export is unavailable; empty when enabled
	ExportDisabled string
	// Error is the last load failure, cleared by the next successful load
	Error string
}

// HasActiveVariant reports whether the snapshot has an existing active variant.
func (v View) HasActiveVariant() bool {
	return v.Phase == PhaseOpen && v.HasStory
}

// IsOpen reports whether name is the open module.
func (v View) IsOpen(name string) bool {
	return v.Phase == PhaseOpen && v.Module == name
}

// View returns the current snapshot.
func (rt *Runtime) View() View {
	v := View{
		Groups:    rt.groups,
		Phase:     rt.Phase(),
		Flags:     rt.flags,
		Exporting: rt.exporting,
	}
	if rt.pending != nil {
		v.Loading = rt.pending.Module
		v.Refreshing = rt.pending.Refresh
	}
	if rt.lastErr != nil {
		v.Error = rt.lastErr.Error()
	}
	if rt.open != nil {
		v.Module = rt.open.name
		v.VariantIDs = rt.open.variantIDs
		v.Active = rt.active
		if s, ok := rt.ActiveStory(); ok {
			v.HasStory = true
			v.Title = s.Title
			v.Description = s.Description
			v.Dark = s.Dark
		}
	}
	if err := rt.exportBlocker(); err != nil && err != ErrExportInProgress {
		v.ExportDisabled = err.Error()
	}
	return v
}
