package showcase

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the runtime.
var (
	// ErrUnknownModule is returned when a module name is not in the registry.
	ErrUnknownModule = errors.New("unknown module")
	// ErrExportInProgress is returned when an export is requested while one is running.
	ErrExportInProgress = errors.New("export already in progress")
	// ErrNothingToExport is returned when no module/variant is open.
	ErrNothingToExport = errors.New("nothing to export")
	// ErrZoomExport is returned when exporting while zoomed is not permitted.
	ErrZoomExport = errors.New("export is unavailable while zoom is active")
)

// ContractError reports a UI control that fired without the attribute that
// identifies its target. It signals a broken invariant, not a runtime condition.
type ContractError struct {
	Control   string
	Attribute string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("showcase: %s control fired without %q", e.Control, e.Attribute)
}

// MustIdentify returns value, panicking with a ContractError when it is empty.
func MustIdentify(control, attribute, value string) string {
	if value == "" {
		panic(&ContractError{Control: control, Attribute: attribute})
	}
	return value
}
