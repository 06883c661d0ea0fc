package showcase

import (
	"context"
	"fmt"
)

// Capturer rasterizes a rendered preview into PNG bytes.
type Capturer interface {
	Capture(ctx context.Context, p Preview, scale int) ([]byte, error)
}

// CaptureFunc adapts a function to Capturer.
type CaptureFunc func(ctx context.Context, p Preview, scale int) ([]byte, error)

// Capture calls f.
func (f CaptureFunc) Capture(ctx context.Context, p Preview, scale int) ([]byte, error) {
	return f(ctx, p, scale)
}

// ExportJob describes one export started by BeginExport.
type ExportJob struct {
	Module   string
	Variant  string
	Zoom     bool
	Filename string
}

// Scale is the raster scale factor of the job.
func (j ExportJob) Scale() int {
	if j.Zoom {
		return 2
	}
	return 1
}

// Run captures p, the preview rendered when the job began. It touches no
// runtime state, so it may run on any goroutine.
func (j ExportJob) Run(ctx context.Context, c Capturer, p Preview) (Download, error) {
	return capture(ctx, c, j, p)
}

// Download is a finished export.
type Download struct {
	Filename string
	Data     []byte
}

// ExportFilename builds "{module}__{variant}[@x2].png".
func ExportFilename(module, variant string, zoom bool) string {
	suffix := ""
	if zoom {
		suffix = "@x2"
	}
	return fmt.Sprintf("%s__%s%s.png", module, variant, suffix)
}

func (rt *Runtime) exportBlocker() error {
	switch {
	case rt.exporting:
		return ErrExportInProgress
	case !rt.HasActiveVariant():
		return ErrNothingToExport
	case rt.flags.ZoomActive && !rt.opts.AllowZoomExport:
		return ErrZoomExport
	default:
		return nil
	}
}

// Exporting reports whether an export is running.
func (rt *Runtime) Exporting() bool {
	return rt.exporting
}

// BeginExport marks an export as running and describes it.
// Every successful BeginExport must be paired with EndExport.
func (rt *Runtime) BeginExport() (ExportJob, error) {
	if err := rt.exportBlocker(); err != nil {
		return ExportJob{}, err
	}
	rt.exporting = true
	zoom := rt.flags.ZoomActive && rt.opts.AllowZoomExport
	return ExportJob{
		Module:   rt.open.name,
		Variant:  rt.active,
		Zoom:     zoom,
		Filename: ExportFilename(rt.open.name, rt.active, zoom),
	}, nil
}

// EndExport releases the export guard.
func (rt *Runtime) EndExport() {
	rt.exporting = false
}

// Export runs a whole export on the calling goroutine: it renders the active
// story, captures it and always releases the export guard.
func (rt *Runtime) Export(ctx context.Context, c Capturer) (Download, error) {
	job, err := rt.BeginExport()
	if err != nil {
		return Download{}, err
	}
	defer rt.EndExport()

	return capture(ctx, c, job, rt.Render(ctx))
}

func capture(ctx context.Context, c Capturer, job ExportJob, p Preview) (dl Download, err error) {
	if msg := p.Message(); msg != "" {
		return Download{}, fmt.Errorf("%w: %s", ErrNothingToExport, msg)
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("capture panicked: %v", rec)
		}
	}()
	data, err := c.Capture(ctx, p, job.Scale())
	if err != nil {
		return Download{}, fmt.Errorf("capture %s: %w", job.Filename, err)
	}
	return Download{Filename: job.Filename, Data: data}, nil
}
