package core

import (
	"sync"

	"github.com/go-graft/graft/pkg/errors"
)

// ErrorWidgetBuilder produces the widget shown in place of a subtree whose
// build panicked. Returning nil falls through to the default placeholder.
type ErrorWidgetBuilder func(err *errors.BuildError) Widget

var (
	errorWidgetMu      sync.RWMutex
	errorWidgetBuilder ErrorWidgetBuilder
)

// SetErrorWidgetBuilder installs a process-wide builder for build-failure
// placeholders. Pass nil to restore the default.
func SetErrorWidgetBuilder(builder ErrorWidgetBuilder) {
	errorWidgetMu.Lock()
	errorWidgetBuilder = builder
	errorWidgetMu.Unlock()
}

// GetErrorWidgetBuilder returns the installed builder, or nil.
func GetErrorWidgetBuilder() ErrorWidgetBuilder {
	errorWidgetMu.RLock()
	defer errorWidgetMu.RUnlock()
	return errorWidgetBuilder
}

// ErrorBoundaryCapture is implemented by widgets (or by a stateful widget's
// state) that intercept build failures in their subtree. The nearest
// implementing ancestor receives the error instead of the failing element
// rendering a placeholder. Capture happens mid-pass; a boundary that wants to
// display the failure schedules its own rebuild for the next pass.
type ErrorBoundaryCapture interface {
	CaptureError(err *errors.BuildError)
}

// errorPlaceholder stands in for a subtree whose build failed when no
// boundary or builder claimed the error. It renders nothing; the failure has
// already been reported.
type errorPlaceholder struct {
	err *errors.BuildError
}

func (errorPlaceholder) CreateElement() Element { return NewStatelessElement() }

func (errorPlaceholder) Key() Key { return nil }

func (p errorPlaceholder) Build(ctx BuildContext) Widget { return nil }
