package engine

import (
	"log/slog"

	"collabcore/internal/collection"
	"collabcore/internal/metrics"
	"collabcore/internal/notice"
	"collabcore/internal/transport"
)

// Deps are the collaborators shared by the phase, participation and notification engines.
type Deps struct {
	Transport transport.Transport
	Notifier  notice.Notifier
	Logger    *slog.Logger
	Ops       *metrics.Operations
	// Scope is the project guard; engines of one workspace share it.
	Scope *collection.Scope
}

// WithDefaults fills unset optional collaborators. Transport is required.
func (d Deps) WithDefaults(component string) Deps {
	if d.Notifier == nil {
		d.Notifier = notice.Discard{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	d.Logger = d.Logger.With("component", component)
	if d.Scope == nil {
		d.Scope = &collection.Scope{}
	}
	return d
}
