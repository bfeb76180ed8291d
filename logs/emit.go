// Package logs reports empowered assertion outcomes to a logr.Logger.
package logs

import (
	"github.com/go-logr/logr"
	"github.com/miruken-go/empower"
)

// Emit logs the outcome of every empowered call before
// delegating to the configured handlers.
type Emit struct {
	logger    logr.Logger
	verbosity int
}

// New creates an Emit for logger.
func New(
	logger logr.Logger,
	config ...func(emit *Emit),
) *Emit {
	emit := &Emit{logger: logger.WithName("empower")}
	for _, configure := range config {
		if configure != nil {
			configure(emit)
		}
	}
	return emit
}

// Verbosity sets the level used when logging successes.
func Verbosity(verbosity int) func(emit *Emit) {
	return func(emit *Emit) {
		emit.verbosity = verbosity
	}
}

// Options returns a copy of options whose handlers are logged.
// Missing handlers default to empower.PassError and
// empower.PassReturn.
func (e *Emit) Options(options empower.Options) empower.Options {
	onError   := options.OnError
	onSuccess := options.OnSuccess
	if onError == nil {
		onError = empower.PassError
	}
	if onSuccess == nil {
		onSuccess = empower.PassReturn
	}
	options.OnError = func(event empower.ErrorEvent) (any, error) {
		e.logError(event)
		return onError(event)
	}
	options.OnSuccess = func(event empower.SuccessEvent) (any, error) {
		e.logSuccess(event)
		return onSuccess(event)
	}
	return options
}

func (e *Emit) logSuccess(event empower.SuccessEvent) {
	logger := e.logger.V(e.verbosity)
	if !logger.Enabled() {
		return
	}
	logger.Info("succeeded", e.details(event.Member, event.Context, event.Args)...)
}

func (e *Emit) logError(event empower.ErrorEvent) {
	e.logger.Error(event.Error, "failed",
		e.details(event.Member, event.Context, event.Args)...)
}

func (e *Emit) details(
	member string,
	ctx    *empower.Context,
	args   []any,
) []any {
	kv := []any{"member", member}
	if ctx != nil {
		kv = append(kv,
			"source", ctx.Source.Content,
			"filepath", ctx.Source.Filepath,
			"line", ctx.Source.Line,
			"captured", len(ctx.Args))
	} else {
		kv = append(kv, "args", args)
	}
	return kv
}
