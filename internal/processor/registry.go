package processor

import (
	"log/slog"

	"github.com/me/seasonsim/pkg/model"
)

// Registry holds processors in registration order and dispatches each result
// to the first one that claims it. Registration happens at startup before
// any dispatch, so no mutex is needed.
type Registry struct {
	processors []ResultProcessor
	adapter    *adapter
	logger     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(cfg Config, logger *slog.Logger) *Registry {
	return &Registry{
		adapter: newAdapter(cfg, logger),
		logger:  logger.With("component", "processor-registry"),
	}
}

// Register appends a processor. Dispatch order is registration order.
func (r *Registry) Register(p ResultProcessor) {
	r.processors = append(r.processors, p)
	r.logger.Info("processor registered", "processor", p.Name(), "kind", p.Kind().String())
}

// Processors returns the registered processors in dispatch order.
func (r *Registry) Processors() []ResultProcessor {
	return r.processors
}

// Dispatch routes a result to the first claiming processor and returns the
// adapted processing result. Returns nil when no processor claims the result
// or the claiming processor does not support the active strategy; the day
// continues either way.
func (r *Registry) Dispatch(res *model.Result, pctx *model.ProcessingContext) *model.ProcessingResult {
	for _, p := range r.processors {
		if !p.CanProcess(res) {
			continue
		}
		if !supportsStrategy(p, r.adapter.cfg.Strategy) {
			r.logger.Warn("processor does not support active strategy; skipping",
				"processor", p.Name(), "kind", res.Kind.String(), "strategy", r.adapter.cfg.Strategy.String())
			return nil
		}
		return r.adapter.invoke(p, res, pctx)
	}

	r.logger.Warn("no processor claimed result", "kind", res.Kind.String(), "name", res.Name)
	return nil
}
