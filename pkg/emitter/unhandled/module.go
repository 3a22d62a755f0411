package unhandled

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
)

// Params are the optional inputs of the fx module.
type Params struct {
	fx.In

	Logger *slog.Logger `optional:"true"`
}

// Module returns an fx module providing a *Registry. The registry becomes
// the process default on start; on stop it is reset and the previous
// default is restored.
func Module() fx.Option {
	return fx.Module("unhandled",
		fx.Provide(ProvideRegistry),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideRegistry builds the registry for the fx graph.
func ProvideRegistry(p Params) *Registry {
	return New(p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, r *Registry) {
	var previous *Registry
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			previous = SetDefault(r)
			return nil
		},
		OnStop: func(_ context.Context) error {
			r.Reset()
			if previous != nil {
				SetDefault(previous)
			}
			return nil
		},
	})
}
