package reconcile

import "go.uber.org/fx"

// Module exposes the reconciliation service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
