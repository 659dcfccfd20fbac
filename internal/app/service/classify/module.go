package classify

import "go.uber.org/fx"

// Module exposes the classification resolver via Fx.
var Module = fx.Options(
	fx.Provide(NewResolver),
)
