package uploadlog

import "go.uber.org/fx"

// Module exposes the upload audit recorder via Fx.
var Module = fx.Options(
	fx.Provide(New),
	fx.Provide(func(s *Service) Recorder { return s }),
)
