package ingest

import "go.uber.org/fx"

// Module exposes the ingestion service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
