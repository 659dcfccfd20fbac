package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/kurniadi/rcdash/internal/app/api/server"
	"github.com/kurniadi/rcdash/internal/app/service/application"
	"github.com/kurniadi/rcdash/internal/app/service/classify"
	"github.com/kurniadi/rcdash/internal/app/service/ingest"
	"github.com/kurniadi/rcdash/internal/app/service/reconcile"
	"github.com/kurniadi/rcdash/internal/app/service/uploadlog"
	"github.com/kurniadi/rcdash/internal/platform/db"
	"github.com/kurniadi/rcdash/internal/storage/gormstore"
	"github.com/kurniadi/rcdash/pkg/config"
	"github.com/kurniadi/rcdash/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	gormstore.Module,
	server.Module,
	classify.Module,
	uploadlog.Module,
	ingest.Module,
	reconcile.Module,
	application.Module,
)
