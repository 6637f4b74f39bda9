package app

import (
	"net/http"

	"tiptrip-go/internal/config"
	"tiptrip-go/internal/db"
	expensesdomain "tiptrip-go/internal/domain/expenses"
	tripdomain "tiptrip-go/internal/domain/trip"
	userdomain "tiptrip-go/internal/domain/user"
	"tiptrip-go/internal/metrics"
	"tiptrip-go/internal/repository/inmemory"
	expensesrepo "tiptrip-go/internal/repository/postgres/expenses"
	triprepo "tiptrip-go/internal/repository/postgres/trip"
	userrepo "tiptrip-go/internal/repository/postgres/user"
	"tiptrip-go/internal/transport/httpserver"
	"tiptrip-go/internal/transport/httpserver/handler"
	"tiptrip-go/migrations"
	"tiptrip-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn, migrations.Files, log); err != nil {
			closeDB(dbConn)
			return nil, err
		}
	}

	log.Info("app: initializing router")
	router := NewHandler(cfg, dbConn, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

// NewHandler builds repositories, services and the router on top of an open
// database.
func NewHandler(cfg config.Config, dbConn *gorm.DB, log logger.Logger) http.Handler {
	var registry *metrics.Registry
	var tripMetrics tripdomain.Metrics
	var expenseMetrics expensesdomain.Metrics
	if cfg.MetricsEnabled {
		registry = metrics.New()
		tripMetrics = registry
		expenseMetrics = registry
	}

	users := userdomain.NewCachedService(userrepo.NewPostgres(dbConn), inmemory.NewInMemoryUserCache(), cfg.AuthCacheTTL)
	trips := tripdomain.NewService(triprepo.NewPostgres(dbConn), users, tripMetrics)
	expenses := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn), trips, expenseMetrics)

	handlers := handler.New(users, trips, expenses, log)
	return httpserver.NewRouter(cfg, handlers, users, registry, log)
}

func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
