package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/cinecms/backend/internal/config"
	"github.com/cinecms/backend/internal/domain"
	"github.com/cinecms/backend/internal/middleware"
	"github.com/cinecms/backend/internal/module/auth"
	"github.com/cinecms/backend/internal/module/role"
	"github.com/cinecms/backend/internal/module/taxonomy"
	"github.com/cinecms/backend/internal/module/user"
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine *gin.Engine
	db     *gorm.DB
	logger *logger.Logger
	jwtSvc jwt.Service
	cfg    *config.Config
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New wires a fully configured App from cfg: logger, database, JWT service,
// then repository, service, handler, and module for every resource. Resources
// opened along the way are released again when a later step fails.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	// Cleanup runs in reverse order on any failure after the resource opened;
	// a successful New leaves everything to App.Run.
	var cleanup []func()
	failed := true
	defer func() {
		if !failed {
			return
		}
		for i := len(cleanup) - 1; i >= 0; i-- {
			cleanup[i]()
		}
	}()

	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}
	cleanup = append(cleanup, func() {
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	})

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}

	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	cleanup = append(cleanup, func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", slog.Any("error", err))
			}
		}
	})

	// Schema management in debug mode only; production schemas are migrated
	// out of band.
	if cfg.Server.Mode == gin.DebugMode {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	jwtSvc, err := config.SetupJWT(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("setup jwt: %w", err)
	}
	cleanup = append(cleanup, func() { jwtSvc.Close() })

	engine, err := buildEngine(cfg, log, db, jwtSvc)
	if err != nil {
		return nil, err
	}

	failed = false
	return &App{
		engine: engine,
		db:     db,
		logger: log,
		jwtSvc: jwtSvc,
		cfg:    cfg,
	}, nil
}

// buildEngine assembles the middleware chain and mounts every module.
func buildEngine(cfg *config.Config, log *logger.Logger, db *gorm.DB, jwtSvc jwt.Service) (*gin.Engine, error) {
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)

	authGuard := middleware.Auth(jwtSvc)

	modules := make([]Module, 0, 7)
	for _, desc := range []taxonomy.Descriptor{
		taxonomy.Category,
		taxonomy.Genre,
		taxonomy.Country,
		taxonomy.Permission,
	} {
		repo := taxonomy.NewRepository(db, desc)
		svc := taxonomy.NewService(repo, desc)
		handler := taxonomy.NewHandler(svc, desc)
		modules = append(modules, taxonomy.NewModule(desc, handler, authGuard))
	}

	roleSvc := role.NewService(role.NewRepository(db))
	modules = append(modules, role.NewModule(role.NewHandler(roleSvc), authGuard))

	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo)
	modules = append(modules, user.NewModule(user.NewHandler(userSvc), authGuard))

	authSvc := auth.NewService(jwtSvc, userSvc, userRepo, cfg.TokenExpiryDuration())
	modules = append(modules, auth.NewModule(auth.NewHandler(authSvc), authGuard))

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: false}),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS.AllowOrigins)),
	)

	if err := RegisterRoutes(engine, &RouteDeps{Modules: modules, DB: db}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}
	return engine, nil
}

// migrate creates or updates the schema for every resource table. The four
// taxonomy tables share one model, bound per table name.
func migrate(db *gorm.DB) error {
	for _, tbl := range taxonomy.Tables() {
		if err := db.Table(tbl).AutoMigrate(&domain.Taxonomy{}); err != nil {
			return fmt.Errorf("migrate %s: %w", tbl, err)
		}
	}
	return db.AutoMigrate(
		&domain.Role{},
		&domain.RolePermission{},
		&domain.User{},
	)
}

// resolveCORSConfig applies the configured origin allowlist. With nothing
// configured, release mode denies cross-origin requests while debug and test
// keep the permissive default.
func resolveCORSConfig(mode string, configuredAllowOrigins []string) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()
	switch {
	case len(configuredAllowOrigins) > 0:
		corsConfig.AllowOrigins = configuredAllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}
	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// log returns the app's structured logger, falling back to the slog default
// so Run stays usable on a partially constructed App.
func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully with a
// 5-second deadline and releases the JWT service, database connection, and
// logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine)

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log().Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.log().Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.log().Error("server shutdown error", slog.Any("error", err))
		}
		cancel()
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	a.close()
	return runErr
}

// close releases the app's long-lived resources in dependency order.
func (a *App) close() {
	if a.jwtSvc != nil {
		a.jwtSvc.Close()
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log().Error("database close error", slog.Any("error", err))
			} else {
				a.log().Info("database connection closed")
			}
		}
	}

	a.log().Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}
}
