package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/rafabene/access-admin/docs"
	"github.com/rafabene/access-admin/internal/domain/ports"
	httphandlers "github.com/rafabene/access-admin/internal/handlers/http"
	"github.com/rafabene/access-admin/internal/handlers/middleware"
	"github.com/rafabene/access-admin/internal/infrastructure/cache"
	"github.com/rafabene/access-admin/internal/infrastructure/config"
	"github.com/rafabene/access-admin/internal/infrastructure/i18n"
	"github.com/rafabene/access-admin/internal/infrastructure/logging"
	"github.com/rafabene/access-admin/internal/infrastructure/persistence/relational"
	"github.com/rafabene/access-admin/internal/infrastructure/realtime"
	"github.com/rafabene/access-admin/internal/services"
)

// @title Access Admin API
// @version 1.0
// @description Role duplication and User Permission Manager API
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envFile := flag.String("env-file", ".env", "arquivo de variáveis de ambiente")
	flag.Parse()

	// Carregar configurações
	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting access admin",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := relational.NewDatabaseConnection(&cfg.Database, cfg.Env, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := relational.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n; sem o diretório configurado, usa os catálogos embutidos
	i18nService, err := i18n.NewService(cfg.I18n.LocalesDir, cfg.I18n.DefaultLanguage)
	if err != nil {
		logger.Warn("locales dir unavailable, using embedded catalogs", "dir", cfg.I18n.LocalesDir, "error", err)
		i18nService, err = i18n.NewEmbeddedService(cfg.I18n.DefaultLanguage)
		if err != nil {
			logger.Error("failed to initialize i18n", "error", err)
			log.Fatal(err)
		}
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)
	for _, lang := range i18nService.GetSupportedLanguages() {
		if missing := i18nService.MissingKeys(lang); len(missing) > 0 {
			logger.Warn("locale catalog incomplete, falling back to default language", "language", lang, "missing_keys", missing)
		}
	}

	// Cache dos resumos
	summaryCache := newSummaryCache(cfg, logger)

	// Avisos em tempo real
	hub := realtime.NewHub(realtime.DefaultConfig(), i18nService, logger)

	// Inicializar repositories
	userRepo := relational.NewUserRepository(db)
	roleRepo := relational.NewRoleRepository(db)
	docPermRepo := relational.NewDocPermissionRepository(db)
	docTypeRepo := relational.NewDocTypeRepository(db)
	managerRepo := relational.NewPermissionManagerRepository(db)
	userPermRepo := relational.NewUserPermissionRepository(db)
	uow := relational.NewUnitOfWork(db)

	// Inicializar services
	userService := services.NewUserService(userRepo, uow, logger)
	roleService := services.NewRoleService(roleRepo, docPermRepo, docTypeRepo, uow, summaryCache, logger)
	managerService := services.NewPermissionManagerService(managerRepo, userPermRepo, userRepo, uow, summaryCache, hub, logger)
	userPermService := services.NewUserPermissionService(userPermRepo, managerRepo, uow, summaryCache, logger)
	dashboardService := services.NewDashboardService(roleService, managerService, userRepo)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:             cfg.Env,
		BaseURL:         cfg.Server.BaseURL,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		I18n:            i18nService,
		Auth:            middleware.NewAuthMiddleware(cfg.JWT.Secret, logger),
		Notices:         hub.Handle,
		Logger:          logger,
		Roles:           httphandlers.NewRoleHandler(roleService),
		Managers:        httphandlers.NewPermissionManagerHandler(managerService),
		UserPermissions: httphandlers.NewUserPermissionHandler(userPermService),
		Users:           httphandlers.NewUserHandler(userService),
		Dashboard:       httphandlers.NewDashboardHandler(dashboardService),
	})

	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET not set, API authentication disabled")
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	if closer, ok := summaryCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close summary cache", "error", err)
		}
	}

	logger.Info("server exited")
}

// newSummaryCache conecta ao Redis quando REDIS_URL está definido; caso contrário, desliga o cache
func newSummaryCache(cfg *config.Config, logger ports.Logger) ports.SummaryCache {
	if cfg.Redis.URL == "" {
		logger.Info("summary cache disabled")
		return cache.NewNoopCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedisCache(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL)
	if err != nil {
		logger.Warn("redis unavailable, summary cache disabled", "error", err)
		return cache.NewNoopCache()
	}

	logger.Info("summary cache connected", "ttl", cfg.Redis.CacheTTL.String())
	return redisCache
}
