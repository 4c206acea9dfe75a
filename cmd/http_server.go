package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	authPostgres "github.com/frahmantamala/distribution-admin/internal/auth/postgres"
	"github.com/frahmantamala/distribution-admin/internal/blog"
	blogPostgres "github.com/frahmantamala/distribution-admin/internal/blog/postgres"
	"github.com/frahmantamala/distribution-admin/internal/category"
	categoryPostgres "github.com/frahmantamala/distribution-admin/internal/category/postgres"
	"github.com/frahmantamala/distribution-admin/internal/core/events"
	"github.com/frahmantamala/distribution-admin/internal/navigation"
	navigationPostgres "github.com/frahmantamala/distribution-admin/internal/navigation/postgres"
	"github.com/frahmantamala/distribution-admin/internal/order"
	orderPostgres "github.com/frahmantamala/distribution-admin/internal/order/postgres"
	"github.com/frahmantamala/distribution-admin/internal/palet"
	paletPostgres "github.com/frahmantamala/distribution-admin/internal/palet/postgres"
	"github.com/frahmantamala/distribution-admin/internal/product"
	productPostgres "github.com/frahmantamala/distribution-admin/internal/product/postgres"
	"github.com/frahmantamala/distribution-admin/internal/quotation"
	quotationPostgres "github.com/frahmantamala/distribution-admin/internal/quotation/postgres"
	"github.com/frahmantamala/distribution-admin/internal/report"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/store"
	storePostgres "github.com/frahmantamala/distribution-admin/internal/store/postgres"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/frahmantamala/distribution-admin/internal/transport/rest"
	"github.com/frahmantamala/distribution-admin/internal/user"
	userPostgres "github.com/frahmantamala/distribution-admin/internal/user/postgres"
	"github.com/frahmantamala/distribution-admin/internal/visit"
	visitPostgres "github.com/frahmantamala/distribution-admin/internal/visit/postgres"
	"github.com/frahmantamala/distribution-admin/internal/webproduct"
	webproductPostgres "github.com/frahmantamala/distribution-admin/internal/webproduct/postgres"
	"github.com/frahmantamala/distribution-admin/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	Redis    *redis.Client
	EventBus *events.EventBus
	Router   *chi.Mux
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		deps.EventBus.Drain()
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				deps.Logger.Error("Redis close error", "error", err)
			}
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger
	cfg := deps.Config
	db := deps.Gorm
	base := transport.NewBaseHandler(lg)

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return fmt.Errorf("invalid report timezone %q: %w", cfg.Report.Timezone, err)
	}

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(db), tokens, lg)
	userService := user.NewService(userPostgres.NewUserRepository(db), cfg.Security.BCryptCost, lg)

	categoryService := category.NewService(categoryPostgres.NewCategoryRepository(db), lg)
	productService := product.NewService(productPostgres.NewProductRepository(db), categoryService, lg)
	webProductService := webproduct.NewService(webproductPostgres.NewWebProductRepository(db), lg)
	blogService := blog.NewService(blogPostgres.NewBlogRepository(db), lg)
	storeService := store.NewService(storePostgres.NewStoreRepository(db), lg)
	visitService := visit.NewVisitService(visitPostgres.NewVisitRepository(db), lg)
	projectVisitService := visit.NewProjectVisitService(visitPostgres.NewProjectVisitRepository(db), lg)

	paletRepo := paletPostgres.NewPaletRepository(db)
	warehouseRepo := paletPostgres.NewWarehouseRepository(db)
	paletService := palet.NewPaletService(paletRepo, lg)
	stockService := palet.NewStockService(paletPostgres.NewStockRepository(db), warehouseRepo, lg)
	warehouseService := palet.NewService(warehouseRepo, paletRepo, lg)

	quotationRepo := quotationPostgres.NewQuotationRepository(db)
	quotationCRUD := quotation.NewCRUDService(quotationRepo, lg)
	quotationService := quotation.NewService(quotationRepo, deps.EventBus, lg)

	orderService := order.NewService(orderPostgres.NewOrderRepository(db), deps.EventBus, lg)

	var navCache navigation.Cache = navigation.NoopCache{}
	if deps.Redis != nil {
		navCache = navigation.NewRedisCache(deps.Redis, cfg.Cache.TTL)
	}
	navigationService := navigation.NewService(navigationPostgres.NewRoutePermissionRepository(db), navCache, deps.EventBus, lg)

	reportService := report.NewService(projectVisitService, report.NewSummaryRepository(deps.DB), loc, lg)

	subscribeEvents(deps.EventBus, navigationService, lg)

	rest.RegisterAllRoutes(deps.Router, rest.Handlers{
		Health:       rest.NewHealthHandler(deps.DB, deps.Redis),
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(userService),
		Category:     category.NewHandler(base, categoryService),
		Product:      resource.NewHandler[product.Product](base, productService, product.Noun),
		WebProduct:   resource.NewHandler[webproduct.WebProduct](base, webProductService, webproduct.Noun),
		Blog:         resource.NewHandler[blog.Blog](base, blogService, blog.Noun),
		Store:        resource.NewHandler[store.Store](base, storeService, store.Noun),
		Visit:        resource.NewHandler[visit.Visit](base, visitService, visit.VisitNoun).WithLocation(loc),
		ProjectVisit: resource.NewHandler[visit.ProjectVisit](base, projectVisitService, visit.ProjectVisitNoun).WithLocation(loc),
		Palet:        resource.NewHandler[palet.Palet](base, paletService, palet.PaletNoun),
		Stock:        resource.NewHandler[palet.Stock](base, stockService, palet.StockNoun),
		Warehouse:    palet.NewHandler(base, warehouseService),
		Quotation:    resource.NewHandler[quotation.Quotation](base, quotationCRUD, quotation.Noun),
		Approval:     quotation.NewHandler(base, quotationService),
		Order:        order.NewHandler(base, orderService),
		Navigation:   navigation.NewHandler(base, navigationService),
		Report:       report.NewHandler(base, reportService),
	}, auth.NewRBACAuthorization(lg), cfg.Server.Origins(), lg)

	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gdb, err := initGorm(db, config.Env)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	var rdb *redis.Client
	if config.Cache.Enabled {
		rdb = initRedis(config.Cache)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// navigation falls back to the database on cache errors
			lg.Warn("redis unavailable at startup", "addr", config.Cache.Addr, "error", err)
		}
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Gorm:     gdb,
		Redis:    rdb,
		EventBus: events.NewEventBus(lg),
		Router:   chi.NewRouter(),
	}, nil
}

// initDB opens the pgx pool shared by sqlx and gorm
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

func initGorm(db *sqlx.DB, env string) (*gorm.DB, error) {
	level := gormLogger.Warn
	if env == "development" {
		level = gormLogger.Info
	}
	return gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(level),
	})
}

func initRedis(cfg internal.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
