package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/betulabla/foundation/internal/api"
	v1 "github.com/betulabla/foundation/internal/api/v1"
	authProvider "github.com/betulabla/foundation/internal/auth"
	"github.com/betulabla/foundation/internal/cache"
	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/pyroscope"
	"github.com/betulabla/foundation/internal/rbac"
	"github.com/betulabla/foundation/internal/repository"
	"github.com/betulabla/foundation/internal/s3"
	"github.com/betulabla/foundation/internal/sentry"
	"github.com/betulabla/foundation/internal/service"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Betul Abla Foundation API
// @version 1.0
// @description Records for orphan sponsorship, borehole projects and field reports.
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

const shutdownTimeout = 10 * time.Second

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewCache,

			// Postgres
			postgres.NewDB,
			provideDBClient,

			// Media bucket
			s3.NewService,

			// Auth
			authProvider.NewProvider,
			rbac.NewRBACService,

			// Repositories
			repository.NewUserRepository,
			repository.NewAuthRepository,
			repository.NewOrphanRepository,
			repository.NewBoreholeRepository,
			repository.NewReportRepository,
		),
	)

	// Monitoring
	opts = append(opts,
		sentry.Module(),
		pyroscope.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewAuthService,
			service.NewUserService,
			service.NewMediaService,
			service.NewOrphanService,
			service.NewBoreholeService,
			service.NewReportService,
			service.NewExportService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(
			registerDBHooks,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

// provideDBClient wraps the pool with Sentry spans around transactions
func provideDBClient(db *postgres.DB, sentrySvc *sentry.Service, log *logger.Logger) postgres.IClient {
	return postgres.NewSentryClient(postgres.NewClient(db), sentrySvc, log)
}

func provideHandlers(
	db postgres.IClient,
	logger *logger.Logger,
	rbacService *rbac.RBACService,
	authService service.AuthService,
	userService service.UserService,
	orphanService service.OrphanService,
	boreholeService service.BoreholeService,
	reportService service.ReportService,
	exportService service.ExportService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(db, logger),
		Auth:     v1.NewAuthHandler(authService, rbacService, logger),
		User:     v1.NewUserHandler(userService, logger),
		Orphan:   v1.NewOrphanHandler(orphanService, exportService, logger),
		Borehole: v1.NewBoreholeHandler(boreholeService, exportService, logger),
		Report:   v1.NewReportHandler(reportService, exportService, logger),
	}
}

func registerDBHooks(lc fx.Lifecycle, db *postgres.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(r)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

func startAWSLambdaAPI(r *gin.Engine) {
	ginLambda := ginadapter.New(r)
	lambda.Start(ginLambda.ProxyWithContext)
}
