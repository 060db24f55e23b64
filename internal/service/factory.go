package service

import (
	authProvider "github.com/betulabla/foundation/internal/auth"
	"github.com/betulabla/foundation/internal/cache"
	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/domain/auth"
	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/domain/user"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/s3"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	DB           postgres.IClient
	Cache        cache.Cache
	AuthProvider authProvider.Provider

	// S3 is nil when the media bucket is disabled
	S3 s3.Service

	// Repositories
	AuthRepo     auth.Repository
	UserRepo     user.Repository
	OrphanRepo   orphan.Repository
	BoreholeRepo borehole.Repository
	ReportRepo   report.Repository
}

func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	provider authProvider.Provider,
	s3Service s3.Service,
	authRepo auth.Repository,
	userRepo user.Repository,
	orphanRepo orphan.Repository,
	boreholeRepo borehole.Repository,
	reportRepo report.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		Cache:        cache,
		AuthProvider: provider,
		S3:           s3Service,
		AuthRepo:     authRepo,
		UserRepo:     userRepo,
		OrphanRepo:   orphanRepo,
		BoreholeRepo: boreholeRepo,
		ReportRepo:   reportRepo,
	}
}
