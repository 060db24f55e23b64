package internal

import (
	"fmt"

	"github.com/betulabla/foundation/internal/auth"
	"github.com/betulabla/foundation/internal/cache"
	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/repository"
	"github.com/betulabla/foundation/internal/sentry"
	"github.com/betulabla/foundation/internal/service"
)

// script holds the dependencies a command needs outside the fx graph
type script struct {
	cfg    *config.Configuration
	log    *logger.Logger
	db     *postgres.DB
	params service.ServiceParams
}

func newScript() (*script, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	client := postgres.NewSentryClient(postgres.NewClient(db), sentry.NewSentryService(cfg, log), log)

	params := service.NewServiceParams(
		log,
		cfg,
		client,
		cache.NewCache(cfg, log),
		auth.NewProvider(cfg),
		nil,
		repository.NewAuthRepository(db, log),
		repository.NewUserRepository(db, log),
		repository.NewOrphanRepository(db, log),
		repository.NewBoreholeRepository(db, log),
		repository.NewReportRepository(db, log),
	)

	return &script{cfg: cfg, log: log, db: db, params: params}, nil
}

func (s *script) Close() {
	s.db.Close()
}
