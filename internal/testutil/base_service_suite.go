package testutil

import (
	"context"
	"time"

	authProvider "github.com/betulabla/foundation/internal/auth"
	"github.com/betulabla/foundation/internal/cache"
	"github.com/betulabla/foundation/internal/config"
	"github.com/betulabla/foundation/internal/domain/auth"
	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/domain/user"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/sentry"
	"github.com/betulabla/foundation/internal/types"
	"github.com/betulabla/foundation/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	AuthRepo     auth.Repository
	UserRepo     user.Repository
	OrphanRepo   orphan.Repository
	BoreholeRepo borehole.Repository
	ReportRepo   report.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	stores   Stores
	db       *MockPostgresClient
	cache    cache.Cache
	s3       *InMemoryS3
	provider authProvider.Provider
	sentry   *sentry.Service
	logger   *logger.Logger
	config   *config.Configuration
	now      time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Logging.Level = types.LogLevelInfo
	cfg.Auth.Secret = "test-secret-for-unit-tests-only"
	cfg.S3.Enabled = true

	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
	s.sentry = sentry.NewSentryService(cfg, s.logger)
	s.provider = authProvider.NewProvider(cfg)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupStores() {
	users := NewInMemoryUserStore()
	orphans := NewInMemoryOrphanStore()
	boreholes := NewInMemoryBoreholeStore()
	reports := NewInMemoryReportStore(users)

	orphans.onDelete = reports.DeleteByOrphan
	boreholes.onDelete = reports.DeleteByBorehole
	users.SetOwnershipCheck(func(userID string) bool {
		owned := func(createdBy string) bool { return createdBy == userID }
		for _, o := range orphans.All() {
			if owned(o.CreatedBy) {
				return true
			}
		}
		for _, b := range boreholes.All() {
			if owned(b.CreatedBy) {
				return true
			}
		}
		return reports.CreatedBy(userID)
	})

	s.stores = Stores{
		AuthRepo:     NewInMemoryAuthStore(),
		UserRepo:     users,
		OrphanRepo:   orphans,
		BoreholeRepo: boreholes,
		ReportRepo:   reports,
	}

	s.db = NewMockPostgresClient(s.logger)
	s.cache = cache.NewInMemoryCache()
	s.s3 = NewInMemoryS3()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.AuthRepo.(*InMemoryAuthStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.OrphanRepo.(*InMemoryOrphanStore).Clear()
	s.stores.BoreholeRepo.(*InMemoryBoreholeStore).Clear()
	s.stores.ReportRepo.(*InMemoryReportStore).Clear()
	s.cache.Flush(s.ctx)
	s.s3.Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext replaces the test context, e.g. to act as another caller
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test database client
func (s *BaseServiceTestSuite) GetDB() *MockPostgresClient {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetS3 returns the in-memory media bucket
func (s *BaseServiceTestSuite) GetS3() *InMemoryS3 {
	return s.s3
}

// GetAuthProvider returns the password auth provider
func (s *BaseServiceTestSuite) GetAuthProvider() authProvider.Provider {
	return s.provider
}

// GetSentry returns a sentry service with sentry disabled
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

// CreateUser stores an active user with a password credential
func (s *BaseServiceTestSuite) CreateUser(username, password string, role types.UserRole) *user.User {
	u := user.NewUser(username, username+"@example.org", role)
	u.FullName = username + " tester"
	s.Require().NoError(s.stores.UserRepo.Create(s.ctx, u))

	hash, err := s.provider.HashPassword(password)
	s.Require().NoError(err)
	s.Require().NoError(s.stores.AuthRepo.CreateAuth(s.ctx, auth.NewAuth(u.ID, s.provider.GetProvider(), hash)))
	return u
}
