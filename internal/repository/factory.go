package repository

import (
	"github.com/betulabla/foundation/internal/domain/auth"
	"github.com/betulabla/foundation/internal/domain/borehole"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/domain/report"
	"github.com/betulabla/foundation/internal/domain/user"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	postgresRepo "github.com/betulabla/foundation/internal/repository/postgres"
)

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewAuthRepository(db *postgres.DB, logger *logger.Logger) auth.Repository {
	return postgresRepo.NewAuthRepository(db, logger)
}

func NewOrphanRepository(db *postgres.DB, logger *logger.Logger) orphan.Repository {
	return postgresRepo.NewOrphanRepository(db, logger)
}

func NewBoreholeRepository(db *postgres.DB, logger *logger.Logger) borehole.Repository {
	return postgresRepo.NewBoreholeRepository(db, logger)
}

func NewReportRepository(db *postgres.DB, logger *logger.Logger) report.Repository {
	return postgresRepo.NewReportRepository(db, logger)
}
