package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"coopsave/entity"
)

// setupDatabase opens the Postgres connection, verifies reachability and runs
// schema migrations. Any failure here is fatal: the process must not accept
// traffic without a working database.
func setupDatabase(logger zerolog.Logger) *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		logger.Fatal().Msg("DB_DSN is not set; a Postgres DSN is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to obtain database handle")
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("database unreachable")
	}

	// uuid_generate_v4 defaults need the uuid-ossp extension
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		logger.Warn().Err(err).Msg("failed to ensure uuid-ossp extension")
	}

	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := strings.ToLower(os.Getenv("DB_AUTO_MIGRATE")); v == "false" || v == "0" || v == "no" {
		shouldMigrate = false
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		for _, model := range []any{
			&entity.User{},
			&entity.Cooperative{},
			&entity.Contribution{},
			&entity.Loan{},
			&entity.Payment{},
			&entity.Repayment{},
			&entity.Referral{},
			&entity.ProfitShare{},
		} {
			if err := db.AutoMigrate(model); err != nil {
				logger.Warn().Err(err).Msgf("migration warning (%T)", model)
			}
		}
	}
	return db
}
