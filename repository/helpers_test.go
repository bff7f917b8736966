package repository

import (
	"context"
	"testing"

	"github.com/dcode-github/real_estate_portal/migrations"
	"github.com/dcode-github/real_estate_portal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	_, err = migrations.Default(db).Up()
	require.NoError(t, err)
	return db, sqlx.NewDb(sqlDB, "sqlite3")
}

func uintPtr(v uint) *uint { return &v }

func mustCreateProperty(t *testing.T, repo *PropertyRepository, p models.Property) *models.Property {
	t.Helper()
	if p.Status == "" {
		p.Status = models.PropertyStatusAvailable
	}
	if p.ListingType == "" {
		p.ListingType = models.ListingTypeSale
	}
	require.NoError(t, repo.Create(context.Background(), &p))
	return &p
}
