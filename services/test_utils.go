package services

import (
	"testing"

	"github.com/benclube/membership-service/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLiteTestDB creates an in-memory SQLite database for testing.
// The member and scan tables are migrated fresh for each test, so tests
// never share state.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Member{}, &models.QRScan{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
