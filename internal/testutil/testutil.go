package testutil

import (
	"path/filepath"
	"testing"

	"digimun_backend/internal/models"
	"digimun_backend/internal/storage"
)

// DefaultConfig 是測試用的會議計時器預設值
func DefaultConfig() models.SessionConfig {
	return models.SessionConfig{"gslTime": 90, "modTime": 45}
}

// SetupTestDB 建立一個已遷移的暫存 SQLite 資料庫，測試結束時關閉
func SetupTestDB(t *testing.T) *storage.Database {
	t.Helper()

	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
