package cache

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a single persisted cache row.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName sets the table name for cache entries.
func (Entry) TableName() string { return "cache_entries" }

// SQLiteKV is a KV backed by a local SQLite file.
type SQLiteKV struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the cache database at the given path.
// Use "file::memory:?cache=shared" for an in-memory store.
func OpenSQLite(path string) (*SQLiteKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache database: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

// Get returns the value for key, with ok=false when the key is absent.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set stores the value under key, replacing any previous value.
func (s *SQLiteKV) Set(key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entry).Error
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *SQLiteKV) Delete(key string) error {
	return s.db.Delete(&Entry{}, "key = ?", key).Error
}

// Close closes the underlying database connection.
func (s *SQLiteKV) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
