// Package testutil provides test helpers for setting up in-memory cache
// stores, creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"fiscalbook/internal/cache"
)

// kvCounter ensures each test gets a unique in-memory database.
var kvCounter atomic.Int64

// SetupTestKV creates an isolated in-memory SQLite cache store with the
// schema migrated.
func SetupTestKV(t *testing.T) *cache.SQLiteKV {
	t.Helper()

	n := kvCounter.Add(1)
	dsn := fmt.Sprintf("file:testkv%d?mode=memory&cache=shared", n)
	kv, err := cache.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("failed to open test cache store: %v", err)
	}
	return kv
}

// TeardownTestKV closes the underlying database connection.
func TeardownTestKV(t *testing.T, kv *cache.SQLiteKV) {
	t.Helper()

	if err := kv.Close(); err != nil {
		t.Errorf("failed to close test cache store: %v", err)
	}
}
