// Package docstoretest provides a throwaway GORM-backed store on in-memory
// SQLite for tests.
package docstoretest

import (
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
)

// Epoch is the first time handed out by Clock.
var Epoch = time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

// Clock returns a clock that advances one second per call, so every write
// gets a distinct, strictly increasing timestamp.
func Clock() func() time.Time {
	var mu sync.Mutex
	next := Epoch
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

// New opens a private in-memory database and closes it with the test.
func New(t testing.TB) *docstore.GormStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// every new connection would be a new empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	store, err := docstore.NewGormStore(db, docstore.WithClock(Clock()))
	if err != nil {
		t.Fatalf("new gorm store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}
