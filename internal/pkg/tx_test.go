package pkg

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type txRecord struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupTxDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&txRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countRecords(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&txRecord{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestWithTx_CommitOnSuccess(t *testing.T) {
	db := setupTxDB(t)

	err := WithTx(db, func(tx *gorm.DB) error {
		return tx.Create(&txRecord{Name: "kept"}).Error
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	if n := countRecords(t, db); n != 1 {
		t.Errorf("got %d records; want 1", n)
	}
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupTxDB(t)

	fnErr := errors.New("fn failed")
	err := WithTx(db, func(tx *gorm.DB) error {
		if err := tx.Create(&txRecord{Name: "discarded"}).Error; err != nil {
			return err
		}
		return fnErr
	})
	if !errors.Is(err, fnErr) {
		t.Fatalf("expected fn error, got %v", err)
	}

	if n := countRecords(t, db); n != 0 {
		t.Errorf("got %d records; want 0 after rollback", n)
	}
}

func TestWithTx_RollbackAndRepanic(t *testing.T) {
	db := setupTxDB(t)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "boom" {
			t.Fatalf("expected panic value 'boom', got %v", r)
		}
		if n := countRecords(t, db); n != 0 {
			t.Errorf("got %d records; want 0 after panic rollback", n)
		}
	}()

	WithTx(db, func(tx *gorm.DB) error {
		tx.Create(&txRecord{Name: "discarded"})
		panic("boom")
	})
}
