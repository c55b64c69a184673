package database

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func withItemsTable(t *testing.T) Database {
	t.Helper()
	db, _ := openTemp(t)
	if err := db.Session(context.Background()).Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT)").Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func countItems(t *testing.T, db Database) int64 {
	t.Helper()
	var count int64
	if err := db.Session(context.Background()).Raw("SELECT COUNT(*) FROM test_items").Scan(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return count
}

func TestTransaction_CommitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := withItemsTable(t)

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if err := txn.Session().Exec("INSERT INTO test_items (name) VALUES (?)", "pen").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if got := countItems(t, db); got != 1 {
		t.Errorf("expected count 1, got %d", got)
	}
	if err := txn.Commit(); err != nil {
		t.Errorf("second Commit should not error: %v", err)
	}
	if err := txn.Rollback(); err != nil {
		t.Errorf("Rollback after Commit should not error: %v", err)
	}
	if !txn.Finished() {
		t.Error("expected transaction to be finished")
	}
}

func TestTransaction_Rollback(t *testing.T) {
	ctx := context.Background()
	db := withItemsTable(t)

	txn, err := NewTransaction(ctx, db)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	if err := txn.Session().Exec("INSERT INTO test_items (name) VALUES (?)", "pen").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := txn.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if got := countItems(t, db); got != 0 {
		t.Errorf("expected count 0 after rollback, got %d", got)
	}
	if err := txn.Rollback(); err != nil {
		t.Errorf("second Rollback should not error: %v", err)
	}
}

func TestWithTransaction(t *testing.T) {
	ctx := context.Background()
	db := withItemsTable(t)

	err := WithTransaction(ctx, db, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO test_items (name) VALUES (?)", "pen").Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	testErr := errors.New("test error")
	err = WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO test_items (name) VALUES (?)", "ink").Error; err != nil {
			return err
		}
		return testErr
	})
	if !errors.Is(err, testErr) {
		t.Errorf("expected test error, got: %v", err)
	}
	if got := countItems(t, db); got != 1 {
		t.Errorf("expected only the committed row, got %d", got)
	}
}

func TestWithTransactionResult(t *testing.T) {
	ctx := context.Background()
	db, _ := openTemp(t)

	result, err := WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		var val int
		if err := tx.Raw("SELECT 42").Scan(&val).Error; err != nil {
			return 0, err
		}
		return val, nil
	})
	if err != nil {
		t.Fatalf("WithTransactionResult: %v", err)
	}
	if result != 42 {
		t.Errorf("expected result 42, got %d", result)
	}

	testErr := errors.New("test error")
	result, err = WithTransactionResult(ctx, db, func(tx *gorm.DB) (int, error) {
		return 7, testErr
	})
	if !errors.Is(err, testErr) {
		t.Errorf("expected test error, got: %v", err)
	}
	if result != 0 {
		t.Errorf("expected zero result on error, got %d", result)
	}
}
