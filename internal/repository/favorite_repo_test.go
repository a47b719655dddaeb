package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockFavoriteRepo(t *testing.T) (*FavoriteRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewFavoriteRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestFavoriteRepository_Add_Idempotent(t *testing.T) {
	repo, mock, cleanup := newMockFavoriteRepo(t)
	defer cleanup()

	// first insert lands, the repeat is ignored by the database
	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	for i := 0; i < 2; i++ {
		if err := repo.Add(context.Background(), 1, 42); err != nil {
			t.Fatalf("add %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestFavoriteRepository_Remove_Idempotent(t *testing.T) {
	repo, mock, cleanup := newMockFavoriteRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteFavoriteSQL)).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteFavoriteSQL)).
		WithArgs(1, 42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	for i := 0; i < 2; i++ {
		if err := repo.Remove(context.Background(), 1, 42); err != nil {
			t.Fatalf("remove %d: unexpected error: %v", i+1, err)
		}
	}
}

func TestFavoriteRepository_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockFavoriteRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertFavoriteSQL)).
		WithArgs(1, 42).
		WillReturnError(errors.New("db gone"))

	if err := repo.Add(context.Background(), 1, 42); err == nil {
		t.Fatal("expected an error")
	}
}
