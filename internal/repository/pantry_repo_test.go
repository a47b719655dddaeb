package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockPantryRepo(t *testing.T) (*PantryRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewPantryRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestPantryRepository_Save(t *testing.T) {
	repo, mock, cleanup := newMockPantryRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(upsertPantrySQL)).
		WithArgs(1, `["tomato","rice"]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), 1, []string{"tomato", "rice"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPantryRepository_Load(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockPantryRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectPantrySQL)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"ingredients"}).AddRow(`["tomato","rice"]`))

		items, err := repo.Load(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 || items[0] != "tomato" {
			t.Fatalf("unexpected items: %v", items)
		}
	})

	t.Run("nothing saved yet", func(t *testing.T) {
		repo, mock, cleanup := newMockPantryRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectPantrySQL)).
			WithArgs(2).
			WillReturnRows(sqlmock.NewRows([]string{"ingredients"}))

		items, err := repo.Load(context.Background(), 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if items != nil {
			t.Fatalf("expected nil, got %v", items)
		}
	})
}
