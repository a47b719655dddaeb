package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewUserRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

var userColumns = []string{"id", "email", "name", "password_hash", "dietary_prefs", "created_at"}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name           string
		email          string
		userName       string
		passwordHash   string
		mockExpect     func(sqlmock.Sqlmock)
		wantID         int
		wantErr        error
		errContainsStr string
	}{
		{
			name:         "success",
			email:        "alice@example.com",
			userName:     "Alice",
			passwordHash: "h123",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("alice@example.com", "Alice", "h123", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			wantID: 42,
		},
		{
			name:         "duplicate email",
			email:        "taken@example.com",
			userName:     "Bob",
			passwordHash: "h456",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("taken@example.com", "Bob", "h456", sqlmock.AnyArg()).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name:         "exec error",
			email:        "carol@example.com",
			userName:     "Carol",
			passwordHash: "h789",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("carol@example.com", "Carol", "h789", sqlmock.AnyArg()).
					WillReturnError(errors.New("db exec failed"))
			},
			errContainsStr: "insert user",
		},
		{
			name:         "last insert id error",
			email:        "dave@example.com",
			userName:     "Dave",
			passwordHash: "h000",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(insertUserSQL)).
					WithArgs("dave@example.com", "Dave", "h000", sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))
			},
			errContainsStr: "get last insert id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockUserRepo(t)
			defer cleanup()
			tt.mockExpect(mock)

			id, err := repo.Create(context.Background(), tt.email, tt.userName, tt.passwordHash)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if tt.errContainsStr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.errContainsStr) {
					t.Fatalf("expected error containing %q, got %v", tt.errContainsStr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tt.wantID {
				t.Fatalf("expected id %d, got %d", tt.wantID, id)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		rows := sqlmock.NewRows(userColumns).
			AddRow(7, "a@x.com", "Alice", "hash", "Vegan", created)
		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
			WithArgs("a@x.com").
			WillReturnRows(rows)

		u, err := repo.GetByEmail(context.Background(), "a@x.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u == nil || u.ID != 7 || u.Email != "a@x.com" || u.DietaryPrefs != "Vegan" {
			t.Fatalf("unexpected user: %+v", u)
		}
		if !u.CreatedAt.Equal(created) {
			t.Fatalf("unexpected created_at: %v", u.CreatedAt)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
			WithArgs("ghost@x.com").
			WillReturnRows(sqlmock.NewRows(userColumns))

		u, err := repo.GetByEmail(context.Background(), "ghost@x.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u != nil {
			t.Fatalf("expected nil user, got %+v", u)
		}
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmailSQL)).
			WithArgs("a@x.com").
			WillReturnError(errors.New("db gone"))

		if _, err := repo.GetByEmail(context.Background(), "a@x.com"); err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestUserRepository_GetIDByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectIDByEmailSQL)).
			WithArgs("a@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

		id, err := repo.GetIDByEmail(context.Background(), "a@x.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 5 {
			t.Fatalf("expected id 5, got %d", id)
		}
	})

	t.Run("absent resolves to zero", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectIDByEmailSQL)).
			WithArgs("ghost@x.com").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		id, err := repo.GetIDByEmail(context.Background(), "ghost@x.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 0 {
			t.Fatalf("expected id 0, got %d", id)
		}
	})
}

func TestUserRepository_Update(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateUserSQL)).
			WithArgs("new@x.com", "New Name", "Vegan", "newhash", 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), 7, "new@x.com", "New Name", "Vegan", "newhash"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock, cleanup := newMockUserRepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateUserSQL)).
			WithArgs("taken@x.com", "N", "", "h", 7).
			WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"))

		err := repo.Update(context.Background(), 7, "taken@x.com", "N", "", "h")
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})
}
