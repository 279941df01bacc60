package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepo(db), mock, db
}

func TestUserCreate_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users \(email, password_hash, name, role\)`).
		WithArgs("ann@x.com", sqlmock.AnyArg(), "Ann", RoleDeveloper).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "ann@x.com", "pw", "Ann", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("ann@x.com", sqlmock.AnyArg(), "Ann", RoleDeveloper).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'ann@x.com' for key 'users.email'"))

	_, err := repo.Create(context.Background(), "ann@x.com", "pw", "Ann", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUserGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id,email,password_hash,name,role,created_at FROM users WHERE email=\?`).
		WithArgs("ghost@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserGetByEmail_Success(t *testing.T) {
	repo, mock, db := newUserRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "role", "created_at"}).
		AddRow(3, "lead@x.com", "$2a$10$hash", "Lena", RoleLead, created)
	mock.ExpectQuery(`SELECT id,email,password_hash,name,role,created_at FROM users WHERE email=\?`).
		WithArgs("lead@x.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "lead@x.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, RoleLead, u.Role)
	assert.Equal(t, "Lena", u.Name)
	assert.Equal(t, created, u.CreatedAt)
}
