package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gamehound/gamehound/internal/utils"
)

// User mirrors the 'users' table.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
}

// RoleDeveloper is the default role assigned at registration. RoleLead is
// the elevated role whose holder sees every project.
const (
	RoleDeveloper = "developer"
	RoleLead      = "lead"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create hashes the password, inserts the user and returns its ID. The
// plaintext password never reaches the database. Duplicate emails are
// reported as ErrEmailExists regardless of the driver-level cause.
func (r *UserRepo) Create(ctx context.Context, email, password, name string, cost int) (uint64, error) {
	email = strings.TrimSpace(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, name, role) VALUES (?,?,?,?)",
		email, hash, name, RoleDeveloper)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by email. Emails are matched as stored; the
// lookup does not normalize case.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(email)
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (User, error) {
	var u User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,name,role,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	return u, err
}
