// Package repository contains data access logic separated from HTTP
// handlers. This file defines the Project model and repository methods for
// ownership-scoped CRUD. Every project belongs to exactly one owner, fixed
// at creation; there is no ownership-transfer operation.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel values
	"strings"      // strings assembles the partial-update SET clause
	"time"
)

// Project represents a project row joined with the owner's display name.
// OwnerName is populated only by List; mutations never need it. Status and
// progress are stored as submitted: the system does not range-check either
// field.
type Project struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	OwnerID     uint64    `json:"owner_id"`
	OwnerName   string    `json:"owner_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProjectUpdate carries the optional fields of a partial update. Nil means
// "leave the column alone".
type ProjectUpdate struct {
	Title       *string
	Description *string
	Status      *string
	Progress    *int
}

// ProjectRepo encapsulates all database queries related to projects. It
// depends on a sql.DB connection injected at construction.
type ProjectRepo struct {
	db *sql.DB
}

// NewProjectRepo constructs a ProjectRepo with the provided DB handle. This
// allows dependency injection of the database in tests and at startup.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// ListForCaller returns the projects visible to the caller, joined with the
// owner's display name. A caller whose role is "lead" sees every project;
// everyone else sees only rows where owner_id matches their id. Rows come
// back in primary-key order.
func (r *ProjectRepo) ListForCaller(ctx context.Context, callerID uint64, role string) ([]*Project, error) {
	const base = `SELECT p.id, p.title, COALESCE(p.description,''), p.status, p.progress,
	              p.owner_id, u.name, p.created_at
	              FROM projects p JOIN users u ON u.id = p.owner_id`

	var (
		rows *sql.Rows
		err  error
	)
	if role == RoleLead {
		rows, err = r.db.QueryContext(ctx, base+" ORDER BY p.id")
	} else {
		rows, err = r.db.QueryContext(ctx, base+" WHERE p.owner_id = ? ORDER BY p.id", callerID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Project
	for rows.Next() {
		p := new(Project)
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.Progress,
			&p.OwnerID, &p.OwnerName, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new project owned by the caller and returns its ID.
// owner_id is always the creating identity; the caller cannot choose it.
func (r *ProjectRepo) Create(ctx context.Context, callerID uint64, title, description, status string, progress int) (uint64, error) {
	if status == "" {
		status = "active"
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (title, description, status, progress, owner_id) VALUES (?,?,?,?,?)",
		title, description, status, progress, callerID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update applies the non-nil fields of upd to the project, but only where
// id and owner_id both match. When the caller does not own the project the
// statement affects zero rows and ErrProjectNotFound is returned; no other
// signal distinguishes "not found" from "not owned". An update with no
// fields set is a no-op and returns nil without touching the database.
func (r *ProjectRepo) Update(ctx context.Context, id, callerID uint64, upd ProjectUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 6)
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.Progress != nil {
		sets = append(sets, "progress = ?")
		args = append(args, *upd.Progress)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id, callerID)

	q := "UPDATE projects SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes the project where id and owner_id both match. Tasks of
// the project go first so the foreign key holds; both statements run in
// one transaction so a failure cannot leave a project without its board.
// The same zero-rows-affected contract as Update applies.
func (r *ProjectRepo) Delete(ctx context.Context, id, callerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`DELETE t FROM tasks t JOIN projects p ON p.id = t.project_id
		 WHERE p.id = ? AND p.owner_id = ?`, id, callerID); err != nil {
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx,
		"DELETE FROM projects WHERE id = ? AND owner_id = ?", id, callerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrProjectNotFound
		return err
	}
	return nil
}

// GetByID fetches a project regardless of owner. It backs the activity
// event publisher, which needs the row after an ownership-checked mutation
// already succeeded.
func (r *ProjectRepo) GetByID(ctx context.Context, id uint64) (*Project, error) {
	const q = `SELECT id, title, COALESCE(description,''), status, progress, owner_id, created_at
	           FROM projects WHERE id = ?`
	var p Project
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Title, &p.Description,
		&p.Status, &p.Progress, &p.OwnerID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}
