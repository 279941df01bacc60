package repository

import (
	"context"
	"database/sql"
	"time"
)

// Task represents a card on a project's board. Column is free-form like
// project status; "todo", "doing" and "done" are the values the board UI
// uses but nothing enforces them.
type Task struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	Title     string    `json:"title"`
	Column    string    `json:"column"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskRepo encapsulates database queries for board tasks. Ownership is
// never stored on the task itself; every query joins through projects so
// the owner_id check stays in one place per statement.
type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// ListByProject returns the tasks of a project visible to the caller,
// oldest first. A lead sees any project's board. A project that exists but
// is not visible yields ErrProjectNotFound, same as a missing one.
func (r *TaskRepo) ListByProject(ctx context.Context, projectID, callerID uint64, role string) ([]*Task, error) {
	// Visibility check first so an empty board and an invisible project
	// are distinguishable.
	var ownerID uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM projects WHERE id = ?", projectID).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if ownerID != callerID && role != RoleLead {
		return nil, ErrProjectNotFound
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, project_id, title, board_column, created_at FROM tasks WHERE project_id = ? ORDER BY id",
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Task
	for rows.Next() {
		t := new(Task)
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Column, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a task to a project the caller owns and returns its ID. The
// INSERT..SELECT keeps the ownership check and the insert in one statement;
// zero rows inserted means the project is missing or not owned.
func (r *TaskRepo) Create(ctx context.Context, projectID, callerID uint64, title, column string) (uint64, error) {
	if column == "" {
		column = "todo"
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (project_id, title, board_column)
		 SELECT p.id, ?, ? FROM projects p WHERE p.id = ? AND p.owner_id = ?`,
		title, column, projectID, callerID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, ErrProjectNotFound
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update renames or moves a task, gated on the caller owning the parent
// project. Zero rows affected surfaces as ErrTaskNotFound; as with
// projects, "not found" and "not owned" are indistinguishable.
func (r *TaskRepo) Update(ctx context.Context, id, callerID uint64, title, column *string) error {
	if title == nil && column == nil {
		return nil
	}
	q := `UPDATE tasks t JOIN projects p ON p.id = t.project_id
	      SET t.title = COALESCE(?, t.title), t.board_column = COALESCE(?, t.board_column)
	      WHERE t.id = ? AND p.owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, title, column, id, callerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task under the same ownership gate as Update.
func (r *TaskRepo) Delete(ctx context.Context, id, callerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE t FROM tasks t JOIN projects p ON p.id = t.project_id
		 WHERE t.id = ? AND p.owner_id = ?`, id, callerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
