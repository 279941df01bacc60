package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamehound/gamehound/internal/repository"
)

// TaskHandler serves the board endpoints. Tasks have no owner of their
// own; every operation is gated on the caller owning the parent project.
type TaskHandler struct {
	Tasks *repository.TaskRepo
}

func NewTaskHandler(t *repository.TaskRepo) *TaskHandler {
	return &TaskHandler{Tasks: t}
}

type createTaskReq struct {
	Title  string `json:"title"`
	Column string `json:"column"`
}

type updateTaskReq struct {
	Title  *string `json:"title"`
	Column *string `json:"column"`
}

// ListByProject returns the board of a project visible to the caller. An
// invisible project answers 200 with the no-op message, matching the
// project mutation contract.
func (h *TaskHandler) ListByProject(c echo.Context) error {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}
	uid, role := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Tasks.ListByProject(ctx, pid, uid, role)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "not found or not owned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tasks failed"})
	}
	if out == nil {
		out = []*repository.Task{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a task to a project the caller owns.
func (h *TaskHandler) Create(c echo.Context) error {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	uid, _ := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Tasks.Create(ctx, pid, uid, req.Title, req.Column)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "not found or not owned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "task created"})
}

// Update renames or moves a task on a board the caller owns.
func (h *TaskHandler) Update(c echo.Context) error {
	tid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	var req updateTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	uid, _ := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tasks.Update(ctx, tid, uid, req.Title, req.Column); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "not found or not owned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update task failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "task updated"})
}

// Delete removes a task under the same gate.
func (h *TaskHandler) Delete(c echo.Context) error {
	tid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	uid, _ := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tasks.Delete(ctx, tid, uid); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "not found or not owned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete task failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "task deleted"})
}
