package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gamehound/gamehound/internal/queue"
	"github.com/gamehound/gamehound/internal/repository"
	publisher "github.com/gamehound/gamehound/internal/service"
)

// ProjectHandler bundles dependencies for the project CRUD endpoints. All
// routes behind it run after JWTAuth, so the caller identity is always in
// the context.
type ProjectHandler struct {
	Projects *repository.ProjectRepo
}

func NewProjectHandler(p *repository.ProjectRepo) *ProjectHandler {
	return &ProjectHandler{Projects: p}
}

// ----- DTOs -----

type createProjectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Progress    int    `json:"progress"`
}

type updateProjectReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Progress    *int    `json:"progress"`
}

// caller pulls the verified identity out of the request context. JWTAuth
// guarantees both values exist on protected routes.
func caller(c echo.Context) (uint64, string) {
	id, _ := c.Get("user_id").(uint64)
	role, _ := c.Get("role").(string)
	return id, role
}

// List returns the projects visible to the caller: their own rows, or all
// rows when the caller's role is lead. Each row carries the owner's
// display name for presentation.
func (h *ProjectHandler) List(c echo.Context) error {
	uid, role := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Projects.ListForCaller(ctx, uid, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list projects failed"})
	}
	if out == nil {
		out = []*repository.Project{}
	}
	return c.JSON(http.StatusOK, out)
}

// Create inserts a project owned by the caller. Status and progress are
// stored as submitted; the system does not range-check them.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}
	uid, _ := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Projects.Create(ctx, uid, req.Title, req.Description, req.Status, req.Progress)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create project failed"})
	}

	go publisher.PublishProjectEvent(context.Background(), queue.ProjectEvent{
		Action:    queue.ActionCreated,
		ProjectID: id,
		Title:     req.Title,
		OwnerID:   uid,
		At:        time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"id": id, "message": "project created"})
}

// Update applies a partial update where the caller owns the row. When
// nothing matches, the response is still 200 but carries the distinct
// "not found or not owned" message; the caller cannot tell which.
func (h *ProjectHandler) Update(c echo.Context) error {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}
	var req updateProjectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	uid, _ := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	upd := repository.ProjectUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Progress:    req.Progress,
	}
	// An empty update runs no statement, so ownership was never checked:
	// claim no success and emit no event.
	if upd.Title == nil && upd.Description == nil && upd.Status == nil && upd.Progress == nil {
		return c.JSON(http.StatusOK, echo.Map{"message": "nothing to update"})
	}
	if err := h.Projects.Update(ctx, pid, uid, upd); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "not found or not owned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update project failed"})
	}

	go publisher.PublishProjectEvent(context.Background(), queue.ProjectEvent{
		Action:    queue.ActionUpdated,
		ProjectID: pid,
		OwnerID:   uid,
		At:        time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "project updated"})
}

// Delete removes a project the caller owns, with the same silent no-op
// contract as Update.
func (h *ProjectHandler) Delete(c echo.Context) error {
	pid, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project id"})
	}
	uid, _ := caller(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Projects.Delete(ctx, pid, uid); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "not found or not owned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete project failed"})
	}

	go publisher.PublishProjectEvent(context.Background(), queue.ProjectEvent{
		Action:    queue.ActionDeleted,
		ProjectID: pid,
		OwnerID:   uid,
		At:        time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "project deleted"})
}
