package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehound/gamehound/internal/repository"
)

func newProjectHandlerWithMock(t *testing.T) (*ProjectHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewProjectHandler(repository.NewProjectRepo(db)), mock, db
}

// authedRequest builds a context as it looks after JWTAuth ran: identity
// claims already resolved and attached.
func authedRequest(t *testing.T, method, path, body string, uid uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uid)
	c.Set("role", role)
	return c, rec
}

func TestProjectList_OwnRowsOnly(t *testing.T) {
	h, mock, db := newProjectHandlerWithMock(t)
	defer db.Close()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "status", "progress", "owner_id", "name", "created_at",
	}).AddRow(1, "Silksong", "", "active", 85, 1, "Ann", created)
	mock.ExpectQuery(`WHERE p\.owner_id = \? ORDER BY p\.id`).
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	c, rec := authedRequest(t, http.MethodGet, "/api/projects", "", 1, repository.RoleDeveloper)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var out []repository.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Silksong", out[0].Title)
	assert.Equal(t, 85, out[0].Progress)
	assert.Equal(t, "Ann", out[0].OwnerName)
}

func TestProjectList_EmptyIsJSONArray(t *testing.T) {
	h, mock, db := newProjectHandlerWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`WHERE p\.owner_id = \? ORDER BY p\.id`).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "status", "progress", "owner_id", "name", "created_at",
		}))

	c, rec := authedRequest(t, http.MethodGet, "/api/projects", "", 2, repository.RoleDeveloper)
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestProjectCreate_ReturnsID(t *testing.T) {
	h, mock, db := newProjectHandlerWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO projects`).
		WithArgs("Silksong", "", "active", 85, uint64(1)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	c, rec := authedRequest(t, http.MethodPost, "/api/projects",
		`{"title":"Silksong","status":"active","progress":85}`, 1, repository.RoleDeveloper)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID      uint64 `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(11), resp.ID)
}

func TestProjectUpdate_NotOwnedAnswersNoOp(t *testing.T) {
	h, mock, db := newProjectHandlerWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE projects SET title = \?`).
		WithArgs("Stolen", uint64(11), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, rec := authedRequest(t, http.MethodPut, "/api/projects/11",
		`{"title":"Stolen"}`, 2, repository.RoleDeveloper)
	c.SetParamNames("id")
	c.SetParamValues("11")
	require.NoError(t, h.Update(c))

	// Still 200: the caller cannot distinguish "not found" from "not
	// owned", but the message is distinct from a successful update.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "not found or not owned")
}

func TestProjectUpdate_EmptyBodyClaimsNothing(t *testing.T) {
	h, mock, db := newProjectHandlerWithMock(t)
	defer db.Close()

	// No expectations registered: a fieldless PUT must not reach the
	// database, must not answer "project updated", and must not emit an
	// activity event — the caller's ownership was never checked.
	c, rec := authedRequest(t, http.MethodPut, "/api/projects/11",
		`{}`, 2, repository.RoleDeveloper)
	c.SetParamNames("id")
	c.SetParamValues("11")
	require.NoError(t, h.Update(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "nothing to update")
	assert.NotContains(t, rec.Body.String(), "project updated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectDelete_Owned(t *testing.T) {
	h, mock, db := newProjectHandlerWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE t FROM tasks t JOIN projects p`).
		WithArgs(uint64(11), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM projects`).
		WithArgs(uint64(11), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := authedRequest(t, http.MethodDelete, "/api/projects/11", "", 1, repository.RoleDeveloper)
	c.SetParamNames("id")
	c.SetParamValues("11")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "project deleted")
}

func TestProjectDelete_BadID(t *testing.T) {
	h, _, db := newProjectHandlerWithMock(t)
	defer db.Close()

	c, rec := authedRequest(t, http.MethodDelete, "/api/projects/abc", "", 1, repository.RoleDeveloper)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
