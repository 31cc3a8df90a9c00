package repository

import (
	"testing"
	"time"

	"canvaspad/pkg/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*CanvasRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCanvasRepository(db), mock
}

func canvasRows(id, ownerID, name, snapshot string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "owner_id", "drawing_name", "snapshot", "created_at", "updated_at"}).
		AddRow(id, ownerID, name, []byte(snapshot), now, now)
}

func TestGetScopedByOwner(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("SELECT id, owner_id, drawing_name, snapshot, created_at, updated_at FROM canvases").
		WithArgs("canvas-1", "owner-a").
		WillReturnRows(canvasRows("canvas-1", "owner-a", "Trip Plan", `{"shapes":[]}`))

	c, err := repo.Get("owner-a", "canvas-1")
	require.NoError(t, err)
	assert.Equal(t, "Trip Plan", c.Name)
	assert.JSONEq(t, `{"shapes":[]}`, string(c.Snapshot))

	// The same canvas requested by a different identity is filtered out by
	// the query predicate: it surfaces as NotFound, never Forbidden.
	mock.ExpectQuery("SELECT id, owner_id, drawing_name, snapshot, created_at, updated_at FROM canvases").
		WithArgs("canvas-1", "owner-b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "drawing_name", "snapshot", "created_at", "updated_at"}))

	_, err = repo.Get("owner-b", "canvas-1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNotOwnedIsNotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery("UPDATE canvases").
		WithArgs("canvas-1", "owner-b", nil, []byte(nil)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "drawing_name", "snapshot", "created_at", "updated_at"}))

	_, err := repo.Update("owner-b", "canvas-1", nil, nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRefreshesRecord(t *testing.T) {
	repo, mock := newTestRepo(t)

	name := "Renamed"
	snapshot := []byte(`{"shapes":[1,2]}`)
	mock.ExpectQuery("UPDATE canvases").
		WithArgs("canvas-1", "owner-a", &name, snapshot).
		WillReturnRows(canvasRows("canvas-1", "owner-a", "Renamed", `{"shapes":[1,2]}`))

	c, err := repo.Update("owner-a", "canvas-1", &name, snapshot)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", c.Name)
	assert.JSONEq(t, `{"shapes":[1,2]}`, string(c.Snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo, mock := newTestRepo(t)

	// Deleting a canvas that is missing or owned by someone else matches
	// zero rows and succeeds silently.
	mock.ExpectExec("DELETE FROM canvases").
		WithArgs("canvas-1", "owner-b").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete("owner-b", "canvas-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForOwner(t *testing.T) {
	repo, mock := newTestRepo(t)

	rows := canvasRows("canvas-1", "owner-a", "First", "{}").
		AddRow("canvas-2", "owner-a", "Second", []byte(`{"shapes":[]}`), time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, owner_id, drawing_name, snapshot, created_at, updated_at FROM canvases").
		WithArgs("owner-a").
		WillReturnRows(rows)

	canvases, err := repo.ListForOwner("owner-a")
	require.NoError(t, err)
	require.Len(t, canvases, 2)
	assert.Equal(t, "First", canvases[0].Name)

	// An owner with no canvases gets an empty collection, not nil.
	mock.ExpectQuery("SELECT id, owner_id, drawing_name, snapshot, created_at, updated_at FROM canvases").
		WithArgs("owner-c").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "drawing_name", "snapshot", "created_at", "updated_at"}))

	canvases, err = repo.ListForOwner("owner-c")
	require.NoError(t, err)
	assert.NotNil(t, canvases)
	assert.Empty(t, canvases)

	assert.NoError(t, mock.ExpectationsWereMet())
}
