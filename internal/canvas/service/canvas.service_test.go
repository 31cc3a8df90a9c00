package service

import (
	"encoding/json"
	"testing"
	"time"

	"canvaspad/internal/canvas/model"
	"canvaspad/internal/canvas/repository"
	"canvaspad/pkg/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*CanvasService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewCanvasService(repository.NewCanvasRepository(db), 1<<20), mock
}

func canvasRows(id, ownerID, name, snapshot string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "owner_id", "drawing_name", "snapshot", "created_at", "updated_at"}).
		AddRow(id, ownerID, name, []byte(snapshot), now, now)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Create("owner-a", "")
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Create("owner-a", "   ")
	assert.True(t, apperr.IsValidation(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateInitializesEmptySnapshot(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO canvases").
		WillReturnRows(canvasRows("canvas-1", "owner-a", "Trip Plan", model.EmptySnapshot))

	c, err := svc.Create("owner-a", "Trip Plan")
	require.NoError(t, err)
	assert.Equal(t, "Trip Plan", c.Name)
	assert.JSONEq(t, model.EmptySnapshot, string(c.Snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRequiresAField(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.Update("owner-a", "canvas-1", model.UpdateCanvasRequest{})
	assert.True(t, apperr.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRejectsOversizedSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := NewCanvasService(repository.NewCanvasRepository(db), 16)

	big := json.RawMessage(`{"shapes":[1,2,3,4,5,6]}`)
	_, err = svc.Update("owner-a", "canvas-1", model.UpdateCanvasRequest{Snapshot: big})
	assert.True(t, apperr.IsValidation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateChecksOwnershipBeforeWriting(t *testing.T) {
	svc, mock := newTestService(t)

	// The existence re-check runs first; a non-owned id never reaches the
	// UPDATE statement.
	mock.ExpectQuery("SELECT id, owner_id, drawing_name, snapshot, created_at, updated_at FROM canvases").
		WithArgs("canvas-1", "owner-b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "drawing_name", "snapshot", "created_at", "updated_at"}))

	name := "Renamed"
	_, err := svc.Update("owner-b", "canvas-1", model.UpdateCanvasRequest{Name: &name})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePartialSnapshotOnly(t *testing.T) {
	svc, mock := newTestService(t)

	snapshot := json.RawMessage(`{"shapes":[{"type":"rect"}]}`)

	mock.ExpectQuery("SELECT id, owner_id, drawing_name, snapshot, created_at, updated_at FROM canvases").
		WithArgs("canvas-1", "owner-a").
		WillReturnRows(canvasRows("canvas-1", "owner-a", "Trip Plan", "{}"))
	mock.ExpectQuery("UPDATE canvases").
		WithArgs("canvas-1", "owner-a", nil, []byte(snapshot)).
		WillReturnRows(canvasRows("canvas-1", "owner-a", "Trip Plan", string(snapshot)))

	c, err := svc.Update("owner-a", "canvas-1", model.UpdateCanvasRequest{Snapshot: snapshot})
	require.NoError(t, err)
	assert.Equal(t, "Trip Plan", c.Name)
	assert.JSONEq(t, string(snapshot), string(c.Snapshot))
	assert.NoError(t, mock.ExpectationsWereMet())
}
