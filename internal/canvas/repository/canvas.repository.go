package repository

import (
	"database/sql"
	"errors"

	"canvaspad/internal/canvas/model"
	"canvaspad/pkg/apperr"
	"canvaspad/pkg/logger"
)

// CanvasRepository performs ownership-scoped access to canvas records.
// Every query predicate carries owner_id, so a record belonging to another
// identity is indistinguishable from one that does not exist.
type CanvasRepository struct {
	DB *sql.DB
}

func NewCanvasRepository(db *sql.DB) *CanvasRepository {
	return &CanvasRepository{DB: db}
}

const canvasColumns = "id, owner_id, drawing_name, snapshot, created_at, updated_at"

func (r *CanvasRepository) Create(id, ownerID, name string, snapshot []byte) (*model.Canvas, error) {
	var c model.Canvas
	err := r.DB.QueryRow(`INSERT INTO canvases (id, owner_id, drawing_name, snapshot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+canvasColumns,
		id, ownerID, name, snapshot,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Snapshot, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		logger.Sugar.Errorf("Failed to create canvas for owner %s: %v", ownerID, err)
		return nil, err
	}
	return &c, nil
}

func (r *CanvasRepository) Get(ownerID, id string) (*model.Canvas, error) {
	var c model.Canvas
	err := r.DB.QueryRow(`SELECT `+canvasColumns+` FROM canvases WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Snapshot, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get canvas %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// Update writes only the supplied fields; nil arguments leave the stored
// value untouched. updated_at is refreshed on every successful write.
func (r *CanvasRepository) Update(ownerID, id string, name *string, snapshot []byte) (*model.Canvas, error) {
	var c model.Canvas
	err := r.DB.QueryRow(`UPDATE canvases
		SET drawing_name = COALESCE($3, drawing_name),
		    snapshot = COALESCE($4, snapshot),
		    updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+canvasColumns,
		id, ownerID, name, snapshot,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Snapshot, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update canvas %s: %v", id, err)
		return nil, err
	}
	return &c, nil
}

// Delete removes the record if it exists and is owned by ownerID. Deleting
// a missing or non-owned id is a silent no-op.
func (r *CanvasRepository) Delete(ownerID, id string) error {
	_, err := r.DB.Exec(`DELETE FROM canvases WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete canvas %s: %v", id, err)
	}
	return err
}

func (r *CanvasRepository) ListForOwner(ownerID string) ([]model.Canvas, error) {
	rows, err := r.DB.Query(`SELECT `+canvasColumns+` FROM canvases WHERE owner_id = $1 ORDER BY updated_at DESC`, ownerID)
	if err != nil {
		logger.Sugar.Errorf("Failed to list canvases for owner %s: %v", ownerID, err)
		return nil, err
	}
	defer rows.Close()

	canvases := []model.Canvas{}
	for rows.Next() {
		var c model.Canvas
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Snapshot, &c.CreatedAt, &c.UpdatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan canvas row: %v", err)
			return nil, err
		}
		canvases = append(canvases, c)
	}
	return canvases, rows.Err()
}
