package service

import (
	"strings"

	"canvaspad/internal/canvas/model"
	"canvaspad/internal/canvas/repository"
	"canvaspad/pkg/apperr"

	"github.com/google/uuid"
)

// CanvasService validates and executes owner-scoped canvas operations.
type CanvasService struct {
	Repo             *repository.CanvasRepository
	SnapshotMaxBytes int
}

func NewCanvasService(repo *repository.CanvasRepository, snapshotMaxBytes int) *CanvasService {
	return &CanvasService{Repo: repo, SnapshotMaxBytes: snapshotMaxBytes}
}

func (s *CanvasService) Create(ownerID, name string) (*model.Canvas, error) {
	if err := (model.CreateCanvasRequest{Name: name}).Validate(); err != nil {
		return nil, &apperr.ValidationError{Message: err.Error()}
	}
	return s.Repo.Create(uuid.NewString(), ownerID, strings.TrimSpace(name), []byte(model.EmptySnapshot))
}

func (s *CanvasService) Get(ownerID, id string) (*model.Canvas, error) {
	return s.Repo.Get(ownerID, id)
}

// Update applies a partial update after re-verifying ownership with a
// get-equivalent existence check, so a non-owned id fails NotFound before
// anything is written.
func (s *CanvasService) Update(ownerID, id string, req model.UpdateCanvasRequest) (*model.Canvas, error) {
	if err := req.Validate(); err != nil {
		return nil, &apperr.ValidationError{Message: err.Error()}
	}
	if req.HasSnapshot() && len(req.Snapshot) > s.SnapshotMaxBytes {
		return nil, apperr.Validation("snapshot exceeds maximum size of %d bytes", s.SnapshotMaxBytes)
	}

	if _, err := s.Repo.Get(ownerID, id); err != nil {
		return nil, err
	}

	var snapshot []byte
	if req.HasSnapshot() {
		snapshot = req.Snapshot
	}
	return s.Repo.Update(ownerID, id, req.Name, snapshot)
}

func (s *CanvasService) Delete(ownerID, id string) error {
	return s.Repo.Delete(ownerID, id)
}

func (s *CanvasService) ListForOwner(ownerID string) ([]model.Canvas, error) {
	return s.Repo.ListForOwner(ownerID)
}
