package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Canvas is a named spatial-canvas document. The snapshot is an opaque
// blob: the server stores and returns it byte-for-byte and never
// interprets its structure.
type Canvas struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"drawing_name"`
	Snapshot  json.RawMessage `json:"snapshot"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EmptySnapshot is the placeholder a freshly created canvas starts with.
const EmptySnapshot = "{}"

type CreateCanvasRequest struct {
	Name string `json:"drawing_name"`
}

func (r CreateCanvasRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("drawing_name is required"),
			validation.By(notBlank)),
	)
}

// UpdateCanvasRequest is a partial update: only supplied fields are
// written. A nil Name and nil Snapshot together are invalid.
type UpdateCanvasRequest struct {
	Name     *string         `json:"drawing_name,omitempty"`
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
}

// HasSnapshot reports whether a snapshot was actually supplied; a literal
// JSON null counts as absent.
func (r UpdateCanvasRequest) HasSnapshot() bool {
	return r.Snapshot != nil && string(r.Snapshot) != "null"
}

func (r UpdateCanvasRequest) Validate() error {
	if r.Name == nil && !r.HasSnapshot() {
		return errors.New("at least one of drawing_name or snapshot is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("drawing_name must not be blank")
	}
	return nil
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
}
