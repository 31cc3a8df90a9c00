package canvas

import (
	"encoding/json"
	"net/http"

	"canvaspad/internal/canvas/model"
	"canvaspad/internal/canvas/service"
	"canvaspad/middleware"
	"canvaspad/pkg/httpx"

	"github.com/gorilla/mux"
)

type CanvasHandler struct {
	Service *service.CanvasService
}

func NewCanvasHandler(service *service.CanvasService) *CanvasHandler {
	return &CanvasHandler{Service: service}
}

type canvasResponse struct {
	Canvas *model.Canvas `json:"canvas"`
}

func (h *CanvasHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	var req model.CreateCanvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(ownerID, req.Name)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, canvasResponse{Canvas: c})
}

func (h *CanvasHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := mux.Vars(r)["id"]

	c, err := h.Service.Get(ownerID, id)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, canvasResponse{Canvas: c})
}

func (h *CanvasHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := mux.Vars(r)["id"]

	var req model.UpdateCanvasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Update(ownerID, id, req)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, canvasResponse{Canvas: c})
}

func (h *CanvasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(ownerID, id); err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "canvas deleted"})
}
