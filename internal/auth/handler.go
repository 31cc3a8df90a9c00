package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"canvaspad/internal/auth/model"
	"canvaspad/internal/auth/service"
	canvasmodel "canvaspad/internal/canvas/model"
	canvasservice "canvaspad/internal/canvas/service"
	"canvaspad/middleware"
	"canvaspad/pkg/httpx"
)

type AuthHandler struct {
	Service    *service.AuthService
	Canvases   *canvasservice.CanvasService
	CookieName string
	TokenTTL   time.Duration
}

func NewAuthHandler(svc *service.AuthService, canvases *canvasservice.CanvasService, cookieName string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{Service: svc, Canvases: canvases, CookieName: cookieName, TokenTTL: tokenTTL}
}

type meResponse struct {
	User     model.User           `json:"user"`
	Drawings []canvasmodel.Canvas `json:"drawings"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Service.CreateIdentity(req.Email, req.Password)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	token, err := h.Service.IssueToken(user)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	httpx.WriteJSON(w, http.StatusCreated, model.AuthResponse{User: *user, Token: token})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req model.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	user, err := h.Service.Authenticate(req.Email, req.Password)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	token, err := h.Service.IssueToken(user)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	h.setSessionCookie(w, token)
	httpx.WriteJSON(w, http.StatusOK, model.AuthResponse{User: *user, Token: token})
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

// Me returns the authenticated user plus their canvas collection. The
// profile-existence invariant is repaired here if the best-effort creation
// at signup never landed.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	user, err := h.Service.CurrentUser(userID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	drawings, err := h.Canvases.ListForOwner(userID)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, meResponse{User: *user, Drawings: drawings})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
