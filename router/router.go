package router

import (
	"database/sql"
	"net/http"

	"canvaspad/config"
	authhandler "canvaspad/internal/auth"
	authrepository "canvaspad/internal/auth/repository"
	authservice "canvaspad/internal/auth/service"
	canvashandler "canvaspad/internal/canvas"
	canvasrepository "canvaspad/internal/canvas/repository"
	canvasservice "canvaspad/internal/canvas/service"
	"canvaspad/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Setup wires repositories, services, and handlers into the public HTTP
// surface. Every /canvases route and /auth/me pass through the access
// guard; signup, signin, and signout do not.
func Setup(db *sql.DB, cfg *config.Config) http.Handler {
	tokens := authservice.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authRepo := authrepository.NewAuthRepository(db)
	authSvc := authservice.NewAuthService(authRepo, tokens)

	canvasRepo := canvasrepository.NewCanvasRepository(db)
	canvasSvc := canvasservice.NewCanvasService(canvasRepo, cfg.SnapshotMaxBytes)

	authH := authhandler.NewAuthHandler(authSvc, canvasSvc, cfg.CookieName, cfg.TokenTTL)
	canvasH := canvashandler.NewCanvasHandler(canvasSvc)

	r := mux.NewRouter()
	r.Use(middleware.Recovery)

	r.HandleFunc("/auth/signup", authH.Signup).Methods(http.MethodPost)
	r.HandleFunc("/auth/signin", authH.Signin).Methods(http.MethodPost)
	r.HandleFunc("/auth/signout", authH.Signout).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(middleware.Auth(tokens, cfg.CookieName))
	authed.HandleFunc("/auth/me", authH.Me).Methods(http.MethodGet)
	authed.HandleFunc("/canvases", canvasH.Create).Methods(http.MethodPost)
	authed.HandleFunc("/canvases/{id}", canvasH.Get).Methods(http.MethodGet)
	authed.HandleFunc("/canvases/{id}", canvasH.Update).Methods(http.MethodPatch)
	authed.HandleFunc("/canvases/{id}", canvasH.Delete).Methods(http.MethodDelete)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
