/*
Package handler provides the HTTP handlers and routing setup for the Connectify server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"connectify/internal/pkg/auth/jwt"
	"connectify/internal/pkg/limiter"
	"connectify/internal/pkg/logx"
	"connectify/internal/pkg/resp"
)

const (
	// AuthRate/AuthBurst throttle credential endpoints (signup, login, forgot password).
	AuthRate  = 0.2
	AuthBurst = 5

	// ConnectRate/ConnectBurst throttle WebSocket connection attempts.
	ConnectRate  = 0.5
	ConnectBurst = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	connectLimiter := limiter.NewIPRateLimiter(rate.Limit(ConnectRate), ConnectBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Connectify Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(authLimiter.Middleware).Post("/signup", HandleSignup(deps))
			auth.With(authLimiter.Middleware).Post("/login", HandleLogin(deps))
			auth.With(authLimiter.Middleware).Post("/forgot-password", HandleForgotPassword(deps))
			auth.Post("/logout", HandleLogout(deps))
			auth.Get("/check", HandleCheckAuth(deps))
			auth.Post("/update-profile", HandleUpdateProfile(deps))
			auth.Post("/change-password", HandleChangePassword(deps))
			auth.Post("/reset-password/{token}", HandleResetPassword(deps))
		})

		api.Route("/messages", func(messages chi.Router) {
			messages.Get("/contacts", HandleListContacts(deps))
			messages.Get("/{userID}", HandleGetConversation(deps))
			messages.Post("/send/{userID}", HandleSendMessage(deps))
		})

		api.Post("/file/presign-upload", HandlePresignUpload(deps))
		api.Get("/file/presign-download", HandlePresignDownload(deps))

		api.Post("/ai/chat", HandleAssistantChat(deps))
	})

	r.Get("/ws", HandleWebSocket(wsUpgrader, connectLimiter, deps))

	return r
}
