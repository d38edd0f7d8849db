/*
Package handler provides the HTTP handler function for WebSocket connection upgrading.

This file contains HandleWebSocket, the session bootstrap: it rate limits the
attempt, verifies the identity token, upgrades the connection, and binds the
resulting client into the hub. A rejected attempt never touches the registry.
*/
package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"connectify/internal/app/chat"
	"connectify/internal/app/store"
	"connectify/internal/pkg/auth/jwt"
	"connectify/internal/pkg/errs"
	"connectify/internal/pkg/limiter"
	"connectify/internal/pkg/logx"
	"connectify/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc to process WebSocket connection requests.
// Browsers cannot set headers on WebSocket upgrades, so the identity token is
// carried in the "token" query parameter instead of the Authorization header.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := limiter.ClientIP(r)

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		tokenString := r.URL.Query().Get("token")
		if tokenString == "" {
			logx.Warn("WebSocket request rejected: Missing token query parameter")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		payload, err := jwt.ParseIdentityToken(tokenString, deps.Config.JWTSecret)
		if err != nil {
			logx.Warn("WebSocket request rejected: Invalid or expired token", "error", err)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if _, err := deps.Store.GetUserByID(r.Context(), payload.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				logx.Warn("WebSocket request rejected: Unknown user", "user_id", payload.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			logx.Error(err, "WebSocket bootstrap: user lookup failed", "user_id", payload.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		client := chat.NewClient(deps.Hub, conn, payload.ID)

		go client.WritePump()

		deps.Hub.Bind(client)

		logx.Info("WebSocket connection established", "user_id", payload.ID)

		client.ReadPump()
	}
}
