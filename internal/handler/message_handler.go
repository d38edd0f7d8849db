/*
Package handler provides HTTP handler functions for sending messages and reading history.

Message sends travel over request/response; the persisted record is returned to
the sender and pushed to the recipient's live connection when one exists.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"connectify/internal/app/chat"
	"connectify/internal/pkg/auth/jwt"
	"connectify/internal/pkg/errs"
	"connectify/internal/pkg/req"
	"connectify/internal/pkg/resp"
)

// HandleListContacts returns every other account for the conversation sidebar.
func HandleListContacts(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		users, err := deps.Store.ListContacts(r.Context(), identity.ID)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"users": users})
	}
}

// HandleGetConversation returns the message history between the authenticated
// user and the user named in the URL, ascending by creation time.
func HandleGetConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		otherID := chi.URLParam(r, "userID")
		if otherID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		messages, customErr := deps.Pipeline.Conversation(r.Context(), identity.ID, otherID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"messages": messages})
	}
}

// HandleSendMessage validates and persists an outgoing message and attempts
// best-effort live delivery to the recipient.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		recipientID := chi.URLParam(r, "userID")
		if recipientID == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		var payload chat.SendPayload
		if customErr := req.BindJSON(w, r, &payload); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		msg, customErr := deps.Pipeline.Send(r.Context(), identity.ID, recipientID, payload)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"message": msg})
	}
}
