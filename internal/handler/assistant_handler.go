/*
Package handler provides the HTTP handler for the AI chat assistant.
*/
package handler

import (
	"net/http"
	"unicode/utf8"

	"connectify/internal/pkg/auth/jwt"
	"connectify/internal/pkg/errs"
	"connectify/internal/pkg/logx"
	"connectify/internal/pkg/req"
	"connectify/internal/pkg/resp"
)

// MaxPromptChars bounds the accepted assistant prompt length, in runes.
const MaxPromptChars = 8000

type AssistantChatInput struct {
	Prompt string `json:"prompt"`
}

// HandleAssistantChat proxies the user's prompt to the configured model and
// returns the generated text.
func HandleAssistantChat(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if deps.Assistant == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAssistantUnavailable))
			return
		}

		var input AssistantChatInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Prompt == "" || utf8.RuneCountInString(input.Prompt) > MaxPromptChars {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		response, err := deps.Assistant.Generate(r.Context(), input.Prompt)
		if err != nil {
			logx.Error(err, "assistant generation failed", "user_id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrAssistantUnavailable))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"response": response})
	}
}
