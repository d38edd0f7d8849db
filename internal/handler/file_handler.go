/*
Package handler provides HTTP handler functions for media upload and download.

Files never travel through the server: clients receive presigned URLs and talk
to the storage bucket directly.
*/
package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"connectify/internal/app/storage"
	"connectify/internal/pkg/auth/jwt"
	"connectify/internal/pkg/errs"
	"connectify/internal/pkg/randx"
	"connectify/internal/pkg/req"
	"connectify/internal/pkg/resp"
)

type PresignUploadInput struct {
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	FileSize int64  `json:"fileSize"`
}

// HandlePresignUpload validates the upload request and returns a presigned PUT
// URL together with the object key the client must reference afterwards.
// Keys are namespaced under the uploader's user ID.
func HandlePresignUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input PresignUploadInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if customErr := storage.ValidateUpload(input.FileName, input.MimeType, input.FileSize); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext := strings.ToLower(filepath.Ext(input.FileName))
		key := fmt.Sprintf("%s/%s%s", identity.ID, randx.MessageID(), ext)

		uploadURL, err := deps.Storage.PresignUpload(
			r.Context(),
			key,
			strings.ToLower(input.MimeType),
			input.FileSize,
			storage.PresignedURLDuration,
		)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"key":       key,
			"uploadUrl": uploadURL,
		})
	}
}

// HandlePresignDownload returns a presigned GET URL for the given object key.
func HandlePresignDownload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		key := r.URL.Query().Get("key")
		if key == "" || strings.Contains(key, "..") {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		downloadURL, err := deps.Storage.PresignDownload(r.Context(), key, storage.PresignedURLDuration)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrFileStorageFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{"url": downloadURL})
	}
}
