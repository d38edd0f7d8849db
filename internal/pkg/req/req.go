/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates strict JSON body decoding with unified error reporting so that
handlers receive well-formed input structs or a ready-to-send CustomError.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"connectify/internal/pkg/errs"
)

// MaxBodyBytes defines the maximum allowed size (1 MB) for JSON request bodies.
// Media content never travels through JSON bodies; files go directly to the
// storage bucket via presigned URLs.
const MaxBodyBytes int64 = 1 << 20

// BindJSON attempts to bind the JSON data from the HTTP request body to the destination struct dst.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.NewError(errs.ErrRequestEntityTooLarge)
		}
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
