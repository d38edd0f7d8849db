package storage

import (
	"path/filepath"
	"strings"
	"time"

	"connectify/internal/pkg/errs"
)

const (
	// MaxImageSizeMB is the maximum allowed image size in megabytes.
	MaxImageSizeMB = 5

	// MaxImageSize is the maximum allowed image size in bytes.
	MaxImageSize = MaxImageSizeMB * 1024 * 1024

	// MaxVideoSizeMB is the maximum allowed video size in megabytes.
	MaxVideoSizeMB = 50

	// MaxVideoSize is the maximum allowed video size in bytes.
	MaxVideoSize = MaxVideoSizeMB * 1024 * 1024

	// PresignedURLDuration is the fixed duration for which presigned URLs are valid.
	PresignedURLDuration = 5 * time.Minute
)

// AllowedImageMIMETypes defines the set of permitted MIME types for image uploads.
var AllowedImageMIMETypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// AllowedVideoMIMETypes defines the set of permitted MIME types for video uploads.
var AllowedVideoMIMETypes = map[string]struct{}{
	"video/mp4":  {},
	"video/webm": {},
}

// ExtToMIME maps file extensions to their corresponding MIME types.
var ExtToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".webm": "video/webm",
}

// ValidateUpload checks the file name, MIME type, and size of a requested upload.
// The size limit depends on whether the MIME type is an image or a video.
func ValidateUpload(fileName string, mimeType string, fileSize int64) *errs.CustomError {
	lowerMimeType := strings.ToLower(mimeType)

	_, isImage := AllowedImageMIMETypes[lowerMimeType]
	_, isVideo := AllowedVideoMIMETypes[lowerMimeType]
	if !isImage && !isVideo {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) < 2 {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	expectedMIME, ok := ExtToMIME[ext]
	if !ok || expectedMIME != lowerMimeType {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}

	if fileSize <= 0 {
		return errs.NewError(errs.ErrInvalidParams)
	}

	maxSize := int64(MaxImageSize)
	if isVideo {
		maxSize = MaxVideoSize
	}

	if fileSize > maxSize {
		return errs.NewError(errs.ErrFileSizeTooLarge)
	}

	return nil
}
