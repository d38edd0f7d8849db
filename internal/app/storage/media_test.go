package storage

import (
	"testing"

	"connectify/internal/pkg/errs"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		mimeType string
		fileSize int64
		wantCode int
	}{
		{"valid jpeg", "photo.jpg", "image/jpeg", 1024, 0},
		{"valid png uppercase mime", "shot.png", "IMAGE/PNG", 2048, 0},
		{"valid mp4", "clip.mp4", "video/mp4", 10 * 1024 * 1024, 0},
		{"valid webm", "clip.webm", "video/webm", 1024, 0},
		{"image at limit", "big.png", "image/png", MaxImageSize, 0},
		{"image over limit", "big.png", "image/png", MaxImageSize + 1, errs.ErrFileSizeTooLarge},
		{"video over limit", "big.mp4", "video/mp4", MaxVideoSize + 1, errs.ErrFileSizeTooLarge},
		{"video under image rule", "clip.mp4", "video/mp4", MaxImageSize + 1, 0},
		{"disallowed mime", "doc.pdf", "application/pdf", 1024, errs.ErrFileTypeInvalid},
		{"extension mismatch", "photo.png", "image/jpeg", 1024, errs.ErrFileTypeInvalid},
		{"no extension", "photo", "image/jpeg", 1024, errs.ErrFileTypeInvalid},
		{"zero size", "photo.jpg", "image/jpeg", 0, errs.ErrInvalidParams},
		{"negative size", "photo.jpg", "image/jpeg", -1, errs.ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.fileName, tt.mimeType, tt.fileSize)

			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("ValidateUpload rejected valid upload: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("ValidateUpload accepted invalid upload, want code %d", tt.wantCode)
			}
			if err.Code != tt.wantCode {
				t.Fatalf("error code = %d, want %d", err.Code, tt.wantCode)
			}
		})
	}
}
