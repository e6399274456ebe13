package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
)

func TestCheckImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpeg := []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")

	tests := []struct {
		name    string
		data    []byte
		max     int64
		wantCT  string
		wantErr error
	}{
		{"png", png, 1024, "image/png", nil},
		{"jpeg", jpeg, 1024, "image/jpeg", nil},
		{"empty", nil, 1024, "", extract.ErrEmptyInput},
		{"text", []byte("just some ingredients"), 1024, "text/plain; charset=utf-8", ErrUnsupportedImage},
		{"too large", append(png, bytes.Repeat([]byte{0}, 64)...), 32, "", ErrImageTooLarge},
		{"default cap", png, 0, "image/png", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ct, err := CheckImage(tt.data, tt.max)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("CheckImage() error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("CheckImage() error = %v, want %v", err, tt.wantErr)
			}
			if ct != tt.wantCT {
				t.Errorf("content type = %q, want %q", ct, tt.wantCT)
			}
		})
	}
}
