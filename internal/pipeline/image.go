package pipeline

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Aayushman-oss/nutriscan-ai/internal/extract"
)

// DefaultMaxImageBytes caps label images when the config leaves it unset.
const DefaultMaxImageBytes = 10 << 20

// supportedImageTypes are the sniffed content types the reasoning service takes.
var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// ErrUnsupportedImage is returned by CheckImage for non-image content.
var ErrUnsupportedImage = errors.New("unsupported image type (use JPG or PNG)")

// ErrImageTooLarge is returned by CheckImage when the image exceeds the cap.
var ErrImageTooLarge = errors.New("image too large")

// CheckImage sniffs data and enforces the size cap. It returns the detected
// content type. Empty data yields extract.ErrEmptyInput.
func CheckImage(data []byte, maxBytes int64) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	if len(data) == 0 {
		return "", extract.ErrEmptyInput
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrImageTooLarge, len(data), maxBytes)
	}
	ct := http.DetectContentType(data)
	if !supportedImageTypes[ct] {
		return ct, fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
	}
	return ct, nil
}
