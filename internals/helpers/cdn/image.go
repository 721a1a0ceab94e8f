package cdn

import (
	"bytes"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// AllowedTypes is the upload allow-list. image/jpg is kept because some
// browsers still report it.
var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

func IsAllowedType(t string) bool {
	t = normalizeType(t)
	for _, a := range AllowedTypes {
		if a == t {
			return true
		}
	}
	return false
}

// SniffType detects the content type from the file bytes.
func SniffType(data []byte) string {
	return normalizeType(mimetype.Detect(data).String())
}

func normalizeType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return t
}

// ImageAlt builds the default alt text for an uploaded image.
func ImageAlt(title string) string {
	return strings.TrimSpace(title) + " - Kelurahan Kemayoran"
}

// downscale resizes JPEG/PNG images wider than maxWidth, keeping aspect.
// Other formats and smaller images are returned untouched.
func downscale(data []byte, contentType string, maxWidth int) ([]byte, bool, error) {
	if maxWidth <= 0 {
		return data, false, nil
	}
	var format imaging.Format
	switch normalizeType(contentType) {
	case "image/jpeg", "image/jpg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, false, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, err
	}
	if img.Bounds().Dx() <= maxWidth {
		return data, false, nil
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}
