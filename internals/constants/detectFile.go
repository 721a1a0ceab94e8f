package constants

import (
	"path/filepath"
	"strings"
)

// DetectImageTypeFromExt menebak content type gambar dari ekstensi file.
// Kosong berarti bukan gambar yang didukung upload.
func DetectImageTypeFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
