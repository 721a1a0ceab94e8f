package helper

import (
	"regexp"
	"strings"
)

var (
	reSlugStrip = regexp.MustCompile(`[^a-z0-9\s\p{Zs}-]`)
	reSlugSpace = regexp.MustCompile(`[\s\p{Zs}]+`)
	reSlugDash  = regexp.MustCompile(`-+`)
	reSlugValid = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// GenerateSlug menormalkan teks menjadi slug:
// - lower-case
// - buang karakter selain [a-z0-9], spasi dan "-"
// - spasi beruntun (termasuk NBSP dan spasi Unicode lain) jadi satu "-"
// - collapse "-" beruntun
// - trim "-" di kedua ujung
//
// Hasilnya stabil: GenerateSlug(GenerateSlug(s)) == GenerateSlug(s).
func GenerateSlug(s string) string {
	s = strings.ToLower(s)
	s = reSlugStrip.ReplaceAllString(s, "")
	s = reSlugSpace.ReplaceAllString(strings.TrimSpace(s), "-")
	s = reSlugDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug cek slug siap dipakai sebagai key dokumen.
func IsValidSlug(s string) bool {
	return reSlugValid.MatchString(s)
}
