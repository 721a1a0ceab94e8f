package model

import (
	"errors"
	"strconv"
	"strings"

	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

// KeySource menyebut field mana yang menghasilkan key penyimpanan.
type KeySource string

const (
	KeyFromDocID    KeySource = "docId"
	KeyFromSlug     KeySource = "slug"
	KeyFromLegacyID KeySource = "id"
	KeyFromNama     KeySource = "nama"
)

var ErrUnresolvableKey = errors.New("umkm: no field can identify the record")

// KeyRef berisi semua kandidat identitas sebuah UMKM yang dimiliki caller.
type KeyRef struct {
	DocID    string
	Slug     string
	LegacyID int64
	Nama     string
}

// ResolvedKey adalah key penyimpanan beserta asalnya.
type ResolvedKey struct {
	Key    string
	Source KeySource
}

// ResolveKey memilih key penyimpanan dengan urutan tetap:
// docId, lalu slug, lalu id numerik lama, lalu slug yang dihitung dari nama.
func ResolveKey(ref KeyRef) (ResolvedKey, error) {
	if k := strings.TrimSpace(ref.DocID); k != "" {
		return ResolvedKey{Key: k, Source: KeyFromDocID}, nil
	}
	if k := strings.TrimSpace(ref.Slug); k != "" {
		return ResolvedKey{Key: k, Source: KeyFromSlug}, nil
	}
	if ref.LegacyID > 0 {
		return ResolvedKey{Key: strconv.FormatInt(ref.LegacyID, 10), Source: KeyFromLegacyID}, nil
	}
	if k := helper.GenerateSlug(ref.Nama); k != "" {
		return ResolvedKey{Key: k, Source: KeyFromNama}, nil
	}
	return ResolvedKey{}, ErrUnresolvableKey
}

// RefOf mengambil KeyRef dari record hasil list/get.
func RefOf(m UMKMModel) KeyRef {
	return KeyRef{DocID: m.DocID, Slug: m.Slug, LegacyID: m.ID, Nama: m.Nama}
}

// CanonicalSlug adalah key yang seharusnya dipakai record: field slug bila
// valid, selain itu slug dari nama. Kosong bila keduanya tidak bisa.
func CanonicalSlug(m UMKMModel) string {
	if helper.IsValidSlug(m.Slug) {
		return m.Slug
	}
	return helper.GenerateSlug(m.Nama)
}
