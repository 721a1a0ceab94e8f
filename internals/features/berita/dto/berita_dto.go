package dto

import (
	"strings"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/model"
)

// ============================
// Create & Update Request DTO
// ============================

type CreateBeritaRequest struct {
	Judul       string   `json:"judul" validate:"required,notblank"`
	Ringkasan   *string  `json:"ringkasan"`
	Konten      string   `json:"konten" validate:"required,notblank"`
	Kategori    string   `json:"kategori" validate:"required,berita_kategori"`
	Status      *string  `json:"status" validate:"omitnil,berita_status"`
	Penulis     *string  `json:"penulis"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Featured    *bool    `json:"featured"`
	Gambar      *string  `json:"gambar" validate:"omitnil,url|eq="`
	GambarAlt   *string  `json:"gambar_alt"`
	Priority    *int     `json:"priority" validate:"omitnil,min=1,max=10"`
	Lokasi      *string  `json:"lokasi"`
	Pendaftaran *string  `json:"pendaftaran"`
	Kontak      *string  `json:"kontak"`
	ViewCount   *int64   `json:"view_count" validate:"omitnil,min=0"`
}

// UpdateBeritaRequest adalah patch: field nil tidak disentuh.
// Field read-only yang ikut terkirim dari form edit diterima lalu diabaikan.
type UpdateBeritaRequest struct {
	Judul       *string   `json:"judul" validate:"omitnil,notblank"`
	Ringkasan   *string   `json:"ringkasan"`
	Konten      *string   `json:"konten" validate:"omitnil,notblank"`
	Kategori    *string   `json:"kategori" validate:"omitnil,berita_kategori"`
	Status      *string   `json:"status" validate:"omitnil,berita_status"`
	Penulis     *string   `json:"penulis"`
	Tags        *[]string `json:"tags" validate:"omitnil,dive,required"`
	Featured    *bool     `json:"featured"`
	Gambar      *string   `json:"gambar" validate:"omitnil,url|eq="`
	GambarAlt   *string   `json:"gambar_alt"`
	Priority    *int      `json:"priority" validate:"omitnil,min=1,max=10"`
	Lokasi      *string   `json:"lokasi"`
	Pendaftaran *string   `json:"pendaftaran"`
	Kontak      *string   `json:"kontak"`
	ViewCount   *int64    `json:"view_count" validate:"omitnil,min=0"`

	ID        interface{} `json:"id,omitempty"`
	Tanggal   interface{} `json:"tanggal,omitempty"`
	CreatedAt interface{} `json:"created_at,omitempty"`
	UpdatedAt interface{} `json:"updated_at,omitempty"`
}

// ============================
// Query & Response DTO
// ============================

// BeritaFilter untuk list admin. Kosong semua = listAll apa adanya.
type BeritaFilter struct {
	Q        string
	Kategori string
	Status   string
}

func (f BeritaFilter) IsZero() bool {
	return f.Q == "" && f.Kategori == "" && f.Status == ""
}

type BeritaStats struct {
	TotalBerita     int            `json:"totalBerita"`
	PublishedBerita int            `json:"publishedBerita"`
	DraftBerita     int            `json:"draftBerita"`
	Categories      map[string]int `json:"categories"`
}

// ============================
// Converter
// ============================

// Normalize hanya merapikan tags; field teks lain disimpan apa adanya.
func (r *CreateBeritaRequest) Normalize() {
	r.Tags = normalizeTags(r.Tags)
}

func (r *UpdateBeritaRequest) Normalize() {
	if r.Tags != nil {
		t := normalizeTags(*r.Tags)
		r.Tags = &t
	}
}

// ToFields menyusun body dokumen baru. Timestamp dan default diisi service.
func (r CreateBeritaRequest) ToFields() docstore.Fields {
	f := docstore.Fields{
		model.FieldJudul:    r.Judul,
		model.FieldKonten:   r.Konten,
		model.FieldKategori: r.Kategori,
		model.FieldTags:     r.Tags,
	}
	putStr(f, model.FieldRingkasan, r.Ringkasan)
	putStr(f, model.FieldStatus, r.Status)
	putStr(f, model.FieldPenulis, r.Penulis)
	putStr(f, model.FieldGambar, r.Gambar)
	putStr(f, model.FieldGambarAlt, r.GambarAlt)
	putStr(f, model.FieldLokasi, r.Lokasi)
	putStr(f, model.FieldPendaftaran, r.Pendaftaran)
	putStr(f, model.FieldKontak, r.Kontak)
	if r.Featured != nil {
		f[model.FieldFeatured] = *r.Featured
	}
	if r.Priority != nil {
		f[model.FieldPriority] = *r.Priority
	}
	if r.ViewCount != nil {
		f[model.FieldViewCount] = *r.ViewCount
	}
	return f
}

// ToFields hanya berisi field yang dikirim caller.
func (r UpdateBeritaRequest) ToFields() docstore.Fields {
	f := docstore.Fields{}
	putStr(f, model.FieldJudul, r.Judul)
	putStr(f, model.FieldRingkasan, r.Ringkasan)
	putStr(f, model.FieldKonten, r.Konten)
	putStr(f, model.FieldKategori, r.Kategori)
	putStr(f, model.FieldStatus, r.Status)
	putStr(f, model.FieldPenulis, r.Penulis)
	putStr(f, model.FieldGambar, r.Gambar)
	putStr(f, model.FieldGambarAlt, r.GambarAlt)
	putStr(f, model.FieldLokasi, r.Lokasi)
	putStr(f, model.FieldPendaftaran, r.Pendaftaran)
	putStr(f, model.FieldKontak, r.Kontak)
	if r.Tags != nil {
		f[model.FieldTags] = *r.Tags
	}
	if r.Featured != nil {
		f[model.FieldFeatured] = *r.Featured
	}
	if r.Priority != nil {
		f[model.FieldPriority] = *r.Priority
	}
	if r.ViewCount != nil {
		f[model.FieldViewCount] = *r.ViewCount
	}
	return f
}

func putStr(f docstore.Fields, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

// normalizeTags trim + buang kosong + dedupe (urutan pertama dipertahankan).
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
