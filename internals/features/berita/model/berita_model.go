package model

import (
	"time"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

// Nama field dokumen berita di store.
const (
	FieldJudul       = "judul"
	FieldRingkasan   = "ringkasan"
	FieldKonten      = "konten"
	FieldKategori    = "kategori"
	FieldStatus      = "status"
	FieldPenulis     = "penulis"
	FieldTags        = "tags"
	FieldFeatured    = "featured"
	FieldGambar      = "gambar"
	FieldGambarAlt   = "gambar_alt"
	FieldPriority    = "priority"
	FieldLokasi      = "lokasi"
	FieldPendaftaran = "pendaftaran"
	FieldKontak      = "kontak"
	FieldViewCount   = "view_count"
	FieldTanggal     = "tanggal"
	FieldCreatedAt   = "created_at"
	FieldUpdatedAt   = "updated_at"
)

// BeritaModel adalah satu dokumen koleksi "berita". ID = key dokumen dari store.
type BeritaModel struct {
	ID          string     `json:"id"`
	Judul       string     `json:"judul"`
	Ringkasan   string     `json:"ringkasan,omitempty"`
	Konten      string     `json:"konten"`
	Kategori    string     `json:"kategori"`
	Status      string     `json:"status"`
	Penulis     string     `json:"penulis,omitempty"`
	Tags        []string   `json:"tags"`
	Featured    bool       `json:"featured"`
	Gambar      string     `json:"gambar,omitempty"`
	GambarAlt   string     `json:"gambar_alt,omitempty"`
	Priority    int        `json:"priority"`
	Lokasi      string     `json:"lokasi,omitempty"`
	Pendaftaran string     `json:"pendaftaran,omitempty"`
	Kontak      string     `json:"kontak,omitempty"`
	ViewCount   int64      `json:"view_count"`
	Tanggal     *time.Time `json:"tanggal"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (m BeritaModel) IsPublished() bool {
	return m.Status == constants.StatusPublished
}

func FromDocument(doc docstore.Document) BeritaModel {
	d := doc.Data
	tags := helper.AsStringSlice(d[FieldTags])
	if tags == nil {
		tags = []string{}
	}
	return BeritaModel{
		ID:          doc.Key,
		Judul:       helper.AsString(d[FieldJudul]),
		Ringkasan:   helper.AsString(d[FieldRingkasan]),
		Konten:      helper.AsString(d[FieldKonten]),
		Kategori:    helper.AsString(d[FieldKategori]),
		Status:      helper.AsString(d[FieldStatus]),
		Penulis:     helper.AsString(d[FieldPenulis]),
		Tags:        tags,
		Featured:    helper.AsBool(d[FieldFeatured]),
		Gambar:      helper.AsString(d[FieldGambar]),
		GambarAlt:   helper.AsString(d[FieldGambarAlt]),
		Priority:    int(helper.AsInt(d[FieldPriority])),
		Lokasi:      helper.AsString(d[FieldLokasi]),
		Pendaftaran: helper.AsString(d[FieldPendaftaran]),
		Kontak:      helper.AsString(d[FieldKontak]),
		ViewCount:   helper.AsInt(d[FieldViewCount]),
		Tanggal:     helper.AsTime(d[FieldTanggal]),
		CreatedAt:   helper.AsTime(d[FieldCreatedAt]),
		UpdatedAt:   helper.AsTime(d[FieldUpdatedAt]),
	}
}

func FromDocuments(docs []docstore.Document) []BeritaModel {
	out := make([]BeritaModel, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDocument(d))
	}
	return out
}
