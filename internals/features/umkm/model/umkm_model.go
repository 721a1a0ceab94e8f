package model

import (
	"time"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

const (
	FieldID          = "id"
	FieldSlug        = "slug"
	FieldNama        = "nama"
	FieldPemilik     = "pemilik"
	FieldDeskripsi   = "deskripsi"
	FieldAlamat      = "alamat"
	FieldTelefon     = "telefon"
	FieldStatus      = "status"
	FieldFeatured    = "featured"
	FieldFoto        = "foto"
	FieldSosialMedia = "sosialMedia"
	FieldKategori    = "kategori"
	FieldProduk      = "produk"
	FieldViews       = "views"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"

	// FieldDocID hanya ada di response; tidak pernah disimpan.
	FieldDocID = "docId"
)

// UMKMModel adalah satu dokumen koleksi "umkm".
// DocID = key penyimpanan; Slug = field slug; ID = id numerik lama.
type UMKMModel struct {
	DocID       string            `json:"docId"`
	ID          int64             `json:"id"`
	Slug        string            `json:"slug"`
	Nama        string            `json:"nama"`
	Pemilik     string            `json:"pemilik"`
	Deskripsi   string            `json:"deskripsi"`
	Alamat      string            `json:"alamat,omitempty"`
	Telefon     string            `json:"telefon,omitempty"`
	Status      string            `json:"status"`
	Featured    bool              `json:"featured"`
	Foto        string            `json:"foto,omitempty"`
	SosialMedia map[string]string `json:"sosialMedia,omitempty"`
	Kategori    string            `json:"kategori,omitempty"`
	Produk      string            `json:"produk,omitempty"`
	Views       int64             `json:"views"`
	CreatedAt   *time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time        `json:"updatedAt"`
}

func (m UMKMModel) IsActive() bool {
	return m.Status == constants.StatusActive
}

func FromDocument(doc docstore.Document) UMKMModel {
	d := doc.Data
	return UMKMModel{
		DocID:       doc.Key,
		ID:          helper.AsInt(d[FieldID]),
		Slug:        helper.AsString(d[FieldSlug]),
		Nama:        helper.AsString(d[FieldNama]),
		Pemilik:     helper.AsString(d[FieldPemilik]),
		Deskripsi:   helper.AsString(d[FieldDeskripsi]),
		Alamat:      helper.AsString(d[FieldAlamat]),
		Telefon:     helper.AsString(d[FieldTelefon]),
		Status:      helper.AsString(d[FieldStatus]),
		Featured:    helper.AsBool(d[FieldFeatured]),
		Foto:        helper.AsString(d[FieldFoto]),
		SosialMedia: helper.AsStringMap(d[FieldSosialMedia]),
		Kategori:    helper.AsString(d[FieldKategori]),
		Produk:      helper.AsString(d[FieldProduk]),
		Views:       helper.AsInt(d[FieldViews]),
		CreatedAt:   helper.AsTime(d[FieldCreatedAt]),
		UpdatedAt:   helper.AsTime(d[FieldUpdatedAt]),
	}
}

func FromDocuments(docs []docstore.Document) []UMKMModel {
	out := make([]UMKMModel, 0, len(docs))
	for _, d := range docs {
		out = append(out, FromDocument(d))
	}
	return out
}
