package dto

import (
	"strings"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/model"
)

// ============================
// Create & Update Request DTO
// ============================

type CreateUMKMRequest struct {
	Nama        string            `json:"nama" validate:"required,notblank"`
	Pemilik     string            `json:"pemilik" validate:"required,notblank"`
	Deskripsi   string            `json:"deskripsi" validate:"required,notblank"`
	Slug        *string           `json:"slug"`
	Alamat      *string           `json:"alamat"`
	Telefon     *string           `json:"telefon"`
	Status      *string           `json:"status" validate:"omitnil,umkm_status"`
	Featured    *bool             `json:"featured"`
	Foto        *string           `json:"foto" validate:"omitnil,url|eq="`
	SosialMedia map[string]string `json:"sosialMedia" validate:"omitempty,dive,keys,required,endkeys"`
	Kategori    *string           `json:"kategori"`
	Produk      *string           `json:"produk"`
}

// UpdateUMKMRequest adalah patch: field nil (atau null di JSON) dilewati.
// docId, id, createdAt dan updatedAt boleh ikut terkirim dan selalu diabaikan.
type UpdateUMKMRequest struct {
	Nama        *string            `json:"nama" validate:"omitnil,notblank"`
	Pemilik     *string            `json:"pemilik" validate:"omitnil,notblank"`
	Deskripsi   *string            `json:"deskripsi" validate:"omitnil,notblank"`
	Slug        *string            `json:"slug"`
	Alamat      *string            `json:"alamat"`
	Telefon     *string            `json:"telefon"`
	Status      *string            `json:"status" validate:"omitnil,umkm_status"`
	Featured    *bool              `json:"featured"`
	Foto        *string            `json:"foto" validate:"omitnil,url|eq="`
	SosialMedia *map[string]string `json:"sosialMedia" validate:"omitnil,dive,keys,required,endkeys"`
	Kategori    *string            `json:"kategori"`
	Produk      *string            `json:"produk"`
	Views       *int64             `json:"views" validate:"omitnil,min=0"`

	DocID     interface{} `json:"docId,omitempty"`
	ID        interface{} `json:"id,omitempty"`
	CreatedAt interface{} `json:"createdAt,omitempty"`
	UpdatedAt interface{} `json:"updatedAt,omitempty"`
}

// ============================
// Query & Response DTO
// ============================

// UMKMFilter: Status/Kategori kosong = tanpa filter; Limit 0 = semua;
// After = lanjut setelah key dokumen ini.
type UMKMFilter struct {
	Status   string
	Kategori string
	Limit    int
	After    string
}

type UMKMStats struct {
	TotalUMKM    int `json:"totalUMKM"`
	ActiveUMKM   int `json:"activeUMKM"`
	InactiveUMKM int `json:"inactiveUMKM"`
	FeaturedUMKM int `json:"featuredUMKM"`
}

// ============================
// Converter
// ============================

// Normalize hanya merapikan slug; nama dan field lain disimpan apa adanya.
func (r *CreateUMKMRequest) Normalize() {
	if r.Slug != nil {
		s := strings.TrimSpace(*r.Slug)
		if s == "" {
			r.Slug = nil
		} else {
			r.Slug = &s
		}
	}
}

func (r *UpdateUMKMRequest) Normalize() {
	r.Slug = trimPtr(r.Slug)
}

// ToFields berisi field dari caller saja; slug, id, default dan timestamp
// diisi service.
func (r CreateUMKMRequest) ToFields() docstore.Fields {
	f := docstore.Fields{
		model.FieldNama:      r.Nama,
		model.FieldPemilik:   r.Pemilik,
		model.FieldDeskripsi: r.Deskripsi,
	}
	putStr(f, model.FieldAlamat, r.Alamat)
	putStr(f, model.FieldTelefon, r.Telefon)
	putStr(f, model.FieldStatus, r.Status)
	putStr(f, model.FieldFoto, r.Foto)
	putStr(f, model.FieldKategori, r.Kategori)
	putStr(f, model.FieldProduk, r.Produk)
	if r.Featured != nil {
		f[model.FieldFeatured] = *r.Featured
	}
	if r.SosialMedia != nil {
		f[model.FieldSosialMedia] = copyMap(r.SosialMedia)
	}
	return f
}

func (r UpdateUMKMRequest) ToFields() docstore.Fields {
	f := docstore.Fields{}
	putStr(f, model.FieldNama, r.Nama)
	putStr(f, model.FieldPemilik, r.Pemilik)
	putStr(f, model.FieldDeskripsi, r.Deskripsi)
	putStr(f, model.FieldSlug, r.Slug)
	putStr(f, model.FieldAlamat, r.Alamat)
	putStr(f, model.FieldTelefon, r.Telefon)
	putStr(f, model.FieldStatus, r.Status)
	putStr(f, model.FieldFoto, r.Foto)
	putStr(f, model.FieldKategori, r.Kategori)
	putStr(f, model.FieldProduk, r.Produk)
	if r.Featured != nil {
		f[model.FieldFeatured] = *r.Featured
	}
	if r.SosialMedia != nil {
		f[model.FieldSosialMedia] = copyMap(*r.SosialMedia)
	}
	if r.Views != nil {
		f[model.FieldViews] = *r.Views
	}
	return f
}

func putStr(f docstore.Fields, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func copyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
