package dto

import (
	beritaDTO "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	beritaModel "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/model"
	umkmDTO "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
)

// DashboardResponse adalah ringkasan halaman depan admin.
type DashboardResponse struct {
	Berita       *beritaDTO.BeritaStats    `json:"berita"`
	UMKM         *umkmDTO.UMKMStats        `json:"umkm"`
	RecentBerita []beritaModel.BeritaModel `json:"recentBerita"`
}
