package constants

// Collections
const (
	CollectionBerita = "berita"
	CollectionUMKM   = "umkm"
)

// Kategori berita
const (
	KategoriBerita     = "berita"
	KategoriPengumuman = "pengumuman"
	KategoriKegiatan   = "kegiatan"
	KategoriLayanan    = "layanan"
)

var BeritaKategori = []string{
	KategoriBerita,
	KategoriPengumuman,
	KategoriKegiatan,
	KategoriLayanan,
}

// Status berita
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Status UMKM
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

const (
	PublicBeritaLimit   = 50
	LatestBeritaCount   = 6
	FeaturedBeritaCount = 3
	RecentBeritaCount   = 5
)
