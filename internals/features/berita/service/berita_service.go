package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/model"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

// DefaultPriority dipakai saat create tanpa priority.
const DefaultPriority = 0

// uncategorized menampung dokumen lama tanpa kategori di stats.
const uncategorized = "uncategorized"

type BeritaService struct {
	store    docstore.Store
	log      *zap.Logger
	validate *validator.Validate
}

func NewBeritaService(store docstore.Store, log *zap.Logger) *BeritaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BeritaService{
		store:    store,
		log:      log.Named("berita"),
		validate: helper.NewValidator(),
	}
}

func (s *BeritaService) fail(op, key string, err error) error {
	s.log.Error("berita "+op+" failed", zap.String("key", key), zap.Error(err))
	return err
}

// ListAll mengembalikan semua berita, created_at terbaru dulu.
func (s *BeritaService) ListAll(ctx context.Context) ([]model.BeritaModel, error) {
	docs, err := s.store.List(ctx, constants.CollectionBerita, docstore.Query{
		Orders: []docstore.Order{{Field: model.FieldCreatedAt, Desc: true}},
	})
	if err != nil {
		return nil, s.fail("list", "", err)
	}
	return model.FromDocuments(docs), nil
}

// ListFiltered = ListAll lalu filter di memori: q (judul/konten/penulis,
// case-insensitive), kategori dan status.
func (s *BeritaService) ListFiltered(ctx context.Context, f dto.BeritaFilter) ([]model.BeritaModel, error) {
	all, err := s.ListAll(ctx)
	if err != nil || f.IsZero() {
		return all, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Q))
	out := make([]model.BeritaModel, 0, len(all))
	for _, b := range all {
		if f.Kategori != "" && b.Kategori != f.Kategori {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(b.Judul), q) &&
			!strings.Contains(strings.ToLower(b.Konten), q) &&
			!strings.Contains(strings.ToLower(b.Penulis), q) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// GetByID mengembalikan docstore.ErrNotFound (terbungkus) bila tidak ada.
func (s *BeritaService) GetByID(ctx context.Context, id string) (*model.BeritaModel, error) {
	doc, err := s.store.Get(ctx, constants.CollectionBerita, id)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, err
		}
		return nil, s.fail("get", id, err)
	}
	m := model.FromDocument(*doc)
	return &m, nil
}

// Create menyimpan berita baru dengan key dari store dan mengembalikan id-nya.
// tanggal, created_at dan updated_at diisi waktu server; status default
// "published", priority default DefaultPriority.
func (s *BeritaService) Create(ctx context.Context, req dto.CreateBeritaRequest) (string, error) {
	req.Normalize()
	if err := helper.ValidateStruct(s.validate, &req); err != nil {
		return "", err
	}

	fields := req.ToFields()
	if _, ok := fields[model.FieldStatus]; !ok {
		fields[model.FieldStatus] = constants.StatusPublished
	}
	if _, ok := fields[model.FieldPriority]; !ok {
		fields[model.FieldPriority] = DefaultPriority
	}
	if _, ok := fields[model.FieldFeatured]; !ok {
		fields[model.FieldFeatured] = false
	}
	if _, ok := fields[model.FieldViewCount]; !ok {
		fields[model.FieldViewCount] = 0
	}
	fields[model.FieldTanggal] = docstore.ServerTimestamp
	fields[model.FieldCreatedAt] = docstore.ServerTimestamp
	fields[model.FieldUpdatedAt] = docstore.ServerTimestamp

	id, err := s.store.Add(ctx, constants.CollectionBerita, fields)
	if err != nil {
		return "", s.fail("create", "", err)
	}
	s.log.Info("berita created", zap.String("id", id), zap.String("kategori", req.Kategori))
	return id, nil
}

// Update merge field yang dikirim; updated_at selalu diperbarui.
func (s *BeritaService) Update(ctx context.Context, id string, req dto.UpdateBeritaRequest) error {
	req.Normalize()
	if err := helper.ValidateStruct(s.validate, &req); err != nil {
		return err
	}

	fields := req.ToFields()
	fields[model.FieldUpdatedAt] = docstore.ServerTimestamp

	if err := s.store.Update(ctx, constants.CollectionBerita, id, fields); err != nil {
		if docstore.IsNotFound(err) {
			return err
		}
		return s.fail("update", id, err)
	}
	return nil
}

// Delete idempoten: id yang tidak ada bukan error.
func (s *BeritaService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, constants.CollectionBerita, id); err != nil {
		return s.fail("delete", id, err)
	}
	return nil
}

// Stats scan penuh koleksi. Hasilnya best-effort: tulisan yang terjadi
// selama scan bisa ikut terhitung atau tidak.
func (s *BeritaService) Stats(ctx context.Context) (*dto.BeritaStats, error) {
	docs, err := s.store.List(ctx, constants.CollectionBerita, docstore.Query{})
	if err != nil {
		return nil, s.fail("stats", "", err)
	}
	return ComputeStats(model.FromDocuments(docs)), nil
}

// ComputeStats: total = published + draft (draft = semua yang bukan published).
func ComputeStats(items []model.BeritaModel) *dto.BeritaStats {
	st := &dto.BeritaStats{Categories: map[string]int{}}
	for _, b := range items {
		st.TotalBerita++
		if b.IsPublished() {
			st.PublishedBerita++
		} else {
			st.DraftBerita++
		}
		k := b.Kategori
		if k == "" {
			k = uncategorized
		}
		st.Categories[k]++
	}
	return st
}

// =============================
// Public feed
// =============================

// ListPublished: status published, filter kategori ("" / "all" = semua),
// urut priority desc lalu tanggal desc, lanjut setelah key `after` bila ada.
func (s *BeritaService) ListPublished(ctx context.Context, kategori string, limit int, after string) ([]model.BeritaModel, error) {
	if limit <= 0 {
		limit = constants.PublicBeritaLimit
	}
	q := docstore.Query{
		Filters: []docstore.Filter{{Field: model.FieldStatus, Value: constants.StatusPublished}},
		Orders: []docstore.Order{
			{Field: model.FieldPriority, Desc: true},
			{Field: model.FieldTanggal, Desc: true},
		},
		Limit:      limit,
		StartAfter: after,
	}
	if kategori != "" && !strings.EqualFold(kategori, "all") {
		q.Filters = append(q.Filters, docstore.Filter{Field: model.FieldKategori, Value: kategori})
	}

	docs, err := s.store.List(ctx, constants.CollectionBerita, q)
	if err != nil {
		return nil, s.fail("list published", "", err)
	}
	return model.FromDocuments(docs), nil
}

func (s *BeritaService) Latest(ctx context.Context, count int) ([]model.BeritaModel, error) {
	if count <= 0 {
		count = constants.LatestBeritaCount
	}
	return s.ListPublished(ctx, "", count, "")
}

// Featured: published + featured, tanggal terbaru dulu. Bila query gagal
// (mis. index belum ada) jatuh ke Latest.
func (s *BeritaService) Featured(ctx context.Context, count int) ([]model.BeritaModel, error) {
	if count <= 0 {
		count = constants.FeaturedBeritaCount
	}
	docs, err := s.store.List(ctx, constants.CollectionBerita, docstore.Query{
		Filters: []docstore.Filter{
			{Field: model.FieldStatus, Value: constants.StatusPublished},
			{Field: model.FieldFeatured, Value: true},
		},
		Orders: []docstore.Order{{Field: model.FieldTanggal, Desc: true}},
		Limit:  count,
	})
	if err != nil {
		s.log.Warn("featured query failed, falling back to latest", zap.Error(err))
		return s.Latest(ctx, count)
	}
	return model.FromDocuments(docs), nil
}

// GetPublished seperti GetByID tapi draft dianggap tidak ada.
func (s *BeritaService) GetPublished(ctx context.Context, id string) (*model.BeritaModel, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsPublished() {
		return nil, &docstore.StoreError{Op: "get", Collection: constants.CollectionBerita, Key: id, Err: docstore.ErrNotFound}
	}
	return b, nil
}
