package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/model"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

type UMKMService struct {
	store    docstore.Store
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

type Option func(*UMKMService)

// WithNow mengganti jam yang dipakai untuk id numerik (test).
func WithNow(now func() time.Time) Option {
	return func(s *UMKMService) { s.now = now }
}

func NewUMKMService(store docstore.Store, log *zap.Logger, opts ...Option) *UMKMService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &UMKMService{
		store:    store,
		log:      log.Named("umkm"),
		validate: helper.NewValidator(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *UMKMService) fail(op, key string, err error) error {
	s.log.Error("umkm "+op+" failed", zap.String("key", key), zap.Error(err))
	return err
}

// ListAll urut nama asc dengan filter equality status/kategori, limit dan
// cursor opsional. Setiap record membawa DocID (key) dan Slug (field).
func (s *UMKMService) ListAll(ctx context.Context, f dto.UMKMFilter) ([]model.UMKMModel, error) {
	q := docstore.Query{
		Orders:     []docstore.Order{{Field: model.FieldNama}},
		Limit:      f.Limit,
		StartAfter: f.After,
	}
	if f.Status != "" {
		q.Filters = append(q.Filters, docstore.Filter{Field: model.FieldStatus, Value: f.Status})
	}
	if f.Kategori != "" {
		q.Filters = append(q.Filters, docstore.Filter{Field: model.FieldKategori, Value: f.Kategori})
	}

	docs, err := s.store.List(ctx, constants.CollectionUMKM, q)
	if err != nil {
		return nil, s.fail("list", "", err)
	}
	return model.FromDocuments(docs), nil
}

// GetBySlug membaca dokumen dengan key slug; docstore.ErrNotFound bila tidak ada.
func (s *UMKMService) GetBySlug(ctx context.Context, slug string) (*model.UMKMModel, error) {
	doc, err := s.store.Get(ctx, constants.CollectionUMKM, slug)
	if err != nil {
		if docstore.IsNotFound(err) {
			return nil, err
		}
		return nil, s.fail("get", slug, err)
	}
	m := model.FromDocument(*doc)
	return &m, nil
}

// ResolveSlug: slug dari caller bila ada (harus valid), selain itu dari nama.
func ResolveSlug(req dto.CreateUMKMRequest) (string, error) {
	if req.Slug != nil {
		if !helper.IsValidSlug(*req.Slug) {
			return "", helper.Invalid("slug", "slug")
		}
		return *req.Slug, nil
	}
	slug := helper.GenerateSlug(req.Nama)
	if slug == "" {
		return "", helper.Invalid("nama", "slug")
	}
	return slug, nil
}

// LegacyID adalah 6 digit terakhir epoch milidetik. Bisa bentrok; tidak dicek.
func LegacyID(t time.Time) int64 {
	return t.UnixMilli() % 1_000_000
}

// Create menyimpan UMKM dengan key = slug (create-or-replace: slug yang sama
// menimpa record lama) dan mengembalikan slug tersebut.
func (s *UMKMService) Create(ctx context.Context, req dto.CreateUMKMRequest) (string, error) {
	req.Normalize()
	if err := helper.ValidateStruct(s.validate, &req); err != nil {
		return "", err
	}
	slug, err := ResolveSlug(req)
	if err != nil {
		return "", err
	}

	fields := req.ToFields()
	fields[model.FieldID] = LegacyID(s.now())
	fields[model.FieldSlug] = slug
	if _, ok := fields[model.FieldStatus]; !ok {
		fields[model.FieldStatus] = constants.StatusActive
	}
	if _, ok := fields[model.FieldFeatured]; !ok {
		fields[model.FieldFeatured] = false
	}
	fields[model.FieldViews] = 0
	fields[model.FieldCreatedAt] = docstore.ServerTimestamp
	fields[model.FieldUpdatedAt] = docstore.ServerTimestamp

	if err := s.store.Set(ctx, constants.CollectionUMKM, slug, fields); err != nil {
		return "", s.fail("create", slug, err)
	}
	s.log.Info("umkm saved", zap.String("slug", slug))
	return slug, nil
}

// Update merge patch ke dokumen dengan key yang sudah di-resolve caller
// (lihat model.ResolveKey). docId tidak pernah ikut tersimpan; updatedAt
// selalu diperbarui.
func (s *UMKMService) Update(ctx context.Context, key string, req dto.UpdateUMKMRequest) error {
	req.Normalize()
	if err := helper.ValidateStruct(s.validate, &req); err != nil {
		return err
	}
	if req.Slug != nil && !helper.IsValidSlug(*req.Slug) {
		return helper.Invalid("slug", "slug")
	}

	fields := req.ToFields()
	delete(fields, model.FieldDocID)
	fields[model.FieldUpdatedAt] = docstore.ServerTimestamp

	if err := s.store.Update(ctx, constants.CollectionUMKM, key, fields); err != nil {
		if docstore.IsNotFound(err) {
			return err
		}
		return s.fail("update", key, err)
	}
	return nil
}

// UpdateByRef resolve key dari ref lalu Update.
func (s *UMKMService) UpdateByRef(ctx context.Context, ref model.KeyRef, req dto.UpdateUMKMRequest) (model.ResolvedKey, error) {
	rk, err := model.ResolveKey(ref)
	if err != nil {
		return rk, helper.Invalid("key", "required")
	}
	return rk, s.Update(ctx, rk.Key, req)
}

// Delete idempoten.
func (s *UMKMService) Delete(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, constants.CollectionUMKM, key); err != nil {
		return s.fail("delete", key, err)
	}
	return nil
}

func (s *UMKMService) DeleteByRef(ctx context.Context, ref model.KeyRef) (model.ResolvedKey, error) {
	rk, err := model.ResolveKey(ref)
	if err != nil {
		return rk, helper.Invalid("key", "required")
	}
	return rk, s.Delete(ctx, rk.Key)
}

// Stats dari ListAll tanpa filter. inactive = total - active sehingga
// record dengan status di luar active/inactive terhitung inactive.
func (s *UMKMService) Stats(ctx context.Context) (*dto.UMKMStats, error) {
	items, err := s.ListAll(ctx, dto.UMKMFilter{})
	if err != nil {
		return nil, err
	}
	return ComputeStats(items), nil
}

func ComputeStats(items []model.UMKMModel) *dto.UMKMStats {
	st := &dto.UMKMStats{TotalUMKM: len(items)}
	for _, m := range items {
		if m.IsActive() {
			st.ActiveUMKM++
		}
		if m.Featured {
			st.FeaturedUMKM++
		}
	}
	st.InactiveUMKM = st.TotalUMKM - st.ActiveUMKM
	return st
}

// =============================
// Public feed
// =============================

func (s *UMKMService) ListActive(ctx context.Context, f dto.UMKMFilter) ([]model.UMKMModel, error) {
	f.Status = constants.StatusActive
	return s.ListAll(ctx, f)
}

// GetActiveBySlug: UMKM inactive dianggap tidak ada.
func (s *UMKMService) GetActiveBySlug(ctx context.Context, slug string) (*model.UMKMModel, error) {
	m, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !m.IsActive() {
		return nil, &docstore.StoreError{Op: "get", Collection: constants.CollectionUMKM, Key: slug, Err: docstore.ErrNotFound}
	}
	return m, nil
}
