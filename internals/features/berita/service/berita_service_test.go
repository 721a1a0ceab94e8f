package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore/docstoretest"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/model"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	helper "github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }

func newService(t *testing.T) (*service.BeritaService, *docstore.GormStore) {
	store := docstoretest.New(t)
	return service.NewBeritaService(store, nil), store
}

func create(t *testing.T, svc *service.BeritaService, req dto.CreateBeritaRequest) string {
	t.Helper()
	id, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return id
}

func judulOf(items []model.BeritaModel) []string {
	out := make([]string, 0, len(items))
	for _, b := range items {
		out = append(out, b.Judul)
	}
	return out
}

func TestCreate_Defaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	id := create(t, svc, dto.CreateBeritaRequest{
		Judul:    "Pengumuman Libur",
		Konten:   "Kantor tutup.",
		Kategori: "pengumuman",
	})

	b, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, "Pengumuman Libur", b.Judul)
	assert.Equal(t, "Kantor tutup.", b.Konten)
	assert.Equal(t, "pengumuman", b.Kategori)
	assert.Equal(t, constants.StatusPublished, b.Status)
	assert.Equal(t, 0, b.Priority)
	assert.False(t, b.Featured)
	assert.Equal(t, int64(0), b.ViewCount)
	assert.Equal(t, []string{}, b.Tags)

	require.NotNil(t, b.Tanggal)
	require.NotNil(t, b.CreatedAt)
	require.NotNil(t, b.UpdatedAt)
	assert.True(t, b.CreatedAt.Equal(*b.UpdatedAt))
}

func TestCreate_KeepsCallerFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	id := create(t, svc, dto.CreateBeritaRequest{
		Judul:       "  Kerja Bakti  ",
		Konten:      "Bersih saluran\n",
		Kategori:    "kegiatan",
		Status:      strPtr("draft"),
		Penulis:     strPtr("Admin"),
		Tags:        []string{"rw05", " rw05 ", "lingkungan", ""},
		Featured:    boolPtr(true),
		Priority:    intPtr(7),
		Lokasi:      strPtr("Balai RW"),
		Pendaftaran: strPtr("Gratis"),
		Gambar:      strPtr("https://cdn.example/a.jpg"),
	})

	b, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "  Kerja Bakti  ", b.Judul)
	assert.Equal(t, "Bersih saluran\n", b.Konten)
	assert.Equal(t, "kegiatan", b.Kategori)
	assert.Equal(t, "draft", b.Status)
	assert.Equal(t, "Admin", b.Penulis)
	assert.Equal(t, []string{"rw05", "lingkungan"}, b.Tags)
	assert.True(t, b.Featured)
	assert.Equal(t, 7, b.Priority)
	assert.Equal(t, "Balai RW", b.Lokasi)
	assert.Equal(t, "Gratis", b.Pendaftaran)
	assert.Equal(t, "https://cdn.example/a.jpg", b.Gambar)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newService(t)
	base := dto.CreateBeritaRequest{Judul: "J", Konten: "K", Kategori: "berita"}

	tests := []struct {
		name  string
		edit  func(r *dto.CreateBeritaRequest)
		field string
	}{
		{"missing judul", func(r *dto.CreateBeritaRequest) { r.Judul = "   " }, "judul"},
		{"missing konten", func(r *dto.CreateBeritaRequest) { r.Konten = "" }, "konten"},
		{"unknown kategori", func(r *dto.CreateBeritaRequest) { r.Kategori = "gosip" }, "kategori"},
		{"kategori is case sensitive", func(r *dto.CreateBeritaRequest) { r.Kategori = "Kegiatan" }, "kategori"},
		{"unknown status", func(r *dto.CreateBeritaRequest) { r.Status = strPtr("archived") }, "status"},
		{"priority out of range", func(r *dto.CreateBeritaRequest) { r.Priority = intPtr(11) }, "priority"},
		{"gambar not a url", func(r *dto.CreateBeritaRequest) { r.Gambar = strPtr("foto.jpg") }, "gambar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.edit(&req)
			_, err := svc.Create(context.Background(), req)

			var vf *helper.ValidationFailure
			require.ErrorAs(t, err, &vf)
			assert.Contains(t, vf.Fields, tt.field)
		})
	}
}

func TestUpdate_RefreshesUpdatedAt(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	id := create(t, svc, dto.CreateBeritaRequest{Judul: "A", Konten: "B", Kategori: "berita", Penulis: strPtr("Admin")})

	before, err := svc.GetByID(ctx, id)
	require.NoError(t, err)

	// no field changes at all
	require.NoError(t, svc.Update(ctx, id, dto.UpdateBeritaRequest{}))
	mid, err := svc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, mid.UpdatedAt.After(*before.UpdatedAt))

	require.NoError(t, svc.Update(ctx, id, dto.UpdateBeritaRequest{
		Judul:     strPtr("A2"),
		ID:        "something-else",
		CreatedAt: "2000-01-01T00:00:00Z",
	}))
	after, err := svc.GetByID(ctx, id)
	require.NoError(t, err)

	assert.True(t, after.UpdatedAt.After(*mid.UpdatedAt))
	assert.Equal(t, "A2", after.Judul)
	assert.Equal(t, "Admin", after.Penulis, "untouched fields survive")
	assert.Equal(t, id, after.ID)
	assert.True(t, after.CreatedAt.Equal(*before.CreatedAt), "created_at is immutable")
}

func TestUpdate_Missing(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Update(context.Background(), "ghost", dto.UpdateBeritaRequest{Judul: strPtr("x")})
	assert.True(t, docstore.IsNotFound(err))
}

func TestDelete_ThenNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	id := create(t, svc, dto.CreateBeritaRequest{Judul: "A", Konten: "B", Kategori: "berita"})

	require.NoError(t, svc.Delete(ctx, id))
	_, err := svc.GetByID(ctx, id)
	assert.True(t, docstore.IsNotFound(err))

	assert.NoError(t, svc.Delete(ctx, id), "delete is idempotent")
}

func TestListAll_NewestFirst(t *testing.T) {
	svc, _ := newService(t)
	for _, j := range []string{"satu", "dua", "tiga"} {
		create(t, svc, dto.CreateBeritaRequest{Judul: j, Konten: "k", Kategori: "berita"})
	}

	items, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"tiga", "dua", "satu"}, judulOf(items)); diff != "" {
		t.Errorf("ListAll order (-want +got):\n%s", diff)
	}
}

func TestListFiltered(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	create(t, svc, dto.CreateBeritaRequest{Judul: "Posyandu Balita", Konten: "Imunisasi", Kategori: "kegiatan"})
	create(t, svc, dto.CreateBeritaRequest{Judul: "Jadwal Pelayanan", Konten: "Layanan KTP", Kategori: "layanan", Status: strPtr("draft")})
	create(t, svc, dto.CreateBeritaRequest{Judul: "Lomba", Konten: "Agustusan", Kategori: "kegiatan", Penulis: strPtr("Pak RT")})

	got, err := svc.ListFiltered(ctx, dto.BeritaFilter{Q: "LAYANAN"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jadwal Pelayanan"}, judulOf(got))

	got, err = svc.ListFiltered(ctx, dto.BeritaFilter{Q: "pak rt"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lomba"}, judulOf(got))

	got, err = svc.ListFiltered(ctx, dto.BeritaFilter{Kategori: "kegiatan"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lomba", "Posyandu Balita"}, judulOf(got))

	got, err = svc.ListFiltered(ctx, dto.BeritaFilter{Status: "draft"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jadwal Pelayanan"}, judulOf(got))

	got, err = svc.ListFiltered(ctx, dto.BeritaFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &dto.BeritaStats{Categories: map[string]int{}}, st)

	create(t, svc, dto.CreateBeritaRequest{Judul: "a", Konten: "k", Kategori: "berita"})
	create(t, svc, dto.CreateBeritaRequest{Judul: "b", Konten: "k", Kategori: "berita", Status: strPtr("draft")})
	create(t, svc, dto.CreateBeritaRequest{Judul: "c", Konten: "k", Kategori: "layanan"})
	// legacy documents: no kategori, unknown status
	_, err = store.Add(ctx, constants.CollectionBerita, docstore.Fields{"judul": "lama", "status": "archived"})
	require.NoError(t, err)

	st, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, st.TotalBerita)
	assert.Equal(t, 2, st.PublishedBerita)
	assert.Equal(t, 2, st.DraftBerita)
	assert.Equal(t, st.TotalBerita, st.PublishedBerita+st.DraftBerita)
	assert.Equal(t, map[string]int{"berita": 2, "layanan": 1, "uncategorized": 1}, st.Categories)
}

func TestPublicFeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	create(t, svc, dto.CreateBeritaRequest{Judul: "low old", Konten: "k", Kategori: "berita", Priority: intPtr(2)})
	create(t, svc, dto.CreateBeritaRequest{Judul: "high", Konten: "k", Kategori: "pengumuman", Priority: intPtr(9), Featured: boolPtr(true)})
	create(t, svc, dto.CreateBeritaRequest{Judul: "draft", Konten: "k", Kategori: "berita", Priority: intPtr(10), Status: strPtr("draft")})
	draftID := create(t, svc, dto.CreateBeritaRequest{Judul: "draft2", Konten: "k", Kategori: "berita", Status: strPtr("draft")})
	create(t, svc, dto.CreateBeritaRequest{Judul: "low new", Konten: "k", Kategori: "berita", Priority: intPtr(2), Featured: boolPtr(true)})

	got, err := svc.ListPublished(ctx, "", 0, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "low new", "low old"}, judulOf(got))

	got, err = svc.ListPublished(ctx, "all", 0, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = svc.ListPublished(ctx, "berita", 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"low new"}, judulOf(got))

	got, err = svc.ListPublished(ctx, "berita", 0, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"low old"}, judulOf(got))

	got, err = svc.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"low new", "high"}, judulOf(got))

	got, err = svc.Latest(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.GetPublished(ctx, draftID)
	assert.True(t, docstore.IsNotFound(err), "drafts are hidden from the public feed")
}

func TestFeatured_FallsBackToLatest(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	svc := service.NewBeritaService(store, nil)

	latest := []docstore.Document{{Key: "x", Data: docstore.Fields{"judul": "Terbaru", "status": "published"}}}
	store.On("List", ctx, constants.CollectionBerita, mock.MatchedBy(func(q docstore.Query) bool {
		return len(q.Filters) == 2
	})).Return(nil, errors.New("index missing")).Once()
	store.On("List", ctx, constants.CollectionBerita, mock.MatchedBy(func(q docstore.Query) bool {
		return len(q.Filters) == 1 && q.Limit == 3
	})).Return(latest, nil).Once()

	got, err := svc.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Terbaru"}, judulOf(got))
	store.AssertExpectations(t)
}

func TestStoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("unavailable")
	store := new(MockStore)
	svc := service.NewBeritaService(store, nil)

	store.On("List", ctx, constants.CollectionBerita, mock.Anything).Return(nil, boom)
	store.On("Get", ctx, constants.CollectionBerita, "id1").Return(nil, boom)
	store.On("Add", ctx, constants.CollectionBerita, mock.Anything).Return("", boom)
	store.On("Update", ctx, constants.CollectionBerita, "id1", mock.Anything).Return(boom)
	store.On("Delete", ctx, constants.CollectionBerita, "id1").Return(boom)

	_, err := svc.ListAll(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Stats(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svc.GetByID(ctx, "id1")
	assert.ErrorIs(t, err, boom)
	_, err = svc.Create(ctx, dto.CreateBeritaRequest{Judul: "a", Konten: "b", Kategori: "berita"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Update(ctx, "id1", dto.UpdateBeritaRequest{}), boom)
	assert.ErrorIs(t, svc.Delete(ctx, "id1"), boom)
}

func TestCreate_SendsServerTimestamps(t *testing.T) {
	ctx := context.Background()
	store := new(MockStore)
	svc := service.NewBeritaService(store, nil)

	store.On("Add", ctx, constants.CollectionBerita, mock.MatchedBy(func(f docstore.Fields) bool {
		return docstore.IsServerTimestamp(f[model.FieldTanggal]) &&
			docstore.IsServerTimestamp(f[model.FieldCreatedAt]) &&
			docstore.IsServerTimestamp(f[model.FieldUpdatedAt])
	})).Return("new-id", nil)

	id, err := svc.Create(ctx, dto.CreateBeritaRequest{Judul: "a", Konten: "b", Kategori: "layanan"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", id)
	store.AssertExpectations(t)
}
