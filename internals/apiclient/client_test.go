package apiclient_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/apiclient"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore/docstoretest"
	beritaDTO "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	umkmDTO "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/model"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
	routes "github.com/x1nx3r/iniwebkelurahan-admin/internals/route"
)

func strPtr(s string) *string { return &s }

// newServer menjalankan API lengkap di atas store sqlite in-memory.
func newServer(t *testing.T, uploader *cdn.Uploader) *apiclient.Client {
	t.Helper()
	app := fiber.New()
	routes.SetupRoutes(app, routes.Deps{
		Store:    docstoretest.New(t),
		Uploader: uploader,
		Env:      "test",
	})
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL + "/")
}

func TestBeritaCRUD(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, nil)

	id, err := c.CreateBerita(ctx, beritaDTO.CreateBeritaRequest{
		Judul:    "Posyandu Balita",
		Konten:   "Setiap Selasa",
		Kategori: "layanan",
		Tags:     []string{"kesehatan"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	b, err := c.GetBerita(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Posyandu Balita", b.Judul)
	assert.Equal(t, []string{"kesehatan"}, b.Tags)

	require.NoError(t, c.UpdateBerita(ctx, id, beritaDTO.UpdateBeritaRequest{Status: strPtr("draft")}))

	items, err := c.FetchBerita(ctx, apiclient.BeritaListOptions{Status: "draft"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)

	st, err := c.GetBeritaStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.DraftBerita)

	require.NoError(t, c.DeleteBerita(ctx, id))
	_, err = c.GetBerita(ctx, id)
	require.Error(t, err)
	assert.True(t, apiclient.IsNotFound(err))

	var ae *apiclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Failed to fetch berita", ae.Message)
	assert.Equal(t, "Berita not found", ae.Detail)
}

func TestCreateBerita_ValidationError(t *testing.T) {
	c := newServer(t, nil)
	_, err := c.CreateBerita(context.Background(), beritaDTO.CreateBeritaRequest{Judul: "Tanpa isi"})

	var ae *apiclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Equal(t, "Failed to create berita", ae.Error())
}

func TestUMKMRecordHelpers(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, nil)

	slug, err := c.CreateUMKM(ctx, umkmDTO.CreateUMKMRequest{Nama: "Jahit Pak Budi", Pemilik: "Budi", Deskripsi: "Permak"})
	require.NoError(t, err)
	assert.Equal(t, "jahit-pak-budi", slug)

	list, err := c.FetchUMKM(ctx, apiclient.UMKMListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	rk, err := c.UpdateUMKMRecord(ctx, list[0], umkmDTO.UpdateUMKMRequest{Produk: strPtr("Jahit baju")})
	require.NoError(t, err)
	assert.Equal(t, model.ResolvedKey{Key: "jahit-pak-budi", Source: model.KeyFromDocID}, rk)

	m, err := c.GetUMKM(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, "Jahit baju", m.Produk)

	st, err := c.GetUMKMStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &umkmDTO.UMKMStats{TotalUMKM: 1, ActiveUMKM: 1}, st)

	report, err := c.MigrateUMKMKeys(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(service.ActionKept))

	rk, err = c.DeleteUMKMRecord(ctx, model.UMKMModel{Nama: "Jahit Pak Budi"})
	require.NoError(t, err)
	assert.Equal(t, model.KeyFromNama, rk.Source)
	_, err = c.GetUMKM(ctx, slug)
	assert.True(t, apiclient.IsNotFound(err))

	_, err = c.UpdateUMKMRecord(ctx, model.UMKMModel{}, umkmDTO.UpdateUMKMRequest{})
	assert.ErrorIs(t, err, model.ErrUnresolvableKey)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, nil)
	_, err := c.CreateBerita(ctx, beritaDTO.CreateBeritaRequest{Judul: "A", Konten: "B", Kategori: "berita"})
	require.NoError(t, err)

	d, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Berita.TotalBerita)
	assert.Equal(t, 0, d.UMKM.TotalUMKM)
	assert.Len(t, d.RecentBerita, 1)
}

func pngFile(t *testing.T) cdn.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 3))))
	return cdn.File{Name: "foto.png", Type: "image/png", Data: buf.Bytes()}
}

func fakeCDN(t *testing.T) *cdn.Uploader {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"url":"https://cdn.example/foto.png","filename":"foto.png"}`)
	}))
	t.Cleanup(srv.Close)
	return cdn.New(cdn.Config{UploadURL: srv.URL, Token: "t"}, nil)
}

func TestSetBeritaImage(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, fakeCDN(t))

	id, err := c.CreateBerita(ctx, beritaDTO.CreateBeritaRequest{Judul: "Lomba 17an", Konten: "Panjat pinang", Kategori: "kegiatan"})
	require.NoError(t, err)

	res, err := c.SetBeritaImage(ctx, id, "Lomba 17an", pngFile(t))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/foto.png", res.URL)

	b, err := c.GetBerita(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.URL, b.Gambar)
	assert.Equal(t, cdn.ImageAlt("Lomba 17an"), b.GambarAlt)
}

func TestUploadAndAttach_Orphaned(t *testing.T) {
	ctx := context.Background()
	c := newServer(t, fakeCDN(t))

	_, err := c.SetUMKMFoto(ctx, model.UMKMModel{DocID: "tidak-ada"}, pngFile(t))
	var orphan *apiclient.OrphanedUploadError
	require.ErrorAs(t, err, &orphan)
	assert.Equal(t, "https://cdn.example/foto.png", orphan.URL)
	assert.True(t, apiclient.IsNotFound(err))

	boom := errors.New("attach failed")
	res, err := c.UploadAndAttach(ctx, pngFile(t), func(context.Context, string) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.NotNil(t, res)
}

func TestUploadImage_RejectedLocally(t *testing.T) {
	c := apiclient.New("http://127.0.0.1:1")
	_, err := c.UploadImage(context.Background(), cdn.File{Name: "a.gif", Type: "image/gif", Data: []byte("GIF89a")})
	ue, ok := cdn.AsUploadError(err)
	require.True(t, ok)
	assert.Equal(t, cdn.KindInvalidType, ue.Kind)
}

func TestUploadImage_NoUploaderMounted(t *testing.T) {
	c := newServer(t, nil)
	_, err := c.UploadImage(context.Background(), pngFile(t))

	var ae *apiclient.APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusNotFound, ae.Status)
	assert.Equal(t, cdn.MsgUploadFailed, ae.Message)
}
