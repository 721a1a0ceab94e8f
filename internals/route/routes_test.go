package routes_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/configs"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore/docstoretest"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/middlewares"
	routes "github.com/x1nx3r/iniwebkelurahan-admin/internals/route"
)

type testApp struct {
	t   *testing.T
	app *fiber.App
}

func newApp(t *testing.T, uploader *cdn.Uploader) *testApp {
	t.Helper()
	app := fiber.New()
	middlewares.SetupMiddlewares(app, &configs.Config{
		AppEnv:           "production",
		CORSAllowOrigins: "*",
		RequestTimeout:   5 * time.Second,
	}, zap.NewNop())
	routes.SetupRoutes(app, routes.Deps{
		Store:    docstoretest.New(t),
		Uploader: uploader,
		Env:      "test",
	})
	return &testApp{t: t, app: app}
}

func (a *testApp) do(req *http.Request) (int, map[string]any) {
	a.t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(a.t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func (a *testApp) json(method, path, body string) (int, map[string]any) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return a.do(req)
}

func (a *testApp) list(path string) []map[string]any {
	a.t.Helper()
	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	require.Equal(a.t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHealth(t *testing.T) {
	a := newApp(t, nil)

	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	code, body := a.json(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "test", body["environment"])
}

func TestBeritaAdminFlow(t *testing.T) {
	a := newApp(t, nil)

	code, body := a.json(http.MethodPost, "/api/berita",
		`{"judul":"Kerja Bakti","konten":"Minggu pagi","kategori":"kegiatan","tags":["rw01","rw01"]}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["success"])
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	code, body = a.json(http.MethodGet, "/api/berita/"+id, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Kerja Bakti", body["judul"])
	assert.Equal(t, "published", body["status"])
	assert.Equal(t, []any{"rw01"}, body["tags"])

	code, body = a.json(http.MethodPut, "/api/berita/"+id, `{"judul":"Kerja Bakti RW 01","id":"abc","created_at":"2020-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, code, body)
	_, body = a.json(http.MethodGet, "/api/berita/"+id, "")
	assert.Equal(t, "Kerja Bakti RW 01", body["judul"])
	assert.Equal(t, id, body["id"])

	code, body = a.json(http.MethodPut, "/api/berita/"+id, `{"judull":"typo"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])

	code, body = a.json(http.MethodPost, "/api/berita", `{"judul":"X","konten":"Y","kategori":"gosip"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, map[string]any{"kategori": "berita_kategori"}, body["fields"])

	code, body = a.json(http.MethodGet, "/api/berita?action=stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["totalBerita"])
	assert.Equal(t, map[string]any{"kegiatan": float64(1)}, body["categories"])

	assert.Len(t, a.list("/api/berita?q=bakti"), 1)
	assert.Empty(t, a.list("/api/berita?kategori=layanan"))

	code, _ = a.json(http.MethodDelete, "/api/berita/"+id, "")
	assert.Equal(t, http.StatusOK, code)

	code, body = a.json(http.MethodGet, "/api/berita/"+id, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Berita not found", body["error"])

	code, _ = a.json(http.MethodPut, "/api/berita/"+id, `{"judul":"hilang"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBeritaPublicHidesDrafts(t *testing.T) {
	a := newApp(t, nil)

	_, pub := a.json(http.MethodPost, "/api/berita", `{"judul":"Terbit","konten":"isi","kategori":"berita"}`)
	_, draft := a.json(http.MethodPost, "/api/berita", `{"judul":"Konsep","konten":"isi","kategori":"berita","status":"draft"}`)

	items := a.list("/api/public/berita")
	require.Len(t, items, 1)
	assert.Equal(t, "Terbit", items[0]["judul"])

	code, _ := a.json(http.MethodGet, "/api/public/berita/"+draft["id"].(string), "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = a.json(http.MethodGet, "/api/public/berita/"+pub["id"].(string), "")
	assert.Equal(t, http.StatusOK, code)

	assert.Len(t, a.list("/api/public/berita/latest"), 1)
	assert.Empty(t, a.list("/api/public/berita/featured"))

	// the public tree has no write routes
	code, _ = a.json(http.MethodDelete, "/api/public/berita/"+pub["id"].(string), "")
	assert.NotEqual(t, http.StatusOK, code)
	code, _ = a.json(http.MethodGet, "/api/berita/"+pub["id"].(string), "")
	assert.Equal(t, http.StatusOK, code)
}

func TestUMKMFlow(t *testing.T) {
	a := newApp(t, nil)

	code, body := a.json(http.MethodPost, "/api/umkm",
		`{"nama":"Warung Bu Sari","pemilik":"Sari","deskripsi":"Nasi pecel","kategori":"kuliner"}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "warung-bu-sari", body["slug"])

	code, body = a.json(http.MethodGet, "/api/umkm/warung-bu-sari", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "warung-bu-sari", body["docId"])
	assert.Equal(t, "active", body["status"])

	code, _ = a.json(http.MethodPut, "/api/umkm/warung-bu-sari", `{"docId":"warung-bu-sari","status":"inactive"}`)
	require.Equal(t, http.StatusOK, code)

	code, body = a.json(http.MethodGet, "/api/public/umkm/warung-bu-sari", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "UMKM not found", body["error"])
	assert.Empty(t, a.list("/api/public/umkm"))

	code, body = a.json(http.MethodGet, "/api/umkm?action=stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, body["totalUMKM"])
	assert.EqualValues(t, 1, body["inactiveUMKM"])

	assert.Len(t, a.list("/api/umkm?kategori=kuliner&status=all"), 1)
	code, _ = a.json(http.MethodGet, "/api/umkm?limit=nol", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = a.json(http.MethodPost, "/api/umkm/migrate-keys?dryRun=true", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["dryRun"])

	code, _ = a.json(http.MethodDelete, "/api/umkm/warung-bu-sari", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = a.json(http.MethodGet, "/api/umkm/warung-bu-sari", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDashboard(t *testing.T) {
	a := newApp(t, nil)
	for _, j := range []string{"Satu", "Dua"} {
		code, _ := a.json(http.MethodPost, "/api/berita", `{"judul":"`+j+`","konten":"isi","kategori":"layanan"}`)
		require.Equal(t, http.StatusOK, code)
	}
	a.json(http.MethodPost, "/api/umkm", `{"nama":"Toko","pemilik":"A","deskripsi":"B","featured":true}`)

	code, body := a.json(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["berita"].(map[string]any)["totalBerita"])
	assert.EqualValues(t, 1, body["umkm"].(map[string]any)["featuredUMKM"])

	recent := body["recentBerita"].([]any)
	require.Len(t, recent, 2)
	assert.Equal(t, "Dua", recent[0].(map[string]any)["judul"])
}

func multipartImage(t *testing.T, name, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if data != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		fw, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	cdnSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer rahasia" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"url":"https://cdn.example/k.png","filename":"k.png"}`)
	}))
	t.Cleanup(cdnSrv.Close)

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 4, 4))))

	a := newApp(t, cdn.New(cdn.Config{UploadURL: cdnSrv.URL, Token: "rahasia"}, nil))

	code, body := a.do(multipartImage(t, "kantor.png", "image/png", img.Bytes()))
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "https://cdn.example/k.png", body["url"])
	assert.Equal(t, "k.png", body["filename"])

	code, body = a.do(multipartImage(t, "", "", nil))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, cdn.MsgNoFile, body["error"])

	code, body = a.do(multipartImage(t, "catatan.png", "image/png", []byte("bukan gambar")))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, cdn.MsgInvalidType, body["error"])

	unauth := newApp(t, cdn.New(cdn.Config{UploadURL: cdnSrv.URL, Token: "salah"}, nil))
	code, body = unauth.do(multipartImage(t, "kantor.png", "image/png", img.Bytes()))
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, cdn.MsgUnauthorized, body["error"])
}

func TestUploadRouteNeedsUploader(t *testing.T) {
	a := newApp(t, nil)
	code, _ := a.do(multipartImage(t, "a.png", "image/png", []byte{1}))
	assert.Equal(t, http.StatusNotFound, code)
}

// Body persis seperti form admin: field opsional dikirim sebagai string kosong.
func TestFormPayloadsWithEmptyImage(t *testing.T) {
	a := newApp(t, nil)

	code, body := a.json(http.MethodPost, "/api/berita", `{
		"judul":"Pengumuman Libur","ringkasan":"","konten":"Kantor tutup","kategori":"pengumuman",
		"status":"draft","penulis":"","tags":[],"featured":false,"gambar":"","gambar_alt":"",
		"priority":5,"lokasi":"","pendaftaran":"","kontak":""}`)
	require.Equal(t, http.StatusOK, code, body)
	id := body["id"].(string)

	code, body = a.json(http.MethodPut, "/api/berita/"+id,
		`{"gambar":"https://cdn.example/libur.png","gambar_alt":"Libur - Kelurahan Kemayoran"}`)
	require.Equal(t, http.StatusOK, code, body)
	_, body = a.json(http.MethodGet, "/api/berita/"+id, "")
	assert.Equal(t, "https://cdn.example/libur.png", body["gambar"])

	// hapus gambar dari form edit
	code, body = a.json(http.MethodPut, "/api/berita/"+id, `{"gambar":"","gambar_alt":""}`)
	require.Equal(t, http.StatusOK, code, body)
	_, body = a.json(http.MethodGet, "/api/berita/"+id, "")
	assert.Empty(t, body["gambar"])
	assert.Empty(t, body["gambar_alt"])

	code, body = a.json(http.MethodPut, "/api/berita/"+id, `{"gambar":"bukan url"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["fields"], "gambar")

	code, body = a.json(http.MethodPost, "/api/umkm", `{
		"nama":"Toko Sembako Makmur","pemilik":"Makmur","deskripsi":"Sembako","alamat":"","telefon":"",
		"status":"active","featured":false,"foto":"","sosialMedia":{},"kategori":"","produk":"",
		"slug":"toko-sembako-makmur"}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "toko-sembako-makmur", body["slug"])

	code, body = a.json(http.MethodPut, "/api/umkm/toko-sembako-makmur", `{"foto":"https://cdn.example/toko.png"}`)
	require.Equal(t, http.StatusOK, code, body)
	code, body = a.json(http.MethodPut, "/api/umkm/toko-sembako-makmur", `{"foto":""}`)
	require.Equal(t, http.StatusOK, code, body)
	_, body = a.json(http.MethodGet, "/api/umkm/toko-sembako-makmur", "")
	assert.Empty(t, body["foto"])
}
