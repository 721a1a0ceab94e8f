package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	beritaDTO "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	umkmDTO "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/model"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/helpers/cdn"
)

// OrphanedUploadError: gambar sudah ada di CDN tetapi gagal dipasang ke
// record. URL dikembalikan agar caller bisa mencoba attach ulang.
type OrphanedUploadError struct {
	URL string
	Err error
}

func (e *OrphanedUploadError) Error() string {
	return fmt.Sprintf("image uploaded to %s but not attached: %v", e.URL, e.Err)
}

func (e *OrphanedUploadError) Unwrap() error { return e.Err }

// validator lokal: cek tipe & ukuran sebelum file dikirim.
var localCheck = cdn.New(cdn.Config{}, nil)

// UploadImage mengirim file ke POST /api/upload. Tipe dan ukuran dicek
// dulu di sisi client dengan aturan yang sama dengan server.
func (c *Client) UploadImage(ctx context.Context, f cdn.File) (*cdn.Result, error) {
	if err := localCheck.Validate(f); err != nil {
		return nil, err
	}
	contentType := f.Type
	if contentType == "" {
		contentType = cdn.SniffType(f.Data)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`,
		strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(f.Name)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out cdn.Result
	if err := c.send(req, &out, cdn.MsgUploadFailed); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAndAttach: upload lalu attach(url). Kegagalan attach menghasilkan
// *OrphanedUploadError; objek di CDN tidak dihapus.
func (c *Client) UploadAndAttach(ctx context.Context, f cdn.File, attach func(ctx context.Context, url string) error) (*cdn.Result, error) {
	res, err := c.UploadImage(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := attach(ctx, res.URL); err != nil {
		return res, &OrphanedUploadError{URL: res.URL, Err: err}
	}
	return res, nil
}

// SetBeritaImage memasang gambar + alt text standar ke berita.
func (c *Client) SetBeritaImage(ctx context.Context, id, judul string, f cdn.File) (*cdn.Result, error) {
	return c.UploadAndAttach(ctx, f, func(ctx context.Context, url string) error {
		alt := cdn.ImageAlt(judul)
		return c.UpdateBerita(ctx, id, beritaDTO.UpdateBeritaRequest{Gambar: &url, GambarAlt: &alt})
	})
}

func (c *Client) SetUMKMFoto(ctx context.Context, m model.UMKMModel, f cdn.File) (*cdn.Result, error) {
	return c.UploadAndAttach(ctx, f, func(ctx context.Context, url string) error {
		_, err := c.UpdateUMKMRecord(ctx, m, umkmDTO.UpdateUMKMRequest{Foto: &url})
		return err
	})
}
