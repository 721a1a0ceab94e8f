package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/model"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
)

type UMKMListOptions struct {
	Kategori string
	Status   string
	Limit    int
	// After melanjutkan setelah docId ini.
	After string
}

func (o UMKMListOptions) values() url.Values {
	v := url.Values{}
	if o.Kategori != "" {
		v.Set("kategori", o.Kategori)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.After != "" {
		v.Set("after", o.After)
	}
	return v
}

func (c *Client) FetchUMKM(ctx context.Context, opts UMKMListOptions) ([]model.UMKMModel, error) {
	var out []model.UMKMModel
	err := c.do(ctx, http.MethodGet, "/api/umkm", opts.values(), nil, &out, "Failed to fetch UMKM")
	return out, err
}

func (c *Client) GetUMKM(ctx context.Context, slug string) (*model.UMKMModel, error) {
	var out model.UMKMModel
	if err := c.do(ctx, http.MethodGet, "/api/umkm/"+escape(slug), nil, nil, &out, "Failed to fetch UMKM"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUMKMStats(ctx context.Context) (*dto.UMKMStats, error) {
	var out dto.UMKMStats
	q := url.Values{"action": {"stats"}}
	if err := c.do(ctx, http.MethodGet, "/api/umkm", q, nil, &out, "Failed to fetch UMKM stats"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUMKM mengembalikan slug (= key penyimpanan) hasil server.
func (c *Client) CreateUMKM(ctx context.Context, req dto.CreateUMKMRequest) (string, error) {
	var out successBody
	if err := c.do(ctx, http.MethodPost, "/api/umkm", nil, req, &out, "Failed to create UMKM"); err != nil {
		return "", err
	}
	return out.Slug, nil
}

// UpdateUMKM memakai key penyimpanan apa adanya.
func (c *Client) UpdateUMKM(ctx context.Context, key string, req dto.UpdateUMKMRequest) error {
	return c.do(ctx, http.MethodPut, "/api/umkm/"+escape(key), nil, req, nil, "Failed to update UMKM")
}

func (c *Client) DeleteUMKM(ctx context.Context, key string) error {
	return c.do(ctx, http.MethodDelete, "/api/umkm/"+escape(key), nil, nil, nil, "Failed to delete UMKM")
}

// UpdateUMKMRecord me-resolve key dari record hasil list (docId > slug > id
// > slug nama) lalu Update.
func (c *Client) UpdateUMKMRecord(ctx context.Context, m model.UMKMModel, req dto.UpdateUMKMRequest) (model.ResolvedKey, error) {
	rk, err := model.ResolveKey(model.RefOf(m))
	if err != nil {
		return rk, err
	}
	return rk, c.UpdateUMKM(ctx, rk.Key, req)
}

func (c *Client) DeleteUMKMRecord(ctx context.Context, m model.UMKMModel) (model.ResolvedKey, error) {
	rk, err := model.ResolveKey(model.RefOf(m))
	if err != nil {
		return rk, err
	}
	return rk, c.DeleteUMKM(ctx, rk.Key)
}

func (c *Client) MigrateUMKMKeys(ctx context.Context, dryRun bool) (*service.MigrationReport, error) {
	var out service.MigrationReport
	q := url.Values{"dryRun": {strconv.FormatBool(dryRun)}}
	if err := c.do(ctx, http.MethodPost, "/api/umkm/migrate-keys", q, nil, &out, "Failed to migrate UMKM keys"); err != nil {
		return nil, err
	}
	return &out, nil
}
