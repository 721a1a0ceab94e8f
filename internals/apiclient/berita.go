package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/model"
)

type BeritaListOptions struct {
	Q        string
	Kategori string
	Status   string
}

func (o BeritaListOptions) values() url.Values {
	v := url.Values{}
	if o.Q != "" {
		v.Set("q", o.Q)
	}
	if o.Kategori != "" {
		v.Set("kategori", o.Kategori)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	return v
}

func (c *Client) FetchBerita(ctx context.Context, opts BeritaListOptions) ([]model.BeritaModel, error) {
	var out []model.BeritaModel
	err := c.do(ctx, http.MethodGet, "/api/berita", opts.values(), nil, &out, "Failed to fetch berita")
	return out, err
}

func (c *Client) GetBerita(ctx context.Context, id string) (*model.BeritaModel, error) {
	var out model.BeritaModel
	if err := c.do(ctx, http.MethodGet, "/api/berita/"+escape(id), nil, nil, &out, "Failed to fetch berita"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBeritaStats(ctx context.Context) (*dto.BeritaStats, error) {
	var out dto.BeritaStats
	q := url.Values{"action": {"stats"}}
	if err := c.do(ctx, http.MethodGet, "/api/berita", q, nil, &out, "Failed to fetch berita stats"); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBerita mengembalikan id dokumen baru.
func (c *Client) CreateBerita(ctx context.Context, req dto.CreateBeritaRequest) (string, error) {
	var out successBody
	if err := c.do(ctx, http.MethodPost, "/api/berita", nil, req, &out, "Failed to create berita"); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) UpdateBerita(ctx context.Context, id string, req dto.UpdateBeritaRequest) error {
	return c.do(ctx, http.MethodPut, "/api/berita/"+escape(id), nil, req, nil, "Failed to update berita")
}

func (c *Client) DeleteBerita(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/berita/"+escape(id), nil, nil, nil, "Failed to delete berita")
}
