package apiclient

import (
	"context"
	"net/http"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/dto"
)

func (c *Client) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, &out, "Failed to fetch dashboard"); err != nil {
		return nil, err
	}
	return &out, nil
}
