package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	beritaService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/dashboard/dto"
	umkmService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
)

type DashboardService struct {
	Berita *beritaService.BeritaService
	UMKM   *umkmService.UMKMService
}

func NewDashboardService(b *beritaService.BeritaService, u *umkmService.UMKMService) *DashboardService {
	return &DashboardService{Berita: b, UMKM: u}
}

// Summary menjalankan tiga bacaan sekaligus; satu gagal membatalkan semuanya.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	out := &dto.DashboardResponse{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		out.Berita, err = s.Berita.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.UMKM, err = s.UMKM.Stats(gctx)
		return err
	})
	g.Go(func() error {
		all, err := s.Berita.ListAll(gctx)
		if err != nil {
			return err
		}
		if len(all) > constants.RecentBeritaCount {
			all = all[:constants.RecentBeritaCount]
		}
		out.RecentBerita = all
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
