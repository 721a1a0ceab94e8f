package seeds

import (
	"context"

	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	beritaService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
	umkmService "github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
	berita "github.com/x1nx3r/iniwebkelurahan-admin/internals/seeds/berita"
	umkm "github.com/x1nx3r/iniwebkelurahan-admin/internals/seeds/umkm"
)

const (
	DefaultBeritaFile = "internals/seeds/berita/data_berita.json"
	DefaultUMKMFile   = "internals/seeds/umkm/data_umkm.json"
)

// Files: path kosong = koleksi itu tidak di-seed.
type Files struct {
	Berita string
	UMKM   string
}

type Result struct {
	Berita int
	UMKM   int
}

func RunAllSeeds(ctx context.Context, store docstore.Store, log *zap.Logger, files Files) (Result, error) {
	var res Result
	var err error
	log = log.Named("seed")

	//* Berita
	if files.Berita != "" {
		svc := beritaService.NewBeritaService(store, log)
		if res.Berita, err = berita.SeedBeritaFromJSON(ctx, svc, log, files.Berita); err != nil {
			return res, err
		}
	}

	//* UMKM
	if files.UMKM != "" {
		svc := umkmService.NewUMKMService(store, log)
		if res.UMKM, err = umkm.SeedUMKMFromJSON(ctx, svc, log, files.UMKM); err != nil {
			return res, err
		}
	}
	return res, nil
}
