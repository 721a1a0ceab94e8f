package umkm

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/umkm/service"
)

// SeedUMKMFromJSON membuat UMKM dari file JSON (array CreateUMKMRequest).
// Slug yang sudah terpakai dilewati agar seed tidak menimpa data.
func SeedUMKMFromJSON(ctx context.Context, svc *service.UMKMService, log *zap.Logger, filePath string) (int, error) {
	log.Info("📥 Membaca file", zap.String("path", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("gagal membaca file JSON: %w", err)
	}

	var input []dto.CreateUMKMRequest
	if err := sonic.Unmarshal(file, &input); err != nil {
		return 0, fmt.Errorf("gagal decode JSON: %w", err)
	}

	created := 0
	for _, r := range input {
		r.Normalize()
		slug, err := service.ResolveSlug(r)
		if err != nil {
			log.Error("❌ Slug tidak valid", zap.String("nama", r.Nama), zap.Error(err))
			continue
		}
		if _, err := svc.GetBySlug(ctx, slug); err == nil {
			log.Info("ℹ️ UMKM sudah ada, lewati", zap.String("slug", slug))
			continue
		} else if !docstore.IsNotFound(err) {
			return created, err
		}

		if _, err := svc.Create(ctx, r); err != nil {
			log.Error("❌ Gagal insert UMKM", zap.String("slug", slug), zap.Error(err))
			continue
		}
		created++
		log.Info("✅ Berhasil insert UMKM", zap.String("slug", slug))
	}
	return created, nil
}
