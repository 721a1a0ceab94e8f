package berita

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/dto"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/features/berita/service"
)

// SeedBeritaFromJSON membuat berita dari file JSON (array CreateBeritaRequest).
// Berita dengan judul yang sudah ada dilewati. Mengembalikan jumlah yang dibuat.
func SeedBeritaFromJSON(ctx context.Context, svc *service.BeritaService, log *zap.Logger, filePath string) (int, error) {
	log.Info("📥 Membaca file", zap.String("path", filePath))

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("gagal membaca file JSON: %w", err)
	}

	var input []dto.CreateBeritaRequest
	if err := sonic.Unmarshal(file, &input); err != nil {
		return 0, fmt.Errorf("gagal decode JSON: %w", err)
	}

	existing, err := svc.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		seen[b.Judul] = struct{}{}
	}

	created := 0
	for _, r := range input {
		if _, ok := seen[r.Judul]; ok {
			log.Info("ℹ️ Berita sudah ada, lewati", zap.String("judul", r.Judul))
			continue
		}
		id, err := svc.Create(ctx, r)
		if err != nil {
			log.Error("❌ Gagal insert berita", zap.String("judul", r.Judul), zap.Error(err))
			continue
		}
		seen[r.Judul] = struct{}{}
		created++
		log.Info("✅ Berhasil insert berita", zap.String("id", id), zap.String("judul", r.Judul))
	}
	return created, nil
}
