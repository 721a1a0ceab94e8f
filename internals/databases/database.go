package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/x1nx3r/iniwebkelurahan-admin/internals/configs"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/constants"
	"github.com/x1nx3r/iniwebkelurahan-admin/internals/databases/docstore"
)

// OpenStore constructs the single document store of the process from cfg.
func OpenStore(ctx context.Context, cfg *configs.Config, log *zap.Logger) (docstore.Store, error) {
	log = log.Named("store").With(zap.String("driver", cfg.StoreDriver))

	switch cfg.StoreDriver {
	case configs.DriverFirestore:
		s, err := docstore.ConnectFirestore(ctx, cfg.FirebaseServiceAccountB64, cfg.FirebaseProjectID)
		if err != nil {
			return nil, err
		}
		log.Info("firestore connected")
		return s, nil

	case configs.DriverMongo:
		s, err := docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		for collection, field := range map[string]string{
			constants.CollectionBerita: "created_at",
			constants.CollectionUMKM:   "nama",
		} {
			if err := s.EnsureIndex(ctx, collection, field); err != nil {
				log.Warn("index not created", zap.String("collection", collection), zap.Error(err))
			}
		}
		log.Info("mongodb connected", zap.String("database", cfg.MongoDatabase))
		return s, nil

	case configs.DriverPostgres:
		db, err := ConnectPostgres(cfg, log)
		if err != nil {
			return nil, err
		}
		TunePool(db, log)
		s, err := docstore.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		log.Info("postgres connected", zap.String("host", cfg.DBHost))
		return s, nil

	case configs.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{Logger: configs.NewGormLogger(log)})
		if err != nil {
			return nil, fmt.Errorf("gagal membuka sqlite %s: %w", cfg.SQLitePath, err)
		}
		s, err := docstore.NewGormStore(db)
		if err != nil {
			return nil, err
		}
		log.Info("sqlite opened", zap.String("path", cfg.SQLitePath))
		return s, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER tidak dikenal: %q", cfg.StoreDriver)
}

func ConnectPostgres(cfg *configs.Config, log *zap.Logger) (*gorm.DB, error) {
	// statement_timeout keeps slow queries under the HTTP request timeout
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kelurahan-admin&options=-c statement_timeout=3000",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{Logger: configs.NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUp pings the store in the background so the first request does not pay
// for connection setup.
func WarmUp(store docstore.Store, log *zap.Logger) {
	p, ok := store.(docstore.Pinger)
	if !ok {
		return
	}
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			log.Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}
