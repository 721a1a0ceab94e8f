package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentModel is one document of one collection. Data is jsonb on Postgres
// and json text on SQLite.
type DocumentModel struct {
	Collection string            `gorm:"column:collection;primaryKey;type:varchar(64)"`
	Key        string            `gorm:"column:doc_key;primaryKey;type:varchar(255)"`
	Data       datatypes.JSONMap `gorm:"column:data"`
	CreatedAt  time.Time         `gorm:"column:created_at"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

func (m DocumentModel) toDocument() Document {
	data := make(Fields, len(m.Data))
	for k, v := range m.Data {
		data[k] = v
	}
	return Document{Key: m.Key, Data: data}
}

// GormStore keeps documents in a single relational table. Queries are
// evaluated in memory after loading the collection, which matches the
// full-scan access pattern of the admin dashboard.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

type GormOption func(*GormStore)

// WithClock replaces the clock used for ServerTimestamp (tests).
func WithClock(now func() time.Time) GormOption {
	return func(s *GormStore) { s.now = now }
}

func NewGormStore(db *gorm.DB, opts ...GormOption) (*GormStore, error) {
	s := &GormStore{db: db, now: utcNow}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.AutoMigrate(&DocumentModel{}); err != nil {
		return nil, wrap("migrate", DocumentModel{}.TableName(), "", err)
	}
	return s, nil
}

func (s *GormStore) scope(ctx context.Context, collection string) *gorm.DB {
	return s.db.WithContext(ctx).Where("collection = ?", collection)
}

func (s *GormStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	var rows []DocumentModel
	if err := s.scope(ctx, collection).Find(&rows).Error; err != nil {
		return nil, wrap("list", collection, "", err)
	}
	docs := make([]Document, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, r.toDocument())
	}
	return Apply(docs, q), nil
}

func (s *GormStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	if err := checkKey("get", collection, key); err != nil {
		return nil, err
	}
	var row DocumentModel
	err := s.scope(ctx, collection).Where("doc_key = ?", key).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrap("get", collection, key, ErrNotFound)
		}
		return nil, wrap("get", collection, key, err)
	}
	doc := row.toDocument()
	return &doc, nil
}

func (s *GormStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	key := uuid.NewString()
	now := s.now().UTC()
	row := DocumentModel{
		Collection: collection,
		Key:        key,
		Data:       datatypes.JSONMap(resolveTimestamps(data, now)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", wrap("add", collection, key, err)
	}
	return key, nil
}

func (s *GormStore) Set(ctx context.Context, collection, key string, data Fields) error {
	if err := checkKey("set", collection, key); err != nil {
		return err
	}
	now := s.now().UTC()
	row := DocumentModel{
		Collection: collection,
		Key:        key,
		Data:       datatypes.JSONMap(resolveTimestamps(data, now)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&row).Error
	return wrap("set", collection, key, err)
}

func (s *GormStore) Update(ctx context.Context, collection, key string, data Fields) error {
	if err := checkKey("update", collection, key); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("collection = ? AND doc_key = ?", collection, key)
		// row lock so concurrent merges on the same document don't lose fields
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var row DocumentModel
		if err := q.Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := s.now().UTC()
		merged := datatypes.JSONMap{}
		for k, v := range row.Data {
			merged[k] = v
		}
		for k, v := range resolveTimestamps(data, now) {
			merged[k] = v
		}

		return tx.Model(&DocumentModel{}).
			Where("collection = ? AND doc_key = ?", collection, key).
			Updates(map[string]any{"data": merged, "updated_at": now}).Error
	})
	return wrap("update", collection, key, err)
}

func (s *GormStore) Delete(ctx context.Context, collection, key string) error {
	if err := checkKey("delete", collection, key); err != nil {
		return err
	}
	err := s.scope(ctx, collection).Where("doc_key = ?", key).Delete(&DocumentModel{}).Error
	return wrap("delete", collection, key, err)
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrap("ping", "", "", err)
	}
	return wrap("ping", "", "", sqlDB.PingContext(ctx))
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return wrap("close", "", "", err)
	}
	return wrap("close", "", "", sqlDB.Close())
}
