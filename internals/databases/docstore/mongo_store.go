package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore maps collections 1:1 onto MongoDB collections. The document key
// lives in _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// ConnectMongo dials uri, pings the primary and binds the store to database.
func ConnectMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, wrap("connect", database, "", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, wrap("connect", database, "", err)
	}
	return &MongoStore{client: client, db: client.Database(database), now: utcNow}, nil
}

// EnsureIndex creates an ascending index on field when missing.
func (s *MongoStore) EnsureIndex(ctx context.Context, collection, field string) error {
	_, err := s.db.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(fmt.Sprintf("idx_%s_%s", collection, field)),
	})
	return wrap("index", collection, "", err)
}

func (s *MongoStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	filter := bson.D{}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}

	sort := bson.D{}
	for _, o := range q.Orders {
		dir := 1
		if o.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: o.Field, Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: 1})

	opts := options.Find().SetSort(sort)
	// with a cursor the limit has to be applied after skipping to it
	if q.Limit > 0 && q.StartAfter == "" {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, wrap("list", collection, "", err)
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, wrap("list", collection, "", err)
		}
		docs = append(docs, fromBSON(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, wrap("list", collection, "", err)
	}

	if q.StartAfter != "" {
		docs = Page(docs, q.StartAfter, q.Limit)
	}
	return docs, nil
}

func (s *MongoStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	if err := checkKey("get", collection, key); err != nil {
		return nil, err
	}
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, wrap("get", collection, key, ErrNotFound)
		}
		return nil, wrap("get", collection, key, err)
	}
	doc := fromBSON(raw)
	return &doc, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	key := uuid.NewString()
	body := s.toBSON(data)
	body["_id"] = key
	if _, err := s.db.Collection(collection).InsertOne(ctx, body); err != nil {
		return "", wrap("add", collection, key, err)
	}
	return key, nil
}

func (s *MongoStore) Set(ctx context.Context, collection, key string, data Fields) error {
	if err := checkKey("set", collection, key); err != nil {
		return err
	}
	body := s.toBSON(data)
	body["_id"] = key
	_, err := s.db.Collection(collection).ReplaceOne(ctx,
		bson.M{"_id": key}, body, options.Replace().SetUpsert(true))
	return wrap("set", collection, key, err)
}

func (s *MongoStore) Update(ctx context.Context, collection, key string, data Fields) error {
	if err := checkKey("update", collection, key); err != nil {
		return err
	}
	set := s.toBSON(data)
	delete(set, "_id")
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"_id": key}, bson.M{"$set": set})
	if err != nil {
		return wrap("update", collection, key, err)
	}
	if res.MatchedCount == 0 {
		return wrap("update", collection, key, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, key string) error {
	if err := checkKey("delete", collection, key); err != nil {
		return err
	}
	_, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": key})
	return wrap("delete", collection, key, err)
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return wrap("ping", s.db.Name(), "", s.client.Ping(ctx, nil))
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return wrap("close", s.db.Name(), "", s.client.Disconnect(ctx))
}

func (s *MongoStore) toBSON(data Fields) bson.M {
	out := bson.M{}
	for k, v := range resolveTimestamps(data, s.now().UTC()) {
		out[k] = v
	}
	return out
}

func fromBSON(raw bson.M) Document {
	var key string
	switch id := raw["_id"].(type) {
	case string:
		key = id
	case primitive.ObjectID:
		key = id.Hex()
	default:
		key = fmt.Sprint(id)
	}

	data := Fields{}
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		data[k] = normalizeBSON(v)
	}
	return Document{Key: key, Data: data}
}

// normalizeBSON turns driver types into the plain Go values the services expect.
func normalizeBSON(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return int64(t)
	case primitive.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeBSON(e)
		}
		return out
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeBSON(e)
		}
		return out
	case primitive.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeBSON(e.Value)
		}
		return out
	}
	return v
}
