package docstore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/bytedance/sonic"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreStore struct {
	client *firestore.Client
}

type serviceAccount struct {
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// DecodeServiceAccount decodes a base64 service-account JSON and returns the
// raw JSON plus the project id it declares.
func DecodeServiceAccount(b64 string) ([]byte, string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("service account is not valid base64: %w", err)
	}
	var sa serviceAccount
	if err := sonic.Unmarshal(raw, &sa); err != nil {
		return nil, "", fmt.Errorf("service account is not valid JSON: %w", err)
	}
	if sa.ClientEmail == "" || sa.PrivateKey == "" {
		return nil, "", errors.New("service account is missing client_email or private_key")
	}
	return raw, sa.ProjectID, nil
}

// ConnectFirestore builds a client from a base64 service account. projectID
// overrides the one embedded in the credentials when set.
func ConnectFirestore(ctx context.Context, serviceAccountB64, projectID string) (*FirestoreStore, error) {
	raw, saProject, err := DecodeServiceAccount(serviceAccountB64)
	if err != nil {
		return nil, wrap("connect", "", "", err)
	}
	if projectID == "" {
		projectID = saProject
	}
	if projectID == "" {
		return nil, wrap("connect", "", "", errors.New("firestore project id is not configured"))
	}

	client, err := firestore.NewClient(ctx, projectID, option.WithCredentialsJSON(raw))
	if err != nil {
		return nil, wrap("connect", "", "", err)
	}
	return NewFirestoreStore(client), nil
}

// NewFirestoreStore wraps an existing client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) List(ctx context.Context, collection string, q Query) ([]Document, error) {
	col := s.client.Collection(collection)
	query := col.Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	for _, o := range q.Orders {
		dir := firestore.Asc
		if o.Desc {
			dir = firestore.Desc
		}
		query = query.OrderBy(o.Field, dir)
	}
	if ValidKey(q.StartAfter) {
		snap, err := col.Doc(q.StartAfter).Get(ctx)
		switch {
		case err == nil && snap.Exists():
			query = query.StartAfter(snap)
		case err != nil && status.Code(err) != codes.NotFound:
			return nil, wrap("list", collection, q.StartAfter, err)
		}
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, wrap("list", collection, "", err)
	}
	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{Key: snap.Ref.ID, Data: Fields(snap.Data())})
	}
	return docs, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, key string) (*Document, error) {
	if err := checkKey("get", collection, key); err != nil {
		return nil, err
	}
	snap, err := s.client.Collection(collection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, wrap("get", collection, key, ErrNotFound)
		}
		return nil, wrap("get", collection, key, err)
	}
	return &Document{Key: snap.Ref.ID, Data: Fields(snap.Data())}, nil
}

func (s *FirestoreStore) Add(ctx context.Context, collection string, data Fields) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, toFirestore(data))
	if err != nil {
		return "", wrap("add", collection, "", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, key string, data Fields) error {
	if err := checkKey("set", collection, key); err != nil {
		return err
	}
	_, err := s.client.Collection(collection).Doc(key).Set(ctx, toFirestore(data))
	return wrap("set", collection, key, err)
}

func (s *FirestoreStore) Update(ctx context.Context, collection, key string, data Fields) error {
	if err := checkKey("update", collection, key); err != nil {
		return err
	}
	fields := toFirestore(data)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		// FieldPath keeps keys containing dots literal
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: fields[k]})
	}
	if len(updates) == 0 {
		// Firestore rejects an empty update; existence still has to be reported
		_, err := s.Get(ctx, collection, key)
		return err
	}

	_, err := s.client.Collection(collection).Doc(key).Update(ctx, updates)
	if err != nil && status.Code(err) == codes.NotFound {
		return wrap("update", collection, key, ErrNotFound)
	}
	return wrap("update", collection, key, err)
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, key string) error {
	if err := checkKey("delete", collection, key); err != nil {
		return err
	}
	_, err := s.client.Collection(collection).Doc(key).Delete(ctx)
	return wrap("delete", collection, key, err)
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return wrap("ping", "", "", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return wrap("close", "", "", s.client.Close())
}

func toFirestore(data Fields) map[string]any {
	return map[string]any(resolveTimestamps(data, firestore.ServerTimestamp))
}
