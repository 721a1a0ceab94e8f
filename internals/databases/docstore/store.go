// Package docstore is the document-store client used by the data access layer.
//
// A Store exposes collection/document semantics (ordered listing with equality
// filters, keyed reads, auto-keyed inserts, create-or-replace, merge updates and
// idempotent deletes). Three backends implement it: Firestore, MongoDB and a
// GORM-backed "documents" table (Postgres jsonb or SQLite json).
//
// Exactly one Store is constructed per process and injected into the services;
// public routes receive the ReadOnly variant of the same store.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Fields is the body of a document.
type Fields map[string]any

// Document is a stored document together with its storage key.
type Document struct {
	Key  string
	Data Fields
}

// Filter is an equality constraint on a top-level field.
type Filter struct {
	Field string
	Value any
}

// Order sorts results by a top-level field.
type Order struct {
	Field string
	Desc  bool
}

// Query describes a collection listing. Zero value = whole collection, store order.
type Query struct {
	Filters []Filter
	Orders  []Order
	// Limit <= 0 means no cap.
	Limit int
	// StartAfter continues after the document with this key. An unknown key is ignored.
	StartAfter string
}

type Store interface {
	List(ctx context.Context, collection string, q Query) ([]Document, error)
	// Get returns ErrNotFound (wrapped) when the key does not exist.
	Get(ctx context.Context, collection, key string) (*Document, error)
	// Add stores data under a store-generated key and returns that key.
	Add(ctx context.Context, collection string, data Fields) (string, error)
	// Set creates or fully replaces the document stored under key.
	Set(ctx context.Context, collection, key string, data Fields) error
	// Update merges top-level fields into an existing document.
	// It returns ErrNotFound (wrapped) when the key does not exist.
	Update(ctx context.Context, collection, key string, data Fields) error
	// Delete removes the document. Deleting a missing key is not an error.
	Delete(ctx context.Context, collection, key string) error
	Close() error
}

// Pinger is implemented by stores that can check connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	ErrNotFound = errors.New("docstore: document not found")
	ErrReadOnly = errors.New("docstore: write rejected by read-only client")
	// ErrInvalidKey is returned for keys no backend can address.
	ErrInvalidKey = errors.New("docstore: invalid document key")
)

// StoreError wraps every failure coming out of a backend.
type StoreError struct {
	Op         string
	Collection string
	Key        string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("docstore %s %s/%s: %v", e.Op, e.Collection, e.Key, e.Err)
	}
	return fmt.Sprintf("docstore %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func wrap(op, collection, key string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Collection: collection, Key: key, Err: err}
}

// ValidKey reports whether key can address a document in every backend.
func ValidKey(key string) bool {
	return key != "" && key != "." && key != ".." &&
		len(key) <= 1500 && !strings.Contains(key, "/")
}

func checkKey(op, collection, key string) error {
	if !ValidKey(key) {
		return wrap(op, collection, key, ErrInvalidKey)
	}
	return nil
}

// IsNotFound reports whether err means the document does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

type serverTimestamp struct{}

func (serverTimestamp) String() string { return "<server timestamp>" }

// ServerTimestamp is replaced by the backend with its own write time.
var ServerTimestamp any = serverTimestamp{}

func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

// resolveTimestamps returns a copy of data with every ServerTimestamp replaced.
func resolveTimestamps(data Fields, with any) Fields {
	out := make(Fields, len(data))
	for k, v := range data {
		if IsServerTimestamp(v) {
			out[k] = with
			continue
		}
		out[k] = v
	}
	return out
}

// ================= read-only client =================

type readOnly struct {
	Store
}

// ReadOnly returns a client over s that serves reads and rejects every write
// with ErrReadOnly. Closing it does not close s.
func ReadOnly(s Store) Store {
	if ro, ok := s.(readOnly); ok {
		return ro
	}
	return readOnly{Store: s}
}

func (r readOnly) Add(_ context.Context, collection string, _ Fields) (string, error) {
	return "", wrap("add", collection, "", ErrReadOnly)
}

func (r readOnly) Set(_ context.Context, collection, key string, _ Fields) error {
	return wrap("set", collection, key, ErrReadOnly)
}

func (r readOnly) Update(_ context.Context, collection, key string, _ Fields) error {
	return wrap("update", collection, key, ErrReadOnly)
}

func (r readOnly) Delete(_ context.Context, collection, key string) error {
	return wrap("delete", collection, key, ErrReadOnly)
}

func (r readOnly) Close() error { return nil }

// utcNow is the default clock of the backends that stamp writes themselves.
func utcNow() time.Time { return time.Now().UTC() }
