// Package store persists model documents by name.
//
// Backends:
//   - [FileStore]: one JSON file per model in a directory (CLI default)
//   - [RedisStore]: one key per model in Redis
//   - [MongoStore]: one document per model in a MongoDB collection
//   - [NullStore]: stores nothing, for tests and dry runs
//
// Every backend stores the bytes produced by [io.Marshal]; [Load] and
// [Save] convert between documents and models. Names are validated with
// [errs.ValidateModelName] before reaching a backend.
//
// [io.Marshal]: github.com/matzehuels/elementmerge/pkg/io.Marshal
package store

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/matzehuels/elementmerge/pkg/errors"
	pkgio "github.com/matzehuels/elementmerge/pkg/io"
	"github.com/matzehuels/elementmerge/pkg/model"
)

// ErrNotFound is returned by [Load] when no document has the given name.
var ErrNotFound = errors.New("model not found")

// Store holds model documents keyed by name.
type Store interface {
	// Get returns the document stored under name. ok is false if there is
	// none; this is not an error.
	Get(ctx context.Context, name string) (data []byte, ok bool, err error)

	// Put stores data under name, replacing any previous document.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes the document. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}

// Load reads and decodes the model stored under name.
// A missing document yields an error wrapping [ErrNotFound] with code
// [errs.ErrCodeModelNotFound].
func Load(ctx context.Context, s Store, name string) (*model.Model, error) {
	if err := errs.ValidateModelName(name); err != nil {
		return nil, err
	}
	data, ok, err := s.Get(ctx, name)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStore, err, "load model %s", name)
	}
	if !ok {
		return nil, errs.Wrap(errs.ErrCodeModelNotFound, ErrNotFound, "model %s", name)
	}
	m, err := pkgio.Unmarshal(data)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidModel, err, "decode model %s", name)
	}
	if m.Name == "" {
		m.Name = name
	}
	return m, nil
}

// Save encodes m and stores it under name.
func Save(ctx context.Context, s Store, name string, m *model.Model) error {
	if err := errs.ValidateModelName(name); err != nil {
		return err
	}
	data, err := pkgio.Marshal(m)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode model %s", name)
	}
	if err := s.Put(ctx, name, data); err != nil {
		return errs.Wrap(errs.ErrCodeStore, err, "save model %s", name)
	}
	return nil
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNull  = "null"
)

// Config selects and configures a backend.
type Config struct {
	Backend string

	// File backend
	Dir string

	// Redis backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Mongo backend
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open connects to the configured backend and wraps it with observability
// hooks. Connections to redis and mongo are retried with backoff.
func Open(ctx context.Context, cfg Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case "", BackendFile:
		s, err = NewFileStore(cfg.Dir)
	case BackendRedis:
		err = RetryWithBackoff(ctx, func() error {
			var rerr error
			s, rerr = NewRedisStore(ctx, RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
			return rerr
		})
	case BackendMongo:
		err = RetryWithBackoff(ctx, func() error {
			var merr error
			s, merr = NewMongoStore(ctx, MongoOptions{URI: cfg.MongoURI, Database: cfg.MongoDatabase, Collection: cfg.MongoCollection})
			return merr
		})
	case BackendNull:
		s = NewNullStore()
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStore, err, "open %s store", cfg.Backend)
	}
	backend := cfg.Backend
	if backend == "" {
		backend = BackendFile
	}
	return Instrument(s, backend), nil
}

func validKey(name string) error {
	if err := errs.ValidateModelName(name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}
	return nil
}
