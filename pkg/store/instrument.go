package store

import (
	"context"

	"github.com/matzehuels/elementmerge/pkg/observability"
)

// instrumented reports every operation to the registered store hooks.
type instrumented struct {
	Store
	backend string
}

// Instrument wraps s so its operations emit observability store events
// labelled with backend.
func Instrument(s Store, backend string) Store {
	return &instrumented{Store: s, backend: backend}
}

func (s *instrumented) Get(ctx context.Context, name string) ([]byte, bool, error) {
	data, ok, err := s.Store.Get(ctx, name)
	if err != nil {
		observability.Store().OnError(ctx, s.backend, "get", err)
		return nil, false, err
	}
	observability.Store().OnLoad(ctx, s.backend, name, ok, len(data))
	return data, ok, nil
}

func (s *instrumented) Put(ctx context.Context, name string, data []byte) error {
	if err := s.Store.Put(ctx, name, data); err != nil {
		observability.Store().OnError(ctx, s.backend, "put", err)
		return err
	}
	observability.Store().OnSave(ctx, s.backend, name, len(data))
	return nil
}

func (s *instrumented) Delete(ctx context.Context, name string) error {
	err := s.Store.Delete(ctx, name)
	if err != nil {
		observability.Store().OnError(ctx, s.backend, "delete", err)
	}
	return err
}

func (s *instrumented) List(ctx context.Context) ([]string, error) {
	names, err := s.Store.List(ctx)
	if err != nil {
		observability.Store().OnError(ctx, s.backend, "list", err)
	}
	return names, err
}
