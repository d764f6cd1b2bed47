package store

import "context"

// NullStore is a no-op store that never keeps anything.
// Useful for testing or for dry runs.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Get always reports a missing document.
func (s *NullStore) Get(ctx context.Context, name string) ([]byte, bool, error) {
	return nil, false, nil
}

// Put does nothing.
func (s *NullStore) Put(ctx context.Context, name string, data []byte) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, name string) error {
	return nil
}

// List returns no names.
func (s *NullStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
