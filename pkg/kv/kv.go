// Package kv provides a key-value store abstraction for client form state.
// The dashboard remembers the last repository, model path, and input text
// between runs; keeping that behind an interface means core logic never
// touches ambient storage, and backends (local file, in-memory) can be
// swapped without changing callers.
package kv

// Store defines a minimal key-value interface for form-state persistence.
// Keys are strings, values are byte slices.
type Store interface {
	// Get retrieves a value by key. Returns ErrNotFound if the key does
	// not exist.
	Get(key string) ([]byte, error)

	// Set stores a value under the given key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes a key. Returns nil if the key does not exist.
	Delete(key string) error
}

// GetString is a convenience wrapper that treats a missing key as "".
func GetString(s Store, key string) string {
	value, err := s.Get(key)
	if err != nil {
		return ""
	}
	return string(value)
}
