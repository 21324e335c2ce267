package idempotency

// Option applies a configuration option to the memory store.
type Option func(*memoryStore)

// WithMaxSize sets the number of responses kept. Values <= 0 are ignored.
func WithMaxSize(maxSize int) Option {
	return func(s *memoryStore) {
		if maxSize > 0 {
			s.maxSize = maxSize
		}
	}
}

// WithSizeObserver registers a callback invoked with the entry count after each change.
func WithSizeObserver(fn func(size int)) Option {
	return func(s *memoryStore) {
		s.onChange = fn
	}
}
