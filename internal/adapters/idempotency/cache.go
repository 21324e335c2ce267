// Package idempotency keeps recent HTTP responses keyed by Idempotency-Key
// so that a retried request is answered with the original response.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
)

// MaxKeyLength bounds accepted Idempotency-Key values.
const MaxKeyLength = 64

// Key validation errors.
var (
	ErrEmptyKey   = errors.New("idempotency key is empty")
	ErrKeyTooLong = errors.New("idempotency key exceeds 64 characters")
)

// Response is a stored response. RequestHash fingerprints the request body
// that produced it so a reused key with a different payload can be refused.
type Response struct {
	Status      int
	Header      http.Header
	Body        []byte
	RequestHash string
}

// Store records responses for idempotency keys.
type Store interface {
	// Lookup returns the response stored for key, if any.
	Lookup(ctx context.Context, key string) (Response, bool)

	// Save stores resp under key unless key is already present.
	// Returns false when an earlier response was kept.
	Save(ctx context.Context, key string, resp Response) bool

	Size() int64
}

// ValidateKey checks an Idempotency-Key header value.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return ErrEmptyKey
	case len(key) > MaxKeyLength:
		return ErrKeyTooLong
	}
	return nil
}

// ScopedKey binds a client key to the method and path it was sent to, so the
// same key on two routes names two distinct entries.
func ScopedKey(method, path, key string) string {
	return method + " " + path + "\n" + key
}

// HashRequest computes a SHA256 hash of a request body.
func HashRequest(body []byte) string {
	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:])
}

// node is an entry in the insertion-ordered list.
type node struct {
	key        string
	resp       Response
	prev, next *node
}

func (n *node) reset() {
	n.key = ""
	n.resp = Response{}
	n.prev, n.next = nil, nil
}

// memoryStore is a bounded Store evicting the oldest entry first.
type memoryStore struct {
	mu       sync.Mutex
	entries  map[string]*node
	head     *node // newest
	tail     *node // oldest
	maxSize  int
	size     atomic.Int64
	nodePool sync.Pool
	onChange func(size int)
}

// NewMemoryStore creates an in-memory Store.
func NewMemoryStore(opts ...Option) Store {
	s := &memoryStore{
		maxSize: 10_000,
		nodePool: sync.Pool{
			New: func() interface{} { return &node{} },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entries = make(map[string]*node, s.maxSize)
	return s
}

func (s *memoryStore) Lookup(_ context.Context, key string) (Response, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.entries[key]
	if !ok {
		return Response{}, false
	}
	return clone(n.resp), true
}

func (s *memoryStore) Save(_ context.Context, key string, resp Response) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		return false
	}
	if len(s.entries) >= s.maxSize {
		s.evictOldest()
	}

	n := s.nodePool.Get().(*node)
	n.key = key
	n.resp = clone(resp)
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
	s.entries[key] = n
	s.notify(s.size.Add(1))
	return true
}

// evictOldest must be called with s.mu held.
func (s *memoryStore) evictOldest() {
	old := s.tail
	if old == nil {
		return
	}
	s.tail = old.prev
	if s.tail != nil {
		s.tail.next = nil
	} else {
		s.head = nil
	}
	delete(s.entries, old.key)
	old.reset()
	s.nodePool.Put(old)
	s.notify(s.size.Add(-1))
}

func (s *memoryStore) notify(size int64) {
	if s.onChange != nil {
		s.onChange(int(size))
	}
}

func (s *memoryStore) Size() int64 {
	return s.size.Load()
}

func clone(r Response) Response {
	out := Response{Status: r.Status, Header: r.Header.Clone(), RequestHash: r.RequestHash}
	if r.Body != nil {
		out.Body = append([]byte(nil), r.Body...)
	}
	return out
}
