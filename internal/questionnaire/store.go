package questionnaire

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/patrickmn/go-cache"
)

// Store keeps form sessions between requests
type Store interface {
	Create(ctx context.Context) (*Form, error)
	Get(ctx context.Context, id string) (*Form, error)
	// Update applies fn to the stored form atomically; the form is saved only when fn succeeds
	Update(ctx context.Context, id string, fn func(*Form) error) (*Form, error)
	Delete(ctx context.Context, id string) error
}

var _ Store = &MemoryStore{}

// MemoryStore is a TTL bound in-memory Store. Every access extends the session lifetime.
type MemoryStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
	}
}

func (s *MemoryStore) Create(_ context.Context) (*Form, error) {
	form := NewForm()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Set(form.ID, form.Clone(), s.ttl)
	return form, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	form, err := s.load(id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(id, form, s.ttl)
	return form.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Form) error) (*Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.load(id)
	if err != nil {
		return nil, err
	}

	form := stored.Clone()
	if err := fn(form); err != nil {
		return nil, err
	}

	s.cache.Set(id, form.Clone(), s.ttl)
	return form, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.load(id); err != nil {
		return err
	}
	s.cache.Delete(id)
	return nil
}

func (s *MemoryStore) Count() int {
	return s.cache.ItemCount()
}

func (s *MemoryStore) load(id string) (*Form, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrQuestionnaireSessionNotFound, id)
	}
	form, ok := v.(*Form)
	if !ok {
		return nil, fmt.Errorf("unexpected session value type %T", v)
	}
	return form, nil
}
