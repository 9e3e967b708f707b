// internal/store/memory.go
package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gudangkita/inventory-backend/internal/models"
)

type productDoc struct {
	p       models.Product
	version uint64
}

// Memory is an in-process Store used for local development and tests. It
// mirrors the production transaction semantics with optimistic versioned
// commits: UpdateProduct snapshots the document, applies fn outside the
// lock, and retries transparently when another writer committed in
// between.
type Memory struct {
	mu         sync.Mutex
	products   map[uuid.UUID]*productDoc
	history    []models.HistoryRecord
	categories []models.Category
	lastTS     time.Time
	bus        *bus
}

func NewMemory() *Memory {
	return &Memory{
		products: make(map[uuid.UUID]*productDoc),
		bus:      newBus(),
	}
}

// serverNow assigns timestamps the way the remote store would: strictly
// monotonic per write. Callers must hold mu.
func (s *Memory) serverNow() time.Time {
	now := time.Now()
	if !now.After(s.lastTS) {
		now = s.lastTS.Add(time.Microsecond)
	}
	s.lastTS = now
	return now
}

func (s *Memory) Products(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	out := make([]models.Product, 0, len(s.products))
	for _, doc := range s.products {
		out = append(out, doc.p)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Memory) Product(ctx context.Context, id uuid.UUID) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.products[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return doc.p, nil
}

func (s *Memory) CreateProduct(ctx context.Context, p *models.Product) error {
	s.mu.Lock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := s.serverNow()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.ID] = &productDoc{p: *p}
	s.mu.Unlock()

	s.bus.publish(CollectionProducts)
	return nil
}

func (s *Memory) UpdateProduct(ctx context.Context, id uuid.UUID, fn func(p *models.Product) error) (models.Product, error) {
	for {
		s.mu.Lock()
		doc, ok := s.products[id]
		if !ok {
			s.mu.Unlock()
			return models.Product{}, ErrNotFound
		}
		snapshot := doc.p
		version := doc.version
		s.mu.Unlock()

		// fn sees the authoritative snapshot, not whatever stale copy the
		// caller looked up beforehand.
		if err := fn(&snapshot); err != nil {
			return models.Product{}, err
		}

		s.mu.Lock()
		doc, ok = s.products[id]
		if !ok {
			s.mu.Unlock()
			return models.Product{}, ErrNotFound
		}
		if doc.version != version {
			// Lost the race; re-read and retry, like the remote store does.
			s.mu.Unlock()
			continue
		}
		snapshot.UpdatedAt = s.serverNow()
		doc.p = snapshot
		doc.version++
		s.mu.Unlock()

		s.bus.publish(CollectionProducts)
		return snapshot, nil
	}
}

func (s *Memory) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.products[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.products, id)
	s.mu.Unlock()

	s.bus.publish(CollectionProducts)
	return nil
}

func (s *Memory) AppendHistory(ctx context.Context, rec *models.HistoryRecord) error {
	s.mu.Lock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = s.serverNow()
	s.history = append(s.history, *rec)
	s.mu.Unlock()

	s.bus.publish(CollectionHistory)
	return nil
}

func (s *Memory) HistoryBetween(ctx context.Context, start, end time.Time) ([]models.HistoryRecord, error) {
	s.mu.Lock()
	var out []models.HistoryRecord
	for _, rec := range s.history {
		if rec.CreatedAt.Before(start) || rec.CreatedAt.After(end) {
			continue
		}
		out = append(out, rec)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Memory) Categories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Memory) CreateCategory(ctx context.Context, cat *models.Category) error {
	s.mu.Lock()
	if cat.ID == uuid.Nil {
		cat.ID = uuid.New()
	}
	now := s.serverNow()
	cat.CreatedAt = now
	cat.UpdatedAt = now
	s.categories = append(s.categories, *cat)
	s.mu.Unlock()

	s.bus.publish(CollectionCategories)
	return nil
}

func (s *Memory) Subscribe(col Collection, fn func()) CancelFunc {
	return s.bus.subscribe(col, fn)
}

func (s *Memory) Close() error {
	s.bus.closeAll()
	return nil
}
