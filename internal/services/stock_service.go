// internal/services/stock_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

// ProductIndex is the live product cache the engine consults for its
// existence check. The cache may lag the store by one notification round
// trip; only the transactional re-read inside the store is
// correctness-bearing.
type ProductIndex interface {
	FindByName(name string) (models.Product, bool)
}

// StockService applies add/subtract/create mutations to products through
// the store's transaction primitive and emits the matching history record
// after each successful commit.
type StockService struct {
	store   store.Store
	index   ProductIndex
	history *HistoryService
}

func NewStockService(st store.Store, index ProductIndex, history *HistoryService) *StockService {
	return &StockService{store: st, index: index, history: history}
}

type StockChangeRequest struct {
	Operation models.StockOperation `json:"operation" validate:"required,oneof=add subtract"`
	Name      string                `json:"name" validate:"required"`
	Category  string                `json:"category" validate:"required"`
	Quantity  int                   `json:"quantity" validate:"required,gt=0"`
	Actor     string                `json:"actor" validate:"required"`
}

func (r *StockChangeRequest) validate() error {
	if strings.TrimSpace(r.Actor) == "" {
		return ErrMissingActor
	}
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Category) == "" || r.Quantity <= 0 {
		return ErrInvalidInput
	}
	if r.Operation != models.StockOperationAdd && r.Operation != models.StockOperationSubtract {
		return ErrInvalidInput
	}
	return nil
}

// ApplyStockChange is the transactional read-modify-write at the heart of
// the tracker.
//
// The existence check runs against the cached product list and may race
// with other clients; the store transaction re-reads the authoritative
// stock before computing the new value, so a stale hit costs at most a
// retry and never a lost update. Subtracting below zero aborts the
// transaction with ErrInsufficientStock and leaves the stored stock
// untouched. The category supplied here overwrites the stored one on
// every touch (last writer wins).
func (s *StockService) ApplyStockChange(ctx context.Context, req *StockChangeRequest) (models.Product, error) {
	if err := req.validate(); err != nil {
		return models.Product{}, err
	}

	name := strings.TrimSpace(req.Name)
	cached, ok := s.index.FindByName(name)
	if !ok {
		return s.createOnFirstAdd(ctx, req, name)
	}

	updated, err := s.store.UpdateProduct(ctx, cached.ID, func(p *models.Product) error {
		newStock := p.Stock + req.Quantity
		if req.Operation == models.StockOperationSubtract {
			newStock = p.Stock - req.Quantity
			if newStock < 0 {
				return ErrInsufficientStock
			}
		}
		p.Stock = newStock
		p.Category = req.Category
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// The cache was stale: the product vanished between lookup and
			// transaction. An add falls through to creation; a subtract has
			// nothing to take from.
			if req.Operation == models.StockOperationAdd {
				return s.createOnFirstAdd(ctx, req, name)
			}
			return models.Product{}, ErrUnknownProduct
		}
		return models.Product{}, err
	}

	action := models.HistoryActionStockAdd
	delta := req.Quantity
	if req.Operation == models.StockOperationSubtract {
		action = models.HistoryActionStockSub
		delta = -req.Quantity
	}
	s.history.Record(action, updated.Name, delta, req.Actor)

	return updated, nil
}

func (s *StockService) createOnFirstAdd(ctx context.Context, req *StockChangeRequest, name string) (models.Product, error) {
	if req.Operation == models.StockOperationSubtract {
		return models.Product{}, ErrUnknownProduct
	}

	p := &models.Product{
		Name:      name,
		Category:  req.Category,
		Stock:     req.Quantity,
		CreatedBy: req.Actor,
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return models.Product{}, err
	}
	s.history.Record(models.HistoryActionCreate, p.Name, req.Quantity, req.Actor)

	return *p, nil
}

type UpdateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Stock    int    `json:"stock" validate:"min=0"`
	Actor    string `json:"actor" validate:"required"`
}

// UpdateProduct is the edit-form variant: it overwrites name, category and
// stock in one transaction and records an "update" entry carrying the
// signed difference between the new and old stock. Renaming a product
// leaves its earlier history joined to the old name.
func (s *StockService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (models.Product, error) {
	if strings.TrimSpace(req.Actor) == "" {
		return models.Product{}, ErrMissingActor
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" || req.Stock < 0 {
		return models.Product{}, ErrInvalidInput
	}

	var oldStock int
	updated, err := s.store.UpdateProduct(ctx, id, func(p *models.Product) error {
		oldStock = p.Stock
		p.Name = strings.TrimSpace(req.Name)
		p.Category = req.Category
		p.Stock = req.Stock
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Product{}, ErrUnknownProduct
		}
		return models.Product{}, err
	}

	s.history.Record(models.HistoryActionUpdate, updated.Name, updated.Stock-oldStock, req.Actor)
	return updated, nil
}

// DeleteProduct removes the product and records a "delete" entry carrying
// the negated remaining stock. Deletion is a terminal transition; the
// history rows referring to the name remain.
func (s *StockService) DeleteProduct(ctx context.Context, id uuid.UUID, actor string) (models.Product, error) {
	if strings.TrimSpace(actor) == "" {
		return models.Product{}, ErrMissingActor
	}

	p, err := s.store.Product(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Product{}, ErrUnknownProduct
		}
		return models.Product{}, err
	}

	if err := s.store.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Product{}, ErrUnknownProduct
		}
		return models.Product{}, err
	}

	s.history.Record(models.HistoryActionDelete, p.Name, -p.Stock, actor)
	return p, nil
}
