// internal/store/store.go
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/gudangkita/inventory-backend/internal/models"
)

// Collection identifies one of the shared document collections.
type Collection string

const (
	CollectionProducts   Collection = "products"
	CollectionHistory    Collection = "history"
	CollectionCategories Collection = "categories"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("store: document not found")

// CancelFunc releases a change subscription. It is idempotent.
type CancelFunc func()

// Store is the authoritative state store shared by all client instances.
//
// UpdateProduct is the transaction primitive: it re-reads the current
// document, applies fn, and commits the result atomically. Write conflicts
// between concurrent callers are retried transparently; an error returned
// by fn aborts the transaction, leaves the document untouched, and is
// surfaced to the caller as-is.
//
// Subscribe registers fn to run after every committed change to the given
// collection, including changes made by other instances. Notifications for
// one subscription are delivered one at a time; a burst of changes may be
// coalesced into a single call.
type Store interface {
	Products(ctx context.Context) ([]models.Product, error)
	Product(ctx context.Context, id uuid.UUID) (models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, fn func(p *models.Product) error) (models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	AppendHistory(ctx context.Context, rec *models.HistoryRecord) error
	HistoryBetween(ctx context.Context, start, end time.Time) ([]models.HistoryRecord, error)

	Categories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, cat *models.Category) error

	Subscribe(col Collection, fn func()) CancelFunc
	Close() error
}
