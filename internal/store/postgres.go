// internal/store/postgres.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gudangkita/inventory-backend/internal/models"
)

const (
	// Transaction conflicts are retried by the store, not the caller.
	maxConflictRetries = 5
	conflictBackoff    = 20 * time.Millisecond
)

// notifyChannels maps collections onto Postgres NOTIFY channels. NOTIFY is
// issued inside the mutating transaction so delivery happens on commit,
// which makes every instance (including remote ones) see the change push.
var notifyChannels = map[Collection]string{
	CollectionProducts:   "inventory_products_changed",
	CollectionHistory:    "inventory_history_changed",
	CollectionCategories: "inventory_categories_changed",
}

// Postgres is the production Store backed by the shared database.
type Postgres struct {
	db       *gorm.DB
	bus      *bus
	listener *pq.Listener
}

// NewPostgres wraps an established gorm connection. The DSN is used to open
// a second connection dedicated to LISTEN so that change notifications keep
// flowing while the pool is busy.
func NewPostgres(db *gorm.DB, dsn string) (*Postgres, error) {
	s := &Postgres{db: db, bus: newBus()}

	s.listener = pq.NewListener(dsn, 50*time.Millisecond, 30*time.Second, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			logrus.WithError(err).Warn("store: listener connection event")
		}
	})
	for _, channel := range notifyChannels {
		if err := s.listener.Listen(channel); err != nil {
			s.listener.Close()
			return nil, fmt.Errorf("failed to listen on %s: %w", channel, err)
		}
	}
	go s.pump()

	return s, nil
}

// pump forwards NOTIFY payloads into the local subscription bus.
func (s *Postgres) pump() {
	for n := range s.listener.Notify {
		if n == nil {
			// Reconnect marker: notifications may have been missed, so
			// nudge every collection and let the views rebuild.
			for col := range notifyChannels {
				s.bus.publish(col)
			}
			continue
		}
		for col, channel := range notifyChannels {
			if channel == n.Channel {
				s.bus.publish(col)
			}
		}
	}
}

func notifyTx(tx *gorm.DB, col Collection) error {
	return tx.Exec("SELECT pg_notify(?, '')", notifyChannels[col]).Error
}

func (s *Postgres) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("name").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *Postgres) Product(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, fmt.Errorf("database error: %w", err)
	}
	return p, nil
}

func (s *Postgres) CreateProduct(ctx context.Context, p *models.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return notifyTx(tx, CollectionProducts)
	})
	if err != nil {
		return err
	}
	s.bus.publish(CollectionProducts)
	return nil
}

// UpdateProduct re-reads the product under a row lock, applies fn, and
// commits the result. The locked re-read, not any cached copy the caller
// looked at, is what makes concurrent add/subtract safe.
func (s *Postgres) UpdateProduct(ctx context.Context, id uuid.UUID, fn func(p *models.Product) error) (models.Product, error) {
	var out models.Product
	for attempt := 0; ; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var p models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&p, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("database error: %w", err)
			}

			if err := fn(&p); err != nil {
				return err
			}

			if err := tx.Save(&p).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			out = p
			return notifyTx(tx, CollectionProducts)
		})
		if err == nil {
			s.bus.publish(CollectionProducts)
			return out, nil
		}
		if isSerializationFailure(err) && attempt < maxConflictRetries {
			time.Sleep(conflictBackoff << attempt)
			continue
		}
		return models.Product{}, err
	}
}

func (s *Postgres) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return notifyTx(tx, CollectionProducts)
	})
	if err != nil {
		return err
	}
	s.bus.publish(CollectionProducts)
	return nil
}

func (s *Postgres) AppendHistory(ctx context.Context, rec *models.HistoryRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to append history: %w", err)
		}
		return notifyTx(tx, CollectionHistory)
	})
	if err != nil {
		return err
	}
	s.bus.publish(CollectionHistory)
	return nil
}

func (s *Postgres) HistoryBetween(ctx context.Context, start, end time.Time) ([]models.HistoryRecord, error) {
	var records []models.HistoryRecord
	if err := s.db.WithContext(ctx).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return records, nil
}

func (s *Postgres) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}

func (s *Postgres) CreateCategory(ctx context.Context, cat *models.Category) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cat).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return notifyTx(tx, CollectionCategories)
	})
	if err != nil {
		return err
	}
	s.bus.publish(CollectionCategories)
	return nil
}

func (s *Postgres) Subscribe(col Collection, fn func()) CancelFunc {
	return s.bus.subscribe(col, fn)
}

func (s *Postgres) Close() error {
	s.bus.closeAll()
	return s.listener.Close()
}

// isSerializationFailure reports whether err is a write-conflict the store
// should retry: serialization_failure (40001) or deadlock_detected (40P01).
func isSerializationFailure(err error) bool {
	var state interface{ SQLState() string }
	if errors.As(err, &state) {
		code := state.SQLState()
		return code == "40001" || code == "40P01"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
