// internal/services/history_service.go
package services

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/store"
)

const historyWriteTimeout = 10 * time.Second

// HistoryService appends audit records after successful product mutations.
// Appends are best-effort and run outside the mutating transaction: by the
// time a record is written the stock change is already committed, so a
// failed append is logged and swallowed rather than rolled back. This is
// the accepted consistency gap between the state table and its history.
type HistoryService struct {
	store store.Store
	wg    sync.WaitGroup
}

func NewHistoryService(st store.Store) *HistoryService {
	return &HistoryService{store: st}
}

// Record asynchronously appends one history entry with a signed change of
// delta. It never blocks the caller and never reports failure upward.
func (s *HistoryService) Record(action models.HistoryAction, name string, delta int, by string) {
	rec := &models.HistoryRecord{
		Action: action,
		Name:   name,
		Change: models.FormatChange(delta),
		By:     by,
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), historyWriteTimeout)
		defer cancel()

		if err := s.store.AppendHistory(ctx, rec); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"action": action,
				"name":   name,
				"change": rec.Change,
			}).Warn("Failed to append history record")
		}
	}()
}

// Wait blocks until all in-flight appends have finished. Used during
// shutdown and by tests.
func (s *HistoryService) Wait() {
	s.wg.Wait()
}
