// internal/projector/projector.go

// Package projector maintains the client-side live views: push-updated,
// eventually-consistent derived copies of the shared product and history
// collections, used for rendering, filtering, aggregation and export. The
// store owns the truth; the views rebuild wholesale on every change
// notification.
package projector

import (
	"context"

	"github.com/gudangkita/inventory-backend/internal/store"
)

type Projector struct {
	Products *ProductView
	History  *HistoryView
}

func New(st store.Store) *Projector {
	return &Projector{
		Products: NewProductView(st),
		History:  NewHistoryView(st),
	}
}

// Start subscribes both views and loads their initial snapshots. The
// history view opens on the given range, normally the configured quick
// range.
func (p *Projector) Start(ctx context.Context, rng TimeRange) error {
	if err := p.Products.Start(ctx); err != nil {
		return err
	}
	return p.History.SetRange(ctx, rng)
}

// Close tears both views down by releasing their subscriptions.
func (p *Projector) Close() {
	p.Products.Close()
	p.History.Close()
}
