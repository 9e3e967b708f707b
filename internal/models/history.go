// internal/models/history.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is an append-only audit entry describing one product
// mutation. Records are never updated or deleted after creation.
//
// Name is the product name at the time of the change, not a foreign key:
// history is joined to products by name at read time, so renaming a
// product detaches its earlier records.
type HistoryRecord struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Action    HistoryAction `json:"action" gorm:"type:varchar(20);not null;index"`
	Name      string        `json:"name" gorm:"size:255;not null;index"`
	Change    string        `json:"change" gorm:"size:20;not null"`
	By        string        `json:"by" gorm:"size:100;not null"`
	CreatedAt time.Time     `json:"created_at" gorm:"index:idx_history_created_at,sort:desc"`
}
