// internal/models/common.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type HistoryAction string

const (
	HistoryActionCreate   HistoryAction = "create"
	HistoryActionStockAdd HistoryAction = "stock add"
	HistoryActionStockSub HistoryAction = "stock subtract"
	HistoryActionUpdate   HistoryAction = "update"
	HistoryActionDelete   HistoryAction = "delete"
)

type StockOperation string

const (
	StockOperationAdd      StockOperation = "add"
	StockOperationSubtract StockOperation = "subtract"
)

// FormatChange renders a signed stock delta the way history rows display
// it: "+5" or "-3".
func FormatChange(delta int) string {
	if delta >= 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}
