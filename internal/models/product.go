// internal/models/product.go
package models

// Product is the authoritative current-state record for one inventory
// item. Stock is never negative; every mutation goes through the store's
// transaction primitive, never a direct unconditional write.
type Product struct {
	BaseModel
	Name      string `json:"name" gorm:"size:255;not null;index"`
	Category  string `json:"category" gorm:"size:100;not null;index"`
	Stock     int    `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	CreatedBy string `json:"created_by" gorm:"size:100"`
}
