// internal/models/category.go
package models

// Category is a name-only tag used to populate selection controls.
// Uniqueness is case-insensitive and enforced by the category service
// before the write.
type Category struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}
