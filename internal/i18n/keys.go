// internal/i18n/keys.go
package i18n

// Translation keys
const (
	KeyValidationInvalid = "validation.invalid"

	KeyActorMissing = "actor.missing"

	KeyProductNotFound     = "product.not_found"
	KeyProductCreated      = "product.created"
	KeyProductUpdated      = "product.updated"
	KeyProductDeleted      = "product.deleted"
	KeyProductStockChanged = "product.stock_changed"
	KeyProductOutOfStock   = "product.out_of_stock"

	KeyCategoryExists  = "category.exists"
	KeyCategoryCreated = "category.created"
	KeyCategoryInvalid = "category.invalid"
)
