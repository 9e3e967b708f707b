// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gudangkita/inventory-backend/internal/i18n"
	"github.com/gudangkita/inventory-backend/internal/services"
	"github.com/gudangkita/inventory-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP responses.
// Store errors are surfaced verbatim; the store already performed whatever
// conflict retries it was going to.
func respondServiceError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrMissingActor):
		utils.ErrorResponse(c, http.StatusBadRequest, "MISSING_ACTOR",
			i18n.T(lang, i18n.KeyActorMissing), nil)
	case errors.Is(err, services.ErrInvalidInput):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR",
			i18n.T(lang, i18n.KeyValidationInvalid, "input"), nil)
	case errors.Is(err, services.ErrInsufficientStock):
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK",
			i18n.T(lang, i18n.KeyProductOutOfStock), nil)
	case errors.Is(err, services.ErrUnknownProduct):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrCategoryExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryExists))
	default:
		utils.ErrorResponse(c, http.StatusBadGateway, "STORE_ERROR", err.Error(), nil)
	}
}
