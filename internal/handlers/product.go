// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gudangkita/inventory-backend/internal/i18n"
	"github.com/gudangkita/inventory-backend/internal/models"
	"github.com/gudangkita/inventory-backend/internal/projector"
	"github.com/gudangkita/inventory-backend/internal/services"
	"github.com/gudangkita/inventory-backend/internal/utils"
)

type ProductHandler struct {
	stockService *services.StockService
	view         *projector.ProductView
}

func NewProductHandler(stockService *services.StockService, view *projector.ProductView) *ProductHandler {
	return &ProductHandler{
		stockService: stockService,
		view:         view,
	}
}

// GET /products
//
// Serves the live view's filtered snapshot: the query params drive the
// projector filter, the response is the current cached list, not a fresh
// store query.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	h.view.SetFilter(c.Query("search"), c.Query("category"))

	items := h.view.Snapshot()
	page, total := utils.PaginateSlice(items, params)

	result := utils.CreatePaginationResult(page, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /products/stock
func (h *ProductHandler) ApplyStockChange(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.StockChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.stockService.ApplyStockChange(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductStockChanged),
		"product": product,
	})
}

type createProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Stock    int    `json:"stock" validate:"required,gt=0"`
	Actor    string `json:"actor" validate:"required"`
}

// POST /products
//
// The "new product" form path. Creation is a stock-add of an unseen name;
// adding an existing name folds into its stock rather than duplicating
// the product.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.stockService.ApplyStockChange(c.Request.Context(), &services.StockChangeRequest{
		Operation: models.StockOperationAdd,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Stock,
		Actor:     req.Actor,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"product": product,
	})
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.stockService.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"product": product,
	})
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.stockService.DeleteProduct(c.Request.Context(), id, c.Query("actor"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
		"product": product,
	})
}

// GET /chart/stock-by-category
//
// The chart aggregate: summed stock per category over the current
// filtered snapshot.
func (h *ProductHandler) GetStockByCategory(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"stock_by_category": h.view.StockByCategory(),
	})
}
