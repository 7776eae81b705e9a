package handler

import (
	"time"

	catalogapp "github.com/estoquesaude/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemHandler serves the item catalog endpoints
type ItemHandler struct {
	BaseHandler
	items *catalogapp.ItemService
}

// NewItemHandler creates an ItemHandler
func NewItemHandler(items *catalogapp.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// ItemRequest is the request body for creating or updating an item
type ItemRequest struct {
	Name           string     `json:"name" binding:"required,min=1,max=200"`
	Code           string     `json:"code" binding:"required,min=1,max=50"`
	Category       string     `json:"category" binding:"max=100"`
	UnitOfMeasure  string     `json:"unit_of_measure" binding:"required,min=1,max=30"`
	Supplier       string     `json:"supplier" binding:"max=200"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// SetMinQuantityRequest sets the central minimum threshold of an item
type SetMinQuantityRequest struct {
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// Create registers a new catalog item
func (h *ItemHandler) Create(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Create(c.Request.Context(), catalogapp.ItemInput{
		Name:           req.Name,
		Code:           req.Code,
		Category:       req.Category,
		UnitOfMeasure:  req.UnitOfMeasure,
		Supplier:       req.Supplier,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toItemResponse(item))
}

// GetByID returns one item
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.items.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toItemResponse(item))
}

// List returns all items
func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toItemResponses(items))
}

// ListBelowMinimum returns the items whose central stock is under the
// configured minimum
func (h *ItemHandler) ListBelowMinimum(c *gin.Context) {
	items, err := h.items.ListBelowMinimum(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toItemResponses(items))
}

// Update modifies an item
func (h *ItemHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.Update(c.Request.Context(), id, catalogapp.ItemInput{
		Name:           req.Name,
		Code:           req.Code,
		Category:       req.Category,
		UnitOfMeasure:  req.UnitOfMeasure,
		Supplier:       req.Supplier,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toItemResponse(item))
}

// SetMinQuantity sets the central minimum-quantity threshold
func (h *ItemHandler) SetMinQuantity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req SetMinQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.items.SetMinQuantity(c.Request.Context(), id, req.MinQuantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toItemResponse(item))
}

// Delete removes an item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
