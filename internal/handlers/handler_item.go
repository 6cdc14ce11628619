package handlers

import (
	"net/http"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// itemHandler serves the item catalog and stock intake.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := &itemHandler{itemService: itemService}
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	items := rg.Group("/items")
	{
		items.GET("", h.listItems)
		items.GET("/low-stock", h.listLowStock)
		items.GET("/resolve", h.resolveItem)
		items.GET("/:id", h.getItem)
		items.POST("", adminOnly, h.createItem)
		items.PATCH("/:id", adminOnly, h.updateItem)
		items.POST("/:id/intake", adminOnly, h.recordIntake)
	}
}

// listItems godoc
// @Summary List items
// @Tags items
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	items, err := h.itemService.ListItems(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListItemResponse(items))
}

// listLowStock godoc
// @Summary List items at or below their minimum stock
// @Tags items
// @Produce json
// @Success 200 {array} dto.ItemResponse
// @Security BearerAuth
// @Router /items/low-stock [get]
func (h *itemHandler) listLowStock(c *gin.Context) {
	items, err := h.itemService.ListLowStockItems(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list low stock items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListItemResponse(items))
}

// resolveItem godoc
// @Summary Resolve a free-text item name
// @Description Tries exact, case-insensitive and substring matches in that order.
// @Tags items
// @Produce json
// @Param name query string true "Item name"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Ambiguous name"
// @Security BearerAuth
// @Router /items/resolve [get]
func (h *itemHandler) resolveItem(c *gin.Context) {
	item, err := h.itemService.ResolveItemReference(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err, "Failed to resolve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get an item
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	item, err := h.itemService.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// createItem godoc
// @Summary Create an item
// @Tags items
// @Accept json
// @Produce json
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Name already used"
// @Security BearerAuth
// @Router /items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.itemService.CreateItem(c.Request.Context(), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update item details
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param item body dto.UpdateItemRequest true "Fields to change"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /items/{id} [patch]
func (h *itemHandler) updateItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	item, err := h.itemService.UpdateItem(c.Request.Context(), c.Param("id"), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// recordIntake godoc
// @Summary Record stock intake
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param intake body dto.StockIntakeRequest true "Intake details"
// @Success 201 {object} dto.IncomingMovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /items/{id}/intake [post]
func (h *itemHandler) recordIntake(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.StockIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	movement, err := h.itemService.RecordIntake(c.Request.Context(), c.Param("id"), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to record intake")
		return
	}
	c.JSON(http.StatusCreated, dto.ToIncomingMovementResponse(movement))
}
