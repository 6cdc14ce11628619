package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type quotaHandler struct {
	quotaService portssvc.QuotaSvcFacade
}

// registerQuotaRoutes expects rg to be admin-only already.
func registerQuotaRoutes(rg *gin.RouterGroup, quotaService portssvc.QuotaSvcFacade) {
	h := &quotaHandler{quotaService: quotaService}

	quotas := rg.Group("/quotas")
	{
		quotas.PUT("", h.upsertQuota)
		quotas.GET("", h.listQuotas)
		quotas.DELETE("/:itemID/:unitID", h.deleteQuota)
	}
}

// upsertQuota godoc
// @Summary Set a quota
// @Description Creates the item/unit quota or changes its maximum. Usage is kept.
// @Tags quotas
// @Accept json
// @Produce json
// @Param quota body dto.UpsertQuotaRequest true "Quota"
// @Success 200 {object} dto.QuotaResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Item or unit not found"
// @Security BearerAuth
// @Router /quotas [put]
func (h *quotaHandler) upsertQuota(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.UpsertQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	quota, err := h.quotaService.UpsertQuota(c.Request.Context(), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to set quota")
		return
	}
	c.JSON(http.StatusOK, dto.ToQuotaResponse(quota))
}

// listQuotas godoc
// @Summary List quotas
// @Tags quotas
// @Produce json
// @Param unitID query string false "Unit filter"
// @Success 200 {array} dto.QuotaResponse
// @Security BearerAuth
// @Router /quotas [get]
func (h *quotaHandler) listQuotas(c *gin.Context) {
	quotas, err := h.quotaService.ListQuotas(c.Request.Context(), c.Query("unitID"))
	if err != nil {
		respondError(c, err, "Failed to list quotas")
		return
	}
	c.JSON(http.StatusOK, dto.ToListQuotaResponse(quotas))
}

// deleteQuota godoc
// @Summary Remove a quota
// @Description The pair becomes unlimited.
// @Tags quotas
// @Param itemID path string true "Item ID"
// @Param unitID path string true "Unit ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /quotas/{itemID}/{unitID} [delete]
func (h *quotaHandler) deleteQuota(c *gin.Context) {
	if err := h.quotaService.DeleteQuota(c.Request.Context(), c.Param("itemID"), c.Param("unitID")); err != nil {
		respondError(c, err, "Failed to delete quota")
		return
	}
	c.Status(http.StatusNoContent)
}
