package handlers

import (
	"fmt"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type movementHandler struct {
	journalService portssvc.JournalSvcFacade
}

// registerMovementRoutes expects rg to be admin-only already.
func registerMovementRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &movementHandler{journalService: journalService}

	movements := rg.Group("/movements")
	{
		movements.GET("/outgoing", h.listOutgoing)
		movements.GET("/outgoing/export", h.exportOutgoing)
		movements.GET("/incoming", h.listIncoming)
	}
}

// listOutgoing godoc
// @Summary List outgoing movements
// @Description Newest first, paged with an opaque nextToken.
// @Tags movements
// @Produce json
// @Param itemID query string false "Item filter"
// @Param department query string false "Department filter"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOutgoingMovementsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /movements/outgoing [get]
func (h *movementHandler) listOutgoing(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.journalService.ListOutgoing(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list outgoing movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// listIncoming godoc
// @Summary List incoming movements
// @Tags movements
// @Produce json
// @Param itemID query string false "Item filter"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListIncomingMovementsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /movements/incoming [get]
func (h *movementHandler) listIncoming(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	resp, err := h.journalService.ListIncoming(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list incoming movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// exportOutgoing godoc
// @Summary Export outgoing movements
// @Description Streams the filtered outgoing journal as an xlsx workbook.
// @Tags movements
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param itemID query string false "Item filter"
// @Param department query string false "Department filter"
// @Param dateFrom query string false "From date (YYYY-MM-DD)"
// @Param dateTo query string false "To date (YYYY-MM-DD)"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /movements/outgoing/export [get]
func (h *movementHandler) exportOutgoing(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	// Headers are only committed on the first write, so a failing export can still answer with JSON.
	filename := fmt.Sprintf("outgoing-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", xlsxContentType)
	if err := h.journalService.ExportOutgoing(c.Request.Context(), params, c.Writer); err != nil {
		c.Writer.Header().Del("Content-Disposition")
		c.Writer.Header().Del("Content-Type")
		respondError(c, err, "Failed to export outgoing movements")
		return
	}
	c.Status(http.StatusOK)
}
