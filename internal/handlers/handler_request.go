package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/atk_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requestHandler serves filing, listing and every status transition of item requests.
type requestHandler struct {
	requestService  portssvc.RequestSvcFacade
	approvalService portssvc.ApprovalSvcFacade
}

func registerRequestRoutes(rg *gin.RouterGroup, requestService portssvc.RequestSvcFacade, approvalService portssvc.ApprovalSvcFacade) {
	h := &requestHandler{requestService: requestService, approvalService: approvalService}
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	requests := rg.Group("/requests")
	{
		requests.POST("", middleware.RequireRole(domain.RoleUnit), h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/pending", h.listPending)
		requests.GET("/awaiting-handout", adminOnly, h.listAwaitingHandout)
		requests.GET("/:id", h.getRequest)

		requests.POST("/:id/review", adminOnly, h.moveToReview)
		requests.POST("/:id/approve", adminOnly, h.approve)
		requests.POST("/:id/finalize", adminOnly, h.finalize)
		requests.POST("/:id/reject", adminOnly, h.reject)
		requests.POST("/:id/handout", adminOnly, h.handout)
	}
}

// createRequest godoc
// @Summary File an item request
// @Description Files a PENDING request for the caller's unit.
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.CreateRequestPayload true "Request details"
// @Success 201 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Referenced item not found"
// @Security BearerAuth
// @Router /requests [post]
func (h *requestHandler) createRequest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateRequestPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.requestService.CreateRequest(c.Request.Context(), req, p)
	if err != nil {
		respondError(c, err, "Failed to create request")
		return
	}
	c.JSON(http.StatusCreated, dto.ToRequestResponse(created))
}

// listRequests godoc
// @Summary List requests
// @Description Lists request history, newest first. Unit members only see their own unit.
// @Tags requests
// @Produce json
// @Param status query string false "Status filter"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /requests [get]
func (h *requestHandler) listRequests(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var params dto.ListRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	requests, err := h.requestService.ListRequests(c.Request.Context(), p, params)
	if err != nil {
		respondError(c, err, "Failed to list requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRequestResponse(requests))
}

// listPending godoc
// @Summary List open requests
// @Description Lists PENDING and APPROVAL_REVIEW requests visible to the caller.
// @Tags requests
// @Produce json
// @Success 200 {array} dto.RequestResponse
// @Security BearerAuth
// @Router /requests/pending [get]
func (h *requestHandler) listPending(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	requests, err := h.requestService.ListPending(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "Failed to list pending requests")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRequestResponse(requests))
}

// listAwaitingHandout godoc
// @Summary List approved procurement requests
// @Tags requests
// @Produce json
// @Success 200 {array} dto.RequestResponse
// @Security BearerAuth
// @Router /requests/awaiting-handout [get]
func (h *requestHandler) listAwaitingHandout(c *gin.Context) {
	requests, err := h.requestService.ListAwaitingHandout(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list requests awaiting handout")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRequestResponse(requests))
}

// getRequest godoc
// @Summary Get a request
// @Tags requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id} [get]
func (h *requestHandler) getRequest(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	req, err := h.requestService.GetRequest(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		respondError(c, err, "Failed to retrieve request")
		return
	}
	c.JSON(http.StatusOK, dto.ToRequestResponse(req))
}

// moveToReview godoc
// @Summary Move a request to review
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Request already processed"
// @Failure 503 {object} dto.ErrorResponse "Row locked, retry"
// @Security BearerAuth
// @Router /requests/{id}/review [post]
func (h *requestHandler) moveToReview(c *gin.Context) {
	h.transition(c, "Failed to move request to review", func(p domain.Principal) (*domain.Request, error) {
		return h.approvalService.MoveToReview(c.Request.Context(), c.Param("id"), p)
	})
}

// approve godoc
// @Summary Approve a pending request
// @Description Approves the requested quantity. Stock requests deduct stock and write the outgoing journal line.
// @Tags approvals
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} dto.RequestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Request already processed"
// @Failure 422 {object} dto.ErrorResponse "Insufficient stock, quota exceeded or ambiguous item"
// @Failure 503 {object} dto.ErrorResponse "Row locked, retry"
// @Security BearerAuth
// @Router /requests/{id}/approve [post]
func (h *requestHandler) approve(c *gin.Context) {
	h.transition(c, "Failed to approve request", func(p domain.Principal) (*domain.Request, error) {
		return h.approvalService.Approve(c.Request.Context(), c.Param("id"), p)
	})
}

// finalize godoc
// @Summary Finalize a reviewed request
// @Description Approves an adjusted quantity between 1 and the requested quantity.
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body dto.FinalizeRequest true "Final quantity"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/finalize [post]
func (h *requestHandler) finalize(c *gin.Context) {
	var req dto.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.transition(c, "Failed to finalize request", func(p domain.Principal) (*domain.Request, error) {
		return h.approvalService.Finalize(c.Request.Context(), c.Param("id"), req, p)
	})
}

// reject godoc
// @Summary Reject a request
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body dto.RejectRequest false "Reason"
// @Success 200 {object} dto.RequestResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/reject [post]
func (h *requestHandler) reject(c *gin.Context) {
	var req dto.RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	h.transition(c, "Failed to reject request", func(p domain.Principal) (*domain.Request, error) {
		return h.approvalService.Reject(c.Request.Context(), c.Param("id"), req, p)
	})
}

// handout godoc
// @Summary Record procurement intake and handout
// @Description Receives purchased stock for an approved procurement request and hands out the approved quantity. An existing catalog item gets the submitted code, unit of measure and location; quota is charged here when approval ran before the item was catalogued.
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param body body dto.HandoutRequest true "Intake details"
// @Success 200 {object} dto.RequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /requests/{id}/handout [post]
func (h *requestHandler) handout(c *gin.Context) {
	var req dto.HandoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	h.transition(c, "Failed to record handout", func(p domain.Principal) (*domain.Request, error) {
		return h.approvalService.RecordIntakeAndHandout(c.Request.Context(), c.Param("id"), req, p)
	})
}

func (h *requestHandler) transition(c *gin.Context, failure string, run func(domain.Principal) (*domain.Request, error)) {
	p, ok := principal(c)
	if !ok {
		return
	}
	req, err := run(p)
	if err != nil {
		respondError(c, err, failure)
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Request transitioned",
		slog.String("request_id", req.RequestID),
		slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, dto.ToRequestResponse(req))
}
