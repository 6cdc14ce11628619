package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type directoryHandler struct {
	directoryService portssvc.DirectorySvcFacade
}

// registerDirectoryRoutes expects rg to be admin-only already.
func registerDirectoryRoutes(rg *gin.RouterGroup, directoryService portssvc.DirectorySvcFacade) {
	h := &directoryHandler{directoryService: directoryService}

	units := rg.Group("/units")
	{
		units.POST("", h.createUnit)
		units.GET("", h.listUnits)
		units.GET("/:id", h.getUnit)
	}
	users := rg.Group("/users")
	{
		users.POST("", h.createUser)
		users.GET("/:id", h.getUser)
	}
}

// createUnit godoc
// @Summary Create a unit
// @Tags directory
// @Accept json
// @Produce json
// @Param unit body dto.CreateUnitRequest true "Unit"
// @Success 201 {object} dto.UnitResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /units [post]
func (h *directoryHandler) createUnit(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	unit, err := h.directoryService.CreateUnit(c.Request.Context(), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to create unit")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUnitResponse(unit))
}

// listUnits godoc
// @Summary List units
// @Tags directory
// @Produce json
// @Success 200 {array} dto.UnitResponse
// @Security BearerAuth
// @Router /units [get]
func (h *directoryHandler) listUnits(c *gin.Context) {
	units, err := h.directoryService.ListUnits(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list units")
		return
	}
	c.JSON(http.StatusOK, dto.ToListUnitResponse(units))
}

// getUnit godoc
// @Summary Get a unit
// @Tags directory
// @Produce json
// @Param id path string true "Unit ID"
// @Success 200 {object} dto.UnitResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /units/{id} [get]
func (h *directoryHandler) getUnit(c *gin.Context) {
	unit, err := h.directoryService.GetUnitByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve unit")
		return
	}
	c.JSON(http.StatusOK, dto.ToUnitResponse(unit))
}

// createUser godoc
// @Summary Create a user
// @Description UNIT users must name an existing unit.
// @Tags directory
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Unit not found"
// @Failure 409 {object} dto.ErrorResponse "Username taken"
// @Security BearerAuth
// @Router /users [post]
func (h *directoryHandler) createUser(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.directoryService.CreateUser(c.Request.Context(), req, p.UserID)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// getUser godoc
// @Summary Get a user
// @Tags directory
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *directoryHandler) getUser(c *gin.Context) {
	user, err := h.directoryService.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
