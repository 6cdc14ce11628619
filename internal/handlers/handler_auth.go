package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/atk_inventory_app/internal/dto"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// authHandler handles token issuance.
type authHandler struct {
	authService      portssvc.AuthSvcFacade
	directoryService portssvc.DirectorySvcFacade
}

// registerAuthRoutes sets up the public login route behind a per-IP rate limit,
// and the authenticated /me route on v1.
func registerAuthRoutes(r *gin.Engine, v1 *gin.RouterGroup, loginLimit gin.HandlerFunc, authService portssvc.AuthSvcFacade, directoryService portssvc.DirectorySvcFacade) {
	h := &authHandler{authService: authService, directoryService: directoryService}

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", loginLimit, h.login)
	}
	v1.GET("/me", h.me)
}

// login godoc
// @Summary User login
// @Description Authenticates a user and returns a signed access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, expiresAt, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "Failed to log in")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt, User: dto.ToUserResponse(user)})
}

// me godoc
// @Summary Current user
// @Description Returns the directory entry of the authenticated caller.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *authHandler) me(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	user, err := h.directoryService.GetUserByID(c.Request.Context(), p.UserID)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
