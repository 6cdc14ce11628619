package handlers

import (
	"io"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/atk_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/atk_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const heartbeatInterval = 25 * time.Second

type eventHandler struct {
	subscriber portssvc.EventSubscriber
}

func registerEventRoutes(rg *gin.RouterGroup, subscriber portssvc.EventSubscriber) {
	h := &eventHandler{subscriber: subscriber}
	rg.GET("/events", h.stream)
}

// stream godoc
// @Summary Stream notifications
// @Description Server-sent events for the caller: request status changes for unit members, new requests and low stock for admins.
// @Tags events
// @Produce text/event-stream
// @Param access_token query string false "Token, for clients that cannot set headers"
// @Success 200 {object} domain.Event
// @Security BearerAuth
// @Router /events [get]
func (h *eventHandler) stream(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	events, cancel := h.subscriber.Subscribe(c.Request.Context(), p.UserID)
	defer cancel()
	logger.Info("Event stream opened")

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-events:
			if !open {
				return false
			}
			c.SSEvent(string(ev.Type), ev)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
	logger.Info("Event stream closed", slog.String("user_id", p.UserID))
}
