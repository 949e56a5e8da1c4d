package handlers

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
)

// eventHandler streams change notifications to clients over server-sent
// events. Clients are expected to refetch the affected collection on every
// event; the stream carries no diffs.
type eventHandler struct {
	changeFeed  portssvc.ChangeFeedSvc
	userService portssvc.UserSvcFacade
}

// registerEventRoutes registers the change-notification stream route.
func registerEventRoutes(rg *gin.RouterGroup, changeFeed portssvc.ChangeFeedSvc, userService portssvc.UserSvcFacade) {
	h := &eventHandler{changeFeed: changeFeed, userService: userService}
	rg.GET("/events", h.streamEvents)
}

// streamEvents godoc
// @Summary Subscribe to change notifications
// @Description Opens a server-sent-events stream of row-change notifications visible to the caller. Pass a comma-separated 'collections' filter to narrow the stream.
// @Tags events
// @Produce text/event-stream
// @Param collections query string false "Comma-separated collection names"
// @Success 200 {string} string "event stream"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /events [get]
func (h *eventHandler) streamEvents(c *gin.Context) {
	actor, ok := resolveActor(c, h.userService)
	if !ok {
		return
	}

	var collections []string
	if raw := c.Query("collections"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				collections = append(collections, name)
			}
		}
	}

	sub, err := h.changeFeed.Subscribe(c.Request.Context(), actor, collections...)
	if err != nil {
		respondServiceError(c, err, "Failed to subscribe to change feed")
		return
	}
	defer h.changeFeed.Unsubscribe(sub.ID)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, open := <-sub.C:
			if !open {
				return false
			}
			c.SSEvent("change", event)
			return true
		}
	})
}
