package handler

import (
	"net/http"

	"glin-wallet/internal/adapter/events"
	"glin-wallet/internal/adapter/http/middleware"
	"glin-wallet/internal/core/ports"
	"glin-wallet/pkg/apperror"
	"glin-wallet/pkg/logger"
	"glin-wallet/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EventStream upgrades a request into an event socket for sub.
type EventStream interface {
	Serve(w http.ResponseWriter, r *http.Request, sub events.Subscriber) error
}

// EventsHandler serves the event sockets.
type EventsHandler struct {
	stream EventStream
	coord  ports.SessionCoordinator
	log    zerolog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(stream EventStream, coord ports.SessionCoordinator, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{stream: stream, coord: coord, log: logger.Component(log, "events_http")}
}

// Extension handles GET /api/v1/events. Extension surfaces receive every event.
func (h *EventsHandler) Extension(c *gin.Context) {
	h.serve(c, events.Subscriber{Extension: true})
}

// Dapp handles GET /api/v1/dapp/events. Only a connected origin may
// subscribe, and it only receives events addressed to it or to everyone.
func (h *EventsHandler) Dapp(c *gin.Context) {
	origin := c.GetString(middleware.CtxOrigin)
	connected, err := h.coord.IsSiteConnected(c.Request.Context(), origin)
	if err != nil {
		response.Error(c, "", err)
		return
	}
	if !connected {
		response.Error(c, "", apperror.ErrSiteNotConnected())
		return
	}
	h.serve(c, events.Subscriber{Origin: origin})
}

func (h *EventsHandler) serve(c *gin.Context, sub events.Subscriber) {
	if err := h.stream.Serve(c.Writer, c.Request, sub); err != nil {
		// The upgrader has already answered the client.
		h.log.Debug().Err(err).Str("origin", sub.Origin).Msg("event socket upgrade failed")
	}
}
