package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MDaniyal2080/TaskZen-sub000/internal/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler upgrades websocket connections and hands them to the gateway.
// The route carries no auth middleware: authentication is the first
// message on the socket.
type WSHandler struct {
	gateway *realtime.Gateway
	logger  *zap.Logger
}

func NewWSHandler(gateway *realtime.Gateway, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		gateway: gateway,
		logger:  logger,
	}
}

// Serve godoc
// @Summary      Realtime collaboration socket
// @Description  Upgrades to a websocket speaking the {event, data} protocol: authenticate, joinBoard, leaveBoard, typingStart/typingStop, and server broadcasts.
// @Tags         realtime
// @Success      101 "Switching Protocols"
// @Router       /ws [get]
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	// Blocks until the peer disconnects; the request context stays alive
	// for the lifetime of the socket.
	h.gateway.ServeConn(c.Request.Context(), conn)
}
