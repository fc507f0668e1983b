package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/waldy-ctt/TFLH-BE/internal/live"
)

// WSHandler upgrades /ws requests and hands the connection lifecycle over
// to the registry. The connection lifecycle is fully independent of the
// HTTP mutation path; the two only meet inside the registry.
type WSHandler struct {
	registry *live.Registry
	upgrader websocket.Upgrader
	log      *slog.Logger
}

func NewWSHandler(registry *live.Registry, log *slog.Logger) *WSHandler {
	return &WSHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("user_id")
	userID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing user_id")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "user", userID, "error", err)
		return
	}

	client := live.NewClient(uint(userID), conn, h.log)
	h.registry.Register(client)

	go client.WritePump()
	go client.ReadLoop(h.registry.Unregister)
}
