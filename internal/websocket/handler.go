package websocket

import (
	"net/http"
	"time"

	"troubleshoot-titans/internal/authutils"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10 // Меньше pongWait
	maxMessageSize = 512
)

// Handler поднимает websocket-соединение. Токен передается в ?token=.
type Handler struct {
	manager  *ConnectionManager
	verifier authutils.TokenVerifier
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler создает обработчик. checkOrigin == nil разрешает любой Origin.
func NewHandler(manager *ConnectionManager, verifier authutils.TokenVerifier, checkOrigin func(r *http.Request) bool, logger zerolog.Logger) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		manager:  manager,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger.With().Str("component", "WebSocketHandler").Logger(),
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		h.logger.Warn().Msg("Missing 'token' query parameter")
		http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
		return
	}
	session, err := h.verifier.VerifyToken(r.Context(), token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Invalid token")
		http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже записал ответ
		h.logger.Error().Err(err).Str("userID", session.UserID).Msg("Failed to upgrade connection")
		return
	}

	client := newClient(session.UserID, conn)
	h.manager.RegisterClient(client)

	logger := h.logger.With().Str("userID", session.UserID).Logger()
	go client.writePump(logger)
	go client.readPump(h.manager, logger)
}

// readPump читает только control-фреймы; сообщения клиента игнорируются.
func (c *Client) readPump(manager *ConnectionManager, logger zerolog.Logger) {
	defer func() {
		manager.UnregisterClient(c)
		_ = c.Conn.Close()
		logger.Debug().Msg("readPump finished")
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}
		logger.Debug().Msg("Message from client ignored")
	}
}

// writePump отправляет сообщения из очереди, по одному JSON на фрейм.
func (c *Client) writePump(logger zerolog.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
		logger.Debug().Msg("writePump finished")
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error().Err(err).Msg("Failed to write message")
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Warn().Err(err).Msg("Failed to send ping")
				return
			}
		}
	}
}
