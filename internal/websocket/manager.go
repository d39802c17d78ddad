package websocket

import (
	"encoding/json"
	"sync"

	"troubleshoot-titans/internal/interfaces"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const sendBufferSize = 64

// Client - одно websocket-соединение пользователя.
type Client struct {
	UserID    string
	Conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

func newClient(userID string, conn *websocket.Conn) *Client {
	return &Client{UserID: userID, Conn: conn, send: make(chan []byte, sendBufferSize)}
}

func (c *Client) closeSend() {
	c.closeOnce.Do(func() { close(c.send) })
}

// ConnectionManager хранит по одному соединению на пользователя и доставляет ему сообщения.
type ConnectionManager struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  zerolog.Logger
}

var _ interfaces.ClientNotifier = (*ConnectionManager)(nil)

func NewConnectionManager(logger zerolog.Logger) *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[string]*Client),
		logger:  logger.With().Str("component", "ConnectionManager").Logger(),
	}
}

// RegisterClient регистрирует соединение. Старое соединение пользователя закрывается.
func (m *ConnectionManager) RegisterClient(client *Client) {
	m.mu.Lock()
	old, ok := m.clients[client.UserID]
	m.clients[client.UserID] = client
	m.mu.Unlock()

	if ok {
		m.logger.Info().Str("userID", client.UserID).Msg("Replacing existing connection")
		old.closeSend()
	}
	m.logger.Info().Str("userID", client.UserID).Msg("Client registered")
}

// UnregisterClient удаляет соединение, если оно еще текущее для пользователя.
func (m *ConnectionManager) UnregisterClient(client *Client) {
	m.mu.Lock()
	if current, ok := m.clients[client.UserID]; ok && current == client {
		delete(m.clients, client.UserID)
	}
	m.mu.Unlock()
	client.closeSend()
}

// SendToUser ставит сообщение в очередь соединения. Офлайн-пользователю сообщение не доставляется.
func (m *ConnectionManager) SendToUser(userID string, msg interfaces.ClientMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		m.logger.Error().Err(err).Str("userID", userID).Str("type", msg.Type).Msg("Failed to marshal client message")
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[userID]
	if !ok {
		m.logger.Debug().Str("userID", userID).Str("type", msg.Type).Msg("User is offline, message dropped")
		return
	}
	select {
	case client.send <- payload:
	default:
		m.logger.Warn().Str("userID", userID).Str("type", msg.Type).Msg("Send queue is full, message dropped")
	}
}

// Connected возвращает число подключенных пользователей.
func (m *ConnectionManager) Connected() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// CloseAll закрывает все соединения при остановке сервера.
func (m *ConnectionManager) CloseAll() {
	m.mu.Lock()
	clients := m.clients
	m.clients = make(map[string]*Client)
	m.mu.Unlock()

	for _, c := range clients {
		c.closeSend()
	}
}
