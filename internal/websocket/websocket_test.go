package websocket_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"troubleshoot-titans/internal/interfaces"
	"troubleshoot-titans/internal/models"
	ws "troubleshoot-titans/internal/websocket"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerifier struct{}

func (staticVerifier) VerifyToken(_ context.Context, token string) (*models.Session, error) {
	if token == "good" {
		return &models.Session{UserID: "user-1"}, nil
	}
	return nil, models.ErrTokenInvalid
}

func startServer(t *testing.T) (*ws.ConnectionManager, string) {
	t.Helper()
	manager := ws.NewConnectionManager(zerolog.Nop())
	handler := ws.NewHandler(manager, staticVerifier{}, nil, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	t.Cleanup(func() {
		manager.CloseAll()
		srv.Close()
	})
	return manager, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestServeWS_RejectsBadToken(t *testing.T) {
	_, url := startServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(url+"?token=bad", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnectionManager_DeliversToConnectedUser(t *testing.T) {
	manager, url := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return manager.Connected() == 1 }, 2*time.Second, 10*time.Millisecond)

	manager.SendToUser("user-1", interfaces.ClientMessage{
		Type:    interfaces.MessageTypeNotification,
		Payload: interfaces.Notification{Level: "error", Message: "progress not saved"},
	})
	// Офлайн-пользователь: сообщение просто отбрасывается
	manager.SendToUser("user-2", interfaces.ClientMessage{Type: interfaces.MessageTypeGameState})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string                  `json:"type"`
		Payload interfaces.Notification `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, interfaces.MessageTypeNotification, got.Type)
	assert.Equal(t, "progress not saved", got.Payload.Message)
}

func TestConnectionManager_UnregistersOnDisconnect(t *testing.T) {
	manager, url := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return manager.Connected() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return manager.Connected() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestConnectionManager_NewConnectionReplacesOld(t *testing.T) {
	manager, url := startServer(t)

	first, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, func() bool { return manager.Connected() == 1 }, 2*time.Second, 10*time.Millisecond)

	second, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	defer second.Close()

	// Старое соединение получает close-фрейм
	require.NoError(t, first.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = first.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 1, manager.Connected())
}
