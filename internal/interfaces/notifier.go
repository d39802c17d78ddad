package interfaces

// Типы сообщений, которые сервер отправляет клиенту по websocket.
const (
	MessageTypeGameState    = "game_state"
	MessageTypeNotification = "notification"
)

// ClientMessage - сообщение для клиента.
type ClientMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Notification - кратковременное уведомление для пользователя.
type Notification struct {
	Level   string `json:"level"` // info, error
	Message string `json:"message"`
}

// ProgressSaveFailedMessage отправляется, когда завершение уже не будет записано.
const ProgressSaveFailedMessage = "Your progress could not be saved. Complete the item again to get credit."

// ErrorNotification собирает уведомление об ошибке.
func ErrorNotification(message string) ClientMessage {
	return ClientMessage{
		Type:    MessageTypeNotification,
		Payload: Notification{Level: "error", Message: message},
	}
}

// ClientNotifier доставляет сообщения подключенному пользователю.
// Если пользователь не подключен, сообщение отбрасывается.
//
//go:generate mockery --name ClientNotifier --output ./mocks --outpkg mocks --case=underscore
type ClientNotifier interface {
	SendToUser(userID string, msg ClientMessage)
}
