package notification

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

// SessionKey key lưu session id trên kết nối websocket
const SessionKey = "sessionId"

type Service interface {
	SendMessage(message string) error
	SendToSession(sessionID, message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// SendToSession chỉ gửi cho các kết nối của một browser session
func (s *MelodyService) SendToSession(sessionID, message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.BroadcastFilter([]byte(message), func(sess *melody.Session) bool {
		v, ok := sess.Get(SessionKey)
		return ok && v == sessionID
	})
}

// BindSession gắn session id (query ?sessionId=) vào kết nối khi mở websocket
func BindSession(m *melody.Melody) {
	m.HandleConnect(func(sess *melody.Session) {
		if id := sess.Request.URL.Query().Get(SessionKey); id != "" {
			sess.Set(SessionKey, id)
		}
	})
}

// Toast thông báo hiển thị trên trình duyệt
type Toast struct {
	Type          string `json:"type"`
	Level         string `json:"level"`
	FormID        string `json:"formId,omitempty"`
	ReservationID string `json:"reservationId,omitempty"`
	Message       string `json:"message"`
}

type MessageBuilder struct {
	toast Toast
}

func NewMessageBuilder(kind string) *MessageBuilder {
	return &MessageBuilder{toast: Toast{Type: kind, Level: "info"}}
}

func (b *MessageBuilder) Success(message string) *MessageBuilder {
	b.toast.Level = "success"
	b.toast.Message = message
	return b
}

func (b *MessageBuilder) Failure(message string) *MessageBuilder {
	b.toast.Level = "error"
	b.toast.Message = message
	return b
}

func (b *MessageBuilder) Info(message string) *MessageBuilder {
	b.toast.Level = "info"
	b.toast.Message = message
	return b
}

func (b *MessageBuilder) Form(formID string) *MessageBuilder {
	b.toast.FormID = formID
	return b
}

func (b *MessageBuilder) Reservation(id string) *MessageBuilder {
	b.toast.ReservationID = id
	return b
}

func (b *MessageBuilder) Build() string {
	raw, err := json.Marshal(b.toast)
	if err != nil {
		return b.toast.Message
	}
	return string(raw)
}
