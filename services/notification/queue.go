package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"hotelbooking/services/logger"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ReservationConfirmedQueue queue nhận sự kiện đặt phòng thành công
const ReservationConfirmedQueue = "reservation.confirmed"

// ReservationConfirmedEvent payload gửi lên broker
type ReservationConfirmedEvent struct {
	ReservationID string `json:"reservationId"`
	FormID        string `json:"formId"`
	UserID        string `json:"userId"`
	HotelID       string `json:"hotelId"`
	RoomID        string `json:"roomId"`
	CheckInDate   string `json:"checkInDate"`
	CheckOutDate  string `json:"checkOutDate"`
	Nights        int    `json:"nights"`
	GrandTotal    string `json:"grandTotal"`
	ConfirmedAt   string `json:"confirmedAt"`
}

// Publisher gửi sự kiện ra ngoài
type Publisher interface {
	PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error
}

// AMQPPublisher giữ một kết nối tới RabbitMQ, tự kết nối lại khi publish lỗi
type AMQPPublisher struct {
	url  string
	log  logger.Logger
	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher kết nối tới broker và khai báo queue durable
func NewAMQPPublisher(url string, log logger.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(ReservationConfirmedQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// PublishReservationConfirmed gửi sự kiện dạng persistent JSON
func (p *AMQPPublisher) PublishReservationConfirmed(ctx context.Context, event ReservationConfirmedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    event.FormID,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for attempt := 0; attempt < 2; attempt++ {
		if p.ch == nil || p.conn == nil || p.conn.IsClosed() {
			p.closeLocked()
			if err = p.connect(); err != nil {
				continue
			}
		}
		err = p.ch.PublishWithContext(ctx, "", ReservationConfirmedQueue, false, false, msg)
		if err == nil {
			return nil
		}
		p.log.Warn("rabbitmq: publish failed, reconnecting: %v", err)
		p.closeLocked()
	}
	return err
}

// Close đóng kết nối
func (p *AMQPPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}
