package hotelapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"hotelbooking/models"
	"hotelbooking/services/logger"

	"github.com/goccy/go-json"
)

const (
	// HeaderIdempotencyKey form id gửi kèm khi tạo reservation
	HeaderIdempotencyKey = "Idempotency-Key"

	maxErrorBody = 4 << 10
)

// Client REST client cho hotel API
type Client struct {
	baseURL    string
	httpClient *http.Client
	loc        *time.Location
	log        logger.Logger
}

// Option tùy chọn khi tạo Client
type Option func(*Client)

// WithHTTPClient dùng http.Client riêng (test, transport tùy chỉnh)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocation múi giờ khách sạn dùng để đọc ngày dạng RFC3339
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithLogger gắn logger
func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient tạo client, timeout áp dụng cho từng request
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		loc:        time.UTC,
		log:        logger.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, sess Session, method, path string, query url.Values, body interface{}, headers map[string]string, out interface{}) error {
	op := method + " " + path

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Op: op, Err: fmt.Errorf("encode body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &APIError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s failed after %s: %v", op, time.Since(start), err)
		return &APIError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.log.Debug("%s -> %d (%s)", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessage lấy thông báo lỗi từ body upstream, chấp nhận {message}, {mess}, {error}
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Mess    string `json:"mess"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		for _, m := range []string{body.Message, body.Mess, body.Error} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(raw))
}

// GetRoom GET /rooms/:id
func (c *Client) GetRoom(ctx context.Context, sess Session, roomID string) (models.Room, error) {
	var w wireRoom
	if err := c.do(ctx, sess, http.MethodGet, "/rooms/"+url.PathEscape(roomID), nil, nil, nil, &w); err != nil {
		return models.Room{}, err
	}
	return c.toRoom(w), nil
}

// ListHotelRooms GET /hotels/:id/rooms
func (c *Client) ListHotelRooms(ctx context.Context, sess Session, hotelID string) ([]models.Room, error) {
	var ws []wireRoom
	if err := c.do(ctx, sess, http.MethodGet, "/hotels/"+url.PathEscape(hotelID)+"/rooms", nil, nil, nil, &ws); err != nil {
		return nil, err
	}
	rooms := make([]models.Room, 0, len(ws))
	for _, w := range ws {
		rooms = append(rooms, c.toRoom(w))
	}
	return rooms, nil
}

// ListRoomReservations GET /rooms/:id/reservations.
// Reservation không đọc được ngày vẫn được trả về với DatesUnreadable.
func (c *Client) ListRoomReservations(ctx context.Context, sess Session, roomID string) ([]models.Reservation, error) {
	var ws []wireReservation
	if err := c.do(ctx, sess, http.MethodGet, "/rooms/"+url.PathEscape(roomID)+"/reservations", nil, nil, nil, &ws); err != nil {
		return nil, err
	}
	return c.toReservations(ws, true), nil
}

// ListHotelReservations GET /hotels/:id/reservations
func (c *Client) ListHotelReservations(ctx context.Context, sess Session, hotelID string) ([]models.Reservation, error) {
	var ws []wireReservation
	if err := c.do(ctx, sess, http.MethodGet, "/hotels/"+url.PathEscape(hotelID)+"/reservations", nil, nil, nil, &ws); err != nil {
		return nil, err
	}
	return c.toReservations(ws, false), nil
}

// GetReservation GET /reservations/:id
func (c *Client) GetReservation(ctx context.Context, sess Session, id string) (models.Reservation, error) {
	var w wireReservation
	if err := c.do(ctx, sess, http.MethodGet, "/reservations/"+url.PathEscape(id), nil, nil, nil, &w); err != nil {
		return models.Reservation{}, err
	}
	res, err := c.toReservation(w)
	if err != nil {
		return models.Reservation{}, &APIError{Op: "GET /reservations/" + id, Err: err}
	}
	return res, nil
}

// ListMyReservations GET /reservations?user=me
func (c *Client) ListMyReservations(ctx context.Context, sess Session) ([]models.Reservation, error) {
	var ws []wireReservation
	query := url.Values{"user": {"me"}}
	if err := c.do(ctx, sess, http.MethodGet, "/reservations", query, nil, nil, &ws); err != nil {
		return nil, err
	}
	return c.toReservations(ws, false), nil
}

// CreateReservation POST /reservations, idempotencyKey là form id
func (c *Client) CreateReservation(ctx context.Context, sess Session, payload ReservationPayload, idempotencyKey string) (models.Reservation, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{HeaderIdempotencyKey: idempotencyKey}
	}
	var w wireReservation
	if err := c.do(ctx, sess, http.MethodPost, "/reservations", nil, payload, headers, &w); err != nil {
		return models.Reservation{}, err
	}
	res, err := c.toReservation(w)
	if err != nil {
		return models.Reservation{}, &APIError{Op: "POST /reservations", Err: err}
	}
	return res, nil
}

// UpdateReservation PUT /reservations/:id
func (c *Client) UpdateReservation(ctx context.Context, sess Session, id string, payload ReservationPayload) (models.Reservation, error) {
	var w wireReservation
	if err := c.do(ctx, sess, http.MethodPut, "/reservations/"+url.PathEscape(id), nil, payload, nil, &w); err != nil {
		return models.Reservation{}, err
	}
	res, err := c.toReservation(w)
	if err != nil {
		return models.Reservation{}, &APIError{Op: "PUT /reservations/" + id, Err: err}
	}
	return res, nil
}

// UpdateReservationStatus PATCH /reservations/:id/status
func (c *Client) UpdateReservationStatus(ctx context.Context, sess Session, id, status string) error {
	return c.do(ctx, sess, http.MethodPatch, "/reservations/"+url.PathEscape(id)+"/status", nil, statusPayload{Status: status}, nil, nil)
}

// ListHotels GET /hotels
func (c *Client) ListHotels(ctx context.Context, sess Session) ([]models.Hotel, error) {
	var ws []wireHotel
	if err := c.do(ctx, sess, http.MethodGet, "/hotels", nil, nil, nil, &ws); err != nil {
		return nil, err
	}
	hotels := make([]models.Hotel, 0, len(ws))
	for _, w := range ws {
		hotels = append(hotels, toHotel(w))
	}
	return hotels, nil
}

// GetHotel GET /hotels/:id
func (c *Client) GetHotel(ctx context.Context, sess Session, hotelID string) (models.Hotel, error) {
	var w wireHotel
	if err := c.do(ctx, sess, http.MethodGet, "/hotels/"+url.PathEscape(hotelID), nil, nil, nil, &w); err != nil {
		return models.Hotel{}, err
	}
	return toHotel(w), nil
}

// ListHotelServices GET /hotels/:id/services
func (c *Client) ListHotelServices(ctx context.Context, sess Session, hotelID string) ([]models.Service, error) {
	var ws []wireService
	if err := c.do(ctx, sess, http.MethodGet, "/hotels/"+url.PathEscape(hotelID)+"/services", nil, nil, nil, &ws); err != nil {
		return nil, err
	}
	services := make([]models.Service, 0, len(ws))
	for _, w := range ws {
		services = append(services, toService(w))
	}
	return services, nil
}

// GetInvoice GET /invoices/:id
func (c *Client) GetInvoice(ctx context.Context, sess Session, id string) (models.Invoice, error) {
	var w wireInvoice
	if err := c.do(ctx, sess, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, nil, nil, &w); err != nil {
		return models.Invoice{}, err
	}
	return toInvoice(w), nil
}
