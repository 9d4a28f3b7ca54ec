package hotelapi

import (
	"bytes"
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/availability"
	"hotelbooking/types"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ref id tham chiếu, upstream có thể trả chuỗi id hoặc object đã populate {"_id": ...}
type ref string

func (r *ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = ref(obj.ID)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ref(s)
	return nil
}

type wireRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type wireRoom struct {
	ID              string      `json:"_id"`
	Hotel           ref         `json:"hotel"`
	Name            string      `json:"name"`
	Type            string      `json:"type"`
	PricePerNight   types.Money `json:"price_per_night"`
	Capacity        int         `json:"capacity"`
	NonAvailability []wireRange `json:"nonAvailability"`
	Available       *bool       `json:"available"`
	State           *bool       `json:"state"`
	Images          []string    `json:"images"`
}

type wireServiceRef struct {
	Service  ref `json:"service"`
	Quantity int `json:"quantity"`
}

type wireReservation struct {
	ID           string           `json:"_id"`
	User         ref              `json:"user"`
	Hotel        ref              `json:"hotel"`
	Room         ref              `json:"room"`
	CheckInDate  string           `json:"checkInDate"`
	CheckOutDate string           `json:"checkOutDate"`
	Guests       int              `json:"guests"`
	Services     []wireServiceRef `json:"services"`
	Status       string           `json:"status"`
	CreatedAt    string           `json:"createdAt"`
	UpdatedAt    string           `json:"updatedAt"`
}

type wireService struct {
	ID        string      `json:"_id"`
	Hotel     ref         `json:"hotel"`
	Name      string      `json:"name"`
	Price     types.Money `json:"price"`
	Category  string      `json:"category"`
	Available *bool       `json:"available"`
}

type wireHotel struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	City        string   `json:"city"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Stars       int      `json:"stars"`
	Images      []string `json:"images"`
	State       *bool    `json:"state"`
}

type wireInvoice struct {
	ID          string      `json:"_id"`
	InvoiceCode string      `json:"invoiceCode"`
	Reservation ref         `json:"reservation"`
	GuestName   string      `json:"guestName"`
	GuestEmail  string      `json:"guestEmail"`
	PaidAmount  types.Money `json:"paidAmount"`
	IssuedAt    string      `json:"issuedAt"`
}

// ReservationPayload body của POST /reservations và PUT /reservations/:id
type ReservationPayload struct {
	User         string              `json:"user"`
	Hotel        string              `json:"hotel"`
	Room         string              `json:"room"`
	CheckInDate  string              `json:"checkInDate"`
	CheckOutDate string              `json:"checkOutDate"`
	Guests       int                 `json:"guests"`
	Services     []models.ServiceRef `json:"services"`
}

type statusPayload struct {
	Status string `json:"status"`
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func parseInstant(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Client) toRoom(w wireRoom) models.Room {
	room := models.Room{
		ID:            w.ID,
		HotelID:       string(w.Hotel),
		Name:          w.Name,
		Type:          w.Type,
		PricePerNight: w.PricePerNight.Decimal,
		Capacity:      w.Capacity,
		Available:     boolOr(w.Available, true),
		State:         boolOr(w.State, true),
		Images:        w.Images,
	}
	for _, r := range w.NonAvailability {
		start, err1 := availability.ParseDate(r.Start, c.loc)
		end, err2 := availability.ParseDate(r.End, c.loc)
		if err1 != nil || err2 != nil {
			c.log.Warn("room %s: bỏ qua khoảng nonAvailability không đọc được %q..%q", w.ID, r.Start, r.End)
			continue
		}
		room.NonAvailability = append(room.NonAvailability, models.DateRange{Start: start, End: end})
	}
	return room
}

func (c *Client) toReservation(w wireReservation) (models.Reservation, error) {
	checkIn, err := availability.ParseDate(w.CheckInDate, c.loc)
	if err != nil {
		return models.Reservation{}, err
	}
	checkOut, err := availability.ParseDate(w.CheckOutDate, c.loc)
	if err != nil {
		return models.Reservation{}, err
	}
	res := models.Reservation{
		ID:           w.ID,
		UserID:       string(w.User),
		HotelID:      string(w.Hotel),
		RoomID:       string(w.Room),
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       w.Guests,
		Status:       w.Status,
		CreatedAt:    parseInstant(w.CreatedAt),
		UpdatedAt:    parseInstant(w.UpdatedAt),
	}
	if res.Status == "" {
		res.Status = models.ReservationStatusActive
	}
	for _, s := range w.Services {
		res.Services = append(res.Services, models.ServiceRef{ServiceID: string(s.Service), Quantity: s.Quantity})
	}
	return res, nil
}

// toReservations bỏ các reservation không đọc được ngày, keepUnreadable thì giữ lại với DatesUnreadable
func (c *Client) toReservations(ws []wireReservation, keepUnreadable bool) []models.Reservation {
	out := make([]models.Reservation, 0, len(ws))
	for _, w := range ws {
		res, err := c.toReservation(w)
		if err != nil {
			c.log.Error("%s reservation=%s room=%s status=%s: ngày không đọc được: %v",
				errors.ErrCodeMalformedRange, w.ID, string(w.Room), w.Status, err)
			if !keepUnreadable {
				continue
			}
			res = models.Reservation{
				ID:              w.ID,
				UserID:          string(w.User),
				HotelID:         string(w.Hotel),
				RoomID:          string(w.Room),
				Guests:          w.Guests,
				Status:          w.Status,
				DatesUnreadable: true,
			}
			if res.Status == "" {
				res.Status = models.ReservationStatusActive
			}
		}
		out = append(out, res)
	}
	return out
}

func toService(w wireService) models.Service {
	return models.Service{
		ID:        w.ID,
		HotelID:   string(w.Hotel),
		Name:      w.Name,
		Price:     w.Price.Decimal,
		Category:  w.Category,
		Available: boolOr(w.Available, true),
	}
}

func toHotel(w wireHotel) models.Hotel {
	return models.Hotel{
		ID:          w.ID,
		Name:        w.Name,
		City:        w.City,
		Address:     w.Address,
		Description: w.Description,
		Stars:       w.Stars,
		Images:      w.Images,
		State:       boolOr(w.State, true),
	}
}

func toInvoice(w wireInvoice) models.Invoice {
	return models.Invoice{
		ID:            w.ID,
		InvoiceCode:   w.InvoiceCode,
		ReservationID: string(w.Reservation),
		GuestName:     w.GuestName,
		GuestEmail:    w.GuestEmail,
		PaidAmount:    w.PaidAmount.Decimal,
		TotalAmount:   decimal.Zero,
		IssuedAt:      parseInstant(w.IssuedAt),
	}
}
