package dto

import (
	"time"

	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services"
	"hotelbooking/services/availability"
	"hotelbooking/types"
)

// ServiceSelection dịch vụ chọn kèm số lượng
type ServiceSelection struct {
	ServiceID string `json:"service" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// BookingRequest là DTO cho request báo giá/kiểm tra/đặt phòng
type BookingRequest struct {
	FormID   string             `json:"formId" binding:"omitempty,max=64"`
	RoomID   string             `json:"roomId" binding:"required"`
	CheckIn  string             `json:"checkIn" binding:"required,isodate"`
	CheckOut string             `json:"checkOut" binding:"required,isodate"`
	Guests   int                `json:"guests" binding:"omitempty,min=1,max=50"`
	Services []ServiceSelection `json:"services" binding:"omitempty,dive"`
}

// ToInput đọc ngày theo múi giờ khách sạn
func (r BookingRequest) ToInput(loc *time.Location) (services.BookingInput, error) {
	checkIn, err := parseDay(r.CheckIn, loc)
	if err != nil {
		return services.BookingInput{}, err
	}
	checkOut, err := parseDay(r.CheckOut, loc)
	if err != nil {
		return services.BookingInput{}, err
	}
	return services.BookingInput{
		FormID:   r.FormID,
		RoomID:   r.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   r.Guests,
		Services: toServiceRefs(r.Services),
	}, nil
}

// DraftRequest cập nhật một phần form, trường bỏ trống giữ giá trị cũ
type DraftRequest struct {
	FormID   string             `json:"formId" binding:"omitempty,max=64"`
	RoomID   string             `json:"roomId" binding:"required"`
	CheckIn  *string            `json:"checkIn" binding:"omitempty,isodate"`
	CheckOut *string            `json:"checkOut" binding:"omitempty,isodate"`
	Guests   *int               `json:"guests" binding:"omitempty,min=1,max=50"`
	Services []ServiceSelection `json:"services" binding:"omitempty,dive"`
}

func (r DraftRequest) ToDraft(loc *time.Location) (*services.BookingDraft, error) {
	draft := &services.BookingDraft{
		FormID: r.FormID,
		RoomID: r.RoomID,
		Guests: r.Guests,
	}
	if r.Services != nil {
		draft.Services = toServiceRefs(r.Services)
	}
	if r.CheckIn != nil {
		d, err := parseDay(*r.CheckIn, loc)
		if err != nil {
			return nil, err
		}
		draft.CheckIn = &d
	}
	if r.CheckOut != nil {
		d, err := parseDay(*r.CheckOut, loc)
		if err != nil {
			return nil, err
		}
		draft.CheckOut = &d
	}
	return draft, nil
}

// DraftResponse bản nháp form đặt phòng
type DraftResponse struct {
	FormID    string             `json:"formId"`
	RoomID    string             `json:"roomId"`
	CheckIn   string             `json:"checkIn,omitempty"`
	CheckOut  string             `json:"checkOut,omitempty"`
	Guests    int                `json:"guests,omitempty"`
	Services  []ServiceSelection `json:"services"`
	LastError string             `json:"lastError,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func NewDraftResponse(d *services.BookingDraft) *DraftResponse {
	if d == nil {
		return nil
	}
	out := &DraftResponse{
		FormID:    d.FormID,
		RoomID:    d.RoomID,
		Services:  fromServiceRefs(d.Services),
		LastError: d.LastError,
		UpdatedAt: d.UpdatedAt,
	}
	if d.CheckIn != nil {
		out.CheckIn = d.CheckIn.Format(availability.DateLayout)
	}
	if d.CheckOut != nil {
		out.CheckOut = d.CheckOut.Format(availability.DateLayout)
	}
	if d.Guests != nil {
		out.Guests = *d.Guests
	}
	return out
}

// ServiceLineResponse một dòng dịch vụ trong báo giá
type ServiceLineResponse struct {
	ServiceID string      `json:"serviceId"`
	Name      string      `json:"name"`
	UnitPrice types.Money `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
	LineTotal types.Money `json:"lineTotal"`
}

// QuoteResponse báo giá, số tiền luôn có 2 chữ số thập phân
type QuoteResponse struct {
	Nights        int                   `json:"nights"`
	PricePerNight types.Money           `json:"pricePerNight"`
	RoomTotal     types.Money           `json:"roomTotal"`
	ServiceLines  []ServiceLineResponse `json:"serviceLines"`
	ServicesTotal types.Money           `json:"servicesTotal"`
	GrandTotal    types.Money           `json:"grandTotal"`
}

func NewQuoteResponse(q availability.Quote) QuoteResponse {
	lines := make([]ServiceLineResponse, len(q.ServiceLines))
	for i, l := range q.ServiceLines {
		lines[i] = ServiceLineResponse{
			ServiceID: l.ServiceID,
			Name:      l.Name,
			UnitPrice: types.NewMoney(l.UnitPrice),
			Quantity:  l.Quantity,
			LineTotal: types.NewMoney(l.LineTotal),
		}
	}
	return QuoteResponse{
		Nights:        q.Nights,
		PricePerNight: types.NewMoney(q.PricePerNight),
		RoomTotal:     types.NewMoney(q.RoomTotal),
		ServiceLines:  lines,
		ServicesTotal: types.NewMoney(q.ServicesTotal),
		GrandTotal:    types.NewMoney(q.GrandTotal),
	}
}

// RangeResponse khoảng ngày dạng 2006-01-02
type RangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func NewRangeResponse(r models.DateRange) RangeResponse {
	return RangeResponse{Start: r.Start.Format(availability.DateLayout), End: r.End.Format(availability.DateLayout)}
}

// FlowResponse trạng thái form đặt phòng trả về cho trình duyệt
type FlowResponse struct {
	FormID      string               `json:"formId"`
	State       string               `json:"state"`
	CheckIn     string               `json:"checkIn,omitempty"`
	CheckOut    string               `json:"checkOut,omitempty"`
	Guests      int                  `json:"guests"`
	Services    []ServiceSelection   `json:"services"`
	CanSubmit   bool                 `json:"canSubmit"`
	ErrorCode   string               `json:"errorCode,omitempty"`
	Message     string               `json:"message,omitempty"`
	Conflict    *RangeResponse       `json:"conflict,omitempty"`
	Quote       *QuoteResponse       `json:"quote,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`

	UnreadableReservations int `json:"unreadableReservations,omitempty"`
}

func NewFlowResponse(s services.FlowSnapshot) FlowResponse {
	out := FlowResponse{
		FormID:    s.FormID,
		State:     string(s.State),
		Guests:    s.Guests,
		Services:  make([]ServiceSelection, len(s.Services)),
		CanSubmit: s.CanSubmit,
		ErrorCode: string(s.ErrorCode),
		Message:   s.Message,

		UnreadableReservations: s.UnreadableReservations,
	}
	for i, sel := range s.Services {
		out.Services[i] = ServiceSelection{ServiceID: sel.Service.ID, Quantity: sel.Quantity}
	}
	if s.CheckIn != nil {
		out.CheckIn = s.CheckIn.Format(availability.DateLayout)
	}
	if s.CheckOut != nil {
		out.CheckOut = s.CheckOut.Format(availability.DateLayout)
	}
	if s.Conflict != nil {
		r := NewRangeResponse(*s.Conflict)
		out.Conflict = &r
	}
	if s.Quote != nil {
		q := NewQuoteResponse(*s.Quote)
		out.Quote = &q
	}
	if s.Reservation != nil {
		r := NewReservationResponse(*s.Reservation)
		out.Reservation = &r
	}
	return out
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	d, err := availability.ParseDate(s, loc)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "Ngày không hợp lệ: "+s, err)
	}
	return d, nil
}

func toServiceRefs(in []ServiceSelection) []models.ServiceRef {
	refs := make([]models.ServiceRef, len(in))
	for i, s := range in {
		refs[i] = models.ServiceRef{ServiceID: s.ServiceID, Quantity: s.Quantity}
	}
	return refs
}

func fromServiceRefs(in []models.ServiceRef) []ServiceSelection {
	out := make([]ServiceSelection, len(in))
	for i, r := range in {
		out[i] = ServiceSelection{ServiceID: r.ServiceID, Quantity: r.Quantity}
	}
	return out
}
