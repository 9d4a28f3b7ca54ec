package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	facade *services.BookingFacade
	logger logger.Logger
}

type BookingControllerOptions struct {
	Facade *services.BookingFacade
	Logger logger.Logger
}

func NewBookingController(opts BookingControllerOptions) *BookingController {
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	return &BookingController{facade: opts.Facade, logger: opts.Logger}
}

// GET /rooms/:id
func (ctrl *BookingController) GetRoom(c *gin.Context) {
	room, err := ctrl.facade.LoadRoom(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewRoomResponse(room))
}

// GET /rooms/:id/calendar?month=2025-07
func (ctrl *BookingController) Calendar(c *gin.Context) {
	var q dto.CalendarQuery
	if !bindQuery(c, &q) {
		return
	}
	month, err := validator.ParseMonth(q.Month, ctrl.facade.Today())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	cal, err := ctrl.facade.RoomCalendar(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"), month)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, cal)
}

// POST /bookings/quote
func (ctrl *BookingController) Quote(c *gin.Context) {
	var req dto.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(ctrl.facade.Location())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	quote, err := ctrl.facade.Quote(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewQuoteResponse(quote))
}

// POST /bookings/validate
// Luôn trả 200 kèm trạng thái form, lựa chọn sai nằm trong state=invalid
func (ctrl *BookingController) Validate(c *gin.Context) {
	var req dto.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(ctrl.facade.Location())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	snap, err := ctrl.facade.Validate(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewFlowResponse(snap))
}

// POST /bookings
func (ctrl *BookingController) Submit(c *gin.Context) {
	var req dto.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := req.ToInput(ctrl.facade.Location())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	sess := middleware.CurrentSession(c)
	snap, err := ctrl.facade.Submit(c.Request.Context(), sess, in)
	if err != nil {
		ctrl.logger.Warn("submit form=%s room=%s session=%s: %v", in.FormID, in.RoomID, sess.ID, err)
		var data interface{}
		if snap.FormID != "" {
			data = dto.NewFlowResponse(snap)
		}
		response.FromError(c, err, data)
		return
	}
	response.Created(c, dto.NewFlowResponse(snap))
}

// PUT /bookings/draft
func (ctrl *BookingController) SaveDraft(c *gin.Context) {
	var req dto.DraftRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := req.ToDraft(ctrl.facade.Location())
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	merged, err := ctrl.facade.UpdateDraft(c.Request.Context(), middleware.CurrentSession(c), draft)
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	response.Success(c, dto.NewDraftResponse(merged))
}

// GET /bookings/draft/:roomId
func (ctrl *BookingController) GetDraft(c *gin.Context) {
	draft, err := ctrl.facade.Draft(c.Request.Context(), middleware.CurrentSession(c), c.Param("roomId"))
	if err != nil {
		response.FromError(c, err, nil)
		return
	}
	if draft == nil {
		response.FromError(c, errors.NewAppError(errors.ErrCodeNotFound, "Chưa có bản nháp", nil), nil)
		return
	}
	response.Success(c, dto.NewDraftResponse(draft))
}
