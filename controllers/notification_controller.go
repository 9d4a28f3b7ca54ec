package controllers

import (
	"hotelbooking/errors"
	"hotelbooking/response"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifier notification.Service
	logger   logger.Logger
}

type NotificationControllerOptions struct {
	Notifier notification.Service
	Logger   logger.Logger
}

func NewNotificationController(opts NotificationControllerOptions) *NotificationController {
	if opts.Logger == nil {
		opts.Logger = logger.Discard
	}
	return &NotificationController{notifier: opts.Notifier, logger: opts.Logger}
}

type broadcastRequest struct {
	Message   string `json:"message" binding:"required,max=500"`
	SessionID string `json:"sessionId" binding:"omitempty,uuid"`
}

// POST /notifications/broadcast (admin)
// Có sessionId thì chỉ gửi cho tab đó, không thì gửi mọi kết nối
func (ctrl *NotificationController) Broadcast(c *gin.Context) {
	var req broadcastRequest
	if !bindJSON(c, &req) {
		return
	}
	msg := notification.NewMessageBuilder("announcement").Info(req.Message).Build()

	var err error
	if req.SessionID != "" {
		err = ctrl.notifier.SendToSession(req.SessionID, msg)
	} else {
		err = ctrl.notifier.SendMessage(msg)
	}
	if err != nil {
		ctrl.logger.Error("broadcast: %v", err)
		response.FromError(c, errors.NewAppError(errors.ErrCodeUpstream, "Không thể gửi thông báo", err), nil)
		return
	}
	response.Success(c, req.Message)
}
