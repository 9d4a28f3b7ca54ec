package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

var uploadFolders = map[string]bool{"hotels": true, "rooms": true}

type UploadController struct {
	uploader services.ImageUploader
	logger   logger.Logger
}

func NewUploadController(uploader services.ImageUploader, log logger.Logger) *UploadController {
	if log == nil {
		log = logger.Discard
	}
	return &UploadController{uploader: uploader, logger: log}
}

// POST /uploads/images?folder=rooms, field "image"
func (ctrl *UploadController) UploadImage(c *gin.Context) {
	folder := c.DefaultQuery("folder", "hotels")
	if !uploadFolders[folder] {
		response.FromError(c, errors.NewAppError(errors.ErrCodeValidation, "Thư mục phải là hotels hoặc rooms", nil), nil)
		return
	}
	header, err := c.FormFile("image")
	if err != nil {
		response.FromError(c, errors.NewAppError(errors.ErrCodeRequiredField, "Ảnh không được để trống", err), nil)
		return
	}
	if err := validator.ValidateImage(header); err != nil {
		response.FromError(c, err, nil)
		return
	}
	file, err := header.Open()
	if err != nil {
		response.FromError(c, errors.NewAppError(errors.ErrCodeInvalidFormat, "Không thể đọc ảnh", err), nil)
		return
	}
	defer file.Close()

	url, publicID, err := ctrl.uploader.UploadImage(c.Request.Context(), file, folder)
	if err != nil {
		ctrl.logger.Error("upload %s: %v", header.Filename, err)
		response.FromError(c, err, nil)
		return
	}
	response.Created(c, dto.UploadResponse{URL: url, PublicID: publicID})
}
