package services

import (
	"context"
	"io"

	"hotelbooking/errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// ImageUploader tải ảnh lên kho lưu trữ, trả về URL công khai và public id
type ImageUploader interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (url, publicID string, err error)
}

// CloudinaryUploader tải ảnh khách sạn/phòng lên Cloudinary
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cld}
}

func (u *CloudinaryUploader) UploadImage(ctx context.Context, file io.Reader, folder string) (string, string, error) {
	if u == nil || u.cld == nil {
		return "", "", errors.NewAppError(errors.ErrCodeUpstream, "Chưa cấu hình Cloudinary", nil)
	}
	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", "", errors.NewAppError(errors.ErrCodeUpstream, "Upload thất bại", err)
	}
	if resp.Error.Message != "" {
		return "", "", errors.NewAppError(errors.ErrCodeUpstream, "Upload thất bại: "+resp.Error.Message, nil)
	}
	return resp.SecureURL, resp.PublicID, nil
}
