package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/response"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

// bindJSON bind body, lỗi thì ghi response và trả false
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.FromError(c, validator.BindingError(err), nil)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.FromError(c, validator.BindingError(err), nil)
		return false
	}
	return true
}

// paginate cắt trang từ danh sách đã có trong bộ nhớ
func paginate[T any](items []T, q dto.PageQuery) ([]T, int) {
	q.Normalize()
	total := len(items)
	start := (q.Page - 1) * q.Limit
	if start >= total {
		return []T{}, total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return items[start:end], total
}
