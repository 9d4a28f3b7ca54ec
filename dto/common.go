package dto

import "hotelbooking/response"

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// PageQuery tham số phân trang trên query string
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Normalize gán mặc định page=1, limit=10
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
}

// NewPaginated gói data kèm phân trang
func NewPaginated[T any](data T, page, limit, total int) PaginatedResponse[T] {
	return PaginatedResponse[T]{
		Data:       data,
		Pagination: response.Pagination{Page: page, Limit: limit, Total: total},
	}
}
