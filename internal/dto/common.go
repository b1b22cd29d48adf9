package dto

// ListQuery carries the pagination and sorting query parameters shared by the
// list endpoints.
type ListQuery struct {
	Search    string `form:"search"`
	Page      int    `form:"page,default=1" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Normalize clamps the query to safe defaults.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
}
