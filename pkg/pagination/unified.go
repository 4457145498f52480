package pagination

// UnifiedPaginationParams is what a list endpoint accepts. A cursor or a limit
// switches the request to keyset paging.
type UnifiedPaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`

	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

func (u *UnifiedPaginationParams) IsCursorBased() bool {
	return u.Cursor != "" || u.Limit > 0
}

func (u *UnifiedPaginationParams) ToPaginationParams() *PaginationParams {
	p := &PaginationParams{Page: u.Page, PerPage: u.PerPage}
	p.Validate()
	return p
}

// ToCursorParams falls back to per_page when no limit is given.
func (u *UnifiedPaginationParams) ToCursorParams() *CursorParams {
	limit := u.Limit
	if limit == 0 {
		limit = u.PerPage
	}
	p := &CursorParams{Cursor: u.Cursor, Direction: u.Direction, Limit: limit}
	p.Validate()
	return p
}

// UnifiedPaginatedResult flattens either paging style into one shape. Only the
// fields of the style in use are set.
type UnifiedPaginatedResult[T any] struct {
	Items []T `json:"items"`

	CurrentPage *int   `json:"current_page,omitempty"`
	TotalPages  *int   `json:"total_pages,omitempty"`
	Total       *int64 `json:"total,omitempty"`

	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`

	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
	PerPage int  `json:"per_page"`
}

func FromPage[T any](r *PaginatedResult[T]) *UnifiedPaginatedResult[T] {
	p := r.Pagination
	return &UnifiedPaginatedResult[T]{
		Items:       r.Items,
		CurrentPage: &p.CurrentPage,
		TotalPages:  &p.TotalPages,
		Total:       &p.Total,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
		PerPage:     p.PerPage,
	}
}

func FromCursor[T any](r *CursorPaginatedResult[T]) *UnifiedPaginatedResult[T] {
	p := r.Pagination
	return &UnifiedPaginatedResult[T]{
		Items:      r.Items,
		NextCursor: p.NextCursor,
		PrevCursor: p.PrevCursor,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
		PerPage:    p.Limit,
	}
}
