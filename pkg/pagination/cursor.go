package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"
)

// ErrInvalidCursor is returned for a cursor that does not decode.
var ErrInvalidCursor = errors.New("invalid cursor")

// CursorDirection is the way a keyset walk moves from its cursor.
type CursorDirection string

const (
	CursorDirectionNext CursorDirection = "next"
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the position a keyset page starts after.
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CursorParams are the keyset paging inputs. Cursor is opaque to clients.
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// CursorPagination is the metadata of a keyset page.
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult is a keyset page of items.
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

func DefaultCursorParams() *CursorParams {
	return &CursorParams{Direction: CursorDirectionNext, Limit: DefaultPerPage}
}

// Validate clamps the limit and defaults the direction to next.
func (c *CursorParams) Validate() {
	c.Limit = clampSize(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor returns nil for an empty cursor.
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}

	raw, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var cur Cursor
	if err := json.Unmarshal(raw, &cur); err != nil || cur.ID == "" {
		return nil, ErrInvalidCursor
	}
	return &cur, nil
}

func EncodeCursor(id string, createdAt time.Time) string {
	data, _ := json.Marshal(Cursor{ID: id, CreatedAt: createdAt})
	return base64.URLEncoding.EncodeToString(data)
}

// NewCursorPagination trims items fetched with limit+1 rows back to limit and
// derives the cursors from the first and last item kept.
func NewCursorPagination[T any](items []T, limit int, getID func(T) string, getCreatedAt func(T) time.Time) (*CursorPagination, []T) {
	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	p := &CursorPagination{Limit: limit, HasNext: hasMore}
	if len(items) == 0 {
		return p, items
	}

	first, last := items[0], items[len(items)-1]
	next := EncodeCursor(getID(last), getCreatedAt(last))
	prev := EncodeCursor(getID(first), getCreatedAt(first))
	p.NextCursor = &next
	p.PrevCursor = &prev
	return p, items
}

func NewCursorPaginatedResult[T any](items []T, pagination *CursorPagination) *CursorPaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &CursorPaginatedResult[T]{Items: items, Pagination: pagination}
}
