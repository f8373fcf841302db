// Package product contains the catalogue domain types.
package product

import "time"

// Product is a catalogue entry.
type Product struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Reviews      []Review  `json:"reviews"`
	Rating       float64   `json:"rating"`
	NumReviews   int       `json:"numReviews"`
	Price        float64   `json:"price"`
	CountInStock int       `json:"countInStock"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Review is one customer's rating of a product.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page is one page of a catalogue search.
type Page struct {
	Products []Product `json:"products"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}

// ListQuery selects a page of products whose name contains Keyword
// (case-insensitive). Page is 1-based.
type ListQuery struct {
	Keyword  string
	Page     int
	PageSize int
}

// Offset returns the row offset for the query page.
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// PageCount returns the number of pages needed for total rows.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
