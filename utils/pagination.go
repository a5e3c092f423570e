package utils

import (
	"math"
	"strconv"

	"gorm.io/gorm"
)

type Pagination struct {
	Page       int   `json:"current_page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"last_page"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	if perPage < 1 {
		perPage = 1
	}
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{
		Page:       NormalizePage(page),
		PerPage:    perPage,
		Total:      total,
		TotalPages: pages,
	}
}

// NormalizePage clamps anything below 1 to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ParsePage reads a ?page= value, falling back to 1 on garbage.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return NormalizePage(page)
}

// PastEnd reports whether page lies beyond the last page of total rows. It
// never multiplies, so any page value is safe.
func PastEnd(page, perPage int, total int64) bool {
	if perPage < 1 {
		perPage = 1
	}
	pages := (total + int64(perPage) - 1) / int64(perPage)
	return int64(NormalizePage(page)-1) >= pages
}

// Paginate is a gorm scope applying LIMIT/OFFSET for a 1-based page. An
// offset that would overflow int is clamped to math.MaxInt.
func Paginate(page, perPage int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if perPage < 1 {
			perPage = 1
		}
		offset := math.MaxInt
		if skipped := NormalizePage(page) - 1; skipped <= math.MaxInt/perPage {
			offset = skipped * perPage
		}
		return db.Offset(offset).Limit(perPage)
	}
}
