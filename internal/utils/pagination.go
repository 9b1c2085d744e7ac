package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination is the page metadata attached to list responses.
type Pagination struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	TotalPages  int   `json:"total_pages"`
	TotalCount  int64 `json:"total_count"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// NewPagination resolves a requested 1-indexed page number against the
// total row count. Anything below 1 becomes page 1; a page beyond the
// last clamps to the last page instead of erroring.
func NewPagination(requested int, totalCount int64, pageSize int) Pagination {
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))

	page := requested
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	return Pagination{
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasPrevious: page > 1,
		HasNext:     page < totalPages,
	}
}

// Offset returns the row offset for the resolved page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// GetPage extracts the requested page number from the request. Absent or
// malformed values fall back to page 1.
func GetPage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
