package database

import (
	"gorm.io/gorm"

	"taskboard/internal/utils"
)

// Paginate applies a resolved page to a GORM query
func Paginate(p utils.Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PageSize)
	}
}
