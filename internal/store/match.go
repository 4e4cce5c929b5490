package store

import (
	"strings"

	"gorm.io/gorm"
)

func lower(s string) string {
	return strings.ToLower(s)
}

// matchName applies a case-insensitive substring match when partial is
// set, and an exact match otherwise. LOWER(...) LIKE behaves the same
// on sqlite and postgres, unlike a bare LIKE.
func matchName(tx *gorm.DB, column, pattern string, partial bool) *gorm.DB {
	if partial {
		return tx.Where("LOWER("+column+") LIKE ?", "%"+lower(pattern)+"%")
	}
	return tx.Where(column+" = ?", pattern)
}
