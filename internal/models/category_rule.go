package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRule suggests a category for imported transactions whose
// description matches the glob pattern in Match.
//
// Suggestions from rules are best-effort hints. They never overwrite an
// explicit categorization by the user.
type CategoryRule struct {
	DefaultModel
	Priority   uint
	Match      string `example:"POS * Grocery*"`
	CategoryID uuid.UUID
	Category   Category `json:"-"`
}

// BeforeSave trims whitespace from the match pattern.
func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)

	return nil
}
