package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups transactions. A category with a parent is a subcategory.
type Category struct {
	DefaultModel
	Name     string     `gorm:"uniqueIndex:category_name_parent_id"`
	Note     string
	ParentID *uuid.UUID `gorm:"uniqueIndex:category_name_parent_id"`
	Parent   *Category  `json:"-"`
}

var ErrCategoryNameNotUnique = errors.New("the category name must be unique for the parent category")

// BeforeSave trims whitespace from all strings and checks name uniqueness
// for root categories. The unique index does not cover them since sqlite
// treats rows with a NULL parent ID as distinct.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	// Ensure that the parent ID is nil and not a pointer to a nil UUID
	if c.ParentID != nil && *c.ParentID == uuid.Nil {
		c.ParentID = nil
	}

	if c.ParentID == nil {
		var count int64
		err := tx.Session(&gorm.Session{NewDB: true}).
			Model(&Category{}).
			Where("name = ? AND parent_id IS NULL AND id != ?", c.Name, c.ID).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrCategoryNameNotUnique
		}
	}

	return nil
}
