package importer

import (
	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/ryanuber/go-glob"
	"golang.org/x/text/cases"
)

// Resolver suggests a category for a candidate record.
//
// Suggestions are best-effort hints based on fuzzy matching and are never
// correctness-bearing. Implementations must be safe for concurrent use.
type Resolver interface {
	// Resolve returns category and subcategory suggestions for the record.
	// Either return value may be nil.
	Resolve(record provider.CandidateRecord) (categoryID, subcategoryID *uuid.UUID)
}

// RuleResolver resolves categories by name from the provider's category
// tags and falls back to glob rules matched against the record description.
type RuleResolver struct {
	rules      []models.CategoryRule
	categories map[string]models.Category
}

// NewRuleResolver loads all categories and category rules. Rules are
// applied in priority order, highest priority (lowest value) first.
func NewRuleResolver() (*RuleResolver, error) {
	var categories []models.Category
	err := models.DB.Find(&categories).Error
	if err != nil {
		return nil, err
	}

	var rules []models.CategoryRule
	err = models.DB.Preload("Category").Order("priority asc").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	fold := cases.Fold()
	byName := make(map[string]models.Category, len(categories))
	for _, category := range categories {
		byName[fold.String(category.Name)] = category
	}

	return &RuleResolver{rules: rules, categories: byName}, nil
}

// Resolve implements the Resolver interface.
func (r *RuleResolver) Resolve(record provider.CandidateRecord) (*uuid.UUID, *uuid.UUID) {
	fold := cases.Fold()

	// Provider tags take precedence since they describe the transaction
	// itself, not just its description text
	for _, tag := range record.CategoryTags {
		if category, ok := r.categories[fold.String(tag)]; ok {
			return suggestion(category)
		}
	}

	description := fold.String(record.Description)
	for _, rule := range r.rules {
		if glob.Glob(fold.String(rule.Match), description) {
			if rule.Category.ID != uuid.Nil {
				return suggestion(rule.Category)
			}

			id := rule.CategoryID
			return &id, nil
		}
	}

	return nil, nil
}

// suggestion splits a matched category into the category and subcategory
// suggestion. A category with a parent is a subcategory.
func suggestion(category models.Category) (*uuid.UUID, *uuid.UUID) {
	if category.ParentID != nil {
		parentID := *category.ParentID
		id := category.ID
		return &parentID, &id
	}

	id := category.ID
	return &id, nil
}
