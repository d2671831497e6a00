package importer_test

import (
	"github.com/pocketledger/backend/internal/importer"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRuleResolverTagMatch() {
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})

	resolver, err := importer.NewRuleResolver()
	require.Nil(suite.T(), err)

	categoryID, subcategoryID := resolver.Resolve(provider.CandidateRecord{
		Description:  "SUPERMARKET 1234",
		CategoryTags: []string{"GROCERIES"},
	})

	require.NotNil(suite.T(), categoryID)
	assert.Equal(suite.T(), groceries.ID, *categoryID)
	assert.Nil(suite.T(), subcategoryID)
}

func (suite *TestSuiteStandard) TestRuleResolverTagMatchSubcategory() {
	food := suite.createTestCategory(models.Category{Name: "Food"})
	restaurants := suite.createTestCategory(models.Category{Name: "Restaurants", ParentID: &food.ID})

	resolver, err := importer.NewRuleResolver()
	require.Nil(suite.T(), err)

	categoryID, subcategoryID := resolver.Resolve(provider.CandidateRecord{
		CategoryTags: []string{"restaurants"},
	})

	require.NotNil(suite.T(), categoryID)
	require.NotNil(suite.T(), subcategoryID)
	assert.Equal(suite.T(), food.ID, *categoryID)
	assert.Equal(suite.T(), restaurants.ID, *subcategoryID)
}

func (suite *TestSuiteStandard) TestRuleResolverGlobMatch() {
	coffee := suite.createTestCategory(models.Category{Name: "Coffee"})
	_ = suite.createTestCategoryRule(models.CategoryRule{
		Priority:   1,
		Match:      "STARBUCKS*",
		CategoryID: coffee.ID,
	})

	resolver, err := importer.NewRuleResolver()
	require.Nil(suite.T(), err)

	categoryID, _ := resolver.Resolve(provider.CandidateRecord{
		Description: "Starbucks Store #1234",
	})

	require.NotNil(suite.T(), categoryID)
	assert.Equal(suite.T(), coffee.ID, *categoryID)
}

func (suite *TestSuiteStandard) TestRuleResolverPriorityOrder() {
	shopping := suite.createTestCategory(models.Category{Name: "Shopping"})
	subscriptions := suite.createTestCategory(models.Category{Name: "Subscriptions"})

	// The more specific rule has the higher priority (lower value)
	_ = suite.createTestCategoryRule(models.CategoryRule{
		Priority:   10,
		Match:      "AMAZON*",
		CategoryID: shopping.ID,
	})
	_ = suite.createTestCategoryRule(models.CategoryRule{
		Priority:   1,
		Match:      "AMAZON PRIME*",
		CategoryID: subscriptions.ID,
	})

	resolver, err := importer.NewRuleResolver()
	require.Nil(suite.T(), err)

	categoryID, _ := resolver.Resolve(provider.CandidateRecord{
		Description: "AMAZON PRIME MEMBERSHIP",
	})

	require.NotNil(suite.T(), categoryID)
	assert.Equal(suite.T(), subscriptions.ID, *categoryID)
}

func (suite *TestSuiteStandard) TestRuleResolverNoMatch() {
	_ = suite.createTestCategory(models.Category{Name: "Groceries"})

	resolver, err := importer.NewRuleResolver()
	require.Nil(suite.T(), err)

	categoryID, subcategoryID := resolver.Resolve(provider.CandidateRecord{
		Description: "Mystery merchant",
	})

	assert.Nil(suite.T(), categoryID)
	assert.Nil(suite.T(), subcategoryID)
}
