package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsCategoryRule() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/category-rules", "")
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateCategoryRule() {
	category := suite.createTestCategory(models.Category{Name: "Coffee"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/category-rules", models.CategoryRule{
		Priority:   1,
		Match:      "STARBUCKS*",
		CategoryID: category.ID,
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.CategoryRuleResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "STARBUCKS*", response.Data.Match)
	assert.Equal(suite.T(), category.ID, response.Data.CategoryID)
}

func (suite *TestSuiteStandard) TestGetCategoryRulesOrderedByPriority() {
	category := suite.createTestCategory(models.Category{Name: "Shopping"})
	_ = suite.createTestCategoryRule(models.CategoryRule{Priority: 10, Match: "AMAZON*", CategoryID: category.ID})
	_ = suite.createTestCategoryRule(models.CategoryRule{Priority: 1, Match: "AMAZON PRIME*", CategoryID: category.ID})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/category-rules", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.CategoryRuleListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "AMAZON PRIME*", response.Data[0].Match)
}

func (suite *TestSuiteStandard) TestUpdateCategoryRule() {
	category := suite.createTestCategory(models.Category{Name: "Coffee"})
	rule := suite.createTestCategoryRule(models.CategoryRule{Priority: 5, Match: "STARBUCKS*", CategoryID: category.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/category-rules/%s", rule.ID), map[string]any{
		"priority": 1,
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.CategoryRuleResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.EqualValues(suite.T(), 1, response.Data.Priority)
}

func (suite *TestSuiteStandard) TestDeleteCategoryRule() {
	category := suite.createTestCategory(models.Category{Name: "Coffee"})
	rule := suite.createTestCategoryRule(models.CategoryRule{Priority: 5, Match: "STARBUCKS*", CategoryID: category.ID})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/category-rules/%s", rule.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/category-rules/%s", rule.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}
