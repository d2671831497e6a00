package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsTransaction() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/transactions", "")
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestCreateTransaction() {
	account := suite.createTestAccount(models.Account{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", map[string]any{
		"accountId": account.ID,
		"type":      "expense",
		"amount":    "17.23",
		"note":      "Coffee",
	})
	suite.assertHTTPStatus(&recorder, http.StatusCreated)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.TransactionTypeExpense, response.Data.Type)
	assert.True(suite.T(), response.Data.Amount.Equal(decimal.NewFromFloat(17.23)))
	assert.Equal(suite.T(), "Coffee", response.Data.Note)
	assert.Nil(suite.T(), response.Data.ExternalID)
}

func (suite *TestSuiteStandard) TestCreateTransactionInvalidType() {
	account := suite.createTestAccount(models.Account{})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", map[string]any{
		"accountId": account.ID,
		"type":      "refund",
		"amount":    "17.23",
	})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetTransactionsFiltered() {
	account := suite.createTestAccount(models.Account{})
	other := suite.createTestAccount(models.Account{})
	category := suite.createTestCategory(models.Category{Name: "Coffee"})

	_ = suite.createTestTransaction(models.Transaction{
		AccountID:  account.ID,
		Type:       models.TransactionTypeExpense,
		Date:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		CategoryID: &category.ID,
	})
	_ = suite.createTestTransaction(models.Transaction{
		AccountID: account.ID,
		Type:      models.TransactionTypeIncome,
		Date:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	_ = suite.createTestTransaction(models.Transaction{
		AccountID: other.ID,
		Type:      models.TransactionTypeExpense,
		Date:      time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
	})

	var response v1.TransactionListResponse

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 3)

	// Newest first
	assert.Equal(suite.T(), other.ID, response.Data[0].AccountID)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?account=%s", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 2)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?type=income", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?category=%s", category.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?from=2024-05-05T00:00:00Z&until=2024-05-15T00:00:00Z", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), models.TransactionTypeIncome, response.Data[0].Type)
}

func (suite *TestSuiteStandard) TestGetTransactionInvalidFilter() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?account=NotAUUID", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateTransaction() {
	account := suite.createTestAccount(models.Account{})
	transaction := suite.createTestTransaction(models.Transaction{AccountID: account.ID})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), map[string]any{
		"note": "Updated",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Updated", response.Data.Note)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	account := suite.createTestAccount(models.Account{})
	transaction := suite.createTestTransaction(models.Transaction{AccountID: account.ID})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}
