package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestAccountRequest(account models.Account, expectedStatus ...int) v1.AccountResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", account)
	suite.assertHTTPStatus(&recorder, expectedStatus...)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	return response
}

func (suite *TestSuiteStandard) TestOptionsAccount() {
	recorder := test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/accounts", "")
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", recorder.Header().Get("allow"))

	account := suite.createTestAccount(models.Account{})
	recorder = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/accounts/%s", account.ID), "")
	assert.Equal(suite.T(), http.StatusNoContent, recorder.Code)
	assert.Equal(suite.T(), "OPTIONS, GET, PATCH, DELETE", recorder.Header().Get("allow"))

	recorder = test.Request(suite.T(), http.MethodOptions, "http://example.com/v1/accounts/NotAUUID", "")
	assert.Equal(suite.T(), http.StatusBadRequest, recorder.Code)
}

func (suite *TestSuiteStandard) TestCreateAccount() {
	response := suite.createTestAccountRequest(models.Account{Name: "Checking", Institution: "Example Bank"})

	assert.Equal(suite.T(), "Checking", response.Data.Name)
	assert.Equal(suite.T(), "Example Bank", response.Data.Institution)
	assert.False(suite.T(), response.Data.Archived)
}

func (suite *TestSuiteStandard) TestCreateAccountDuplicateName() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", models.Account{Name: "Checking"})
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)

	var response struct {
		Error string `json:"error"`
	}
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ErrAccountNameNotUnique.Error(), response.Error)
}

func (suite *TestSuiteStandard) TestCreateAccountInvalidBody() {
	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", `{ "name": 17`)
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetAccounts() {
	_ = suite.createTestAccount(models.Account{Name: "Checking", Institution: "Example Bank"})
	_ = suite.createTestAccount(models.Account{Name: "Savings", Institution: "Example Bank"})
	_ = suite.createTestAccount(models.Account{Name: "Old", Archived: true})

	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// Archived accounts are only returned when asked for
	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Checking", response.Data[0].Name)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts?archived=true", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
	assert.Equal(suite.T(), "Old", response.Data[0].Name)

	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts?name=Savings", "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Len(suite.T(), response.Data, 1)
}

func (suite *TestSuiteStandard) TestGetAccount() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})

	recorder := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), account.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetAccountNotFound() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts/bd89da21-7b19-4a58-b2c8-b58eeeb04337", "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGetAccountInvalidID() {
	recorder := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/accounts/NotAUUID", "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestUpdateAccount() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})

	recorder := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/accounts/%s", account.ID), map[string]any{
		"institution": "Other Bank",
	})
	suite.assertHTTPStatus(&recorder, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), "Checking", response.Data.Name)
	assert.Equal(suite.T(), "Other Bank", response.Data.Institution)
}

func (suite *TestSuiteStandard) TestDeleteAccount() {
	account := suite.createTestAccount(models.Account{Name: "Checking"})

	recorder := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/accounts/%s", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSyncAccountNoProvider() {
	account := suite.createTestAccount(models.Account{ExternalID: "ext-1"})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/accounts/%s/sync", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusNotImplemented)
}

func (suite *TestSuiteStandard) TestSyncAccountNotLinked() {
	v1.Provider = &fakeClient{}
	account := suite.createTestAccount(models.Account{})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/accounts/%s/sync", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSyncAccountNotFound() {
	v1.Provider = &fakeClient{}

	recorder := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/accounts/bd89da21-7b19-4a58-b2c8-b58eeeb04337/sync", "")
	suite.assertHTTPStatus(&recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSyncAccount() {
	account := suite.createTestAccount(models.Account{ExternalID: "ext-1"})
	v1.Provider = &fakeClient{records: testRecords(8), pageSize: 5}

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/accounts/%s/sync", account.ID), "")
	suite.assertHTTPStatus(&recorder, http.StatusAccepted)

	var response v1.ImportJobResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	assert.Equal(suite.T(), models.ImportJobTypeProviderSync, response.Data.Type)

	job := suite.waitForJob(response.Data.ID)
	assert.Equal(suite.T(), models.ImportJobStatusCompleted, job.Status)
	assert.EqualValues(suite.T(), 8, job.SyncedItems)
}
