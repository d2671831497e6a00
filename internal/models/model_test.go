package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestModelUUIDSetOnCreate() {
	account := suite.createTestAccount(models.Account{})
	assert.NotEqual(suite.T(), uuid.Nil, account.ID)
}

func (suite *TestSuiteStandard) TestModelUUIDKeptOnCreate() {
	id := uuid.New()
	account := suite.createTestAccount(models.Account{DefaultModel: models.DefaultModel{ID: id}})
	assert.Equal(suite.T(), id, account.ID)
}

func (suite *TestSuiteStandard) TestModelTimestampsUTC() {
	account := suite.createTestAccount(models.Account{})

	var dbAccount models.Account
	err := models.DB.First(&dbAccount, "id = ?", account.ID).Error
	assert.Nil(suite.T(), err)

	assert.Equal(suite.T(), time.UTC, dbAccount.CreatedAt.Location())
	assert.Equal(suite.T(), time.UTC, dbAccount.UpdatedAt.Location())
}
