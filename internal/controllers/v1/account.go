package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/importer"
	"github.com/pocketledger/backend/internal/models"
	"github.com/pocketledger/backend/internal/provider"
)

type AccountListResponse struct {
	Data []models.Account `json:"data"`
}

type AccountResponse struct {
	Data models.Account `json:"data"`
}

type AccountQueryFilter struct {
	Name        string `form:"name"`
	Institution string `form:"institution"`
	Archived    bool   `form:"archived"`
}

// RegisterAccountRoutes registers the routes for accounts with
// the RouterGroup that is passed.
func RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAccountList)
		r.GET("", GetAccounts)
		r.POST("", CreateAccount)
	}

	// Account with ID
	{
		r.OPTIONS("/:id", OptionsAccountDetail)
		r.GET("/:id", GetAccount)
		r.PATCH("/:id", UpdateAccount)
		r.DELETE("/:id", DeleteAccount)
	}

	// Provider synchronization
	{
		r.OPTIONS("/:id/sync", OptionsAccountSync)
		r.POST("/:id/sync", SyncAccount)
	}
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Accounts
// @Success     204
// @Router      /v1/accounts [options]
func OptionsAccountList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Accounts
// @Success     204
// @Failure     400 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/accounts/{id} [options]
func OptionsAccountDetail(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Accounts
// @Success     204
// @Failure     400 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/accounts/{id}/sync [options]
func OptionsAccountSync(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}

	httputil.OptionsPost(c)
}

// @Summary     Create account
// @Description Creates a new account
// @Tags        Accounts
// @Produce     json
// @Success     201     {object} AccountResponse
// @Failure     400     {object} httpError
// @Failure     500     {object} httpError
// @Param       account body     models.Account true "Account"
// @Router      /v1/accounts [post]
func CreateAccount(c *gin.Context) {
	var account models.Account

	if err := httputil.BindData(c, &account); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Create(&account).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, AccountResponse{Data: account})
}

// @Summary     List accounts
// @Description Returns a list of accounts
// @Tags        Accounts
// @Produce     json
// @Success     200 {object} AccountListResponse
// @Failure     500 {object} httpError
// @Param       name        query string false "Filter by name"
// @Param       institution query string false "Filter by institution"
// @Param       archived    query bool   false "Is the account archived?"
// @Router      /v1/accounts [get]
func GetAccounts(c *gin.Context) {
	var filter AccountQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	q := models.DB.Order("name ASC").Where("archived = ?", filter.Archived)
	if filter.Name != "" {
		q = q.Where("name = ?", filter.Name)
	}
	if filter.Institution != "" {
		q = q.Where("institution = ?", filter.Institution)
	}

	var accounts []models.Account
	if err := q.Find(&accounts).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, AccountListResponse{Data: accounts})
}

// @Summary     Get account
// @Description Returns a specific account
// @Tags        Accounts
// @Produce     json
// @Success     200 {object} AccountResponse
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/accounts/{id} [get]
func GetAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var account models.Account
	if err := models.DB.First(&account, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: account})
}

// @Summary     Update account
// @Description Updates an account. Only values to be updated need to be specified.
// @Tags        Accounts
// @Produce     json
// @Success     200     {object} AccountResponse
// @Failure     400     {object} httpError
// @Failure     404     {object} httpError
// @Param       id      path     string         true "ID formatted as string"
// @Param       account body     models.Account true "Account"
// @Router      /v1/accounts/{id} [patch]
func UpdateAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var account models.Account
	if err := models.DB.First(&account, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data models.Account
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Model(&account).Updates(data).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, AccountResponse{Data: account})
}

// @Summary     Delete account
// @Description Deletes an account
// @Tags        Accounts
// @Success     204
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/accounts/{id} [delete]
func DeleteAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var account models.Account
	if err := models.DB.First(&account, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&account).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary     Synchronize account
// @Description Fetches new transactions for the account from the configured bank-data provider. Returns the import job tracking the synchronization.
// @Tags        Accounts
// @Produce     json
// @Success     200 {object} ImportResultResponse
// @Success     202 {object} ImportJobResponse
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Failure     501 {object} httpError
// @Failure     502 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/accounts/{id}/sync [post]
func SyncAccount(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var account models.Account
	if err := models.DB.First(&account, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if Provider == nil {
		c.JSON(http.StatusNotImplemented, httpError{Error: errProviderNotConfigured.Error()})
		return
	}

	if account.ExternalID == "" {
		c.JSON(http.StatusBadRequest, httpError{Error: provider.ErrAccountNotLinked.Error()})
		return
	}

	source := &importer.ProviderSource{Client: Provider, AccountRef: account.ExternalID}
	result, job, err := Engine.Import(c.Request.Context(), source, models.ImportJobTypeProviderSync, &account.ID)
	if err != nil {
		c.JSON(providerStatus(err), httpError{Error: err.Error()})
		return
	}

	if job != nil {
		c.JSON(http.StatusAccepted, ImportJobResponse{Data: newImportJob(*job)})
		return
	}

	c.JSON(http.StatusOK, ImportResultResponse{Data: *result})
}
