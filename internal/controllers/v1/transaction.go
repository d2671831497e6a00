package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

type TransactionListResponse struct {
	Data []models.Transaction `json:"data"`
}

type TransactionResponse struct {
	Data models.Transaction `json:"data"`
}

type TransactionQueryFilter struct {
	Account  string `form:"account"`
	Category string `form:"category"`
	Type     string `form:"type"`
	From     string `form:"from"`
	Until    string `form:"until"`
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Transactions
// @Success     204
// @Router      /v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Transactions
// @Success     204
// @Failure     400 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary     Create transaction
// @Description Creates a new transaction
// @Tags        Transactions
// @Produce     json
// @Success     201         {object} TransactionResponse
// @Failure     400         {object} httpError
// @Failure     500         {object} httpError
// @Param       transaction body     models.Transaction true "Transaction"
// @Router      /v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var transaction models.Transaction

	if err := httputil.BindData(c, &transaction); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Create(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, TransactionResponse{Data: transaction})
}

// @Summary     List transactions
// @Description Returns a list of transactions, newest first
// @Tags        Transactions
// @Produce     json
// @Success     200 {object} TransactionListResponse
// @Failure     400 {object} httpError
// @Failure     500 {object} httpError
// @Param       account  query string false "Filter by account ID"
// @Param       category query string false "Filter by category ID"
// @Param       type     query string false "Filter by type" Enums(income, expense, transfer)
// @Param       from     query string false "Only transactions on or after this date (RFC 3339)"
// @Param       until    query string false "Only transactions on or before this date (RFC 3339)"
// @Router      /v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	q := models.DB.Order("date DESC")

	if filter.Account != "" {
		id, err := httputil.UUIDFromString(filter.Account)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
		q = q.Where("account_id = ?", id)
	}

	if filter.Category != "" {
		id, err := httputil.UUIDFromString(filter.Category)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
		q = q.Where("category_id = ?", id)
	}

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}

	if filter.Until != "" {
		q = q.Where("date <= ?", filter.Until)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Data: transactions})
}

// @Summary     Get transaction
// @Description Returns a specific transaction
// @Tags        Transactions
// @Produce     json
// @Success     200 {object} TransactionResponse
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// @Summary     Update transaction
// @Description Updates a transaction. Only values to be updated need to be specified.
// @Tags        Transactions
// @Produce     json
// @Success     200         {object} TransactionResponse
// @Failure     400         {object} httpError
// @Failure     404         {object} httpError
// @Param       id          path     string             true "ID formatted as string"
// @Param       transaction body     models.Transaction true "Transaction"
// @Router      /v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data models.Transaction
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Model(&transaction).Updates(data).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionResponse{Data: transaction})
}

// @Summary     Delete transaction
// @Description Deletes a transaction
// @Tags        Transactions
// @Success     204
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var transaction models.Transaction
	if err := models.DB.First(&transaction, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&transaction).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
