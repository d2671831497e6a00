package v1

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/importer"
	"github.com/pocketledger/backend/internal/importer/parser/bankcsv"
	"github.com/pocketledger/backend/internal/models"
)

// uploadChunkSize is the number of parsed records handed to the engine
// per chunk.
const uploadChunkSize = 500

type ImportQuery struct {
	AccountID string `form:"accountId" binding:"required"` // ID of the account to import the transactions for
}

type ImportResultResponse struct {
	Data importer.Result `json:"data"`
}

// RegisterImportRoutes registers the routes for imports with
// the RouterGroup that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsImport)
		r.POST("", CreateImport)
	}
}

// getUploadedFile returns the form file and handles potential errors.
func getUploadedFile(c *gin.Context, suffix string) (multipart.File, bool) {
	formFile, err := c.FormFile("file")
	if formFile == nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errNoFilePost.Error()})
		return nil, false
	}

	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return nil, false
	}

	if !strings.HasSuffix(formFile.Filename, suffix) {
		c.JSON(http.StatusBadRequest, httpError{Error: errWrongFileSuffix.Error()})
		return nil, false
	}

	f, err := formFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return nil, false
	}

	return f, true
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Import
// @Success     204
// @Router      /v1/import [options]
func OptionsImport(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary     Import transactions
// @Description Imports transactions from a CSV file into an account. Small files are processed synchronously and return the final counts, large files are processed in the background and return the import job tracking them.
// @Tags        Import
// @Accept      multipart/form-data
// @Produce     json
// @Success     200       {object} ImportResultResponse
// @Success     202       {object} ImportJobResponse
// @Failure     400       {object} httpError
// @Failure     404       {object} httpError
// @Failure     500       {object} httpError
// @Param       file      formData file   true "The CSV file to import"
// @Param       accountId query    string true "ID of the account to import the transactions for"
// @Router      /v1/import [post]
func CreateImport(c *gin.Context) {
	// Bind the query string explicitly, the body is the multipart upload
	var query ImportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: errAccountIDParameter.Error()})
		return
	}

	accountID, err := httputil.UUIDFromString(query.AccountID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	var account models.Account
	if err := models.DB.First(&account, "id = ?", accountID).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	f, ok := getUploadedFile(c, ".csv")
	if !ok {
		return
	}
	defer f.Close()

	records, err := bankcsv.Parse(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
		return
	}

	source := importer.NewSliceSource(records, uploadChunkSize)
	result, job, err := Engine.Import(c.Request.Context(), source, models.ImportJobTypeBulkUpload, &account.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if job != nil {
		c.JSON(http.StatusAccepted, ImportJobResponse{Data: newImportJob(*job)})
		return
	}

	c.JSON(http.StatusOK, ImportResultResponse{Data: *result})
}
