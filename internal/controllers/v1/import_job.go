package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

// ImportJob is the API representation of an import job. It carries the
// computed progress percentage alongside the raw counters.
type ImportJob struct {
	models.ImportJob
	Progress float64 `json:"progress" example:"42.5"` // Percentage of processed items, 0 to 100
}

func newImportJob(job models.ImportJob) ImportJob {
	return ImportJob{
		ImportJob: job,
		Progress:  job.Progress(),
	}
}

type ImportJobListResponse struct {
	Data []ImportJob `json:"data"`
}

type ImportJobResponse struct {
	Data ImportJob `json:"data"`
}

// RegisterImportJobRoutes registers the routes for import jobs with
// the RouterGroup that is passed.
func RegisterImportJobRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsImportJobList)
		r.GET("", GetImportJobs)
	}

	// Job with ID
	{
		r.OPTIONS("/:id", OptionsImportJobDetail)
		r.GET("/:id", GetImportJob)
	}
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        ImportJobs
// @Success     204
// @Router      /v1/import-jobs [options]
func OptionsImportJobList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        ImportJobs
// @Success     204
// @Failure     400 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/import-jobs/{id} [options]
func OptionsImportJobDetail(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary     List import jobs
// @Description Returns a list of import jobs, newest first
// @Tags        ImportJobs
// @Produce     json
// @Success     200 {object} ImportJobListResponse
// @Failure     400 {object} httpError
// @Failure     500 {object} httpError
// @Param       account query string false "Filter by account ID"
// @Param       status  query string false "Filter by status" Enums(pending, processing, completed, failed)
// @Router      /v1/import-jobs [get]
func GetImportJobs(c *gin.Context) {
	q := models.DB.Order("created_at DESC")

	if account := c.Query("account"); account != "" {
		id, err := httputil.UUIDFromString(account)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
		q = q.Where("account_id = ?", id)
	}

	if jobStatus := c.Query("status"); jobStatus != "" {
		q = q.Where("status = ?", jobStatus)
	}

	var jobs []models.ImportJob
	if err := q.Find(&jobs).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	data := make([]ImportJob, 0)
	for _, job := range jobs {
		data = append(data, newImportJob(job))
	}

	c.JSON(http.StatusOK, ImportJobListResponse{Data: data})
}

// @Summary     Get import job
// @Description Returns a specific import job with its current counters and progress
// @Tags        ImportJobs
// @Produce     json
// @Success     200 {object} ImportJobResponse
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/import-jobs/{id} [get]
func GetImportJob(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var job models.ImportJob
	if err := models.DB.First(&job, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ImportJobResponse{Data: newImportJob(job)})
}
