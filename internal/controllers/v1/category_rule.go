package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

type CategoryRuleListResponse struct {
	Data []models.CategoryRule `json:"data"`
}

type CategoryRuleResponse struct {
	Data models.CategoryRule `json:"data"`
}

// RegisterCategoryRuleRoutes registers the routes for category rules with
// the RouterGroup that is passed.
func RegisterCategoryRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryRuleList)
		r.GET("", GetCategoryRules)
		r.POST("", CreateCategoryRule)
	}

	// Rule with ID
	{
		r.OPTIONS("/:id", OptionsCategoryRuleDetail)
		r.GET("/:id", GetCategoryRule)
		r.PATCH("/:id", UpdateCategoryRule)
		r.DELETE("/:id", DeleteCategoryRule)
	}
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        CategoryRules
// @Success     204
// @Router      /v1/category-rules [options]
func OptionsCategoryRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        CategoryRules
// @Success     204
// @Failure     400 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/category-rules/{id} [options]
func OptionsCategoryRuleDetail(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary     Create category rule
// @Description Creates a new category rule. Rules are evaluated in ascending priority order when suggesting categories for imported transactions.
// @Tags        CategoryRules
// @Produce     json
// @Success     201  {object} CategoryRuleResponse
// @Failure     400  {object} httpError
// @Failure     500  {object} httpError
// @Param       rule body     models.CategoryRule true "CategoryRule"
// @Router      /v1/category-rules [post]
func CreateCategoryRule(c *gin.Context) {
	var rule models.CategoryRule

	if err := httputil.BindData(c, &rule); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Create(&rule).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryRuleResponse{Data: rule})
}

// @Summary     List category rules
// @Description Returns a list of category rules, ordered by priority
// @Tags        CategoryRules
// @Produce     json
// @Success     200 {object} CategoryRuleListResponse
// @Failure     500 {object} httpError
// @Router      /v1/category-rules [get]
func GetCategoryRules(c *gin.Context) {
	var rules []models.CategoryRule
	if err := models.DB.Order("priority ASC").Find(&rules).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryRuleListResponse{Data: rules})
}

// @Summary     Get category rule
// @Description Returns a specific category rule
// @Tags        CategoryRules
// @Produce     json
// @Success     200 {object} CategoryRuleResponse
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/category-rules/{id} [get]
func GetCategoryRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var rule models.CategoryRule
	if err := models.DB.First(&rule, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryRuleResponse{Data: rule})
}

// @Summary     Update category rule
// @Description Updates a category rule. Only values to be updated need to be specified.
// @Tags        CategoryRules
// @Produce     json
// @Success     200  {object} CategoryRuleResponse
// @Failure     400  {object} httpError
// @Failure     404  {object} httpError
// @Param       id   path     string              true "ID formatted as string"
// @Param       rule body     models.CategoryRule true "CategoryRule"
// @Router      /v1/category-rules/{id} [patch]
func UpdateCategoryRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var rule models.CategoryRule
	if err := models.DB.First(&rule, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data models.CategoryRule
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Model(&rule).Updates(data).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryRuleResponse{Data: rule})
}

// @Summary     Delete category rule
// @Description Deletes a category rule
// @Tags        CategoryRules
// @Success     204
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/category-rules/{id} [delete]
func DeleteCategoryRule(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var rule models.CategoryRule
	if err := models.DB.First(&rule, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&rule).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
