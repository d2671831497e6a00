package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/httputil"
	"github.com/pocketledger/backend/internal/models"
)

type CategoryListResponse struct {
	Data []models.Category `json:"data"`
}

type CategoryResponse struct {
	Data models.Category `json:"data"`
}

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PATCH("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Categories
// @Success     204
// @Router      /v1/categories [options]
func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary     Allowed HTTP verbs
// @Description Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags        Categories
// @Success     204
// @Failure     400 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/categories/{id} [options]
func OptionsCategoryDetail(c *gin.Context) {
	if _, ok := parseID(c, "id"); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary     Create category
// @Description Creates a new category
// @Tags        Categories
// @Produce     json
// @Success     201      {object} CategoryResponse
// @Failure     400      {object} httpError
// @Failure     500      {object} httpError
// @Param       category body     models.Category true "Category"
// @Router      /v1/categories [post]
func CreateCategory(c *gin.Context) {
	var category models.Category

	if err := httputil.BindData(c, &category); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Create(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: category})
}

// @Summary     List categories
// @Description Returns a list of categories
// @Tags        Categories
// @Produce     json
// @Success     200 {object} CategoryListResponse
// @Failure     400 {object} httpError
// @Failure     500 {object} httpError
// @Param       name   query string false "Filter by name"
// @Param       parent query string false "Filter by parent category ID"
// @Router      /v1/categories [get]
func GetCategories(c *gin.Context) {
	q := models.DB.Order("name ASC")

	if name := c.Query("name"); name != "" {
		q = q.Where("name = ?", name)
	}

	if parent := c.Query("parent"); parent != "" {
		id, err := httputil.UUIDFromString(parent)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpError{Error: err.Error()})
			return
		}
		q = q.Where("parent_id = ?", id)
	}

	var categories []models.Category
	if err := q.Find(&categories).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

// @Summary     Get category
// @Description Returns a specific category
// @Tags        Categories
// @Produce     json
// @Success     200 {object} CategoryResponse
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// @Summary     Update category
// @Description Updates a category. Only values to be updated need to be specified.
// @Tags        Categories
// @Produce     json
// @Success     200      {object} CategoryResponse
// @Failure     400      {object} httpError
// @Failure     404      {object} httpError
// @Param       id       path     string          true "ID formatted as string"
// @Param       category body     models.Category true "Category"
// @Router      /v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var data models.Category
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Model(&category).Updates(data).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: category})
}

// @Summary     Delete category
// @Description Deletes a category
// @Tags        Categories
// @Success     204
// @Failure     400 {object} httpError
// @Failure     404 {object} httpError
// @Param       id path string true "ID formatted as string"
// @Router      /v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := models.DB.First(&category, "id = ?", id).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&category).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
