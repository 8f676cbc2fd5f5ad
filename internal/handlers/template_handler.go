package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chorequest/internal/models"
	"chorequest/internal/services"
)

type TemplateHandler struct {
	service services.TemplateService
}

func NewTemplateHandler(service services.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

// @Summary      Create a task template
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Param        template  body      models.TaskTemplate  true  "Template"
// @Success      201       {object}  models.TaskTemplate
// @Failure      400       {object}  map[string]string
// @Security     BearerAuth
// @Router       /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	var tpl models.TaskTemplate
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl.CreatedBy = getUserID(c)

	created, err := h.service.Create(c.Request.Context(), &tpl)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      List task templates
// @Tags         Templates
// @Produce      json
// @Param        category    query     string  false  "Filter by category"
// @Param        source      query     string  false  "Filter by source (user/ai)"
// @Param        created_by  query     int     false  "Filter by author"
// @Success      200        {array}   models.TaskTemplate
// @Security     BearerAuth
// @Router       /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	var filter models.TemplateFilter
	if v := c.Query("category"); v != "" {
		cat := models.Category(v)
		filter.Category = &cat
	}
	if v := c.Query("source"); v != "" {
		src := models.TemplateSource(v)
		filter.Source = &src
	}
	if v := c.Query("created_by"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CreatedBy = &id
		}
	}

	templates, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

// @Summary      Get a template
// @Tags         Templates
// @Produce      json
// @Param        id   path      int  true  "Template ID"
// @Success      200  {object}  models.TaskTemplate
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	tpl, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if tpl == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// @Summary      Update a template
// @Tags         Templates
// @Accept       json
// @Produce      json
// @Param        id        path      int                  true  "Template ID"
// @Param        template  body      models.TaskTemplate  true  "New values"
// @Success      200       {object}  models.TaskTemplate
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Security     BearerAuth
// @Router       /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var tpl models.TaskTemplate
	if err := c.ShouldBindJSON(&tpl); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &tpl)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if updated == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete a template
// @Description  Refused while active assignments still reference it
// @Tags         Templates
// @Produce      json
// @Param        id   path      int  true  "Template ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
