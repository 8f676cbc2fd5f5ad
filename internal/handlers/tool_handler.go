package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chorequest/internal/models"
	"chorequest/internal/services"
)

type ToolHandler struct {
	service services.ToolService
}

func NewToolHandler(service services.ToolService) *ToolHandler {
	return &ToolHandler{service: service}
}

// @Summary      Add a tool
// @Tags         Tools
// @Accept       json
// @Produce      json
// @Param        tool  body      models.UserTool  true  "Tool"
// @Success      201   {object}  models.UserTool
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /tools [post]
func (h *ToolHandler) Create(c *gin.Context) {
	var tool models.UserTool
	if err := c.ShouldBindJSON(&tool); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tool.UserID = getUserID(c)

	created, err := h.service.Create(c.Request.Context(), &tool)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      List tools
// @Tags         Tools
// @Produce      json
// @Success      200  {array}  services.ToolView
// @Security     BearerAuth
// @Router       /tools [get]
func (h *ToolHandler) List(c *gin.Context) {
	views, err := h.service.ListByUser(c.Request.Context(), getUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary      Replace a tool
// @Description  Resets durability to max and clears the use counter
// @Tags         Tools
// @Produce      json
// @Param        id   path      int  true  "Tool ID"
// @Success      200  {object}  services.ToolView
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /tools/{id}/replace [post]
func (h *ToolHandler) Replace(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	view, err := h.service.Replace(c.Request.Context(), id, getUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
