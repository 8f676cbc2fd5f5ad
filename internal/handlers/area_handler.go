package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chorequest/internal/models"
	"chorequest/internal/services"
)

type AreaHandler struct {
	service services.AreaService
}

func NewAreaHandler(service services.AreaService) *AreaHandler {
	return &AreaHandler{service: service}
}

// @Summary      Create a home area
// @Tags         Areas
// @Accept       json
// @Produce      json
// @Param        area  body      models.HomeArea  true  "Area"
// @Success      201   {object}  models.HomeArea
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /areas [post]
func (h *AreaHandler) Create(c *gin.Context) {
	var area models.HomeArea
	if err := c.ShouldBindJSON(&area); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	area.UserID = getUserID(c)

	created, err := h.service.Create(c.Request.Context(), &area)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      List home areas
// @Description  Each area carries its derived health percent and status tier
// @Tags         Areas
// @Produce      json
// @Success      200  {array}  services.AreaView
// @Security     BearerAuth
// @Router       /areas [get]
func (h *AreaHandler) List(c *gin.Context) {
	views, err := h.service.ListByUser(c.Request.Context(), getUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary      Decay an area
// @Description  Lowers area health, floored at zero. Meant for an external scheduler.
// @Tags         Areas
// @Accept       json
// @Produce      json
// @Param        id   path      int  true  "Area ID"
// @Success      200  {object}  services.AreaView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /areas/{id}/decay [post]
func (h *AreaHandler) Decay(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Amount int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.Decay(c.Request.Context(), id, getUserID(c), req.Amount)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
