package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chorequest/internal/models"
	"chorequest/internal/services"
)

type AssignmentHandler struct {
	service services.AssignmentService
}

func NewAssignmentHandler(service services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// @Summary      Adopt a template
// @Description  Subscribes the user to a template with optional per-user overrides
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        assignment  body      models.UserTaskAssignment  true  "Assignment"
// @Success      201         {object}  models.UserTaskAssignment
// @Failure      400         {object}  map[string]string
// @Security     BearerAuth
// @Router       /assignments [post]
func (h *AssignmentHandler) Adopt(c *gin.Context) {
	var a models.UserTaskAssignment
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a.UserID = getUserID(c)

	created, err := h.service.Adopt(c.Request.Context(), &a)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary      List my assignments
// @Tags         Assignments
// @Produce      json
// @Param        all  query     bool  false  "Include deactivated assignments"
// @Success      200  {array}   models.UserTaskAssignment
// @Security     BearerAuth
// @Router       /assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	assignments, err := h.service.ListByUser(c.Request.Context(), getUserID(c), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, assignments)
}

// @Summary      Update an assignment
// @Tags         Assignments
// @Accept       json
// @Produce      json
// @Param        id          path      int                        true  "Assignment ID"
// @Param        assignment  body      models.UserTaskAssignment  true  "New overrides"
// @Success      200         {object}  models.UserTaskAssignment
// @Failure      400         {object}  map[string]string
// @Failure      404         {object}  map[string]string
// @Security     BearerAuth
// @Router       /assignments/{id} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var a models.UserTaskAssignment
	if err := c.ShouldBindJSON(&a); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, getUserID(c), &a)
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

// @Summary      Deactivate an assignment
// @Description  History and past instances stay intact
// @Tags         Assignments
// @Produce      json
// @Param        id   path      int  true  "Assignment ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /assignments/{id} [delete]
func (h *AssignmentHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id, getUserID(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deactivated"})
}
