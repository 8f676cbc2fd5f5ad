package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chorequest/internal/services"
)

type TaskHandler struct {
	instances   services.InstanceService
	completions services.CompletionService
}

func NewTaskHandler(instances services.InstanceService, completions services.CompletionService) *TaskHandler {
	return &TaskHandler{instances: instances, completions: completions}
}

// parseDateQuery reads an optional ?date=YYYY-MM-DD, defaulting to now.
func parseDateQuery(c *gin.Context) (time.Time, bool) {
	v := c.Query("date")
	if v == "" {
		return time.Now().UTC(), true
	}
	d, err := time.Parse("2006-01-02", v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

// @Summary      Generate task instances
// @Description  Materializes today's instances for every active assignment. Idempotent; reruns skip existing rows. Per-assignment failures land in errors without aborting the batch.
// @Tags         Tasks
// @Produce      json
// @Param        date  query     string  false  "Target date (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  models.GenerationResult
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /tasks/generate [post]
func (h *TaskHandler) Generate(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	result, err := h.instances.GenerateForUser(c.Request.Context(), getUserID(c), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][generate] userID=%d date=%s created=%d skipped=%d errors=%d",
		getUserID(c), date.Format("2006-01-02"),
		len(result.Created), len(result.Skipped), len(result.Errors))
	c.JSON(http.StatusOK, result)
}

// @Summary      Today's tasks
// @Description  Templated instances and legacy tasks merged into one list
// @Tags         Tasks
// @Produce      json
// @Param        date  query     string  false  "Target date (YYYY-MM-DD), defaults to today"
// @Success      200   {array}   models.TaskView
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /tasks/today [get]
func (h *TaskHandler) Today(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	views, err := h.instances.ListViewsForDate(c.Request.Context(), getUserID(c), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// @Summary      Complete a task
// @Description  Awards experience, coins, gems, streaks, area health and tool wear. Exactly-once per instance.
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Instance ID"
// @Success      200  {object}  services.CompletionOutcome
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := getUserID(c)

	outcome, err := h.completions.Complete(c.Request.Context(), id, userID)
	if err != nil {
		log.Printf("[task][complete] instance=%d userID=%d: %v", id, userID, err)
		respondEngineError(c, err)
		return
	}
	log.Printf("[task][complete] instance=%d userID=%d exp=%d levelUp=%v",
		id, userID, outcome.Rewards.ExpEarned, outcome.Rewards.LevelUp)
	c.JSON(http.StatusOK, outcome)
}

// @Summary      Toggle a task
// @Description  Flips the completed flag without touching rewards
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Instance ID"
// @Success      200  {object}  models.TaskInstance
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	inst, err := h.instances.Toggle(c.Request.Context(), id, getUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, inst)
}
