package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chorequest/internal/services"
)

// IntegrationsHandler covers the Telegram binding and the scheduler-facing
// reminder trigger. May be constructed with a nil reminder service when no
// bot token is configured.
type IntegrationsHandler struct {
	users     services.UserService
	reminders services.ReminderService
}

func NewIntegrationsHandler(users services.UserService, reminders services.ReminderService) *IntegrationsHandler {
	return &IntegrationsHandler{users: users, reminders: reminders}
}

// @Summary      Link a Telegram chat
// @Tags         Integrations
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /integrations/telegram/link [post]
func (h *IntegrationsHandler) LinkTelegram(c *gin.Context) {
	var req struct {
		ChatID int64 `json:"chat_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.users.LinkTelegram(c.Request.Context(), getUserID(c), req.ChatID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Linked"})
}

// @Summary      Push daily reminders
// @Description  Sends every linked user their open chores for today. Meant for an external scheduler.
// @Tags         Integrations
// @Produce      json
// @Success      200  {object}  map[string]int
// @Security     BearerAuth
// @Router       /integrations/telegram/reminders [post]
func (h *IntegrationsHandler) SendReminders(c *gin.Context) {
	if h.reminders == nil {
		c.JSON(http.StatusOK, gin.H{"sent": 0})
		return
	}
	sent, err := h.reminders.SendDailyReminders(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Printf("[integrations][reminders] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}
