package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"chorequest/internal/pdf"
	"chorequest/internal/services"
)

type ReportHandler struct {
	service services.ReportService
	pdfGen  pdf.Generator
}

func NewReportHandler(service services.ReportService, pdfGen pdf.Generator) *ReportHandler {
	return &ReportHandler{service: service, pdfGen: pdfGen}
}

// @Summary      Weekly summary
// @Description  Aggregates the last seven days of completions
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  services.WeeklyReport
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	report, err := h.service.Weekly(c.Request.Context(), getUserID(c))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary      Weekly report as PDF
// @Tags         Reports
// @Produce      application/pdf
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /reports/weekly [get]
func (h *ReportHandler) WeeklyPDF(c *gin.Context) {
	userID := getUserID(c)
	report, err := h.service.Weekly(c.Request.Context(), userID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	data := pdf.WeeklyReportData{
		UserID:         report.UserID,
		DisplayName:    report.DisplayName,
		From:           report.From,
		To:             report.To,
		TasksCompleted: report.TasksCompleted,
		ExpEarned:      report.ExpEarned,
		HealthRestored: report.HealthRestored,
		PerDay:         report.PerDay,
	}
	if report.Profile != nil {
		data.Level = report.Profile.Level
		data.CurrentStreak = report.Profile.CurrentStreak
	}

	path, err := h.pdfGen.GenerateWeeklyReport(data)
	if err != nil {
		log.Printf("[report][weekly] pdf userID=%d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}

	filename := fmt.Sprintf("weekly_report_%s.pdf", report.To.Format("2006-01-02"))
	c.FileAttachment(path, filename)
}

// @Summary      Email the weekly summary
// @Description  Mails the caller their week in review. Meant for an external scheduler.
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /reports/weekly/email [post]
func (h *ReportHandler) EmailWeekly(c *gin.Context) {
	userID := getUserID(c)
	if err := h.service.EmailWeekly(c.Request.Context(), userID); err != nil {
		log.Printf("[report][email] userID=%d: %v", userID, err)
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sent"})
}
