package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chorequest/internal/handlers"
	"chorequest/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	templateHandler *handlers.TemplateHandler,
	assignmentHandler *handlers.AssignmentHandler,
	taskHandler *handlers.TaskHandler,
	areaHandler *handlers.AreaHandler,
	toolHandler *handlers.ToolHandler,
	reportHandler *handlers.ReportHandler,
	integrationsHandler *handlers.IntegrationsHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", userHandler.Register)

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// USERS / PROFILE
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateMe)
	}
	r.GET("/profile", userHandler.GetProfile)

	// TEMPLATES
	templates := r.Group("/templates")
	{
		templates.POST("/", templateHandler.Create)
		templates.GET("/", templateHandler.List)
		templates.GET("/:id", templateHandler.GetByID)
		templates.PUT("/:id", templateHandler.Update)
		templates.DELETE("/:id", templateHandler.Delete)
	}

	// ASSIGNMENTS
	assignments := r.Group("/assignments")
	{
		assignments.POST("/", assignmentHandler.Adopt)
		assignments.GET("/", assignmentHandler.List)
		assignments.PUT("/:id", assignmentHandler.Update)
		assignments.DELETE("/:id", assignmentHandler.Deactivate)
	}

	// TASKS
	tasks := r.Group("/tasks")
	{
		tasks.POST("/generate", taskHandler.Generate)
		tasks.GET("/today", taskHandler.Today)
		tasks.POST("/:id/complete", taskHandler.Complete)
		tasks.POST("/:id/toggle", taskHandler.Toggle)
	}

	// AREAS
	areas := r.Group("/areas")
	{
		areas.POST("/", areaHandler.Create)
		areas.GET("/", areaHandler.List)
		areas.POST("/:id/decay", areaHandler.Decay)
	}

	// TOOLS
	tools := r.Group("/tools")
	{
		tools.POST("/", toolHandler.Create)
		tools.GET("/", toolHandler.List)
		tools.POST("/:id/replace", toolHandler.Replace)
	}

	// REPORTS
	reports := r.Group("/reports")
	{
		reports.GET("/summary", reportHandler.Summary)
		reports.GET("/weekly", reportHandler.WeeklyPDF)
		reports.POST("/weekly/email", reportHandler.EmailWeekly)
	}

	// INTEGRATIONS
	integr := r.Group("/integrations")
	{
		integr.POST("/telegram/link", integrationsHandler.LinkTelegram)
		integr.POST("/telegram/reminders", integrationsHandler.SendReminders)
	}

	return r
}
