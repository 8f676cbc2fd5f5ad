package app

import (
	"database/sql"
	"fmt"
	"log"

	"chorequest/internal/config"
	"chorequest/internal/handlers"
	"chorequest/internal/middleware"
	"chorequest/internal/pdf"
	"chorequest/internal/repositories"
	"chorequest/internal/routes"
	"chorequest/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "chorequest/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.Auth.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("DB close failed: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	templateRepo := repositories.NewTemplateRepository(db)
	assignmentRepo := repositories.NewAssignmentRepository(db)
	instanceRepo := repositories.NewInstanceRepository(db)
	completionRepo := repositories.NewCompletionRepository(db)
	areaRepo := repositories.NewAreaRepository(db)
	toolRepo := repositories.NewToolRepository(db)
	legacyRepo := repositories.NewLegacyTaskRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, profileRepo, areaRepo, toolRepo, emailService, authService)
	refreshService := services.NewRefreshService(userRepo)
	profileService := services.NewProfileService(profileRepo)
	templateService := services.NewTemplateService(templateRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, templateRepo)
	instanceService := services.NewInstanceService(instanceRepo, assignmentRepo, templateRepo, legacyRepo)
	completionService := services.NewCompletionService(
		instanceRepo, assignmentRepo, templateRepo, profileRepo, areaRepo, toolRepo, completionRepo,
	)
	areaService := services.NewAreaService(areaRepo)
	toolService := services.NewToolService(toolRepo)
	reportService := services.NewReportService(userRepo, profileRepo, instanceRepo, emailService)

	// Telegram is optional; without a token reminders turn into no-ops
	telegramService, err := services.NewTelegramService(cfg.Telegram.BotToken)
	if err != nil {
		log.Printf("[app][warn] telegram disabled: %v", err)
	}
	reminderService := services.NewReminderService(userRepo, instanceService, telegramService)

	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, authService, refreshService)
	userHandler := handlers.NewUserHandler(userService, profileService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	taskHandler := handlers.NewTaskHandler(instanceService, completionService)
	areaHandler := handlers.NewAreaHandler(areaService)
	toolHandler := handlers.NewToolHandler(toolService)
	reportHandler := handlers.NewReportHandler(reportService, pdfGen)
	integrationsHandler := handlers.NewIntegrationsHandler(userService, reminderService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.RequestID())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes (JWT inside SetupRoutes)
	routes.SetupRoutes(
		router,
		authHandler,
		userHandler,
		templateHandler,
		assignmentHandler,
		taskHandler,
		areaHandler,
		toolHandler,
		reportHandler,
		integrationsHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server start failed: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
