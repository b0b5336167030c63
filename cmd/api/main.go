package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizmaster-api/internal/config"
	"github.com/yourusername/quizmaster-api/internal/handler"
	"github.com/yourusername/quizmaster-api/internal/middleware"
	pgRepo "github.com/yourusername/quizmaster-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quizmaster-api/internal/repository/redis"
	"github.com/yourusername/quizmaster-api/internal/service"
	"github.com/yourusername/quizmaster-api/pkg/auth"
	"github.com/yourusername/quizmaster-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	quizRepo := pgRepo.NewQuizRepo(db)
	cardRepo := pgRepo.NewCardRepo(db)
	categoryRepo := pgRepo.NewCategoryRepo(db)
	submissionRepo := pgRepo.NewSubmissionRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем парольный шлюз модерации/админки
	gateService, err := auth.NewGateService(
		cfg.Gate.ValidationPassword,
		cfg.Gate.AdminPassword,
		cfg.Gate.SigningKey,
		time.Duration(cfg.Gate.TokenTTLHrs)*time.Hour,
	)
	if err != nil {
		log.Printf("Failed to initialize GateService: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	quizService := service.NewQuizService(quizRepo, cardRepo, categoryRepo, cacheRepo)
	submissionService := service.NewSubmissionService(submissionRepo)
	exportService := service.NewExportService(quizRepo, cardRepo, categoryRepo, submissionRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(gateService)
	quizHandler := handler.NewQuizHandler(quizService)
	cardHandler := handler.NewCardHandler(quizService)
	categoryHandler := handler.NewCategoryHandler(quizService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	exportHandler := handler.NewExportHandler(exportService)

	// Инициализируем middleware
	gateMiddleware := middleware.NewGateMiddleware(gateService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Парольный шлюз (с лимитом против перебора)
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.GateRateLimitConfig()))
		{
			authGroup.POST("/validation", authHandler.ValidationLogin)
			authGroup.POST("/admin", authHandler.AdminLogin)
		}

		// Викторины
		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("/active", quizHandler.GetActiveQuizzes)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", quizHandler.GetQuiz)
				quizWithID.GET("/cards", cardHandler.GetQuizCards)
				quizWithID.GET("/categories", categoryHandler.GetQuizCategories)

				// Общий курсор прогресса: читают и пишут сами игроки
				quizWithID.GET("/progress", quizHandler.GetProgress)
				quizWithID.PUT("/progress", quizHandler.SetProgress)

				// Администрирование викторины
				adminQuiz := quizWithID.Group("")
				adminQuiz.Use(gateMiddleware.RequireRole(auth.RoleAdmin))
				{
					adminQuiz.PUT("", quizHandler.UpdateQuiz)
					adminQuiz.PATCH("/toggle", quizHandler.ToggleQuizActive)
					adminQuiz.DELETE("", quizHandler.DeleteQuiz)
					adminQuiz.GET("/auto-approve", quizHandler.GetAutoApprove)
					adminQuiz.PUT("/auto-approve", quizHandler.SetAutoApprove)
				}
			}

			adminQuizzes := quizzes.Group("")
			adminQuizzes.Use(gateMiddleware.RequireRole(auth.RoleAdmin))
			{
				adminQuizzes.GET("", quizHandler.ListQuizzes)
				adminQuizzes.POST("", quizHandler.CreateQuiz)
			}
		}

		// Карточки
		cards := api.Group("/cards")
		cards.Use(gateMiddleware.RequireRole(auth.RoleAdmin))
		{
			cards.POST("", cardHandler.CreateCard)

			cardWithID := cards.Group("/:id")
			cardWithID.Use(middleware.ExtractUintParam("id", "cardID"))
			{
				cardWithID.PUT("", cardHandler.UpdateCard)
				cardWithID.DELETE("", cardHandler.DeleteCard)
			}
		}

		// Категории
		categories := api.Group("/categories")
		categories.Use(gateMiddleware.RequireRole(auth.RoleAdmin))
		{
			categories.POST("", categoryHandler.CreateCategory)

			categoryWithID := categories.Group("/:id")
			categoryWithID.Use(middleware.ExtractUintParam("id", "categoryID"))
			{
				categoryWithID.PUT("", categoryHandler.UpdateCategory)
				categoryWithID.DELETE("", categoryHandler.DeleteCategory)
			}
		}

		// Заявки
		submissions := api.Group("/submissions")
		{
			// Создание заявки — игроки, с мягким лимитом
			submissions.POST("", rateLimiter.Limit(middleware.SubmitRateLimitConfig()), submissionHandler.CreateSubmission)

			// Модерация
			moderated := submissions.Group("")
			moderated.Use(gateMiddleware.RequireRole(auth.RoleValidation))
			{
				moderated.GET("/pending", submissionHandler.GetPendingSubmissions)
				moderated.POST("/approve-all", submissionHandler.ApproveAll)

				submissionWithID := moderated.Group("/:id")
				submissionWithID.Use(middleware.ExtractUintParam("id", "submissionID"))
				{
					submissionWithID.PATCH("/status", submissionHandler.SetSubmissionStatus)
					submissionWithID.POST("/reject", submissionHandler.RejectSubmission)
				}
			}
		}

		// Экспорт
		export := api.Group("/export")
		export.Use(gateMiddleware.RequireRole(auth.RoleAdmin))
		{
			export.POST("/data", exportHandler.ExportData)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited")
}
