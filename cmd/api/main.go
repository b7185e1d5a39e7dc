// @title MCQ Generator API
// @version 1.0
// @description Generates multiple choice quizzes from source documents with a language model.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mcq-gen/internal/adapter"
	"mcq-gen/internal/adapter/llm"
	"mcq-gen/internal/adapter/report"
	"mcq-gen/internal/adapter/source"
	"mcq-gen/internal/cache"
	"mcq-gen/internal/config"
	"mcq-gen/internal/domain"
	"mcq-gen/internal/handler"
	"mcq-gen/internal/logger"
	"mcq-gen/internal/middleware"
	"mcq-gen/internal/parser"
	"mcq-gen/internal/prompt"
	"mcq-gen/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	model, err := llm.New(cfg.LLM, appLogger.Named("llm"))
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	if closer, ok := model.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	schema, err := prompt.LoadSchema(cfg.Quiz.SchemaPath)
	if err != nil {
		appLogger.Fatal("Failed to load response schema", zap.Error(err), zap.String("path", cfg.Quiz.SchemaPath))
	}

	// Results live in Redis when configured, otherwise in process memory.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	} else {
		cacheAdapter = adapter.NewMemoryCacheAdapter()
		appLogger.Warn("Redis address not configured, keeping results in memory")
	}

	quizService := service.NewQuizService(
		service.NewPipeline(model, prompt.NewComposer()),
		parser.New(parser.WithStrictRecords(cfg.Quiz.StrictRecords), parser.WithLogger(appLogger.Named("parser"))),
		service.NewResultStore(cacheAdapter, cfg.Quiz.ResultTTL),
		report.NewPDFRenderer(cfg.Report),
		schema,
	)

	quizHandler := handler.NewQuizHandler(quizService, source.NewReader(cfg.Quiz.MaxSourceChars, appLogger.Named("source")))
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.Health)
	quizHandler.RegisterRoutes(app.Group("/api"))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
