package main

import (
  "context"
  "fmt"
  "os"
  "github.com/joho/godotenv"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/utils"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/db"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/repos"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/handlers"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/middleware"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/server"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  clientOrigin := utils.GetEnv("CLIENT_ORIGIN", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  lessonRepo := repos.NewLessonRepo(thePG, log)
  favoriteRepo := repos.NewFavoriteRepo(thePG, log)
  reportRepo := repos.NewReportRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  tokenVerifier, err := services.NewFirebaseTokenVerifier(context.Background(), log)
  if err != nil {
    log.Error("Could not init FirebaseTokenVerifier", "error", err)
    os.Exit(1)
  }
  paymentProvider, err := services.NewStripeProvider(log)
  if err != nil {
    log.Warn("Could not init StripeProvider, payment endpoints disabled", "error", err)
  }
  userService := services.NewUserService(thePG, log, userRepo)
  lessonService := services.NewLessonService(thePG, log, lessonRepo)
  favoriteService := services.NewFavoriteService(thePG, log, favoriteRepo)
  reportService := services.NewReportService(thePG, log, reportRepo)
  paymentService := services.NewPaymentService(thePG, log, paymentProvider, userRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  userHandler := handlers.NewUserHandler(log, userService)
  lessonHandler := handlers.NewLessonHandler(log, lessonService)
  favoriteHandler := handlers.NewFavoriteHandler(log, favoriteService)
  reportHandler := handlers.NewReportHandler(log, reportService)
  paymentHandler := handlers.NewPaymentHandler(log, paymentService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, tokenVerifier)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    ClientOrigin:      clientOrigin,
    AuthMiddleware:    authMiddleware,
    LessonHandler:     lessonHandler,
    FavoriteHandler:   favoriteHandler,
    ReportHandler:     reportHandler,
    UserHandler:       userHandler,
    PaymentHandler:    paymentHandler,
  })

  port := utils.GetEnv("PORT", "5000", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
