package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/handlers"
  "github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/middleware"
)

type RouterConfig struct {
  ClientOrigin      string
  AuthMiddleware    *middleware.AuthMiddleware
  LessonHandler     *handlers.LessonHandler
  FavoriteHandler   *handlers.FavoriteHandler
  ReportHandler     *handlers.ReportHandler
  UserHandler       *handlers.UserHandler
  PaymentHandler    *handlers.PaymentHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  allowOrigins := []string{
    "http://localhost:5173",
    "http://localhost:5174",
  }
  if cfg.ClientOrigin != "" {
    allowOrigins = append(allowOrigins, cfg.ClientOrigin)
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/", handlers.Root)
  router.GET("/healthcheck", handlers.HealthCheck)
  // Lessons
  router.POST("/lessons", cfg.LessonHandler.Create)
  router.GET("/lessons", cfg.LessonHandler.ListPublic)
  router.GET("/lessons/:id", cfg.LessonHandler.GetByID)
  router.GET("/lessons/user/:email", cfg.LessonHandler.ListByCreator)
  router.GET("/lessons/public/:email", cfg.LessonHandler.ListPublicByCreator)
  router.GET("/lessons/recent/:email", cfg.LessonHandler.ListRecentByCreator)
  router.GET("/lessons/count/:email", cfg.LessonHandler.CountByCreator)
  router.GET("/lessons/featured", cfg.LessonHandler.ListFeatured)
  router.GET("/lessons/recommended/:id", cfg.LessonHandler.Recommended)
  router.GET("/lessons/most-saved", cfg.FavoriteHandler.MostSaved)
  router.PATCH("/lessons/:id", cfg.LessonHandler.Update)
  router.DELETE("/lessons/:id", cfg.LessonHandler.Delete)
  // Favorites
  router.POST("/favorites", cfg.FavoriteHandler.Add)
  router.GET("/favorites", cfg.FavoriteHandler.List)
  router.DELETE("/favorites/:id", cfg.FavoriteHandler.Remove)
  // Reports
  router.GET("/reportes", cfg.ReportHandler.List)
  router.GET("/reportes/count", cfg.ReportHandler.Counts)
  // Users
  router.POST("/user", cfg.UserHandler.Save)
  router.GET("/user", cfg.UserHandler.List)
  router.GET("/user/count", cfg.UserHandler.Count)
  router.GET("/user/:email", cfg.UserHandler.GetByEmail)
  router.GET("/user/role/:email", cfg.UserHandler.GetRole)
  router.PATCH("/user/role/:id", cfg.UserHandler.UpdateRole)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Lessons
  protected.GET("/all-lessons", cfg.LessonHandler.ListAll)
  protected.PUT("/lessons/visibility/:id", cfg.LessonHandler.SetVisibility)
  protected.PUT("/lessons/access/:id", cfg.LessonHandler.SetAccessLevel)
  protected.PUT("/lessons/featured/:id", cfg.LessonHandler.SetFeatured)
  protected.GET("/lessons/analytics/today", cfg.LessonHandler.AnalyticsToday)
  protected.GET("/lessons/analytics/contributors", cfg.LessonHandler.AnalyticsContributors)
  protected.GET("/lessons/analytics/summary", cfg.LessonHandler.AnalyticsSummary)
  // Reports
  protected.POST("/reportes", cfg.ReportHandler.Create)
  // Payments
  protected.POST("/create-checkout-session", cfg.PaymentHandler.CreateCheckoutSession)
  protected.GET("/verify-payment/:sessionId", cfg.PaymentHandler.VerifyPayment)

  return router
}
