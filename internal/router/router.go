package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/opjlab/opj-backend/internal/config"
	"github.com/opjlab/opj-backend/internal/handler"
	"github.com/opjlab/opj-backend/internal/middleware"
	"github.com/opjlab/opj-backend/internal/response"
	"github.com/opjlab/opj-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Document *handler.DocumentHandler
	Training *handler.TrainingHandler
	Progress *handler.ProgressHandler
	Billing  *handler.BillingHandler
	Media    *handler.MediaHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	accessService *service.AccessService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "X-Webhook-Secret"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Serve uploaded media files statically with aggressive caching (1 year).
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", "./uploads")
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.UserLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.UserLogout)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.GetUserProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. User Group (JWT + Single Device) ───────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		userAPI.GET("/documents", handlers.Document.ListPublishedDocuments)

		// Opening a document payload consumes one unit of the free daily quota.
		userAPI.GET("/documents/:document_id",
			middleware.EnforceDailyQuota(accessService),
			handlers.Document.GetDocumentPayload,
		)
		userAPI.POST("/documents/:document_id/exercise", handlers.Training.GenerateExercise)
		userAPI.POST("/documents/:document_id/blocks/:block_id/check", handlers.Training.CheckAnswers)
		userAPI.POST("/documents/:document_id/blocks/:block_id/recite", handlers.Training.Recite)

		userAPI.GET("/progress/documents/:document_id", handlers.Progress.GetDocumentProgress)
		userAPI.GET("/progress/attempts", handlers.Progress.GetRecentAttempts)
		userAPI.GET("/progress/quota", handlers.Progress.GetQuota)

		userAPI.POST("/billing/promo/redeem", handlers.Billing.RedeemPromo)
	}

	// Payment webhook is authenticated by a shared secret header, not a JWT.
	router.POST("/api/v1/billing/webhook", handlers.Billing.PaymentWebhook)

	// ─── 3. WebSocket Group (User WS Auth) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/documents/:document_id/dictation", handlers.WS.DictationStream)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Media upload
		adminAPI.POST("/media/upload", handlers.Media.UploadMedia)

		// Document management
		adminAPI.GET("/documents", handlers.Document.ListDocuments)
		adminAPI.POST("/documents", handlers.Document.CreateDocument)
		adminAPI.GET("/documents/:document_id", handlers.Document.GetDocument)
		adminAPI.PUT("/documents/:document_id", handlers.Document.UpdateDocument)
		adminAPI.PUT("/documents/:document_id/content", handlers.Document.ReplaceContent)
		adminAPI.POST("/documents/:document_id/publish", handlers.Document.PublishDocument)
		adminAPI.POST("/documents/:document_id/unpublish", handlers.Document.UnpublishDocument)
		adminAPI.POST("/documents/:document_id/refresh-cache", handlers.Document.RefreshDocumentCache)
		adminAPI.DELETE("/documents/:document_id", handlers.Document.DeleteDocument)

		// Promo code management
		adminAPI.GET("/promo-codes", handlers.Billing.ListPromos)
		adminAPI.POST("/promo-codes", handlers.Billing.CreatePromo)
	}

	return router
}
