package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blood-bank-api-server/config"
	"blood-bank-api-server/internal/api/handlers"
	"blood-bank-api-server/internal/api/middleware"
	"blood-bank-api-server/internal/auth"
	"blood-bank-api-server/internal/socket"
	"blood-bank-api-server/internal/store"
)

// SetupRouter wires every handler to its route. Stores are passed as
// interfaces so tests can run the full router against memstore.
func SetupRouter(
	cfg config.Config,
	ledger store.StockLedger,
	requests store.RequestStore,
	admins store.AdminStore,
	hub *socket.Hub,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	allowedOrigins := cfg.CORS.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	jwtSecret := []byte(cfg.JWT.Secret)
	jwtTTL, err := time.ParseDuration(cfg.JWT.Expiration)
	if err != nil {
		jwtTTL = 24 * time.Hour
	}

	adminHandler := &handlers.AdminHandler{
		Admins:    admins,
		Ledger:    ledger,
		Requests:  requests,
		JWTSecret: jwtSecret,
		JWTTTL:    jwtTTL,
		Logger:    logger.Named("handlers.admin"),
	}
	inventoryHandler := &handlers.InventoryHandler{
		Ledger: ledger,
		Hub:    hub,
		Logger: logger.Named("handlers.inventory"),
	}
	requestHandler := &handlers.RequestHandler{
		Requests: requests,
		Hub:      hub,
		Logger:   logger.Named("handlers.requests"),
	}
	webSocketHandler := &handlers.WebSocketHandler{
		Hub:       hub,
		JWTSecret: jwtSecret,
		Logger:    logger.Named("handlers.ws"),
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === ROUTES WITHOUT AUTHENTICATION ===

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", adminHandler.Login)
		}

		// Public intake: anyone may submit a blood request.
		public := apiV1.Group("/")
		{
			public.POST("/requests", requestHandler.CreateRequest)
		}

		// === PROTECTED ROUTES (admin only) ===

		protected := apiV1.Group("/")
		protected.Use(middleware.Authenticate(jwtSecret))
		protected.Use(middleware.Authorize(auth.RoleAdmin))
		{
			inventory := protected.Group("/inventory")
			{
				inventory.GET("", inventoryHandler.GetInventory)
				inventory.PUT("/:bloodGroup", inventoryHandler.AdjustInventory)
			}

			requestsGroup := protected.Group("/requests")
			{
				requestsGroup.GET("", requestHandler.ListRequests)
				requestsGroup.PATCH("/:id/status", requestHandler.UpdateRequestStatus)
				requestsGroup.DELETE("/:id", requestHandler.DeleteRequest)
			}

			admin := protected.Group("/admin")
			{
				admin.GET("/stats", adminHandler.GetDashboardStats)
				admin.GET("/recent-requests", adminHandler.GetRecentRequests)
			}
		}
	}

	return router
}
