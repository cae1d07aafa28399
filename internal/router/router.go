package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eventhub-be/internal/controllers"
	"eventhub-be/internal/logger"
	"eventhub-be/internal/middleware"
)

// Controllers groups the handlers mounted by Register.
type Controllers struct {
	Auth   *controllers.AuthController
	Events *controllers.EventController
	QRCode *controllers.QRCodeController
}

// Limiters holds the per-IP rate limiters. A nil limiter disables limiting
// for its group.
type Limiters struct {
	General *middleware.RateLimiter
	Auth    *middleware.RateLimiter
}

// New returns a gin engine with middleware and routes registered.
func New(log logger.Logger, allowedOrigins []string, ctrl Controllers, limiters Limiters) *gin.Engine {
	r := gin.New()
	Register(r, log, allowedOrigins, ctrl, limiters)
	return r
}

// Register wires routes and middleware.
func Register(r *gin.Engine, log logger.Logger, allowedOrigins []string, ctrl Controllers, limiters Limiters) {
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Event Management Server is running!")
	})

	// Health check endpoint (no rate limiting)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	if limiters.General != nil {
		api.Use(limiters.General.LimitMiddleware())
	}
	{
		auth := api.Group("/auth")
		if limiters.Auth != nil {
			auth.Use(limiters.Auth.LimitMiddleware())
		}
		{
			auth.POST("/register", ctrl.Auth.Register)
			auth.POST("/login", ctrl.Auth.Login)
			auth.POST("/google", ctrl.Auth.Google)
		}

		events := api.Group("/events")
		{
			events.GET("", ctrl.Events.ListEvents)
			events.POST("", ctrl.Events.CreateEvent)
			events.GET("/:id", ctrl.Events.GetEvent)
			events.PUT("/:id", ctrl.Events.UpdateEvent)
			events.DELETE("/:id", ctrl.Events.DeleteEvent)
			events.GET("/:id/qrcode", ctrl.QRCode.EventQRCode)
		}

		api.GET("/categories", ctrl.Events.ListCategories)
	}
}
