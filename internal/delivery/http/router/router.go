package router

import (
	"time"

	"github.com/dmontoya-dev/eventos-payment-service/internal/delivery/http/handlers"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Routers struct {
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
	DB      *gorm.DB
	Log     zerolog.Logger
}

func NewRouter(r *Routers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	app := gin.New()

	app.Use(gin.Recovery())
	app.Use(loggingMiddleware(r.Log))
	app.Use(cors.Default())

	apiGroup := app.Group("/v1")

	apiGroup.POST("/payments/link", r.Payment.CreateLink)
	apiGroup.POST("/payments/webhook", r.Webhook.HandleCallback)
	apiGroup.GET("/payments/transactions", r.Payment.ListTransactions)
	apiGroup.GET("/payments/transactions/:reference", r.Payment.GetTransaction)

	app.GET("/healthz", healthHandler(r.DB))
	app.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return app
}

func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(started)).
			Msg("request handled")
	}
}

func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(503, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	}
}
