package api

import (
	"MedWarehouse/internal/api/config"
	"MedWarehouse/internal/api/middleware"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, c *cache.Cache) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & CORS & 限流 & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware(c,
		config.Cfg.RateLimit.Limit,
		time.Duration(config.Cfg.RateLimit.Window)*time.Second))
	logger.SetupGin(r)

	pong := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Code":    200,
			"Message": "pong",
			"Data":    nil,
		})
	}
	r.GET("/", pong)
	r.GET("/health", pong)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", pong)

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/top-products", group.AnalyticsHandler.TopProducts)
			analyticsGroup.GET("/visual-content", group.AnalyticsHandler.VisualContent)
			analyticsGroup.GET("/dashboard", group.AnalyticsHandler.Dashboard)
			analyticsGroup.GET("/trends/daily", group.AnalyticsHandler.DailyTrends)
			analyticsGroup.GET("/channels/compare", group.AnalyticsHandler.CompareChannels)
		}

		channelGroup := apiGroup.Group("/channels")
		{
			channelGroup.GET("", group.ChannelHandler.List)
			channelGroup.GET("/:name/activity", group.ChannelHandler.Activity)
		}

		searchGroup := apiGroup.Group("/search")
		{
			searchGroup.GET("/messages", group.SearchHandler.Messages)
		}

		reportGroup := apiGroup.Group("/reports")
		{
			reportGroup.GET("/data-quality", group.ReportHandler.DataQuality)
			reportGroup.GET("/trends/engagement", group.ReportHandler.EngagementTrends)
		}
	}

	return r
}
