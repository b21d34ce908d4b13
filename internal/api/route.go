package api

import (
	"Beacon/internal/api/middleware"
	"Beacon/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		uploadGroup := apiGroup.Group("/uploads")
		{
			uploadGroup.POST("", group.UploadHandler.Upload)
			uploadGroup.POST("/batch", group.UploadHandler.UploadBatch)
			uploadGroup.GET("", group.UploadHandler.History)
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.PATCH("/:post_id/cohorts", group.PostHandler.UpdateCohorts)
		}

		draftGroup := apiGroup.Group("/drafts")
		{
			draftGroup.GET("", group.PostHandler.ListDrafts)
			draftGroup.POST("", group.PostHandler.CreateDraft)
			draftGroup.PUT("/:post_id", group.PostHandler.UpdateDraft)
			draftGroup.DELETE("/:post_id", group.PostHandler.DeleteDraft)
		}

		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/overview", group.AnalyticsHandler.Overview)
			analyticsGroup.GET("/timeseries", group.AnalyticsHandler.TimeSeries)
			analyticsGroup.GET("/engagement", group.AnalyticsHandler.EngagementTrend)
			analyticsGroup.GET("/cohorts", group.AnalyticsHandler.Cohorts)
			analyticsGroup.GET("/followers", group.AnalyticsHandler.FollowerTrend)
			analyticsGroup.GET("/demographics", group.AnalyticsHandler.Demographics)
		}

		oauthGroup := apiGroup.Group("/oauth/linkedin")
		{
			oauthGroup.GET("/authorize", group.OAuthHandler.Begin)
			oauthGroup.GET("/callback", group.OAuthHandler.Callback)
			oauthGroup.GET("/status", group.OAuthHandler.Status)
			oauthGroup.DELETE("", group.OAuthHandler.Disconnect)
		}

		apiGroup.POST("/publish", group.PublishHandler.Publish)
	}

	return r
}
