package api

import "Beacon/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UploadHandler    *handler.UploadHandler
	PostHandler      *handler.PostHandler
	AnalyticsHandler *handler.AnalyticsHandler
	OAuthHandler     *handler.OAuthHandler
	PublishHandler   *handler.PublishHandler
}
