package wire

import (
	"Beacon/internal/api"
	"Beacon/internal/api/config"
	"Beacon/internal/api/handler"
	"Beacon/internal/job"
	"Beacon/internal/pkg/cron"
	"Beacon/internal/pkg/linkedin"
	"Beacon/internal/pkg/security"
	"Beacon/internal/repository"
	"Beacon/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	dailyMetricRepo := repository.NewDailyMetricRepository(db)
	followerRepo := repository.NewFollowerSnapshotRepository(db)
	demographicRepo := repository.NewDemographicSnapshotRepository(db)
	postDemographicRepo := repository.NewPostDemographicRepository(db)
	uploadRepo := repository.NewUploadRepository(db)
	tokenRepo := repository.NewOAuthTokenRepository(db)

	tokenCipher, err := security.NewTokenCipher(cfg.Security.TokenCipherKey)
	if err != nil {
		return nil, err
	}
	linkedinClient := linkedin.NewClient(cfg.LinkedIn)

	importService := service.NewImportService(db, uploadRepo)
	postService := service.NewPostService(postRepo, postDemographicRepo)
	analyticsService := service.NewAnalyticsService(postRepo, dailyMetricRepo, followerRepo, demographicRepo)
	oauthService := service.NewOAuthService(tokenRepo, linkedinClient, tokenCipher)
	publishService := service.NewPublishService(postRepo, oauthService, linkedinClient)

	handlers := &api.HandlersGroup{
		UploadHandler:    handler.NewUploadHandler(importService),
		PostHandler:      handler.NewPostHandler(postService),
		AnalyticsHandler: handler.NewAnalyticsHandler(analyticsService),
		OAuthHandler:     handler.NewOAuthHandler(oauthService),
		PublishHandler:   handler.NewPublishHandler(publishService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewTokenRefreshJob(oauthService))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
