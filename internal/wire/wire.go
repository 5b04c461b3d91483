package wire

import (
	"MedWarehouse/internal/api"
	"MedWarehouse/internal/api/config"
	"MedWarehouse/internal/api/handler"
	"MedWarehouse/internal/job"
	"MedWarehouse/internal/loader"
	"MedWarehouse/internal/pipeline"
	"MedWarehouse/internal/pkg/cache"
	"MedWarehouse/internal/pkg/cron"
	"MedWarehouse/internal/pkg/datalake"
	"MedWarehouse/internal/pkg/vision"
	"MedWarehouse/internal/repository"
	"MedWarehouse/internal/scraper"
	"MedWarehouse/internal/service"
	"MedWarehouse/internal/transform"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router   *gin.Engine
	DB       *gorm.DB
	CronMgr  *cron.Manager
	Pipeline *pipeline.Pipeline
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	channelRepo := repository.NewChannelRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)
	rawMessageRepo := repository.NewRawMessageRepository(db)

	queryCache := cache.New(cache.NewRedisStore(), time.Duration(cfg.Cache.DefaultTTL)*time.Second)

	productService := service.NewProductService(messageRepo, queryCache)
	channelService := service.NewChannelService(channelRepo, messageRepo, queryCache)
	searchService := service.NewSearchService(messageRepo)
	visualService := service.NewVisualService(detectionRepo, queryCache)
	dashboardService := service.NewDashboardService(channelRepo, messageRepo, detectionRepo, productService, queryCache)
	reportService := service.NewReportService(rawMessageRepo)
	trendService := service.NewTrendService(channelRepo, messageRepo, queryCache)

	handlers := &api.HandlersGroup{
		AnalyticsHandler: handler.NewAnalyticsHandler(productService, visualService, dashboardService, trendService),
		ChannelHandler:   handler.NewChannelHandler(channelService),
		SearchHandler:    handler.NewSearchHandler(searchService),
		ReportHandler:    handler.NewReportHandler(reportService, trendService),
	}
	router := api.SetupRouter(handlers, queryCache)

	pipe, err := BuildPipeline(db)
	if err != nil {
		return nil, err
	}
	cronMgr := cron.NewCronManager(job.NewPipelineJob(pipe))

	return &ApplicationContainer{
		Router:   router,
		DB:       db,
		CronMgr:  cronMgr,
		Pipeline: pipe,
	}, nil
}

// BuildPipeline 流水线组件装配，cmd/pipeline 单独复用
func BuildPipeline(db *gorm.DB) (*pipeline.Pipeline, error) {
	store, err := datalake.New()
	if err != nil {
		return nil, err
	}

	messageRepo := repository.NewMessageRepository(db)
	detectionRepo := repository.NewDetectionRepository(db)
	rawMessageRepo := repository.NewRawMessageRepository(db)

	enricher := pipeline.NewEnricher(
		messageRepo,
		detectionRepo,
		store,
		vision.NewDetector(),
		vision.NewClassifier(config.Cfg.Detector.Confidence),
	)
	return pipeline.New(
		scraper.New(store),
		loader.New(store, rawMessageRepo),
		transform.New(db),
		enricher,
		rawMessageRepo,
	), nil
}
