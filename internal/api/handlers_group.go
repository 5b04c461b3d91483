package api

import "MedWarehouse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AnalyticsHandler *handler.AnalyticsHandler
	ChannelHandler   *handler.ChannelHandler
	SearchHandler    *handler.SearchHandler
	ReportHandler    *handler.ReportHandler
}
