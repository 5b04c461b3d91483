package handler

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/response"
	"MedWarehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	productSvc   service.ProductService
	visualSvc    service.VisualService
	dashboardSvc service.DashboardService
	trendSvc     service.TrendService
}

func NewAnalyticsHandler(productSvc service.ProductService, visualSvc service.VisualService, dashboardSvc service.DashboardService, trendSvc service.TrendService) *AnalyticsHandler {
	return &AnalyticsHandler{
		productSvc:   productSvc,
		visualSvc:    visualSvc,
		dashboardSvc: dashboardSvc,
		trendSvc:     trendSvc,
	}
}

func (s *AnalyticsHandler) TopProducts(c *gin.Context) {
	var req dto.TopProductsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.productSvc.TopProducts(c.Request.Context(), req.Limit, req.Timeframe, req.Channel, req.MinMentions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AnalyticsHandler) VisualContent(c *gin.Context) {
	var req dto.VisualContentReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.visualSvc.Stats(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AnalyticsHandler) Dashboard(c *gin.Context) {
	out, err := s.dashboardSvc.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AnalyticsHandler) DailyTrends(c *gin.Context) {
	var req dto.DailyTrendsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.trendSvc.DailyTrends(c.Request.Context(), req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *AnalyticsHandler) CompareChannels(c *gin.Context) {
	var req dto.ChannelCompareReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.trendSvc.CompareChannels(c.Request.Context(), req.Channels, req.Metric, req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
