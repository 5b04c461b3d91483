package handler

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/response"
	"MedWarehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportSvc service.ReportService
	trendSvc  service.TrendService
}

func NewReportHandler(reportSvc service.ReportService, trendSvc service.TrendService) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
		trendSvc:  trendSvc,
	}
}

func (s *ReportHandler) DataQuality(c *gin.Context) {
	out, err := s.reportSvc.DataQuality(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *ReportHandler) EngagementTrends(c *gin.Context) {
	var req dto.EngagementTrendsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.trendSvc.EngagementTrends(c.Request.Context(), req.Granularity, req.Days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
