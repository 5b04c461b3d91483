package handler

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/response"
	"MedWarehouse/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelSvc service.ChannelService
}

func NewChannelHandler(channelSvc service.ChannelService) *ChannelHandler {
	return &ChannelHandler{
		channelSvc: channelSvc,
	}
}

func (s *ChannelHandler) Activity(c *gin.Context) {
	var req dto.ChannelActivityReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	// 缺省查询最近 30 天
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if req.StartDate != "" {
		start, _ = time.Parse(time.DateOnly, req.StartDate)
	}
	if req.EndDate != "" {
		end, _ = time.Parse(time.DateOnly, req.EndDate)
		end = end.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	out, err := s.channelSvc.Activity(c.Request.Context(), c.Param("name"), start, end, req.Granularity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *ChannelHandler) List(c *gin.Context) {
	var req dto.ChannelListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.channelSvc.List(c.Request.Context(), req.Name, req.ChannelType, req.MinPosts)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
