package handler

import (
	"MedWarehouse/internal/api/dto"
	"MedWarehouse/internal/pkg/response"
	"MedWarehouse/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc service.SearchService
}

func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchSvc: searchSvc,
	}
}

func (s *SearchHandler) Messages(c *gin.Context) {
	var req dto.SearchMessagesReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, err)
		return
	}

	out, err := s.searchSvc.Search(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
