package handler

import (
	"Beacon/internal/api/dto"
	"Beacon/internal/pkg/response"
	"Beacon/internal/service"

	"github.com/gin-gonic/gin"
)

type PublishHandler struct {
	publishSvc service.PublishService
}

func NewPublishHandler(publishSvc service.PublishService) *PublishHandler {
	return &PublishHandler{
		publishSvc: publishSvc,
	}
}

// Publish 发布草稿或即兴内容
func (s *PublishHandler) Publish(c *gin.Context) {
	var req dto.PublishRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.publishSvc.Publish(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
