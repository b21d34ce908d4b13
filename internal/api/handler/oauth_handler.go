package handler

import (
	"Beacon/internal/pkg/response"
	"Beacon/internal/service"

	"github.com/gin-gonic/gin"
)

type OAuthHandler struct {
	oauthSvc service.OAuthService
}

func NewOAuthHandler(oauthSvc service.OAuthService) *OAuthHandler {
	return &OAuthHandler{
		oauthSvc: oauthSvc,
	}
}

// Begin 生成授权跳转地址
func (s *OAuthHandler) Begin(c *gin.Context) {
	auth, err := s.oauthSvc.BeginAuth(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, auth)
}

// Callback 授权回调
func (s *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	if err := s.oauthSvc.HandleCallback(c.Request.Context(), code, state); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *OAuthHandler) Status(c *gin.Context) {
	status, err := s.oauthSvc.Status(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

func (s *OAuthHandler) Disconnect(c *gin.Context) {
	if err := s.oauthSvc.Disconnect(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
