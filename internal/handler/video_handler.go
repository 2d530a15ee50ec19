package handler

import (
	"net/http"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/internal/service"
	"github.com/IbsanjU/yt-downloader/pkg/logger"
	"github.com/IbsanjU/yt-downloader/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// VideoHandler handles video metadata requests
type VideoHandler struct {
	videoService *service.VideoService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(vs *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: vs}
}

// GetVideoInfo handles POST /api/video-info
func (h *VideoHandler) GetVideoInfo(c *gin.Context) {
	var req model.VideoInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "URL is required"})
		return
	}

	// Pattern check before any outbound call.
	if !validator.ValidateYouTubeURL(req.URL) {
		logger.Logger.Warn("Invalid YouTube URL", zap.String("url", req.URL))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid YouTube URL"})
		return
	}

	info, err := h.videoService.GetVideoInfo(c.Request.Context(), req.URL)
	if err != nil {
		status, msg := service.Classify(err)
		logger.Logger.Error("Failed to get video info",
			zap.Error(err),
			zap.String("url", req.URL),
			zap.Int("status", status))
		c.JSON(status, model.ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, info)
}

// HealthCheck handles GET /api/health
func (h *VideoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "yt-downloader",
	})
}
