package handler

import (
	"errors"
	"net/http"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/internal/videolist"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "session_id"

// ListHandler exposes the per-session video list.
type ListHandler struct {
	store *videolist.Store
}

// NewListHandler creates a new video list handler
func NewListHandler(store *videolist.Store) *ListHandler {
	return &ListHandler{store: store}
}

// sessionID returns the caller's session identifier, minting a cookie
// on first contact.
func (h *ListHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

// ListVideos handles GET /api/videos
func (h *ListHandler) ListVideos(c *gin.Context) {
	videos := h.store.List(h.sessionID(c))
	if videos == nil {
		videos = []*model.VideoInfo{}
	}
	c.JSON(http.StatusOK, model.VideoListResponse{Videos: videos})
}

// AddVideos handles POST /api/videos. Validation failures abort the
// whole batch with 400 before any lookup; lookup failures come back as
// one multi-line error next to whatever succeeded.
func (h *ListHandler) AddVideos(c *gin.Context) {
	var req model.AddVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URLs == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "At least one URL is required"})
		return
	}

	videos, err := h.store.AddVideos(c.Request.Context(), h.sessionID(c), req.URLs)
	if videos == nil {
		videos = []*model.VideoInfo{}
	}

	var vErr *videolist.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: vErr.Error()})
		return
	}

	resp := model.VideoListResponse{Videos: videos}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveVideo handles DELETE /api/videos/:id
func (h *ListHandler) RemoveVideo(c *gin.Context) {
	id := c.Param("id")
	if !h.store.RemoveVideo(h.sessionID(c), id) {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "Video not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
