package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/internal/service"
	"github.com/IbsanjU/yt-downloader/pkg/logger"
	"github.com/IbsanjU/yt-downloader/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const streamChunkSize = 64 * 1024

// DownloadHandler handles download requests
type DownloadHandler struct {
	downloadService *service.DownloadService
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(ds *service.DownloadService) *DownloadHandler {
	return &DownloadHandler{downloadService: ds}
}

// Download handles POST /api/download. The response body is the raw
// stream of the selected variant, relayed chunk by chunk.
func (h *DownloadHandler) Download(c *gin.Context) {
	var req model.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "URL is required"})
		return
	}

	if !validator.ValidateYouTubeURL(req.URL) {
		logger.Logger.Warn("Invalid YouTube URL", zap.String("url", req.URL))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid YouTube URL"})
		return
	}

	video, sel, err := h.downloadService.Resolve(c.Request.Context(), &req)
	if err != nil {
		status, msg := service.Classify(err)
		c.JSON(status, model.ErrorResponse{Error: msg})
		return
	}

	// The stream phase uses the request context directly: it has no
	// overall deadline and ends when the source is drained or the
	// client goes away.
	stream, size, err := h.downloadService.OpenStream(c.Request.Context(), video, sel)
	if err != nil {
		status, msg := service.Classify(err)
		c.JSON(status, model.ErrorResponse{Error: msg})
		return
	}
	defer stream.Close()

	filename := validator.SlugFilename(video.Title) + "." + sel.Extension
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", sel.ContentType)
	if size > 0 {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Status(http.StatusOK)

	h.relay(c, stream, filename)
}

// relay copies the source stream to the response incrementally. Once
// headers are sent an error can only terminate the stream; the client
// sees a truncated download and we log the cause server-side.
func (h *DownloadHandler) relay(c *gin.Context, stream io.Reader, filename string) {
	flusher, _ := c.Writer.(http.Flusher)
	buf := make([]byte, streamChunkSize)
	var written int64

	for {
		n, rerr := stream.Read(buf)
		if n > 0 {
			if _, werr := c.Writer.Write(buf[:n]); werr != nil {
				logger.Logger.Warn("Client disconnected during download",
					zap.String("filename", filename),
					zap.Int64("bytes_sent", written),
					zap.Error(werr))
				return
			}
			written += int64(n)
			if flusher != nil {
				flusher.Flush()
			}
		}
		if rerr == io.EOF {
			logger.Logger.Info("Download completed",
				zap.String("filename", filename),
				zap.Int64("bytes_sent", written))
			return
		}
		if rerr != nil {
			logger.Logger.Error("Stream error, terminating download",
				zap.String("filename", filename),
				zap.Int64("bytes_sent", written),
				zap.Error(rerr))
			return
		}
	}
}
