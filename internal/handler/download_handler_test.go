package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDownloadRouter(stub *stubExtractor) *gin.Engine {
	svc := service.NewDownloadService(stub, time.Second)
	h := NewDownloadHandler(svc)

	r := gin.New()
	r.POST("/api/download", h.Download)
	return r
}

func TestDownloadMP3Headers(t *testing.T) {
	payload := "fake audio bytes"
	stub := &stubExtractor{
		video:      testVideo(),
		stream:     io.NopCloser(strings.NewReader(payload)),
		streamSize: int64(len(payload)),
	}
	r := newDownloadRouter(stub)

	// A quality value is supplied but must be ignored for mp3.
	rr := postJSON(r, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ","quality":"720p","format":"mp3"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "audio/mpeg", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="never_gonna_give_you_up__official_video_.mp3"`,
		rr.Header().Get("Content-Disposition"))
	assert.Equal(t, payload, rr.Body.String())
}

func TestDownloadDefaultMP4(t *testing.T) {
	payload := "fake video bytes"
	stub := &stubExtractor{
		video:      testVideo(),
		stream:     io.NopCloser(strings.NewReader(payload)),
		streamSize: int64(len(payload)),
	}
	r := newDownloadRouter(stub)

	rr := postJSON(r, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "video/mp4", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), ".mp4")
	assert.Equal(t, payload, rr.Body.String())
}

func TestDownloadFallbackNotFailure(t *testing.T) {
	// testVideo has no webm variant at all; requesting webm 1080p must
	// still produce a stream.
	stub := &stubExtractor{
		video:  testVideo(),
		stream: io.NopCloser(strings.NewReader("bytes")),
	}
	r := newDownloadRouter(stub)

	rr := postJSON(r, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ","quality":"1080p","format":"webm"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "video/webm", rr.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", rr.Body.String())
}

func TestDownloadValidation(t *testing.T) {
	stub := &stubExtractor{video: testVideo()}
	r := newDownloadRouter(stub)

	rr := postJSON(r, "/api/download", `{"url":""}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(r, "/api/download", `{"url":"not-a-video"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, 0, stub.calls())
}

func TestDownloadResolveErrorMapped(t *testing.T) {
	r := newDownloadRouter(&stubExtractor{err: errors.New("video is private")})

	rr := postJSON(r, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "private or unavailable")
}

func TestDownloadStreamOpenErrorMapped(t *testing.T) {
	r := newDownloadRouter(&stubExtractor{
		video:     testVideo(),
		streamErr: errors.New("unexpected status code: 429"),
	})

	rr := postJSON(r, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestDownloadMidStreamErrorTruncates(t *testing.T) {
	// Once streaming has begun the status is already written; a source
	// error can only truncate the body.
	stub := &stubExtractor{
		video:  testVideo(),
		stream: &errReader{payload: []byte("partial"), err: errors.New("connection reset")},
	}
	r := newDownloadRouter(stub)

	rr := postJSON(r, "/api/download", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "partial", rr.Body.String())
}
