package handler

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kkdai/youtube/v2"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExtractor lets handler tests control the extraction capability
// and assert how often it was reached.
type stubExtractor struct {
	mu         sync.Mutex
	videoCalls int

	video *youtube.Video
	err   error

	stream     io.ReadCloser
	streamSize int64
	streamErr  error
}

func (s *stubExtractor) GetVideo(ctx context.Context, videoURL string) (*youtube.Video, error) {
	s.mu.Lock()
	s.videoCalls++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return s.video, nil
}

func (s *stubExtractor) GetStream(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error) {
	if s.streamErr != nil {
		return nil, 0, s.streamErr
	}
	return s.stream, s.streamSize, nil
}

func (s *stubExtractor) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoCalls
}

func testVideo() *youtube.Video {
	return &youtube.Video{
		ID:       "dQw4w9WgXcQ",
		Title:    "Never Gonna Give You Up (Official Video)",
		Author:   "Rick Astley",
		Duration: 212 * time.Second,
		Thumbnails: youtube.Thumbnails{
			{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"},
		},
		Formats: youtube.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", AudioChannels: 2, Bitrate: 500000},
			{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, QualityLabel: "720p", AudioChannels: 2, Bitrate: 1200000},
			{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, QualityLabel: "", AudioChannels: 2, Bitrate: 128000},
		},
	}
}

// errReader yields its payload and then fails, simulating a source
// stream dying mid-transfer.
type errReader struct {
	payload []byte
	err     error
	offset  int
}

func (r *errReader) Read(p []byte) (int, error) {
	if r.offset < len(r.payload) {
		n := copy(p, r.payload[r.offset:])
		r.offset += n
		return n, nil
	}
	return 0, r.err
}

func (r *errReader) Close() error { return nil }
