package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"
)

// stubExtractor is a hand-rolled Extractor stub with call counting, so
// tests can assert that invalid input never reaches the outbound call.
type stubExtractor struct {
	mu         sync.Mutex
	videoCalls int
	lastCtx    context.Context

	video *youtube.Video
	err   error
	// block makes GetVideo wait for context cancellation, simulating a
	// delayed upstream response.
	block bool

	stream     io.ReadCloser
	streamSize int64
	streamErr  error
}

func (s *stubExtractor) GetVideo(ctx context.Context, videoURL string) (*youtube.Video, error) {
	s.mu.Lock()
	s.videoCalls++
	s.lastCtx = ctx
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
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

func (s *stubExtractor) observedCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCtx
}

// testVideo builds a metadata fixture with a muxed/audio/video-only
// format spread resembling a real player response.
func testVideo() *youtube.Video {
	return &youtube.Video{
		ID:     "dQw4w9WgXcQ",
		Title:  "Test Video",
		Author: "Test Channel",
		Duration: 212 * time.Second,
		Thumbnails: youtube.Thumbnails{
			{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/default.jpg"},
			{URL: "https://i.ytimg.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"},
		},
		Formats: youtube.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", AudioChannels: 2, Bitrate: 500000},
			{ItagNo: 22, MimeType: `video/mp4; codecs="avc1.64001F, mp4a.40.2"`, QualityLabel: "720p", AudioChannels: 2, Bitrate: 1200000},
			{ItagNo: 37, MimeType: `video/mp4; codecs="avc1.640028, mp4a.40.2"`, QualityLabel: "1080p", AudioChannels: 2, Bitrate: 2500000},
			{ItagNo: 43, MimeType: `video/webm; codecs="vp8.0, vorbis"`, QualityLabel: "360p", AudioChannels: 2, Bitrate: 600000},
			{ItagNo: 137, MimeType: `video/mp4; codecs="avc1.640028"`, QualityLabel: "1080p", AudioChannels: 0, Bitrate: 4000000},
			{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, QualityLabel: "", AudioChannels: 2, Bitrate: 128000},
			{ItagNo: 251, MimeType: `audio/webm; codecs="opus"`, QualityLabel: "", AudioChannels: 2, Bitrate: 160000},
		},
	}
}
