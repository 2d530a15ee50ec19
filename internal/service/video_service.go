package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/extractor"
	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/internal/storage"
	"github.com/IbsanjU/yt-downloader/pkg/logger"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// VideoService resolves video metadata through the extraction
// capability.
type VideoService struct {
	ex      extractor.Extractor
	cache   *storage.Cache
	timeout time.Duration
}

// NewVideoService creates a new video service. cache may be nil.
func NewVideoService(ex extractor.Extractor, cache *storage.Cache, timeout time.Duration) *VideoService {
	return &VideoService{
		ex:      ex,
		cache:   cache,
		timeout: timeout,
	}
}

// GetVideoInfo fetches metadata for a validated video URL. The lookup
// is bounded by the configured timeout; the deferred cancel releases
// the timer whichever side of the race wins.
func (s *VideoService) GetVideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	if s.cache != nil {
		if id, err := youtube.ExtractVideoID(videoURL); err == nil {
			if info, ok := s.cache.Get(id); ok {
				logger.Logger.Debug("Video info served from cache", zap.String("video_id", id))
				return info, nil
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	video, err := s.ex.GetVideo(ctx, videoURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Logger.Warn("Video info lookup timed out", zap.String("url", videoURL), zap.Duration("timeout", s.timeout))
			return nil, ErrRequestTimeout
		}
		logger.Logger.Error("Failed to fetch video info", zap.Error(err), zap.String("url", videoURL))
		return nil, fmt.Errorf("fetch video info: %w", err)
	}

	info := buildVideoInfo(videoURL, video)
	if s.cache != nil {
		s.cache.Put(info)
	}

	logger.Logger.Info("Video info retrieved",
		zap.String("video_id", info.VideoID),
		zap.String("title", info.Title),
		zap.Int("formats", len(info.Formats)))
	return info, nil
}

// buildVideoInfo maps a raw extraction result into the wire model. The
// variant list keeps every format (audio-only and video-only included)
// for downstream selection; the quality list is derived from muxed
// variants only.
func buildVideoInfo(videoURL string, video *youtube.Video) *model.VideoInfo {
	formats := make([]model.StreamFormat, 0, len(video.Formats))
	var muxedLabels []string

	for i := range video.Formats {
		f := &video.Formats[i]
		sf := model.StreamFormat{
			Quality:   f.QualityLabel,
			Container: containerOf(f.MimeType),
			HasAudio:  f.AudioChannels > 0,
			HasVideo:  f.QualityLabel != "",
			Itag:      f.ItagNo,
		}
		if sf.Quality == "" {
			sf.Quality = "Unknown"
		}
		formats = append(formats, sf)

		if sf.HasAudio && sf.HasVideo {
			muxedLabels = append(muxedLabels, sf.Quality)
		}
	}

	return &model.VideoInfo{
		URL:                videoURL,
		VideoID:            video.ID,
		Title:              video.Title,
		Thumbnail:          largestThumbnail(video),
		Duration:           strconv.Itoa(int(video.Duration / time.Second)),
		Channel:            video.Author,
		AvailableQualities: uniqueQualities(muxedLabels),
		Formats:            formats,
	}
}

// uniqueQualities deduplicates quality labels and sorts them by
// numeric resolution descending; labels without a leading number sort
// as zero.
func uniqueQualities(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	unique := make([]string, 0, len(labels))
	for _, label := range labels {
		if !seen[label] {
			seen[label] = true
			unique = append(unique, label)
		}
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return qualityValue(unique[i]) > qualityValue(unique[j])
	})
	return unique
}

// qualityValue extracts the leading number of a quality label, e.g.
// 1080 from "1080p60".
func qualityValue(label string) int {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.Atoi(label[:end])
	return n
}

// containerOf derives the container kind ("mp4", "webm", ...) from a
// MIME type like "video/mp4; codecs=...".
func containerOf(mimeType string) string {
	base := mimeType
	if i := strings.Index(base, ";"); i >= 0 {
		base = base[:i]
	}
	if i := strings.Index(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSpace(base)
}

// largestThumbnail returns the URL of the last thumbnail, which the
// platform orders smallest to largest.
func largestThumbnail(video *youtube.Video) string {
	if len(video.Thumbnails) == 0 {
		return ""
	}
	return video.Thumbnails[len(video.Thumbnails)-1].URL
}
