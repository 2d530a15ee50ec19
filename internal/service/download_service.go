package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/extractor"
	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/pkg/logger"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// Target formats accepted by the download endpoint.
const (
	FormatMP4  = "mp4"
	FormatWEBM = "webm"
	FormatMP3  = "mp3"
)

var errNoSuitableFormat = errors.New("video unavailable: no suitable stream format found")

// Selection is one resolved stream choice: the concrete variant plus
// the response extension and content type it will be served under.
type Selection struct {
	Format      *youtube.Format
	Extension   string
	ContentType string
}

// DownloadService resolves a download request to a concrete stream
// variant and opens its byte source.
type DownloadService struct {
	ex      extractor.Extractor
	timeout time.Duration
}

// NewDownloadService creates a new download service
func NewDownloadService(ex extractor.Extractor, timeout time.Duration) *DownloadService {
	return &DownloadService{
		ex:      ex,
		timeout: timeout,
	}
}

// Resolve looks up the video (bounded by the request timeout) and
// applies the selection policy. The stream phase that follows is not
// time-bounded.
func (s *DownloadService) Resolve(ctx context.Context, req *model.DownloadRequest) (*youtube.Video, *Selection, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	video, err := s.ex.GetVideo(lookupCtx, req.URL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logger.Logger.Warn("Download lookup timed out", zap.String("url", req.URL))
			return nil, nil, ErrRequestTimeout
		}
		logger.Logger.Error("Failed to resolve download", zap.Error(err), zap.String("url", req.URL))
		return nil, nil, fmt.Errorf("resolve download: %w", err)
	}

	sel, err := SelectFormat(video.Formats, req.Quality, req.Format)
	if err != nil {
		return nil, nil, err
	}

	logger.Logger.Info("Download variant selected",
		zap.String("video_id", video.ID),
		zap.Int("itag", sel.Format.ItagNo),
		zap.String("quality", sel.Format.QualityLabel),
		zap.String("extension", sel.Extension))
	return video, sel, nil
}

// OpenStream opens the byte source for a resolved variant. The reader
// is tied to ctx, so a client disconnect tears down source I/O.
func (s *DownloadService) OpenStream(ctx context.Context, video *youtube.Video, sel *Selection) (io.ReadCloser, int64, error) {
	stream, size, err := s.ex.GetStream(ctx, video, sel.Format)
	if err != nil {
		logger.Logger.Error("Failed to open stream", zap.Error(err), zap.String("video_id", video.ID))
		return nil, 0, fmt.Errorf("open stream: %w", err)
	}
	return stream, size, nil
}

// SelectFormat picks a stream variant for the requested quality and
// target format.
//
// mp3 always selects an audio-only variant and ignores quality. mp4
// and webm want a muxed variant in the matching container at the exact
// requested quality; when that combination does not exist the policy
// falls back to the highest available muxed variant instead of
// failing. Quality is advisory, not a hard constraint.
func SelectFormat(formats youtube.FormatList, quality, target string) (*Selection, error) {
	switch target {
	case FormatMP3:
		f := bestAudioOnly(formats)
		if f == nil {
			return nil, errNoSuitableFormat
		}
		return &Selection{Format: f, Extension: FormatMP3, ContentType: "audio/mpeg"}, nil

	case FormatWEBM:
		return selectMuxed(formats, quality, FormatWEBM)

	default:
		return selectMuxed(formats, quality, FormatMP4)
	}
}

func selectMuxed(formats youtube.FormatList, quality, container string) (*Selection, error) {
	muxed := muxedFormats(formats)
	if len(muxed) == 0 {
		return nil, errNoSuitableFormat
	}

	sel := &Selection{
		Extension:   container,
		ContentType: "video/" + container,
	}

	if quality != "" {
		for _, f := range muxed {
			if f.QualityLabel == quality && containerOf(f.MimeType) == container {
				sel.Format = f
				return sel, nil
			}
		}
	}

	// Fallback: highest available, deterministically ordered by
	// resolution, container match, then bitrate.
	sort.SliceStable(muxed, func(i, j int) bool {
		vi, vj := qualityValue(muxed[i].QualityLabel), qualityValue(muxed[j].QualityLabel)
		if vi != vj {
			return vi > vj
		}
		mi := containerOf(muxed[i].MimeType) == container
		mj := containerOf(muxed[j].MimeType) == container
		if mi != mj {
			return mi
		}
		return muxed[i].Bitrate > muxed[j].Bitrate
	})
	sel.Format = muxed[0]
	return sel, nil
}

// muxedFormats filters to variants carrying both audio and video.
func muxedFormats(formats youtube.FormatList) []*youtube.Format {
	var out []*youtube.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels > 0 && f.QualityLabel != "" {
			out = append(out, f)
		}
	}
	return out
}

// bestAudioOnly picks the highest-bitrate variant without video,
// falling back to any variant carrying audio.
func bestAudioOnly(formats youtube.FormatList) *youtube.Format {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels > 0 && f.QualityLabel == "" {
			if best == nil || f.Bitrate > best.Bitrate {
				best = f
			}
		}
	}
	if best != nil {
		return best
	}
	for i := range formats {
		f := &formats[i]
		if f.AudioChannels > 0 {
			if best == nil || f.Bitrate > best.Bitrate {
				best = f
			}
		}
	}
	return best
}
