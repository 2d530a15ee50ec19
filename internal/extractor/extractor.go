// Package extractor wraps the external video-extraction capability.
// Everything hard about YouTube (player response parsing, signature
// ciphers, stream URLs) lives in github.com/kkdai/youtube; this package
// only configures it and narrows it behind a stub-friendly interface.
package extractor

import (
	"context"
	"io"

	"github.com/kkdai/youtube/v2"
)

// Extractor is the boundary the services depend on. Tests stub it to
// assert call counts and inject canned metadata.
type Extractor interface {
	// GetVideo resolves canonical metadata and the variant list for a
	// video URL. Blocking; bounded by the caller's context.
	GetVideo(ctx context.Context, videoURL string) (*youtube.Video, error)
	// GetStream opens the byte stream for one resolved variant. The
	// returned reader is tied to ctx: cancelling it tears down the
	// underlying transfer.
	GetStream(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
}

// Client implements Extractor over the kkdai youtube client.
type Client struct {
	yt youtube.Client
}

// NewClient builds an extractor client using the given agent. A nil
// agent falls back to the library's default HTTP client.
func NewClient(agent *Agent) *Client {
	c := &Client{}
	if agent != nil {
		c.yt.HTTPClient = agent.HTTPClient()
	}
	return c
}

func (c *Client) GetVideo(ctx context.Context, videoURL string) (*youtube.Video, error) {
	return c.yt.GetVideoContext(ctx, videoURL)
}

func (c *Client) GetStream(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error) {
	return c.yt.GetStreamContext(ctx, video, format)
}
