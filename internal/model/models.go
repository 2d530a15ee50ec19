package model

// VideoInfo contains metadata about a video. Field names follow the
// wire format consumed by the frontend.
type VideoInfo struct {
	URL                string         `json:"url"`
	VideoID            string         `json:"videoId"`
	Title              string         `json:"title"`
	Thumbnail          string         `json:"thumbnail"`
	Duration           string         `json:"duration"` // seconds, text-encoded
	Channel            string         `json:"channel"`
	AvailableQualities []string       `json:"availableQualities"`
	Formats            []StreamFormat `json:"formats"`
}

// StreamFormat describes one downloadable stream variant.
type StreamFormat struct {
	Quality   string `json:"quality"`
	Container string `json:"container"`
	HasAudio  bool   `json:"hasAudio"`
	HasVideo  bool   `json:"hasVideo"`
	Itag      int    `json:"itag"`
}

// DownloadRequest represents a user's download request
type DownloadRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
	Format  string `json:"format"` // mp4, webm or mp3; empty means mp4
}

// VideoInfoRequest is the body of a video-info lookup
type VideoInfoRequest struct {
	URL string `json:"url"`
}

// AddVideosRequest is the body of a batch add to the video list
type AddVideosRequest struct {
	URLs string `json:"urls"` // newline or comma separated
}

// VideoListResponse is returned by the video list endpoints. Error
// carries the combined multi-line batch error, one line per failed URL.
type VideoListResponse struct {
	Videos []*VideoInfo `json:"videos"`
	Error  string       `json:"error,omitempty"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error string `json:"error"`
}
