package validator

import (
	"regexp"
	"strings"
	"unicode"
)

// youtubeURLPattern accepts watch, embed, short-form and youtu.be links.
var youtubeURLPattern = regexp.MustCompile(`^(https?://)?(www\.|m\.)?(youtube\.com/(watch\?v=|embed/|v/|shorts/)|youtu\.be/)[\w-]+`)

// ValidateYouTubeURL reports whether the URL points at a known YouTube
// video path. This is a cheap pattern check done before any network
// call; the extraction library does its own parsing afterwards.
func ValidateYouTubeURL(videoURL string) bool {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return false
	}
	return youtubeURLPattern.MatchString(videoURL)
}

// SlugFilename derives a download filename stem from a video title:
// every non-alphanumeric rune becomes an underscore and the result is
// lower-cased.
func SlugFilename(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// SplitURLs splits raw textarea input on newlines or commas, trims
// whitespace and drops empty entries. Duplicates are kept; the video
// list store merges them by resolved identifier after fetch.
func SplitURLs(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == ','
	})
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}
