package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrRequestTimeout marks an extraction call that lost the timeout
// race.
var ErrRequestTimeout = errors.New("request timeout")

// BotDetectionMessage tells the operator how to get past YouTube's
// automated-access checks.
const BotDetectionMessage = "YouTube detected automated access. Configure the YOUTUBE_COOKIES environment variable to fix this. See README for setup instructions."

// classifyRule maps an error-message substring to a user-facing status
// and message. The extraction library only surfaces free-text errors,
// so classification is substring matching over a fixed, ordered list.
type classifyRule struct {
	substring string
	status    int
	message   string
}

// classifyRules is evaluated top to bottom against the lower-cased
// error text; first match wins. Order matters: "timeout" must precede
// the generic fallthrough, "sign in" must precede "unavailable", etc.
var classifyRules = []classifyRule{
	{"timeout", http.StatusGatewayTimeout, "Request timed out. Please try again later."},
	{"deadline exceeded", http.StatusGatewayTimeout, "Request timed out. Please try again later."},
	{"sign in to confirm", http.StatusForbidden, BotDetectionMessage},
	{"not a bot", http.StatusForbidden, BotDetectionMessage},
	{"age restricted", http.StatusForbidden, "This video is age-restricted and cannot be accessed."},
	{"age-restricted", http.StatusForbidden, "This video is age-restricted and cannot be accessed."},
	{"age restriction", http.StatusForbidden, "This video is age-restricted and cannot be accessed."},
	{"private", http.StatusNotFound, "This video is private or unavailable."},
	{"unavailable", http.StatusNotFound, "This video is private or unavailable."},
	{"rate limit", http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
	{"429", http.StatusTooManyRequests, "Rate limit exceeded. Please try again later."},
	{"geo", http.StatusUnavailableForLegalReasons, "This video is not available in your region."},
	{"location", http.StatusUnavailableForLegalReasons, "This video is not available in your region."},
	{"region", http.StatusUnavailableForLegalReasons, "This video is not available in your region."},
}

// Classify maps an extraction error to an HTTP status code and a
// user-facing message.
func Classify(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	if errors.Is(err, ErrRequestTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, "Request timed out. Please try again later."
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		if strings.Contains(msg, rule.substring) {
			return rule.status, rule.message
		}
	}
	return http.StatusInternalServerError, "Failed to fetch video information. The video may be unavailable or private."
}
