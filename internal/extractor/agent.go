package extractor

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/pkg/logger"

	"go.uber.org/zap"
)

// Cookie is one entry of the YOUTUBE_COOKIES JSON array, matching the
// shape browser cookie-export extensions produce.
type Cookie struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Domain string `json:"domain"`
	Path   string `json:"path"`
}

// Agent assembles the outbound HTTP configuration for extraction
// calls: browser-like headers plus an optional authenticated cookie
// jar. Cookies reduce the chance of YouTube's automated-access
// detection rejecting requests.
type Agent struct {
	client *http.Client
}

// NewAgent builds an agent from configuration. Invalid or absent
// cookie material degrades to an anonymous agent with a warning, never
// an error.
func NewAgent(cfg *model.ExtractorConfig) *Agent {
	transport := &headerTransport{
		base:           http.DefaultTransport,
		userAgent:      cfg.UserAgent,
		acceptLanguage: cfg.AcceptLanguage,
	}

	client := &http.Client{Transport: transport}

	if jar := buildCookieJar(cfg.CookiesJSON); jar != nil {
		client.Jar = jar
		logger.Logger.Info("YouTube agent created with cookies")
	}

	return &Agent{client: client}
}

// HTTPClient returns the configured outbound client.
func (a *Agent) HTTPClient() *http.Client {
	return a.client
}

func buildCookieJar(cookiesJSON string) http.CookieJar {
	if cookiesJSON == "" {
		return nil
	}

	var cookies []Cookie
	if err := json.Unmarshal([]byte(cookiesJSON), &cookies); err != nil {
		logger.Logger.Warn("YOUTUBE_COOKIES is not a valid cookie array", zap.Error(err))
		return nil
	}
	if len(cookies) == 0 {
		logger.Logger.Warn("YOUTUBE_COOKIES is empty")
		return nil
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil
	}

	httpCookies := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		httpCookies = append(httpCookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: time.Now().Add(365 * 24 * time.Hour),
		})
	}

	jar.SetCookies(&url.URL{Scheme: "https", Host: "youtube.com"}, httpCookies)
	jar.SetCookies(&url.URL{Scheme: "https", Host: "www.youtube.com"}, httpCookies)
	return jar
}

// headerTransport injects browser-identifying headers on every
// outbound extraction request.
type headerTransport struct {
	base           http.RoundTripper
	userAgent      string
	acceptLanguage string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" && t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept-Language") == "" && t.acceptLanguage != "" {
		req.Header.Set("Accept-Language", t.acceptLanguage)
	}
	return t.base.RoundTrip(req)
}
