// Package videolist holds the per-session video list driving the web
// UI: batch URL submission, concurrent metadata lookups, removal by
// video ID. State is single-writer behind the store mutex; lookups run
// outside the lock.
package videolist

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/internal/service"
	"github.com/IbsanjU/yt-downloader/pkg/logger"
	"github.com/IbsanjU/yt-downloader/pkg/validator"

	"go.uber.org/zap"
)

// Fetcher resolves one URL to video metadata. Satisfied by
// service.VideoService; stubbed in tests.
type Fetcher interface {
	GetVideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error)
}

// ValidationError aborts a whole batch before any lookup fires: every
// submitted URL must match the video URL pattern first.
type ValidationError struct {
	Invalid []string
}

func (e *ValidationError) Error() string {
	plural := ""
	if len(e.Invalid) > 1 {
		plural = "s"
	}
	return fmt.Sprintf("Invalid YouTube URL%s: %s", plural, strings.Join(e.Invalid, ", "))
}

// BatchError accumulates lookup failures from one batch, one line per
// failed URL. Successful entries of the same batch are still added.
type BatchError struct {
	Lines []string
}

func (e *BatchError) Error() string {
	return strings.Join(e.Lines, "\n")
}

type session struct {
	videos   []*model.VideoInfo
	lastSeen time.Time
}

// Store keeps the video lists of all active sessions.
type Store struct {
	fetcher  Fetcher
	cfg      *model.SessionConfig
	mu       sync.Mutex
	sessions map[string]*session
	quitChan chan struct{}
}

// NewStore creates a video list store
func NewStore(fetcher Fetcher, cfg *model.SessionConfig) *Store {
	return &Store{
		fetcher:  fetcher,
		cfg:      cfg,
		sessions: make(map[string]*session),
		quitChan: make(chan struct{}),
	}
}

// Start starts the session cleanup routine
func (s *Store) Start() {
	go s.cleanupRoutine()
}

// Stop stops the session cleanup routine
func (s *Store) Stop() {
	close(s.quitChan)
}

// List returns the current video list for a session.
func (s *Store) List(sessionID string) []*model.VideoInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	sess.lastSeen = time.Now()
	out := make([]*model.VideoInfo, len(sess.videos))
	copy(out, sess.videos)
	return out
}

// AddVideos submits a batch of raw URL input to a session's list.
//
// All URLs are validated before any lookup fires; a single invalid
// entry aborts the whole batch with a *ValidationError naming every
// invalid URL. Valid batches fan out one lookup per URL and wait for
// all of them to settle. Successes are appended in input order,
// duplicates merged by video ID; failures come back as one combined
// *BatchError alongside whatever succeeded.
func (s *Store) AddVideos(ctx context.Context, sessionID, raw string) ([]*model.VideoInfo, error) {
	urls := validator.SplitURLs(raw)
	if len(urls) == 0 {
		return s.List(sessionID), &ValidationError{Invalid: []string{"(empty input)"}}
	}

	var invalid []string
	for _, u := range urls {
		if !validator.ValidateYouTubeURL(u) {
			invalid = append(invalid, u)
		}
	}
	if len(invalid) > 0 {
		return s.List(sessionID), &ValidationError{Invalid: invalid}
	}

	// Fan out; the batch settles only when every lookup has.
	results := make([]*model.VideoInfo, len(urls))
	errs := make([]error, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			results[i], errs[i] = s.fetcher.GetVideoInfo(ctx, u)
		}(i, u)
	}
	wg.Wait()

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	sess.lastSeen = time.Now()

	seen := make(map[string]bool, len(sess.videos))
	for _, v := range sess.videos {
		seen[v.VideoID] = true
	}

	var failed []string
	added := 0
	for i, u := range urls {
		if errs[i] != nil {
			_, msg := service.Classify(errs[i])
			failed = append(failed, u+": "+msg)
			continue
		}
		if seen[results[i].VideoID] {
			continue
		}
		seen[results[i].VideoID] = true
		sess.videos = append(sess.videos, results[i])
		added++
	}
	list := make([]*model.VideoInfo, len(sess.videos))
	copy(list, sess.videos)
	s.mu.Unlock()

	logger.Logger.Info("Batch add settled",
		zap.String("session", sessionID),
		zap.Int("submitted", len(urls)),
		zap.Int("added", added),
		zap.Int("failed", len(failed)))

	if len(failed) > 0 {
		return list, &BatchError{Lines: failed}
	}
	return list, nil
}

// RemoveVideo removes a video from a session's list by its stable
// identifier.
func (s *Store) RemoveVideo(sessionID, videoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return false
	}
	sess.lastSeen = time.Now()

	for i, v := range sess.videos {
		if v.VideoID == videoID {
			sess.videos = append(sess.videos[:i], sess.videos[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(s.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.quitChan:
			return
		case <-ticker.C:
			s.removeIdle()
		}
	}
}

func (s *Store) removeIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-time.Duration(s.cfg.TTLSeconds) * time.Second)
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
