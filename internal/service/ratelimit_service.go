package service

import (
	"sync"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/pkg/logger"

	"go.uber.org/zap"
)

// rateLimitEntry tracks request rate for an IP within the current
// one-minute window.
type rateLimitEntry struct {
	requests int
	resetAt  time.Time
	blocked  bool
}

// RateLimitService enforces a per-IP fixed-window request limit on the
// API surface.
type RateLimitService struct {
	cfg      *model.RateLimitConfig
	mu       sync.Mutex
	limits   map[string]*rateLimitEntry
	quitChan chan struct{}
}

// NewRateLimitService creates a new rate limit service
func NewRateLimitService(cfg *model.RateLimitConfig) *RateLimitService {
	s := &RateLimitService{
		cfg:      cfg,
		limits:   make(map[string]*rateLimitEntry),
		quitChan: make(chan struct{}),
	}

	if cfg.Enabled {
		go s.cleanupRoutine()
	}

	return s
}

// Stop stops the cleanup routine
func (s *RateLimitService) Stop() {
	close(s.quitChan)
}

// IsAllowed checks if an IP is allowed to make a request. Burst size
// extends the window limit before the IP gets blocked outright.
func (s *RateLimitService) IsAllowed(ip string) bool {
	if !s.cfg.Enabled {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	entry, exists := s.limits[ip]
	if !exists || now.After(entry.resetAt) {
		s.limits[ip] = &rateLimitEntry{requests: 1, resetAt: now.Add(time.Minute)}
		return true
	}

	if entry.blocked {
		return false
	}

	entry.requests++
	if entry.requests > s.cfg.RequestsPerMinute+s.cfg.BurstSize {
		entry.blocked = true
		logger.Logger.Warn("Rate limit exceeded, blocking IP",
			zap.String("ip", ip),
			zap.Int("requests", entry.requests))
		return false
	}

	return true
}

// GetRemaining returns remaining requests for an IP in the current
// window; -1 means unlimited.
func (s *RateLimitService) GetRemaining(ip string) int {
	if !s.cfg.Enabled {
		return -1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limits[ip]
	if !exists || time.Now().After(entry.resetAt) {
		return s.cfg.RequestsPerMinute
	}

	remaining := s.cfg.RequestsPerMinute - entry.requests
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (s *RateLimitService) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(s.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.quitChan:
			return
		case <-ticker.C:
			s.removeStale()
		}
	}
}

func (s *RateLimitService) removeStale() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for ip, entry := range s.limits {
		if now.After(entry.resetAt) {
			delete(s.limits, ip)
		}
	}
}
