// Package storage holds the in-memory metadata cache. Lookups against
// the extraction capability are slow and rate-limited upstream, so
// repeat requests for the same video inside the TTL window are served
// from here.
package storage

import (
	"sync"
	"time"

	"github.com/IbsanjU/yt-downloader/internal/model"
	"github.com/IbsanjU/yt-downloader/pkg/logger"

	"go.uber.org/zap"
)

type cacheEntry struct {
	info      *model.VideoInfo
	expiresAt time.Time
}

// Cache is a TTL cache of video metadata keyed by video identifier.
type Cache struct {
	cfg      *model.CacheConfig
	mu       sync.RWMutex
	entries  map[string]cacheEntry
	quitChan chan struct{}
}

// NewCache creates a metadata cache
func NewCache(cfg *model.CacheConfig) *Cache {
	return &Cache{
		cfg:      cfg,
		entries:  make(map[string]cacheEntry),
		quitChan: make(chan struct{}),
	}
}

// Start starts the cleanup routine
func (c *Cache) Start() {
	go c.cleanupRoutine()
}

// Stop stops the cleanup routine
func (c *Cache) Stop() {
	close(c.quitChan)
}

// Get returns cached metadata for a video ID, if fresh.
func (c *Cache) Get(videoID string) (*model.VideoInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[videoID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.info, true
}

// Put stores metadata under its video ID for the configured TTL.
func (c *Cache) Put(info *model.VideoInfo) {
	if info == nil || info.VideoID == "" {
		return
	}

	c.mu.Lock()
	c.entries[info.VideoID] = cacheEntry{
		info:      info,
		expiresAt: time.Now().Add(time.Duration(c.cfg.TTLSeconds) * time.Second),
	}
	c.mu.Unlock()
}

// Len returns the number of tracked entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) cleanupRoutine() {
	ticker := time.NewTicker(time.Duration(c.cfg.CleanupInterval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.quitChan:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, id)
			removed++
		}
	}

	if removed > 0 {
		logger.Logger.Debug("Metadata cache cleanup",
			zap.Int("removed", removed),
			zap.Int("remaining", len(c.entries)))
	}
}
