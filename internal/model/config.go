package model

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Logging   LoggingConfig
	Cache     CacheConfig
	Sessions  SessionConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port        int
	Host        string
	ReadTimeout int // seconds
	IdleTimeout int // seconds
}

// ExtractorConfig holds outbound extraction call configuration
type ExtractorConfig struct {
	RequestTimeout int    // seconds, bounds a single metadata lookup
	CookiesJSON    string // serialized cookie array, empty by default
	UserAgent      string
	AcceptLanguage string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string
	FilePath string // empty disables the file sink
}

// CacheConfig holds the metadata cache configuration
type CacheConfig struct {
	TTLSeconds      int
	CleanupInterval int // seconds
}

// SessionConfig holds video-list session configuration
type SessionConfig struct {
	TTLSeconds      int // idle lifetime of a session's video list
	CleanupInterval int // seconds
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	BurstSize         int
	CleanupInterval   int // seconds
}
