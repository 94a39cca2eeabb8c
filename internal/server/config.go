package server

import "github.com/FocuswithJustin/yosina/core/pipeline"

// Config holds server configuration.
type Config struct {
	Addr              string
	Version           string
	MaxBodyBytes      int64    // request body limit for POST endpoints
	CacheSize         int      // compiled chains kept in memory
	RateLimitRequests int      // requests per minute per client IP (0 = disabled)
	RateLimitBurst    int      // burst size
	AllowedOrigins    []string // CORS allowed origins (empty = allow all)
	WebSocket         WebSocketConfig
	// Custom stages that pipeline requests may name.
	Custom pipeline.Registry
}

// WebSocketConfig holds WebSocket-specific limits.
type WebSocketConfig struct {
	// AllowedOrigins lists origin patterns ("*", exact origins, or
	// "*.example.com"). Empty means same-origin or no Origin header.
	AllowedOrigins []string
	MaxMessageRate int   // messages per second per connection
	MaxMessageSize int64 // bytes per frame
}

// DefaultConfig returns the configuration used by `yosina serve`.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		Version:      "dev",
		MaxBodyBytes: 1 << 20,
		CacheSize:    64,
		WebSocket: WebSocketConfig{
			MaxMessageRate: 10,
			MaxMessageSize: 64 << 10,
		},
	}
}
