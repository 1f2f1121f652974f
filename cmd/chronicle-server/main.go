// Command chronicle-server serves the weekly developer chronicle: the
// newspaper page, an embeddable view, JSON pass-throughs, the SVG profile
// card, and the rate-limited AI commentary endpoint.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"github.com/devchronicle/chronicle/pkg/commentary"
	"github.com/devchronicle/chronicle/pkg/github"
	"github.com/devchronicle/chronicle/pkg/httpcache"
	"github.com/devchronicle/chronicle/pkg/ratelimit"
	"github.com/devchronicle/chronicle/pkg/zenn"
)

var (
	port         = flag.String("port", "8080", "Port for web server")
	githubToken  = flag.String("github-token", "", "GitHub API token (or set GITHUB_TOKEN)")
	openAIKey    = flag.String("openai-key", "", "OpenAI API key (or set OPENAI_API_KEY)")
	anthropicKey = flag.String("anthropic-key", "", "Anthropic API key (or set ANTHROPIC_API_KEY)")
	geminiAPIKey = flag.String("gemini-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	version      = flag.Bool("version", false, "Show version")
)

const upstreamCacheTTL = 5 * time.Minute

// Simple rate limiter for QPS control
type rateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int           // requests per window
	window   time.Duration // time window
}

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	// Clean old requests
	if reqs, exists := rl.requests[key]; exists {
		var filtered []time.Time
		for _, t := range reqs {
			if t.After(cutoff) {
				filtered = append(filtered, t)
			}
		}
		rl.requests[key] = filtered
	}

	// Check if limit exceeded
	if len(rl.requests[key]) >= rl.limit {
		return false
	}

	// Add current request
	rl.requests[key] = append(rl.requests[key], now)
	return true
}

var apiLimiter = newRateLimiter(10, time.Minute) // 10 requests per minute per IP

func main() {
	_ = godotenv.Load()
	flag.Parse()

	if *version {
		fmt.Println("chronicle-server v1.2.0")
		return
	}

	// Configure logging
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	// Get tokens from environment if not provided as flags
	if *githubToken == "" {
		*githubToken = os.Getenv("GITHUB_TOKEN")
	}
	if *openAIKey == "" {
		*openAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if *anthropicKey == "" {
		*anthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if *geminiAPIKey == "" {
		*geminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}

	cache := httpcache.New(upstreamCacheTTL, logger)
	srv := &server{
		github: github.New(*githubToken, cache, logger),
		zenn:   zenn.New(cache, logger),
		commentary: commentary.New(commentary.Keys{
			OpenAI:    *openAIKey,
			Anthropic: *anthropicKey,
			Gemini:    *geminiAPIKey,
		}, logger),
		dailyLimit: ratelimit.NewDaily(ratelimit.DefaultDailyLimit),
		logger:     logger,
	}

	runServer(srv, logger)
}

func runServer(srv *server, logger *slog.Logger) {
	http.HandleFunc("/", srv.handleHome)
	http.HandleFunc("/embed", srv.handleEmbed)
	http.HandleFunc("/export", srv.handleExport)
	http.HandleFunc("/api/github", rateLimitMiddleware(srv.handleAPIGitHub))
	http.HandleFunc("/api/zenn", rateLimitMiddleware(srv.handleAPIZenn))
	http.HandleFunc("/api/card", rateLimitMiddleware(srv.handleAPICard))
	http.HandleFunc("/api/ai-comment", rateLimitMiddleware(srv.handleAIComment))

	addr := ":" + *port
	logger.Info("Starting chronicle server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !apiLimiter.allow(clientIP(r)) {
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// clientIP resolves the caller address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
