package genai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"motionforge/internal/domain/models"
	"motionforge/internal/domain/services"
)

// NoContentPlaceholder stands in for an empty-but-successful generation
// response. Producing nothing is a degenerate success, not an error.
const NoContentPlaceholder = "(No content generated)"

// Client wraps a GenerationProvider with request pacing and short-lived
// response caching. Pacing keeps a multi-section assembly run inside
// the provider's rate limits; the cache absorbs repeated identical
// prompts (double-clicked strategy buttons, wizard re-runs with
// unchanged answers).
type Client struct {
	provider services.GenerationProvider
	limiter  *rate.Limiter
	cache    *gocache.Cache
	logger   *slog.Logger
}

// ClientOptions configures a Client.
type ClientOptions struct {
	// RequestsPerMinute caps generation calls. Zero disables pacing.
	RequestsPerMinute int
	// CacheTTL controls how long identical-prompt responses are
	// reused. Zero disables the cache.
	CacheTTL time.Duration
}

// NewClient wraps the given provider.
func NewClient(provider services.GenerationProvider, opts ClientOptions, logger *slog.Logger) *Client {
	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	var cache *gocache.Cache
	if opts.CacheTTL > 0 {
		cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}

	return &Client{
		provider: provider,
		limiter:  limiter,
		cache:    cache,
		logger:   logger,
	}
}

// Name returns the wrapped provider's name.
func (c *Client) Name() string {
	return c.provider.Name()
}

// GenerateSection forwards to the provider, applying pacing, the cache,
// and the empty-output policy.
func (c *Client) GenerateSection(ctx context.Context, prompt string) (string, error) {
	key := promptKey(prompt)
	if c.cache != nil {
		if cached, found := c.cache.Get(key); found {
			c.logger.Debug("generation cache hit", "provider", c.provider.Name())
			return cached.(string), nil
		}
	}

	if err := c.pace(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := c.provider.GenerateSection(ctx, prompt)
	if err != nil {
		c.logger.Warn("generation failed",
			"provider", c.provider.Name(),
			"elapsed", time.Since(start),
			"error", err,
		)
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		text = NoContentPlaceholder
	}

	c.logger.Debug("generation complete",
		"provider", c.provider.Name(),
		"elapsed", time.Since(start),
		"chars", len(text),
	)

	if c.cache != nil {
		c.cache.Set(key, text, gocache.DefaultExpiration)
	}

	return text, nil
}

// ExtractCase forwards to the provider with pacing. Extraction results
// are never cached: the same file re-uploaded should re-extract.
func (c *Client) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}
	return c.provider.ExtractCase(ctx, data, mimeType)
}

// PerformOCR forwards to the provider with pacing.
func (c *Client) PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := c.pace(ctx); err != nil {
		return "", err
	}
	return c.provider.PerformOCR(ctx, data, mimeType)
}

func (c *Client) pace(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func promptKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
