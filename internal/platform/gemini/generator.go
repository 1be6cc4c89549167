package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/schemadoc/internal/config"
	"github.com/phrazzld/schemadoc/internal/generation"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// modelClient is the subset of *genai.Models used by the generator.
type modelClient interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements generation.Generator on top of the Gemini API.
type Generator struct {
	logger      *slog.Logger
	models      modelClient
	model       string
	temperature float32
	maxRetries  int
	baseDelay   time.Duration
	limiter     *rate.Limiter

	// sleep waits between attempts; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini backed generator from cfg.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(logger, client.Models, cfg)
}

func newGenerator(logger *slog.Logger, models modelClient, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if models == nil {
		return nil, fmt.Errorf("%w: model client cannot be nil", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		logger.Warn("invalid max retries value, using default", "max_retries", 2)
		maxRetries = 2
	}

	delaySeconds := cfg.RetryDelaySeconds
	if delaySeconds < 1 {
		logger.Warn("invalid retry delay value, using default", "base_delay_seconds", 2)
		delaySeconds = 2
	}

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &Generator{
		logger:      logger.With("component", "gemini", "model", cfg.ModelName),
		models:      models,
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
		maxRetries:  maxRetries,
		baseDelay:   time.Duration(delaySeconds) * time.Second,
		limiter:     rate.NewLimiter(limit, 1),
		sleep:       sleepContext,
	}, nil
}

// Generate sends prompt to Gemini and returns the concatenated text of the
// first candidate.
func (g *Generator) Generate(ctx context.Context, prompt generation.Prompt) (string, error) {
	if strings.TrimSpace(prompt.User) == "" {
		return "", generation.ErrEmptyPrompt
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := g.backoff(attempt - 1)
			g.logger.InfoContext(ctx, "retrying after delay",
				"prompt", prompt.Name,
				"attempt", attempt+1,
				"delay", delay)
			if err := g.sleep(ctx, delay); err != nil {
				return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
			}
		}

		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limiter: %v", generation.ErrTransientFailure, err)
		}

		text, err := g.call(ctx, prompt)
		if err == nil {
			g.logger.DebugContext(ctx, "gemini call successful",
				"prompt", prompt.Name,
				"attempt", attempt+1,
				"response_length", len(text))
			return text, nil
		}

		g.logger.WarnContext(ctx, "gemini call failed",
			"prompt", prompt.Name,
			"attempt", attempt+1,
			"max_attempts", g.maxRetries+1,
			"error", err)

		if !errors.Is(err, generation.ErrTransientFailure) {
			return "", err
		}
		lastErr = err
	}

	return "", fmt.Errorf("exceeded maximum retry attempts (%d): %w", g.maxRetries, lastErr)
}

// call performs one request and classifies its outcome.
func (g *Generator) call(ctx context.Context, prompt generation.Prompt) (string, error) {
	start := time.Now()
	text, err := g.request(ctx, prompt)
	observeRequest(prompt.Name, time.Since(start), err)
	return text, err
}

func (g *Generator) request(ctx context.Context, prompt generation.Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature: ptr(g.temperature),
	}
	if prompt.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return "", classify(err)
	}

	return extractText(resp)
}

// classify maps a client error onto the generation error set.
func classify(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests,
			apiErr.Code == http.StatusRequestTimeout,
			apiErr.Code >= http.StatusInternalServerError:
			return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		default:
			return fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		}
	}

	// Transport level failures carry no status code.
	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked: %s", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("%w: response has no text", generation.ErrInvalidResponse)
	}
	return text, nil
}

// backoff returns baseDelay * 2^n scaled by a jitter factor in [0.5, 1.0).
func (g *Generator) backoff(n int) time.Duration {
	seconds := g.baseDelay.Seconds() * math.Pow(2, float64(n))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(seconds * jitter * float64(time.Second))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func ptr[T any](v T) *T { return &v }
