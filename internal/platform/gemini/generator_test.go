package gemini

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/phrazzld/schemadoc/internal/config"
	"github.com/phrazzld/schemadoc/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	lastModel string
	lastCfg   *genai.GenerateContentConfig
	lastText  string
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.lastModel = model
	f.lastCfg = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastText = contents[0].Parts[0].Text
	}

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var resp *genai.GenerateContentResponse
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: genai.RoleModel}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content, FinishReason: genai.FinishReasonStop}},
	}
}

func testConfig() config.LLMConfig {
	return config.LLMConfig{
		ModelName:         "gemini-test",
		MaxRetries:        2,
		RetryDelaySeconds: 1,
		Temperature:       0.2,
	}
}

func newTestGenerator(t *testing.T, models modelClient, cfg config.LLMConfig) (*Generator, *[]time.Duration) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	g, err := newGenerator(logger, models, cfg)
	require.NoError(t, err)

	var delays []time.Duration
	g.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return g, &delays
}

var testPrompt = generation.Prompt{
	Name:   generation.PromptName,
	System: "You name databases.",
	User:   "Table users\n- id integer NOT NULL",
}

func TestNewGeneratorValidation(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("nil logger", func(t *testing.T) {
		_, err := newGenerator(nil, &fakeModels{}, testConfig())
		assert.Error(t, err)
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := newGenerator(logger, nil, testConfig())
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("empty model name", func(t *testing.T) {
		cfg := testConfig()
		cfg.ModelName = ""
		_, err := newGenerator(logger, &fakeModels{}, cfg)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("empty api key", func(t *testing.T) {
		_, err := NewGenerator(context.Background(), logger, testConfig())
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}

func TestGenerateSuccess(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("  Acme ", "Store\n")}}
	g, delays := newTestGenerator(t, models, testConfig())

	text, err := g.Generate(context.Background(), testPrompt)

	require.NoError(t, err)
	assert.Equal(t, "Acme Store", text)
	assert.Equal(t, 1, models.calls)
	assert.Empty(t, *delays)
	assert.Equal(t, "gemini-test", models.lastModel)
	assert.Equal(t, testPrompt.User, models.lastText)
	require.NotNil(t, models.lastCfg)
	require.NotNil(t, models.lastCfg.Temperature)
	assert.InDelta(t, 0.2, *models.lastCfg.Temperature, 0.0001)
	require.NotNil(t, models.lastCfg.SystemInstruction)
	assert.Equal(t, "You name databases.", models.lastCfg.SystemInstruction.Parts[0].Text)
}

func TestGenerateEmptyPrompt(t *testing.T) {
	models := &fakeModels{}
	g, _ := newTestGenerator(t, models, testConfig())

	_, err := g.Generate(context.Background(), generation.Prompt{Name: "x", User: "   "})

	assert.ErrorIs(t, err, generation.ErrEmptyPrompt)
	assert.Zero(t, models.calls)
}

func TestGenerateRetriesTransientErrors(t *testing.T) {
	models := &fakeModels{
		errs: []error{
			genai.APIError{Code: 503, Message: "unavailable"},
			genai.APIError{Code: 429, Message: "slow down"},
			nil,
		},
		responses: []*genai.GenerateContentResponse{nil, nil, textResponse("ok")},
	}
	g, delays := newTestGenerator(t, models, testConfig())

	text, err := g.Generate(context.Background(), testPrompt)

	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 3, models.calls)
	require.Len(t, *delays, 2)
	// first backoff is base * [0.5, 1.0), second is 2 * base * [0.5, 1.0)
	assert.GreaterOrEqual(t, (*delays)[0], 500*time.Millisecond)
	assert.Less(t, (*delays)[0], time.Second)
	assert.GreaterOrEqual(t, (*delays)[1], time.Second)
	assert.Less(t, (*delays)[1], 2*time.Second)
}

func TestGenerateExhaustsRetries(t *testing.T) {
	transport := errors.New("connection reset by peer")
	models := &fakeModels{errs: []error{transport, transport, transport, transport}}
	g, _ := newTestGenerator(t, models, testConfig())

	_, err := g.Generate(context.Background(), testPrompt)

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Contains(t, err.Error(), "exceeded maximum retry attempts")
	assert.Equal(t, 3, models.calls)
}

func TestGenerateZeroRetries(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 0
	models := &fakeModels{errs: []error{genai.APIError{Code: 500}}}
	g, delays := newTestGenerator(t, models, cfg)

	_, err := g.Generate(context.Background(), testPrompt)

	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Equal(t, 1, models.calls)
	assert.Empty(t, *delays)
}

func TestGeneratePermanentFailures(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		response *genai.GenerateContentResponse
		want     error
	}{
		{
			name: "client error",
			err:  genai.APIError{Code: 400, Message: "bad request"},
			want: generation.ErrGenerationFailed,
		},
		{
			name:     "nil response",
			response: nil,
			want:     generation.ErrInvalidResponse,
		},
		{
			name:     "no candidates",
			response: &genai.GenerateContentResponse{},
			want:     generation.ErrInvalidResponse,
		},
		{
			name:     "blank text",
			response: textResponse("  ", "\n"),
			want:     generation.ErrInvalidResponse,
		},
		{
			name: "safety finish",
			response: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
			want: generation.ErrContentBlocked,
		},
		{
			name: "prompt blocked",
			response: &genai.GenerateContentResponse{
				PromptFeedback: &genai.GenerateContentResponsePromptFeedback{
					BlockReason: genai.BlockedReasonSafety,
				},
			},
			want: generation.ErrContentBlocked,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			models := &fakeModels{
				errs:      []error{tc.err},
				responses: []*genai.GenerateContentResponse{tc.response},
			}
			g, delays := newTestGenerator(t, models, testConfig())

			_, err := g.Generate(context.Background(), testPrompt)

			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, models.calls, "permanent failures must not be retried")
			assert.Empty(t, *delays)
		})
	}
}

func TestGenerateStopsOnCancelledSleep(t *testing.T) {
	models := &fakeModels{errs: []error{genai.APIError{Code: 503}, genai.APIError{Code: 503}}}
	g, _ := newTestGenerator(t, models, testConfig())
	g.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	_, err := g.Generate(context.Background(), testPrompt)

	assert.ErrorIs(t, err, generation.ErrTransientFailure)
	assert.Equal(t, 1, models.calls)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepContext(ctx, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))
}
