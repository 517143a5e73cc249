package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"ponder/internal/domain/entity"
	"ponder/internal/utils/text"
)

// DefaultClaudeModel is the model used when GENERATOR_MODEL is not set.
var DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

const providerClaude = "claude"

// Claude implements the Generator interface using Anthropic's Claude API.
// Each call is a single attempt with a per-call timeout and comprehensive
// observability.
type Claude struct {
	client          anthropic.Client
	config          *Config
	metricsRecorder GenerationMetricsRecorder
}

// NewClaude creates a new Claude generator with the given API key.
// It automatically configures metrics recording.
func NewClaude(apiKey string, config *Config) *Claude {
	slog.Info("Initialized Claude generator with configuration",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		config:          config,
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Generate produces a Markdown answer for the given question title using
// Claude AI. The call is made exactly once; any API error is returned to the
// caller wrapped in ErrGeneration.
func (c *Claude) Generate(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	// Generate unique request ID for tracing
	requestID := uuid.New().String()

	slog.InfoContext(ctx, "Starting answer generation",
		slog.String("provider", providerClaude),
		slog.String("request_id", requestID),
		slog.String("model", c.config.Model),
		slog.Int("title_length", text.CountRunes(title)))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   int64(c.config.MaxTokens),
		Temperature: anthropic.Float(float64(c.config.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildUserPrompt(title)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Answer generation failed",
			slog.String("provider", providerClaude),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		c.metricsRecorder.RecordOutcome(providerClaude, "error")
		return "", fmt.Errorf("%w: claude api: %v", ErrGeneration, err)
	}

	// Validate response structure
	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordOutcome(providerClaude, "error")
		return "", fmt.Errorf("%w: claude api returned empty response", ErrGeneration)
	}

	// Extract text from response
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordOutcome(providerClaude, "error")
		return "", fmt.Errorf("%w: claude api returned unexpected response type", ErrGeneration)
	}

	answer := textBlock.Text
	if err := entity.ValidateContent(answer); err != nil {
		slog.ErrorContext(ctx, "Claude API returned blank answer",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		c.metricsRecorder.RecordOutcome(providerClaude, "error")
		return "", fmt.Errorf("%w: claude api returned blank answer", ErrGeneration)
	}

	answerLength := text.CountRunes(answer)

	slog.InfoContext(ctx, "Answer generation completed",
		slog.String("provider", providerClaude),
		slog.String("request_id", requestID),
		slog.Int("answer_length", answerLength),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordOutcome(providerClaude, "success")
	c.metricsRecorder.RecordDuration(providerClaude, duration)
	c.metricsRecorder.RecordOutputLength(answerLength)

	return answer, nil
}
