package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"ponder/internal/domain/entity"
	"ponder/internal/utils/text"
)

// DefaultOpenAIModel is the model used when GENERATOR_MODEL is not set.
const DefaultOpenAIModel = "gpt-4o"

const providerOpenAI = "openai"

// OpenAI implements the Generator interface using OpenAI's chat completion
// API. Each call is a single attempt with a per-call timeout and
// comprehensive observability.
type OpenAI struct {
	client          *openai.Client
	config          *Config
	metricsRecorder GenerationMetricsRecorder
}

// NewOpenAI creates a new OpenAI generator with the given API key.
// It automatically configures metrics recording.
func NewOpenAI(apiKey string, config *Config) *OpenAI {
	slog.Info("Initialized OpenAI generator with configuration",
		slog.String("model", config.Model),
		slog.Int("max_tokens", config.MaxTokens))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		config:          config,
		metricsRecorder: NewPrometheusGenerationMetrics(),
	}
}

// Generate produces a Markdown answer for the given question title using
// OpenAI's chat completion API. The call is made exactly once; any API error
// is returned to the caller wrapped in ErrGeneration.
func (o *OpenAI) Generate(ctx context.Context, title string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	slog.InfoContext(ctx, "Starting answer generation",
		slog.String("provider", providerOpenAI),
		slog.String("model", o.config.Model),
		slog.Int("title_length", text.CountRunes(title)))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.config.Model,
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    "system",
				Content: systemPrompt,
			},
			{
				Role:    "user",
				Content: buildUserPrompt(title),
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Answer generation failed",
			slog.String("provider", providerOpenAI),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		o.metricsRecorder.RecordOutcome(providerOpenAI, "error")
		return "", fmt.Errorf("%w: openai api: %v", ErrGeneration, err)
	}

	// Validate response structure (safety check to prevent panic on array access)
	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		o.metricsRecorder.RecordOutcome(providerOpenAI, "error")
		return "", fmt.Errorf("%w: openai api returned empty response", ErrGeneration)
	}

	answer := resp.Choices[0].Message.Content
	if err := entity.ValidateContent(answer); err != nil {
		slog.ErrorContext(ctx, "OpenAI API returned blank answer",
			slog.Duration("duration", duration))
		o.metricsRecorder.RecordOutcome(providerOpenAI, "error")
		return "", fmt.Errorf("%w: openai api returned blank answer", ErrGeneration)
	}

	answerLength := text.CountRunes(answer)

	slog.InfoContext(ctx, "Answer generation completed",
		slog.String("provider", providerOpenAI),
		slog.Int("answer_length", answerLength),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordOutcome(providerOpenAI, "success")
	o.metricsRecorder.RecordDuration(providerOpenAI, duration)
	o.metricsRecorder.RecordOutputLength(answerLength)

	return answer, nil
}
