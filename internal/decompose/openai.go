package decompose

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/taskbreak/taskbreak/internal/logger"
	"github.com/taskbreak/taskbreak/internal/models"
	"go.uber.org/zap"
)

const (
	// DefaultOpenAIModel is the default chat model for goal decomposition
	DefaultOpenAIModel = "gpt-3.5-turbo"
	// DefaultOpenAIBaseURL is the default OpenAI API base URL
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"

	// decomposeTemperature keeps the decomposition output stable across runs
	decomposeTemperature = 0.3
	// decomposeMaxTokens caps the decomposition reply length
	decomposeMaxTokens = 1000
)

// decompositionSystemPrompt directs the model to break a goal into small,
// executable subtasks and reply with an embedded JSON object.
const decompositionSystemPrompt = `You are a professional task-decomposition assistant that helps users break complex goals into small executable tasks.

Follow these rules:
1. Break the goal into 3-12 concrete subtasks
2. Each task should be completable in 5-30 minutes
3. Task descriptions must be specific and actionable
4. Order the tasks logically
5. Estimate a completion time in minutes for each task
6. Assign each task a priority: "low", "medium" or "high"
7. Classify the goal into one of: "work", "study", "life", "health", "other"

Reply with a JSON object in this format:
{
  "goal": "the original goal",
  "tasks": [
    {
      "title": "task title",
      "description": "task description",
      "estimatedTime": 15,
      "priority": "medium"
    }
  ],
  "estimatedTotalTime": 120,
  "category": "life"
}`

// OpenAIProvider implements the Provider interface by prompting an OpenAI
// chat model directly and parsing the JSON embedded in its reply.
type OpenAIProvider struct {
	client    openai.Client
	apiKey    string
	model     string
	logger    *zap.Logger
	debugMode bool
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates an OpenAI-mode provider. An empty model or base
// URL falls back to the defaults.
func NewOpenAIProvider(apiKey, baseURL, model string, logger *zap.Logger, debugMode bool) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)

	return &OpenAIProvider{
		client:    client,
		apiKey:    apiKey,
		model:     model,
		logger:    logger,
		debugMode: debugMode,
	}
}

// DecomposeGoal sends the fixed decomposition instruction plus the user's
// goal to the chat-completion endpoint and parses the embedded JSON reply.
// A parse failure fails the whole operation; there is no retry and no
// partial result.
func (p *OpenAIProvider) DecomposeGoal(ctx context.Context, req models.DecompositionRequest) (*models.DecompositionResponse, error) {
	if p.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	requestID := uuid.NewString()
	userPrompt := "Please break down the following goal: " + req.Goal

	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(decompositionSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(decomposeTemperature),
		MaxTokens:   openai.Int(decomposeMaxTokens),
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", "decompose_goal"),
			zap.String("model", p.model),
			zap.String("goal", logger.SanitizeDebugContent(req.Goal)),
			zap.String("request_id", requestID),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	latency := time.Since(start)
	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", "decompose_goal"),
				zap.String("model", p.model),
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return nil, wrapOpenAIError("decompose goal", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoChoicesInResponse
	}

	content := resp.Choices[0].Message.Content
	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", "decompose_goal"),
			zap.String("model", p.model),
			zap.String("content", logger.SanitizeDebugContent(content)),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return parseDecomposition(content, req.Goal)
}

// TranscribeAudio uploads the audio payload to the speech-to-text endpoint
// with a fixed model identifier and returns the transcript text.
func (p *OpenAIProvider) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	if p.apiKey == "" {
		return "", ErrAPIKeyMissing
	}

	requestID := uuid.NewString()
	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("operation", "transcribe_audio"),
			zap.String("model", string(openai.AudioModelWhisper1)),
			zap.Int("audio_bytes", len(audio)),
			zap.String("request_id", requestID),
		)
	}

	start := time.Now()
	resp, err := p.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModelWhisper1,
		File:  openai.File(bytes.NewReader(audio), "recording.wav", "audio/wav"),
	})
	latency := time.Since(start)
	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("operation", "transcribe_audio"),
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return "", wrapOpenAIError("transcribe audio", err)
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("operation", "transcribe_audio"),
			zap.Int("response_length", len(resp.Text)),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}
	return resp.Text, nil
}

// wrapOpenAIError converts SDK failures into the client's error taxonomy,
// preferring the upstream-provided message when one is present.
func wrapOpenAIError(op string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", op, &APIError{
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}
