package decompose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskbreak/taskbreak/internal/models"
	"go.uber.org/zap"
)

// BackendProvider implements the Provider interface against a structured
// decomposition backend: POST {base}/decompose, {base}/transcribe and
// {base}/clear-data.
type BackendProvider struct {
	baseURL   string
	client    *http.Client
	logger    *zap.Logger
	debugMode bool
}

// NewBackendProvider creates a backend-mode provider. No request timeout is
// enforced at this layer; the transport's defaults apply.
func NewBackendProvider(baseURL string, logger *zap.Logger, debugMode bool) *BackendProvider {
	return &BackendProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{},
		logger:    logger,
		debugMode: debugMode,
	}
}

// DecomposeGoal posts the request to {base}/decompose and decodes the
// structured response.
func (p *BackendProvider) DecomposeGoal(ctx context.Context, req models.DecompositionRequest) (*models.DecompositionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode decomposition request: %w", err)
	}

	requestID := uuid.NewString()
	if p.logger != nil && p.debugMode {
		p.logger.Debug("backend_api_request",
			zap.String("operation", "decompose_goal"),
			zap.String("endpoint", "/decompose"),
			zap.Int("goal_length", len(req.Goal)),
			zap.String("request_id", requestID),
		)
	}

	start := time.Now()
	respBody, err := p.post(ctx, "/decompose", "application/json", bytes.NewReader(body))
	latency := time.Since(start)
	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("backend_api_error",
				zap.String("operation", "decompose_goal"),
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return nil, fmt.Errorf("decompose goal: %w", err)
	}

	var resp models.DecompositionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decode decomposition response: %w", err)
	}
	if p.logger != nil && p.debugMode {
		p.logger.Debug("backend_api_response",
			zap.String("operation", "decompose_goal"),
			zap.Int("task_count", len(resp.Tasks)),
			zap.String("request_id", requestID),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}
	return &resp, nil
}

// TranscribeAudio uploads the audio payload as multipart form data with field
// name "audio" and returns the transcript text.
func (p *BackendProvider) TranscribeAudio(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("audio", "recording.wav")
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}

	respBody, err := p.post(ctx, "/transcribe", writer.FormDataContentType(), &buf)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	return resp.Text, nil
}

// ClearData asks the backend to drop its server-side state. Part of the
// backend contract; not currently wired to any CLI action.
func (p *BackendProvider) ClearData(ctx context.Context) (string, error) {
	respBody, err := p.post(ctx, "/clear-data", "application/json", nil)
	if err != nil {
		return "", fmt.Errorf("clear data: %w", err)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decode clear-data response: %w", err)
	}
	return resp.Message, nil
}

// post issues a POST and returns the response body. Non-2xx statuses are
// converted into an *APIError carrying the upstream message when available.
func (p *BackendProvider) post(ctx context.Context, endpoint, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}
