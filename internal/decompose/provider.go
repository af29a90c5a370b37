// Package decompose turns free-text goals into structured task lists and
// recorded audio into text. Two interchangeable transports implement the same
// contract: a structured decomposition backend, and direct prompting of an
// OpenAI chat model with reply parsing. The transport is selected once at
// startup; there is no runtime fallback between them.
package decompose

import (
	"context"
	"fmt"

	"github.com/taskbreak/taskbreak/internal/config"
	"github.com/taskbreak/taskbreak/internal/models"
	"go.uber.org/zap"
)

// Mode selects which transport the decomposition client uses
type Mode string

const (
	ModeBackend Mode = "backend"
	ModeOpenAI  Mode = "openai"
)

// Provider is the decomposition-client contract both transports conform to.
// Neither operation retries; an in-flight request cannot be aborted other
// than through ctx.
type Provider interface {
	// DecomposeGoal breaks a free-text goal into a structured task list.
	// Input length limits are the caller's responsibility.
	DecomposeGoal(ctx context.Context, req models.DecompositionRequest) (*models.DecompositionResponse, error)

	// TranscribeAudio converts a recorded audio payload into text in a
	// single request/response exchange. No chunking, no partial transcripts.
	TranscribeAudio(ctx context.Context, audio []byte) (string, error)
}

// ConfigStatus is the result of a configuration pre-flight check
type ConfigStatus struct {
	IsValid bool
	Errors  []string
}

// CheckConfiguration validates the client configuration without performing
// any I/O. Callers use it to pre-flight before attempting network calls; the
// request operations themselves only enforce the API-key check in OpenAI mode.
func CheckConfiguration(cfg *config.Config) ConfigStatus {
	var errs []string
	switch Mode(cfg.APIMode) {
	case ModeOpenAI:
		if cfg.OpenAIKey == "" {
			errs = append(errs, "OpenAI API key not configured")
		}
	case ModeBackend:
		if cfg.BackendBaseURL == "" {
			errs = append(errs, "Backend API URL not configured")
		}
	default:
		errs = append(errs, "Invalid API mode")
	}
	return ConfigStatus{IsValid: len(errs) == 0, Errors: errs}
}

// NewProvider builds the transport selected by cfg.APIMode. A missing OpenAI
// key is not an error here; it surfaces when a request is attempted, so the
// pre-flight check stays advisory.
func NewProvider(cfg *config.Config, logger *zap.Logger, debugMode bool) (Provider, error) {
	switch Mode(cfg.APIMode) {
	case ModeBackend:
		if cfg.BackendBaseURL == "" {
			return nil, ErrBackendURLMissing
		}
		return NewBackendProvider(cfg.BackendBaseURL, logger, debugMode), nil
	case ModeOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, logger, debugMode), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.APIMode)
	}
}
