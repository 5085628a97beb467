package perception

import (
	"context"
	"fmt"

	"privacypal/internal/config"
)

// NewClient creates the oracle client described by cfg. The returned client
// is the raw provider client; wrap it with NewTracingClient for call logging.
func NewClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigurationError{Provider: Provider(cfg.LLM.Provider), Reason: "invalid configuration", Err: err}
	}

	switch Provider(cfg.LLM.Provider) {
	case ProviderGemini:
		gc := DefaultGeminiConfig(cfg.LLM.APIKey)
		if cfg.LLM.Model != "" {
			gc.Model = cfg.LLM.Model
		}
		gc.BaseURL = cfg.LLM.BaseURL
		gc.Temperature = cfg.Oracle.Temperature
		gc.Timeout = cfg.GetLLMTimeout()
		return NewGeminiClient(ctx, gc)
	default:
		return nil, &ConfigurationError{
			Provider: Provider(cfg.LLM.Provider),
			Reason:   fmt.Sprintf("unsupported provider (valid: %v)", config.ValidProviders),
		}
	}
}
