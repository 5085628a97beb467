package perception

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// contentGenerator is the slice of genai.Models the client needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	BaseURL     string // empty uses the SDK default endpoint
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:      apiKey,
		Model:       "gemini-2.0-flash",
		Temperature: 0.1,
		Timeout:     120 * time.Second,
	}
}

// GeminiClient implements LLMClient for Google Gemini through the genai SDK.
type GeminiClient struct {
	client      *genai.Client
	models      contentGenerator
	model       string
	temperature float32
}

// NewGeminiClient creates a Gemini client. A missing key or an SDK
// construction failure is a ConfigurationError.
func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, &ConfigurationError{Provider: ProviderGemini, Reason: "API key is required"}
	}

	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = DefaultGeminiConfig("").Model
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, &ConfigurationError{Provider: ProviderGemini, Reason: "failed to create GenAI client", Err: err}
	}

	return &GeminiClient{
		client:      client,
		models:      client.Models,
		model:       model,
		temperature: config.Temperature,
	}, nil
}

// Model returns the model name used for completions.
func (c *GeminiClient) Model() string {
	return c.model
}

// Complete sends a prompt and returns the completion.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteWithSystem(ctx, "", prompt)
}

// CompleteWithSystem sends a prompt with a system instruction and returns the
// reply text.
func (c *GeminiClient) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}
	if systemPrompt != "" {
		genConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(userPrompt), genConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}

	return resp.Text(), nil
}
