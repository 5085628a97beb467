package perception

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTextModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[
			{"name":"models/text-embedding-004","displayName":"Embedding","supportedGenerationMethods":["embedContent"],"supportedActions":["embedContent"]},
			{"name":"models/gemini-2.5-flash-lite","displayName":"Gemini 2.5 Flash-Lite","supportedGenerationMethods":["generateContent","countTokens"],"supportedActions":["generateContent","countTokens"]},
			{"name":"models/gemini-2.0-flash","displayName":"Gemini 2.0 Flash","supportedGenerationMethods":["generateContent"],"supportedActions":["generateContent"]}
		]}`))
	}))
	defer srv.Close()

	c, err := NewGeminiClient(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	models, err := c.ListTextModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "models/gemini-2.0-flash", models[0].Name)
	assert.Equal(t, "models/gemini-2.5-flash-lite", models[1].Name)
	assert.Equal(t, "Gemini 2.0 Flash", models[0].DisplayName)
}

func TestListTextModels_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"bad key","status":"UNAUTHENTICATED"}}`))
	}))
	defer srv.Close()

	c, err := NewGeminiClient(context.Background(), GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.ListTextModels(context.Background())
	assert.ErrorContains(t, err, "failed to list models")
}
