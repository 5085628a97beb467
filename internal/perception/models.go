package perception

import (
	"context"
	"fmt"
	"slices"
	"sort"
)

const generateContentAction = "generateContent"

// ModelInfo describes a model offered by the provider.
type ModelInfo struct {
	Name        string
	DisplayName string
}

// ListTextModels returns the models that support text generation, sorted
// by name.
func (c *GeminiClient) ListTextModels(ctx context.Context) ([]ModelInfo, error) {
	var models []ModelInfo
	for m, err := range c.client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}
		if m == nil || !slices.Contains(m.SupportedActions, generateContentAction) {
			continue
		}
		models = append(models, ModelInfo{Name: m.Name, DisplayName: m.DisplayName})
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}
