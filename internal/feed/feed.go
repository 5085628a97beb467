// Package feed loads chat message feeds from disk.
//
// A feed is a JSON or YAML list of {id, user, text} records. Records are
// normalized on load, so a missing id or user becomes "unknown".
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"privacypal/internal/logging"
	"privacypal/internal/types"
)

// Format identifies a feed encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Unknown extensions
// are read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// envelope is the alternative object form: {"messages": [...]}.
type envelope struct {
	Messages []types.Message `json:"messages" yaml:"messages"`
}

// Load reads a feed file.
func Load(path string) ([]types.Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed: %w", err)
	}
	defer f.Close()

	msgs, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load feed %s: %w", path, err)
	}
	logging.Get(logging.CategoryFeed).Info("feed loaded",
		zap.String("path", path),
		zap.Int("messages", len(msgs)))
	return msgs, nil
}

// Decode parses a feed in the given format. Both a bare list and an object
// with a "messages" key are accepted.
func Decode(r io.Reader, format Format) ([]types.Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var msgs []types.Message
	switch format {
	case FormatYAML:
		msgs, err = decodeYAML(data)
	case FormatJSON:
		msgs, err = decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported feed format %q", format)
	}
	if err != nil {
		return nil, err
	}

	for i := range msgs {
		msgs[i] = msgs[i].Normalize()
	}
	return msgs, nil
}

func decodeJSON(data []byte) ([]types.Message, error) {
	trimmed := bytes.TrimSpace(data)
	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to parse JSON feed: %w", err)
		}
		return env.Messages, nil
	}
	var msgs []types.Message
	if err := json.Unmarshal(trimmed, &msgs); err != nil {
		return nil, fmt.Errorf("failed to parse JSON feed: %w", err)
	}
	return msgs, nil
}

func decodeYAML(data []byte) ([]types.Message, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML feed: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.MappingNode {
		var env envelope
		if err := node.Decode(&env); err != nil {
			return nil, fmt.Errorf("failed to parse YAML feed: %w", err)
		}
		return env.Messages, nil
	}
	var msgs []types.Message
	if err := node.Decode(&msgs); err != nil {
		return nil, fmt.Errorf("failed to parse YAML feed: %w", err)
	}
	return msgs, nil
}

// FromTexts builds ad-hoc messages, one per text, with ids "arg-1", "arg-2"...
func FromTexts(user string, texts []string) []types.Message {
	msgs := make([]types.Message, len(texts))
	for i, t := range texts {
		msgs[i] = types.Message{ID: fmt.Sprintf("arg-%d", i+1), User: user, Text: t}.Normalize()
	}
	return msgs
}
