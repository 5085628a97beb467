package feed

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"privacypal/internal/types"
)

func TestLoad_JSON(t *testing.T) {
	msgs, err := Load(filepath.Join("testdata", "mock_data.json"))
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	want := types.Message{ID: "m2", User: "bob", Text: "prod secret 4111111111111111"}
	if diff := cmp.Diff(want, msgs[1]); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_YAMLEnvelope(t *testing.T) {
	msgs, err := Load(filepath.Join("testdata", "mock_data.yaml"))
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	assert.Equal(t, "alice", msgs[0].User)
	assert.Equal(t, types.UnknownID, msgs[2].ID, "missing id should be normalized")
	assert.Equal(t, "erin", msgs[2].User)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "does-not-exist.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = Load(filepath.Join("testdata", "broken.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON feed")
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   []types.Message
	}{
		{
			name:   "json list",
			input:  `[{"id":"a","user":"u","text":"hi"}]`,
			format: FormatJSON,
			want:   []types.Message{{ID: "a", User: "u", Text: "hi"}},
		},
		{
			name:   "json envelope",
			input:  `{"messages":[{"id":"a","text":"hi"}]}`,
			format: FormatJSON,
			want:   []types.Message{{ID: "a", User: types.UnknownID, Text: "hi"}},
		},
		{
			name:   "yaml list",
			input:  "- id: a\n  user: u\n  text: hi\n",
			format: FormatYAML,
			want:   []types.Message{{ID: "a", User: "u", Text: "hi"}},
		},
		{
			name:   "empty input",
			input:  "  \n",
			format: FormatJSON,
			want:   nil,
		},
		{
			name:   "missing text is kept empty",
			input:  `[{"id":"a","user":"u"}]`,
			format: FormatJSON,
			want:   []types.Message{{ID: "a", User: "u"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("[]"), Format("toml"))
	require.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("feed.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("/tmp/feed.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("feed.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("feed"))
}

func TestFromTexts(t *testing.T) {
	msgs := FromTexts("", []string{"one", "two"})
	want := []types.Message{
		{ID: "arg-1", User: types.UnknownID, Text: "one"},
		{ID: "arg-2", User: types.UnknownID, Text: "two"},
	}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("FromTexts mismatch (-want +got):\n%s", diff)
	}
}
