package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		intent  string
		wantErr bool
	}{
		{name: "clean json", raw: `{"intent": "call", "confidence": 0.95}`, intent: "call"},
		{name: "prose wrapped", raw: "Sure! Here is the answer:\n{\"intent\": \"list\", \"confidence\": 0.8}\nHope that helps.", intent: "list"},
		{name: "fenced", raw: "```json\n{\"intent\": \"notes\", \"confidence\": 0.7}\n```", intent: "notes"},
		{name: "uppercase intent lowered", raw: `{"intent": "EMAIL", "confidence": 1}`, intent: "email"},
		{name: "whitespace trimmed", raw: `{"intent": "  sms  ", "confidence": 0.5}`, intent: "sms"},
		{name: "no json at all", raw: "I think you want to make a call.", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "braces but garbage", raw: "{not json}", wantErr: true},
		{name: "missing intent", raw: `{"confidence": 0.9}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := parseClassification(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.intent, out.Intent)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intent.yaml")
	spec := `system: You are an intent tagger.
intents:
  - name: call
    description: place a phone call
  - name: general
    description: anything else
style:
  temperature: 0.2
  max_tokens: 50
`
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o600))

	c, err := Load(path, nil, "gpt-4o-mini")
	require.NoError(t, err)
	assert.Len(t, c.spec.Intents, 2)
	assert.Equal(t, "call", c.spec.Intents[0].Name)
	assert.Equal(t, float32(0.2), c.spec.Style.Temperature)
}

func TestLoadRejectsEmptySpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "intent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system: hi\n"), 0o600))

	_, err := Load(path, nil, "gpt-4o-mini")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil, "gpt-4o-mini")
	assert.Error(t, err)
}
