package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"gopkg.in/yaml.v3"
)

// Spec is the YAML prompt definition loaded from prompts/intent.yaml.
type Spec struct {
	System  string `yaml:"system"`
	Intents []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"intents"`
	Style struct {
		Temperature float32 `yaml:"temperature"`
		MaxTokens   int     `yaml:"max_tokens"`
	} `yaml:"style"`
}

// classification is the strict JSON contract the model must answer with.
type classification struct {
	Intent     string  `json:"intent"`
	Confidence float32 `json:"confidence"`
}

// Classifier asks a chat model to tag an utterance with one intent name
// from the prompt file. Callers fall back to the keyword rules on any error.
type Classifier struct {
	spec   Spec
	client *openai.Client
	model  string
}

// Load reads the intent spec and builds a classifier around the given
// OpenAI client.
func Load(path string, client *openai.Client, model string) (*Classifier, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec Spec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, err
	}
	if len(spec.Intents) == 0 {
		return nil, fmt.Errorf("intent spec %s defines no intents", path)
	}
	return &Classifier{spec: spec, client: client, model: model}, nil
}

// Classify returns the model's intent tag for the utterance. Non-JSON
// output is recovered by scanning for the outermost braces, the same way
// chatty models wrapping JSON in prose are handled elsewhere; anything
// still unparseable is an error.
func (c *Classifier) Classify(ctx context.Context, utterance string) (string, error) {
	temperature := c.spec.Style.Temperature
	if temperature <= 0 {
		temperature = 0.1
	}
	maxTokens := c.spec.Style.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 100
	}

	var b strings.Builder
	b.WriteString(c.spec.System)
	b.WriteString("\n\nIntents:\n")
	for _, it := range c.spec.Intents {
		b.WriteString("- ")
		b.WriteString(it.Name)
		b.WriteString(": ")
		b.WriteString(it.Description)
		b.WriteString("\n")
	}
	b.WriteString("\nUtterance: ")
	b.WriteString(strings.TrimSpace(utterance))
	b.WriteString("\n\nAnswer with ONLY a JSON object of the form {\"intent\": \"<name>\", \"confidence\": <0..1>}.\n")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: b.String()},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}

	out, err := parseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		return "", err
	}
	return out.Intent, nil
}

func parseClassification(raw string) (classification, error) {
	var out classification
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return validated(out)
	}

	first := strings.IndexByte(raw, '{')
	last := strings.LastIndexByte(raw, '}')
	if first < 0 || last <= first {
		return out, fmt.Errorf("model output is not JSON: %q", truncateRaw(raw))
	}
	if err := json.Unmarshal([]byte(raw[first:last+1]), &out); err != nil {
		return out, fmt.Errorf("model output is not JSON: %q", truncateRaw(raw))
	}
	return validated(out)
}

func validated(out classification) (classification, error) {
	out.Intent = strings.ToLower(strings.TrimSpace(out.Intent))
	if out.Intent == "" {
		return out, fmt.Errorf("model output names no intent")
	}
	return out, nil
}

func truncateRaw(s string) string {
	if len(s) > 120 {
		return s[:120] + "..."
	}
	return s
}
