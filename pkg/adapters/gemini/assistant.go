// Package gemini implements core.Assistant using Google's Generative
// AI API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"google.golang.org/genai"

	"github.com/jotvault/jot/pkg/core"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-flash-latest"

	// DefaultMinContentLength is the threshold below which
	// SuggestMetadata short-circuits without a remote call.
	DefaultMinContentLength = 20
)

// Assistant implements core.Assistant over the genai client.
type Assistant struct {
	model     string
	minLength int
	config    *genai.ClientConfig
	logger    *slog.Logger
}

// Config holds the configuration for the assistant.
type Config struct {
	// APIKey for the Gemini API. Falls back to the GEMINI_API_KEY
	// environment variable.
	APIKey string

	// Model overrides DefaultModel.
	Model string

	// MinContentLength overrides DefaultMinContentLength.
	MinContentLength int

	// ClientConfig allows full control of the genai client (e.g. a
	// custom HTTP client for record/replay tests).
	ClientConfig *genai.ClientConfig

	Logger *slog.Logger
}

// NewAssistant creates a Gemini-backed assistant.
func NewAssistant(cfg Config) (*Assistant, error) {
	cc := cfg.ClientConfig
	if cc == nil {
		cc = &genai.ClientConfig{}
	}
	if cc.APIKey == "" {
		cc.APIKey = cfg.APIKey
	}
	if cc.APIKey == "" {
		cc.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	// An empty API key is allowed only with a custom HTTP client
	// (e.g. replay transports in tests).
	if cc.APIKey == "" && cc.HTTPClient == nil {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	minLength := cfg.MinContentLength
	if minLength <= 0 {
		minLength = DefaultMinContentLength
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Assistant{
		model:     model,
		minLength: minLength,
		config:    cc,
		logger:    logger,
	}, nil
}

// suggestionPayload is the JSON shape requested from the model.
type suggestionPayload struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
}

// SuggestMetadata asks the model for a title, summary and category.
// Content below the minimum length short-circuits to an empty
// Suggestion without calling out.
func (a *Assistant) SuggestMetadata(ctx context.Context, content string) (core.Suggestion, error) {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < a.minLength {
		a.logger.Debug("content below suggestion threshold, skipping remote call")
		return core.Suggestion{}, nil
	}

	text, err := a.generate(ctx, buildSuggestPrompt(content), true)
	if err != nil {
		return core.Suggestion{}, err
	}
	return parseSuggestion(text)
}

// EnhanceContent asks the model to rewrite the content. On failure the
// original content is returned unchanged alongside the error.
func (a *Assistant) EnhanceContent(ctx context.Context, content string) (string, error) {
	text, err := a.generate(ctx, buildEnhancePrompt(content), false)
	if err != nil {
		return content, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return content, fmt.Errorf("no content generated")
	}
	return text, nil
}

func (a *Assistant) generate(ctx context.Context, prompt string, asJSON bool) (string, error) {
	client, err := genai.NewClient(ctx, a.config)
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if asJSON {
		config.ResponseMIMEType = "application/json"
	}

	resp, err := client.Models.GenerateContent(ctx, a.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text, nil
}

func buildSuggestPrompt(content string) string {
	names := make([]string, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		names = append(names, string(c))
	}

	return fmt.Sprintf(`Analyze the following note and respond with a JSON object containing:
- "title": a short descriptive title (max 8 words)
- "summary": a one-sentence summary
- "category": the best fitting category, exactly one of: %s

Note content:
%s

Output JSON:`, strings.Join(names, ", "), content)
}

func buildEnhancePrompt(content string) string {
	return fmt.Sprintf(`Rewrite the following note to improve clarity, grammar and structure.
Keep the original meaning and language. Respond with the rewritten note only, no commentary.

Note content:
%s`, content)
}

// parseSuggestion decodes the model's JSON reply. An unknown category
// is dropped rather than failing the whole suggestion.
func parseSuggestion(text string) (core.Suggestion, error) {
	var payload suggestionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return core.Suggestion{}, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	s := core.Suggestion{
		Title:   strings.TrimSpace(payload.Title),
		Summary: strings.TrimSpace(payload.Summary),
	}
	if payload.Category != "" {
		if c, err := core.ParseCategory(payload.Category); err == nil {
			s.Category = c
		}
	}
	return s, nil
}

var _ core.Assistant = (*Assistant)(nil)
