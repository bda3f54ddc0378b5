package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
)

const (
	sentimentMaxChars = 512
	categoryMaxChars  = 1024
)

// ClaudeCapability implements the NLP capability with the Anthropic API.
type ClaudeCapability struct {
	config *config.Config
	client anthropic.Client
	logger types.Logger
}

// NewClaudeCapability creates a Claude-backed NLP capability
func NewClaudeCapability(cfg *config.Config) *ClaudeCapability {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeCapability{
		config: cfg,
		client: client,
		logger: logging.GetGlobalLogger(),
	}
}

// Sentiment classifies the text and maps the label onto a signed score:
// negative label carries negative magnitude, neutral maps to 0.
func (c *ClaudeCapability) Sentiment(ctx context.Context, text string) (float64, error) {
	if len(text) > sentimentMaxChars {
		text = text[:sentimentMaxChars]
	}

	prompt := fmt.Sprintf(`Classify the sentiment of the following job posting text. Return ONLY a JSON object with exactly these fields:

{"label": "positive" | "neutral" | "negative", "score": number between 0.0 and 1.0 indicating confidence}

TEXT:
%s`, text)

	var result struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.completeJSON(ctx, prompt, &result); err != nil {
		return 0, err
	}

	switch strings.ToLower(result.Label) {
	case "positive":
		return result.Score, nil
	case "negative":
		return -result.Score, nil
	default:
		return 0, nil
	}
}

// Categorize picks the best-fitting label from the category list
func (c *ClaudeCapability) Categorize(ctx context.Context, text string, categories []string) (string, float64, error) {
	if len(text) > categoryMaxChars {
		text = text[:categoryMaxChars]
	}

	prompt := fmt.Sprintf(`Classify the following job posting into exactly one of these categories:
%s

Return ONLY a JSON object with exactly these fields:

{"label": "the chosen category", "score": number between 0.0 and 1.0 indicating confidence}

TEXT:
%s`, strings.Join(categories, ", "), text)

	var result struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := c.completeJSON(ctx, prompt, &result); err != nil {
		return "", 0, err
	}

	return result.Label, result.Score, nil
}

// Entities extracts named entities from the text
func (c *ClaudeCapability) Entities(ctx context.Context, text string) ([]Entity, error) {
	if len(text) > categoryMaxChars {
		text = text[:categoryMaxChars]
	}

	prompt := fmt.Sprintf(`Extract the named entities from the following job posting text. Return ONLY a JSON object with exactly this shape:

{"entities": [{"text": "the entity as written", "label": "organization" | "product" | "person" | "location" | "other"}]}

Technologies, frameworks and tools count as products. Return an empty list when nothing qualifies.

TEXT:
%s`, text)

	var result struct {
		Entities []Entity `json:"entities"`
	}
	if err := c.completeJSON(ctx, prompt, &result); err != nil {
		return nil, err
	}

	return result.Entities, nil
}

// completeJSON sends one prompt and unmarshals the JSON reply into out
func (c *ClaudeCapability) completeJSON(ctx context.Context, prompt string, out interface{}) error {
	response, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.LLM.Model),
		MaxTokens:   int64(c.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(c.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	if err := json.Unmarshal([]byte(responseText), out); err != nil {
		return fmt.Errorf("failed to parse JSON response from Claude: %w, response: %s", err, responseText)
	}
	return nil
}
