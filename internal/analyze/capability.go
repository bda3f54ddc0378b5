package analyze

import "context"

// Entity is one named-entity hit returned by the capability
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Capability is the external NLP collaborator the analyzer delegates
// sentiment, category classification and entity recognition to. It is
// optional: a nil capability degrades sentiment to 0.0, category to empty,
// and skills to vocabulary matches only.
type Capability interface {
	// Sentiment returns a signed score in [-1, 1] for the text
	Sentiment(ctx context.Context, text string) (float64, error)

	// Categorize picks the best label from categories with its confidence
	Categorize(ctx context.Context, text string, categories []string) (string, float64, error)

	// Entities returns the named entities found in the text
	Entities(ctx context.Context, text string) ([]Entity, error)
}
