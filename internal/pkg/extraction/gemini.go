package extraction

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiGenerator calls the Gemini API with the document as an inline part.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client for the given API key and model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, doc Document) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(doc.Data, doc.MimeType),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}

// Unconfigured is used when no model credentials are set. Uploads then fail
// with ErrGeneration instead of the server refusing to start.
type Unconfigured struct{}

// Generate implements Generator.
func (Unconfigured) Generate(context.Context, string, Document) (string, error) {
	return "", errors.New("no generative model configured")
}
