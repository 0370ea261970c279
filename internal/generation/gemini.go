package generation

import (
	"context"
	"fmt"

	"github.com/minbar-sermons-api/internal/schema"
	"google.golang.org/genai"
)

// GeminiBackend calls the Gemini API with an API key
type GeminiBackend struct {
	client      *genai.Client
	temperature float32
}

// NewGeminiBackend creates a Gemini API backend
func NewGeminiBackend(ctx context.Context, apiKey string, temperature float32) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API_KEY is required for the gemini backend")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GeminiBackend{client: client, temperature: temperature}, nil
}

// Generate sends one GenerateContent request
func (b *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemContract != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemContract, genai.RoleUser)
	}
	if req.OutputMode == OutputStructuredJSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.Schema != nil {
		cfg.ResponseSchema = toGenaiSchema(req.Schema)
	}
	if b.temperature > 0 {
		cfg.Temperature = genai.Ptr(b.temperature)
	}

	resp, err := b.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Instruction), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Text(), nil
}

func toGenaiSchema(n *schema.Node) *genai.Schema {
	out := &genai.Schema{Description: n.Description}
	switch n.Type {
	case schema.TypeObject:
		out.Type = genai.TypeObject
		out.Properties = make(map[string]*genai.Schema, len(n.Properties))
		for _, p := range n.Properties {
			out.Properties[p.Name] = toGenaiSchema(p.Node)
		}
		out.Required = n.Required()
		out.PropertyOrdering = n.Required()
	case schema.TypeArray:
		out.Type = genai.TypeArray
		if n.Items != nil {
			out.Items = toGenaiSchema(n.Items)
		}
	default:
		out.Type = genai.TypeString
	}
	return out
}
