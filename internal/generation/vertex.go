package generation

import (
	"context"
	"fmt"
	"strings"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	aiplatformpb "cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/minbar-sermons-api/internal/schema"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/proto"
)

// VertexConfig holds Vertex AI settings
type VertexConfig struct {
	ProjectID   string // GCP project ID
	Location    string // e.g. "us-central1" or "global"
	Temperature float32
}

// VertexBackend calls Gemini through Vertex AI using application default credentials
type VertexBackend struct {
	config VertexConfig
	client *aiplatform.PredictionClient
}

// NewVertexBackend creates a Vertex AI backend
func NewVertexBackend(ctx context.Context, config VertexConfig) (*VertexBackend, error) {
	if config.ProjectID == "" {
		return nil, fmt.Errorf("VERTEX_PROJECT_ID is required for the vertex backend")
	}
	if config.Location == "" {
		config.Location = "us-central1"
	}

	endpoint := fmt.Sprintf("%s-aiplatform.googleapis.com:443", config.Location)
	if config.Location == "global" {
		endpoint = "aiplatform.googleapis.com:443"
	}

	client, err := aiplatform.NewPredictionClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, fmt.Errorf("create prediction client: %w", err)
	}
	return &VertexBackend{config: config, client: client}, nil
}

// Close closes the Vertex AI client
func (b *VertexBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// Generate sends one GenerateContent request
func (b *VertexBackend) Generate(ctx context.Context, req Request) (string, error) {
	pbReq := &aiplatformpb.GenerateContentRequest{
		Model: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			b.config.ProjectID, b.config.Location, req.Model),
		Contents:         []*aiplatformpb.Content{textContent("user", req.Instruction)},
		GenerationConfig: &aiplatformpb.GenerationConfig{},
	}
	if req.SystemContract != "" {
		pbReq.SystemInstruction = textContent("", req.SystemContract)
	}
	if req.OutputMode == OutputStructuredJSON {
		pbReq.GenerationConfig.ResponseMimeType = "application/json"
	}
	if req.Schema != nil {
		pbReq.GenerationConfig.ResponseSchema = toVertexSchema(req.Schema)
	}
	if b.config.Temperature > 0 {
		pbReq.GenerationConfig.Temperature = proto.Float32(b.config.Temperature)
	}

	resp, err := b.client.GenerateContent(ctx, pbReq)
	if err != nil {
		return "", fmt.Errorf("vertex generate content: %w", err)
	}
	return extractText(resp), nil
}

func textContent(role, text string) *aiplatformpb.Content {
	return &aiplatformpb.Content{
		Role:  role,
		Parts: []*aiplatformpb.Part{{Data: &aiplatformpb.Part_Text{Text: text}}},
	}
}

func extractText(resp *aiplatformpb.GenerateContentResponse) string {
	if resp == nil || len(resp.GetCandidates()) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.GetCandidates()[0].GetContent().GetParts() {
		sb.WriteString(part.GetText())
	}
	return sb.String()
}

func toVertexSchema(n *schema.Node) *aiplatformpb.Schema {
	out := &aiplatformpb.Schema{Description: n.Description}
	switch n.Type {
	case schema.TypeObject:
		out.Type = aiplatformpb.Type_OBJECT
		out.Properties = make(map[string]*aiplatformpb.Schema, len(n.Properties))
		for _, p := range n.Properties {
			out.Properties[p.Name] = toVertexSchema(p.Node)
		}
		out.Required = n.Required()
	case schema.TypeArray:
		out.Type = aiplatformpb.Type_ARRAY
		if n.Items != nil {
			out.Items = toVertexSchema(n.Items)
		}
	default:
		out.Type = aiplatformpb.Type_STRING
	}
	return out
}
