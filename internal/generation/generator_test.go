package generation

import (
	"context"
	"errors"
	"testing"

	aiplatformpb "cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"github.com/minbar-sermons-api/internal/config"
	"github.com/minbar-sermons-api/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClientAppliesDefaults(t *testing.T) {
	var got Request
	backend := GeneratorFunc(func(ctx context.Context, req Request) (string, error) {
		got = req
		return `{"ok":true}`, nil
	})

	client := NewClient(backend, "", nil)
	text, err := client.Generate(context.Background(), Request{Instruction: "hi", SystemContract: "rules"})

	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, OutputText, got.OutputMode)
	assert.Equal(t, "rules", got.SystemContract)
	assert.Equal(t, DefaultModel, client.Model())
}

func TestClientWrapsFailures(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name    string
		backend GeneratorFunc
		cause   error
	}{
		{"transport error", func(context.Context, Request) (string, error) { return "", cause }, cause},
		{"empty response", func(context.Context, Request) (string, error) { return "  \n", nil }, ErrEmptyResponse},
		{"context canceled", func(ctx context.Context, _ Request) (string, error) { return "", ctx.Err() }, context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := NewClient(tt.backend, "m", nil).Generate(ctx, Request{})
			require.Error(t, err)

			var te *TransportError
			require.True(t, errors.As(err, &te))
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestClientRecoversBackendPanic(t *testing.T) {
	backend := GeneratorFunc(func(context.Context, Request) (string, error) {
		panic("boom")
	})
	_, err := NewClient(backend, "m", nil).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrGenerationFailed)
}

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(schema.Sermon("الفاتحة"))

	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"title", "verses", "khutbah1", "khutbah2"}, s.Required)

	messages := s.Properties["khutbah1"].Properties["messages"]
	require.NotNil(t, messages)
	assert.Equal(t, genai.TypeArray, messages.Type)
	assert.Equal(t, []string{"message", "explanation"}, messages.Items.Required)

	hadith := s.Properties["khutbah2"].Properties["hadith"]
	assert.Equal(t, genai.TypeString, hadith.Properties["authenticity"].Type)
}

func TestToVertexSchema(t *testing.T) {
	s := toVertexSchema(schema.Sermon(""))

	assert.Equal(t, aiplatformpb.Type_OBJECT, s.Type)
	assert.Equal(t, aiplatformpb.Type_ARRAY, s.Properties["khutbah1"].Properties["messages"].Type)
	assert.Equal(t, []string{"hadith", "hadithReflection", "dua"}, s.Properties["khutbah2"].Required)
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "", extractText(nil))
	assert.Equal(t, "", extractText(&aiplatformpb.GenerateContentResponse{}))

	resp := &aiplatformpb.GenerateContentResponse{
		Candidates: []*aiplatformpb.Candidate{{
			Content: &aiplatformpb.Content{Parts: []*aiplatformpb.Part{
				{Data: &aiplatformpb.Part_Text{Text: `{"title":`}},
				{Data: &aiplatformpb.Part_Text{Text: `"T"}`}},
			}},
		}},
	}
	assert.Equal(t, `{"title":"T"}`, extractText(resp))
}

func TestNewFromConfigValidation(t *testing.T) {
	ctx := context.Background()

	_, _, err := NewFromConfig(ctx, &config.Config{GenerationBackend: "carrier-pigeon"}, nil)
	assert.ErrorContains(t, err, "unknown generation backend")

	_, _, err = NewFromConfig(ctx, &config.Config{GenerationBackend: BackendGemini}, nil)
	assert.ErrorContains(t, err, "API_KEY")

	_, _, err = NewFromConfig(ctx, &config.Config{GenerationBackend: BackendVertex}, nil)
	assert.ErrorContains(t, err, "VERTEX_PROJECT_ID")
}
