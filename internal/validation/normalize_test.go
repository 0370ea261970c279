package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/minbar-sermons-api/internal/catalog"
	"github.com/minbar-sermons-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSermon = `{"title":"T","verses":"V","khutbah1":{"title":"t1","verses":"v1","tafsir":"x","reflections":"y","messages":[{"message":"m","explanation":"e"}],"repentance":"r"},"khutbah2":{"hadith":{"text":"h","authenticity":"a"},"hadithReflection":"hr","dua":"d"}}`

func newNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewSermonNormalizer()
	require.NoError(t, err)
	return n
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `  {"a":1}  `, `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"tag and padding", "\n  ```JSON  \r\n{\"a\":1}\r\n```\n", `{"a":1}`},
		{"single line", "```{\"a\":1}```", `{"a":1}`},
		{"single line word is body", "```true```", "true"},
		{"single line tag without newline is body", "```json {\"a\":1}```", `json {"a":1}`},
		{"unterminated fence kept", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.in))
		})
	}
}

func TestNormalizeFencedMinimalSermon(t *testing.T) {
	n := newNormalizer(t)
	raw := "```json\n" + minimalSermon + "\n```"

	content, err := n.Normalize(raw)
	require.NoError(t, err)

	want := models.SermonContent{
		Title:  "T",
		Verses: "V",
		Khutbah1: models.Khutbah1{
			Title:       "t1",
			Verses:      "v1",
			Tafsir:      "x",
			Reflections: "y",
			Messages:    []models.Message{{Message: "m", Explanation: "e"}},
			Repentance:  "r",
		},
		Khutbah2: models.Khutbah2{
			Hadith:           models.Hadith{Text: "h", Authenticity: "a"},
			HadithReflection: "hr",
			Dua:              "d",
		},
	}
	assert.Equal(t, want, content)

	sermon := models.NewGeneratedSermon(9, 18, content)
	assert.Equal(t, 0, sermon.PageNumber)
	assert.Equal(t, 18, sermon.SurahNumber)
	assert.Equal(t, "hr", sermon.Khutbah2.HadithReflection)
}

func TestNormalizeMissingAuthenticity(t *testing.T) {
	n := newNormalizer(t)
	store := catalog.New([]models.Sermon{{ID: 1, SurahNumber: 1, Title: "seed"}}, nil)
	raw := strings.Replace(minimalSermon, `,"authenticity":"a"`, "", 1)

	_, err := n.Normalize(raw)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr), "got %T: %v", err, err)
	assert.Equal(t, "khutbah2.hadith.authenticity", schemaErr.Path)
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.Equal(t, 1, store.Len(), "failed normalization must not touch the catalog")
}

func TestNormalizeSchemaViolations(t *testing.T) {
	n := newNormalizer(t)

	tests := []struct {
		name string
		raw  string
		path string
	}{
		{"missing top-level khutbah2", `{"title":"T","verses":"V","khutbah1":{"title":"t1","verses":"v1","tafsir":"x","reflections":"y","messages":[],"repentance":"r"}}`, "khutbah2"},
		{"wrong kind", strings.Replace(minimalSermon, `"dua":"d"`, `"dua":42`, 1), "khutbah2.dua"},
		{"messages not a list", strings.Replace(minimalSermon, `"messages":[{"message":"m","explanation":"e"}]`, `"messages":"m"`, 1), "khutbah1.messages"},
		{"message pair incomplete", strings.Replace(minimalSermon, `,"explanation":"e"`, "", 1), "khutbah1.messages[0].explanation"},
		{"empty title", strings.Replace(minimalSermon, `"title":"T"`, `"title":""`, 1), "title"},
		{"not an object", `["a","b"]`, "$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.raw)
			var schemaErr *SchemaError
			require.True(t, errors.As(err, &schemaErr), "got %T: %v", err, err)
			assert.Equal(t, tt.path, schemaErr.Path)
		})
	}
}

func TestNormalizeEmptyMessagesAllowed(t *testing.T) {
	n := newNormalizer(t)
	raw := strings.Replace(minimalSermon, `[{"message":"m","explanation":"e"}]`, `[]`, 1)

	content, err := n.Normalize(raw)
	require.NoError(t, err)
	assert.NotNil(t, content.Khutbah1.Messages)
	assert.Empty(t, content.Khutbah1.Messages)
}

func TestNormalizeParseErrors(t *testing.T) {
	n := newNormalizer(t)

	for _, raw := range []string{
		minimalSermon[:len(minimalSermon)/2],
		"```json\n{\"title\": \"T\",}\n```",
		"Here is your sermon: {}",
		"   ",
	} {
		_, err := n.Normalize(raw)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "raw %q: got %T: %v", raw, err, err)
		assert.True(t, errors.Is(err, ErrMalformedResponse))
		assert.NotEmpty(t, parseErr.Error())
	}
}

func TestPointerToPath(t *testing.T) {
	assert.Equal(t, "$", pointerToPath(""))
	assert.Equal(t, "khutbah2.hadith", pointerToPath("/khutbah2/hadith"))
	assert.Equal(t, "khutbah1.messages[2].message", pointerToPath("/khutbah1/messages/2/message"))
	assert.Equal(t, "a/b", pointerToPath("/a~1b"))
}
