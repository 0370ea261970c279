package metadata_test

import (
	"encoding/json"
	"testing"

	"github.com/minbar-sermons-api/internal/metadata"
	"github.com/minbar-sermons-api/internal/models"
	"github.com/minbar-sermons-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Seed sermons must satisfy the same contract as generated ones
func TestSeedSermonsMatchResponseSchema(t *testing.T) {
	sermons, err := metadata.SeedSermons()
	require.NoError(t, err)
	normalizer, err := validation.NewSermonNormalizer()
	require.NoError(t, err)

	for _, s := range sermons {
		content := models.SermonContent{
			Title:    s.Title,
			Verses:   s.Verses,
			Khutbah1: s.Khutbah1,
			Khutbah2: s.Khutbah2,
		}
		raw, err := json.Marshal(content)
		require.NoError(t, err)

		got, err := normalizer.Normalize(string(raw))
		require.NoError(t, err, "sermon %d", s.ID)
		assert.Equal(t, content, got)
	}
}
