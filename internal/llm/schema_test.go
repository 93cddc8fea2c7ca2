package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-warden/internal/core"
)

func TestRequiredFields(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"quality_score", "is_acceptable", "strengths", "improvement_suggestions", "explanation"},
		RequiredFields(&core.QualityVerdict{}),
	)
	assert.ElementsMatch(t,
		[]string{"score", "issues", "summary", "positive_aspects"},
		RequiredFields(&core.FileReview{}),
	)
}

func TestSchemaJSON_FileReview(t *testing.T) {
	out, err := SchemaJSON(&core.FileReview{})
	require.NoError(t, err)
	assert.Contains(t, out, `"positive_aspects"`)
	assert.Contains(t, out, `"best_practice"`)
	assert.NotContains(t, out, "FileName")
}
