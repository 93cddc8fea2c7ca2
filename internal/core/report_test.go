package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConclusion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Conclusion
		wantErr bool
	}{
		{name: "success", input: "success", want: ConclusionSuccess},
		{name: "timed out", input: "timed_out", want: ConclusionTimedOut},
		{name: "upper case", input: "SUCCESS", wantErr: true},
		{name: "surrounding whitespace", input: " neutral ", wantErr: true},
		{name: "unknown", input: "passed", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConclusion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "timed_out")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitRepoFullName(t *testing.T) {
	owner, repo, err := SplitRepoFullName("sevigo/pr-warden")
	require.NoError(t, err)
	assert.Equal(t, "sevigo", owner)
	assert.Equal(t, "pr-warden", repo)

	for _, bad := range []string{"", "sevigo", "sevigo/", "/repo", "a/b/c"} {
		_, _, err := SplitRepoFullName(bad)
		assert.Error(t, err, bad)
	}
}
