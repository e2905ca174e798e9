package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("interview.json", "generate-questions")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Role}}")
	assert.Contains(t, prompt, "{{.QuestionCount}}")
	assert.Contains(t, prompt, "requiresTyping")
}

func TestGetMissingKey(t *testing.T) {
	_, err := Get("interview.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGetMissingFile(t *testing.T) {
	_, err := Get("nope.json", "generate-questions")
	assert.Error(t, err)
}

func TestMustGetPanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("interview.json", "does-not-exist")
	})
}

func TestFormat(t *testing.T) {
	template := "Role: {{.Role}}, Count: {{.Count}}"
	result := Format(template, map[string]string{
		"Role":  "Data Analyst",
		"Count": "3",
	})
	assert.Equal(t, "Role: Data Analyst, Count: 3", result)
}

func TestAllPromptsLoadAndHaveNoLeftoverPlaceholders(t *testing.T) {
	cases := map[string][]string{
		"interview.json":     {"generate-questions"},
		"feedback.json":      {"content-feedback"},
		"pronunciation.json": {"analyze-pronunciation"},
		"transcription.json": {"transcribe-audio"},
	}

	for filename, keys := range cases {
		for _, key := range keys {
			prompt, err := Get(filename, key)
			require.NoError(t, err, "%s/%s", filename, key)
			assert.NotEmpty(t, prompt)
			// Placeholders follow the {{.Name}} convention; a stray "{{ ." or
			// "{." indicates a typo in the template.
			assert.False(t, strings.Contains(prompt, "{{ ."), "%s/%s has malformed placeholder", filename, key)
		}
	}
}
