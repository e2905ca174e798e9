package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "JSON wrapped in json block",
			input:    "```json\n{\"questions\": []}\n```",
			expected: `{"questions": []}`,
		},
		{
			name:     "JSON wrapped in generic block",
			input:    "```\n{\"questions\": []}\n```",
			expected: `{"questions": []}`,
		},
		{
			name:     "plain JSON untouched",
			input:    `{"questions": []}`,
			expected: `{"questions": []}`,
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  \n {\"overallScore\": 80} \n",
			expected: `{"overallScore": 80}`,
		},
		{
			name:     "language identifier line skipped",
			input:    "```javascript\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "embedded backticks inside strings preserved",
			input:    "```json\n{\"feedback\": \"use `defer`\"}\n```",
			expected: "{\"feedback\": \"use `defer`\"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
