package pronunciation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/media"
)

type fakeClient struct {
	response  string
	err       error
	gotMime   string
	gotAudio  []byte
	gotPrompt string
}

func (f *fakeClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateJSONWithAudio(_ context.Context, prompt string, mimeType string, audio []byte, _ llm.ModelTier) (string, error) {
	f.gotPrompt = prompt
	f.gotMime = mimeType
	f.gotAudio = audio
	return f.response, f.err
}

func (f *fakeClient) TranscribeAudio(context.Context, string, string, []byte, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

const validResponse = `{
	"overallScore": 85,
	"transcript": "the quick brown fox",
	"wordLevelFeedback": [
		{"word": "the", "isCorrect": true},
		{"word": "quick", "isCorrect": false, "feedback": "Sharpen the kw cluster."},
		{"word": "brown", "isCorrect": true},
		{"word": "fox", "isCorrect": true}
	],
	"generalFeedback": "Slow down on consonant clusters and repeat quick five times."
}`

func TestAnalyze(t *testing.T) {
	audioURI := media.FormatDataURI("audio/webm", []byte("fake-opus-bytes"))

	client := &fakeClient{response: validResponse}
	svc := NewService(client, nil)

	feedback, err := svc.Analyze(context.Background(), audioURI, "the quick brown fox")
	require.NoError(t, err)
	require.NotNil(t, feedback)

	assert.Equal(t, 85, feedback.OverallScore)
	assert.Equal(t, "the quick brown fox", feedback.Transcript)
	require.Len(t, feedback.WordLevelFeedback, 4)
	assert.False(t, feedback.WordLevelFeedback[1].IsCorrect)
	assert.NotEmpty(t, feedback.GeneralFeedback)

	// One incorrect word means the score is below perfect and the coaching
	// text carries an actionable tip.
	assert.Less(t, feedback.OverallScore, 100)

	// The raw audio reaches the provider, decoded from the data URI.
	assert.Equal(t, "audio/webm", client.gotMime)
	assert.Equal(t, []byte("fake-opus-bytes"), client.gotAudio)
	assert.Contains(t, client.gotPrompt, "the quick brown fox")
}

func TestAnalyzeFailures(t *testing.T) {
	audioURI := media.FormatDataURI("audio/webm", []byte("audio"))

	tests := []struct {
		name         string
		audioURI     string
		expectedText string
		response     string
		clientErr    error
	}{
		{
			name:         "invalid data URI",
			audioURI:     "not-a-data-uri",
			expectedText: "hello",
		},
		{
			name:         "empty expected text",
			audioURI:     audioURI,
			expectedText: "  ",
		},
		{
			name:         "provider failure",
			audioURI:     audioURI,
			expectedText: "hello",
			clientErr:    errors.New("model overloaded"),
		},
		{
			name:         "schema violation",
			audioURI:     audioURI,
			expectedText: "hello",
			response:     `{"overallScore": 85}`,
		},
		{
			name:         "non-JSON response",
			audioURI:     audioURI,
			expectedText: "hello",
			response:     "sounds great!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.clientErr}
			svc := NewService(client, nil)

			feedback, err := svc.Analyze(context.Background(), tt.audioURI, tt.expectedText)
			require.Error(t, err)
			assert.Nil(t, feedback)

			var pErr *PronunciationError
			assert.True(t, errors.As(err, &pErr))
		})
	}
}
