package transcription

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
	gotPrompt string
	gotMime   string
	gotAudio  []byte
}

func (f *fakeClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) GenerateJSONWithAudio(context.Context, string, string, []byte, llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeClient) TranscribeAudio(_ context.Context, prompt string, mimeType string, audio []byte, _ llm.ModelTier) (string, error) {
	f.gotPrompt = prompt
	f.gotMime = mimeType
	f.gotAudio = audio
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestTranscribe(t *testing.T) {
	audioURI := media.FormatDataURI("audio/webm", []byte("opus"))
	client := &fakeClient{response: "  I would use an index to speed up the query.\n"}
	svc := NewService(client, nil)

	text, err := svc.Transcribe(context.Background(), audioURI, "en-US")
	require.NoError(t, err)
	assert.Equal(t, "I would use an index to speed up the query.", text)

	assert.Contains(t, client.gotPrompt, "en-US")
	assert.Equal(t, "audio/webm", client.gotMime)
	assert.Equal(t, []byte("opus"), client.gotAudio)
}

func TestTranscribeDefaultsLanguage(t *testing.T) {
	audioURI := media.FormatDataURI("audio/webm", []byte("opus"))
	client := &fakeClient{response: "hello"}
	svc := NewService(client, nil)

	_, err := svc.Transcribe(context.Background(), audioURI, "")
	require.NoError(t, err)
	assert.Contains(t, client.gotPrompt, DefaultLanguageCode)
}

func TestTranscribeFailures(t *testing.T) {
	audioURI := media.FormatDataURI("audio/webm", []byte("opus"))

	tests := []struct {
		name      string
		audioURI  string
		response  string
		clientErr error
	}{
		{
			name:     "invalid data URI",
			audioURI: "just some text",
			response: "hello",
		},
		{
			name:      "provider failure",
			audioURI:  audioURI,
			clientErr: errors.New("quota exceeded"),
		},
		{
			name:     "empty transcript",
			audioURI: audioURI,
			response: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.clientErr}
			svc := NewService(client, nil)

			text, err := svc.Transcribe(context.Background(), tt.audioURI, "en-US")
			require.Error(t, err)
			assert.Empty(t, text)

			var tErr *TranscriptionError
			assert.True(t, errors.As(err, &tErr))
		})
	}
}
