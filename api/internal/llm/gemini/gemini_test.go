package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civic-brain/api/internal/llm"
)

func TestSplitMessages(t *testing.T) {
	system, history, last, err := splitMessages([]llm.Message{
		{Role: llm.RoleSystem, Content: "persona"},
		{Role: llm.RoleUser, Content: "there is a pothole"},
		{Role: llm.RoleAssistant, Content: "Hi! Recorded."},
		{Role: llm.RoleUser, Content: "and the light is broken"},
	})
	require.NoError(t, err)
	assert.Equal(t, "persona", system)
	assert.Equal(t, "and the light is broken", last)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "model", history[1].Role)
	assert.Equal(t, genai.Text("Hi! Recorded."), history[1].Parts[0])
}

func TestSplitMessagesNeedsTrailingUser(t *testing.T) {
	_, _, _, err := splitMessages([]llm.Message{{Role: llm.RoleSystem, Content: "only system"}})
	require.Error(t, err)

	_, _, _, err = splitMessages([]llm.Message{
		{Role: llm.RoleUser, Content: "q"},
		{Role: llm.RoleAssistant, Content: "a"},
	})
	require.Error(t, err)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		{Content: nil},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"category":"Roads"}`)}}},
	}}
	assert.Equal(t, `{"category":"Roads"}`, firstText(resp))
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), " ", "gemini-2.5-flash")
	require.ErrorIs(t, err, llm.ErrEmptyAPIKey)
}
