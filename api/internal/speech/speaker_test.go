package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func newTestSpeaker(t *testing.T, h http.HandlerFunc) *Speaker {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	s, err := NewSpeaker(context.Background(), "", quietLog(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	require.True(t, s.Enabled())
	return s
}

func TestSpeakMapsLanguage(t *testing.T) {
	var got map[string]any
	s := newTestSpeaker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text:synthesize", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"audioContent":"SUQzBAAAAA=="}`))
	})

	audio := s.Speak(context.Background(), "नमस्ते!", "Hindi")
	require.NotNil(t, audio)
	assert.Equal(t, "SUQzBAAAAA==", *audio)

	voice := got["voice"].(map[string]any)
	assert.Equal(t, "hi-IN", voice["languageCode"])
	cfg := got["audioConfig"].(map[string]any)
	assert.Equal(t, "MP3", cfg["audioEncoding"])
}

func TestSpeakUnmappedLanguageUsesEnglish(t *testing.T) {
	var got map[string]any
	s := newTestSpeaker(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"audioContent":"AAAA"}`))
	})

	require.NotNil(t, s.Speak(context.Background(), "Hello!", "Odia"))
	assert.Equal(t, "en-IN", got["voice"].(map[string]any)["languageCode"])
}

func TestSpeakSwallowsFailures(t *testing.T) {
	s := newTestSpeaker(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":500,"message":"boom"}}`, http.StatusInternalServerError)
	})
	assert.Nil(t, s.Speak(context.Background(), "Hello!", "English"))

	empty := newTestSpeaker(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	assert.Nil(t, empty.Speak(context.Background(), "Hello!", "English"))
	assert.Nil(t, empty.Speak(context.Background(), "  ", "English"))
}

func TestDisabledSpeaker(t *testing.T) {
	s, err := NewSpeaker(context.Background(), "", quietLog())
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	assert.Nil(t, s.Speak(context.Background(), "Hello!", "English"))

	var nilSpeaker *Speaker
	assert.Nil(t, nilSpeaker.Speak(context.Background(), "Hello!", "English"))
	assert.Nil(t, Disabled(nil).Speak(context.Background(), "Hello!", "English"))
}
