package audio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStager(t *testing.T) *Stager {
	t.Helper()
	s, err := NewStager(filepath.Join(t.TempDir(), "temp"), nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestURLExt(t *testing.T) {
	assert.Equal(t, "ogg", urlExt("https://cdn.example.com/voice/123.ogg"))
	assert.Equal(t, "mp3", urlExt("https://cdn.example.com/voice/123.webm?sig=abcdef"))
	assert.Equal(t, "mp3", urlExt("https://cdn.example.com/voice/123"))
	assert.Equal(t, "mp3", urlExt("no-dot"))
	assert.Equal(t, "flac", urlExt("http://x/y.flac"))
}

func TestNameExt(t *testing.T) {
	assert.Equal(t, "m4a", nameExt("recording.m4a"))
	assert.Equal(t, "mp3", nameExt("blob"))
	assert.Equal(t, "mp3", nameExt(""))
	assert.Equal(t, "opus", nameExt("a.b.opus"))
	assert.Equal(t, "mp3", nameExt("v1.2/blob"))
	assert.Equal(t, "wav", nameExt(`C:\rec\clip.wav`))
	assert.Equal(t, "mp3", nameExt("voice."+strings.Repeat("x", 300)))
	assert.Equal(t, "mp3", nameExt("voice.m p3"))
}

func TestSaveUploadLongExtension(t *testing.T) {
	s := newStager(t)

	p, err := s.SaveUpload([]byte("ID3 audio"), "voice."+strings.Repeat("x", 300))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, ".mp3"))
	s.Delete(p)
}

func TestSaveUploadAndDelete(t *testing.T) {
	s := newStager(t)

	p, err := s.SaveUpload([]byte("ID3fake"), "complaint.m4a")
	require.NoError(t, err)
	assert.Equal(t, s.Dir, filepath.Dir(p))
	assert.True(t, strings.HasSuffix(p, ".m4a"))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "ID3fake", string(b))

	q, err := s.SaveUpload([]byte("x"), "complaint.m4a")
	require.NoError(t, err)
	assert.NotEqual(t, p, q)

	s.Delete(p)
	_, err = os.Stat(p)
	assert.True(t, os.IsNotExist(err))

	// idempotent
	s.Delete(p)
	s.Delete("")
}

func TestDownload(t *testing.T) {
	payload := strings.Repeat("a", 3*chunkSize+17)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	s := newStager(t)
	p, err := s.Download(context.Background(), srv.URL+"/clip.wav")
	require.NoError(t, err)
	defer s.Delete(p)
	assert.True(t, strings.HasSuffix(p, ".wav"))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, payload, string(b))

	_, err = s.Download(context.Background(), srv.URL+"/missing.mp3")
	require.Error(t, err)

	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDownloadBadURL(t *testing.T) {
	s := newStager(t)
	_, err := s.Download(context.Background(), "://nope")
	require.Error(t, err)
}
