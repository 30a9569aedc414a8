// Package audio stages request audio on local disk for the transcription call.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"civic-brain/api/internal/util"
)

const (
	defaultExt = "mp3"
	maxExtLen  = 5
	chunkSize  = 8192
)

type Stager struct {
	Dir   string
	httpc *http.Client
	log   *slog.Logger
}

// NewStager creates dir if needed.
func NewStager(dir string, httpc *http.Client, log *slog.Logger) (*Stager, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "temp"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("staging: make dir: %w", err)
	}
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Stager{Dir: dir, httpc: httpc, log: log}, nil
}

// Download streams rawURL into a new temp file and returns its path.
func (s *Stager) Download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("download status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	p := s.newPath(urlExt(rawURL))
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("download: create: %w", err)
	}
	_, err = io.CopyBuffer(f, resp.Body, make([]byte, chunkSize))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.Delete(p)
		return "", fmt.Errorf("download: write: %w", err)
	}
	return p, nil
}

// SaveUpload writes an uploaded buffer to a new temp file and returns its path.
func (s *Stager) SaveUpload(content []byte, filename string) (string, error) {
	p := s.newPath(nameExt(filename))
	if err := os.WriteFile(p, content, 0o600); err != nil {
		s.Delete(p)
		return "", fmt.Errorf("save upload: %w", err)
	}
	mt := util.SniffMIME(content)
	if !util.IsAudioMIME(mt) {
		s.log.Warn("upload does not look like audio", "filename", filename, "mime", mt)
	}
	s.log.Debug("upload staged", "filename", filename, "bytes", len(content), "mime", mt)
	return p, nil
}

// Delete removes a staged file. It is safe to call with "" or a path that is
// already gone; other failures are only logged.
func (s *Stager) Delete(p string) {
	if p == "" {
		return
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Error("delete temp file", "path", p, "error", err)
	}
}

func (s *Stager) newPath(ext string) string {
	return filepath.Join(s.Dir, uuid.NewString()+"."+ext)
}

// urlExt takes the text after the last '.' of the URL. Anything longer than a
// plausible extension (query strings, host names) falls back to mp3.
func urlExt(rawURL string) string {
	return cappedExt(afterLastDot(rawURL))
}

// nameExt takes the extension of an upload's filename under the same cap,
// and also rejects anything that is not purely alphanumeric.
func nameExt(filename string) string {
	ext := cappedExt(afterLastDot(util.BaseName(filename)))
	if strings.IndexFunc(ext, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) != -1 {
		return defaultExt
	}
	return ext
}

func cappedExt(ext string) string {
	if ext == "" || len(ext) > maxExtLen {
		return defaultExt
	}
	return ext
}

func afterLastDot(s string) string {
	i := strings.LastIndexByte(s, '.')
	if i == -1 {
		return ""
	}
	ext := s[i+1:]
	// keep the name usable as a single path element
	if strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
