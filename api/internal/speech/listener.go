package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"civic-brain/api/internal/llm"
	"civic-brain/api/internal/util"
)

// missingLogprob is used for a segment that carries no avg_logprob.
const missingLogprob = -1.0

type Transcription struct {
	Text       string
	Language   string
	Confidence float64
	ModelName  string
}

// Listener forwards staged audio to an OpenAI-compatible transcription endpoint.
// Errors are returned as-is; there is no fallback for transcription.
type Listener struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
	log     *slog.Logger
}

func NewListener(key, model, baseURL string, httpc *http.Client, log *slog.Logger) *Listener {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if log == nil {
		log = slog.Default()
	}
	return &Listener{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
		log:     log,
	}
}

func (l *Listener) ModelName() string { return l.Model }

type verboseSegment struct {
	AvgLogprob *float64 `json:"avg_logprob"`
}

type verboseTranscription struct {
	Text     string           `json:"text"`
	Language *string          `json:"language"`
	Segments []verboseSegment `json:"segments"`
}

// Transcribe uploads the file at audioPath. languageHint is a short code such
// as "hi"; empty lets the provider detect the language.
func (l *Listener) Transcribe(ctx context.Context, audioPath, languageHint string) (Transcription, error) {
	if l.APIKey == "" {
		return Transcription{}, llm.ErrEmptyAPIKey
	}
	content, err := os.ReadFile(audioPath)
	if err != nil {
		return Transcription{}, fmt.Errorf("transcribe: read audio: %w", err)
	}

	body, contentType, err := l.multipartBody(filepath.Base(audioPath), content, languageHint)
	if err != nil {
		return Transcription{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.BaseURL+"/audio/transcriptions", body)
	if err != nil {
		return Transcription{}, fmt.Errorf("transcribe: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+l.APIKey)

	resp, err := l.httpc.Do(req)
	if err != nil {
		return Transcription{}, fmt.Errorf("transcribe: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Transcription{}, fmt.Errorf("transcribe: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Transcription{}, fmt.Errorf("transcribe %d: %s", resp.StatusCode, strings.TrimSpace(util.TruncateBytes(raw, 1024)))
	}

	var vt verboseTranscription
	if err := json.Unmarshal(raw, &vt); err != nil {
		return Transcription{}, fmt.Errorf("transcribe: bad JSON: %w", err)
	}

	logprobs := make([]float64, 0, len(vt.Segments))
	for _, s := range vt.Segments {
		if s.AvgLogprob == nil {
			logprobs = append(logprobs, missingLogprob)
			continue
		}
		logprobs = append(logprobs, *s.AvgLogprob)
	}

	language := "auto"
	if vt.Language != nil {
		language = *vt.Language
	}

	l.log.Debug("transcription done", "chars", len(vt.Text), "segments", len(vt.Segments), "language", language)
	return Transcription{
		Text:       vt.Text,
		Language:   language,
		Confidence: Confidence(logprobs),
		ModelName:  l.Model,
	}, nil
}

func (l *Listener) multipartBody(name string, content []byte, languageHint string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	h.Set("Content-Type", util.SniffMIME(content))
	fw, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("transcribe: form file: %w", err)
	}
	if _, err := fw.Write(content); err != nil {
		return nil, "", fmt.Errorf("transcribe: form file: %w", err)
	}

	fields := [][2]string{
		{"model", l.Model},
		{"response_format", "verbose_json"},
	}
	if languageHint != "" {
		fields = append(fields, [2]string{"language", languageHint})
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("transcribe: form field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("transcribe: close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// Confidence is the mean of exp(avg_logprob) over segments, 0 for no segments.
func Confidence(avgLogprobs []float64) float64 {
	if len(avgLogprobs) == 0 {
		return 0.0
	}
	var total float64
	for _, p := range avgLogprobs {
		total += math.Exp(p)
	}
	return total / float64(len(avgLogprobs))
}
