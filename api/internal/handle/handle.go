package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"civic-brain/api/internal/speech"
	"civic-brain/api/internal/types"
)

const (
	defaultDeadline = 180 * time.Second
	maxJSONBody     = 4 << 20
	maxUploadMemory = 32 << 20
)

// Brain is the classification, extraction and chat façade. Its methods never fail.
type Brain interface {
	Classify(ctx context.Context, in types.ClassificationRequest) types.ClassificationResponse
	Extract(ctx context.Context, in types.ExtractionRequest) types.ExtractionResponse
	Chat(ctx context.Context, text string, history []types.ChatTurn, language string) string
	ModelName() string
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageHint string) (speech.Transcription, error)
}

type Speaker interface {
	Speak(ctx context.Context, text, language string) *string
}

type Stager interface {
	Download(ctx context.Context, rawURL string) (string, error)
	SaveUpload(content []byte, filename string) (string, error)
	Delete(path string)
}

type Handle struct {
	brain    Brain
	listener Transcriber
	speaker  Speaker
	stager   Stager
	validate *validator.Validate
	log      *slog.Logger
}

func New(brain Brain, listener Transcriber, speaker Speaker, stager Stager, log *slog.Logger) *Handle {
	if log == nil {
		log = slog.Default()
	}
	return &Handle{
		brain:    brain,
		listener: listener,
		speaker:  speaker,
		stager:   stager,
		validate: validator.New(),
		log:      log,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, types.ErrorResponse{Detail: detail})
}

// postOnly writes 405 and returns false for any other method.
func postOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "POST only")
		return false
	}
	return true
}

// requestContext applies the per-request deadline: X-Request-Timeout header,
// then the timeoutSec query parameter, then the default.
func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	deadline := defaultDeadline
	if ts := r.Header.Get("X-Request-Timeout"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	} else if ts := r.URL.Query().Get("timeoutSec"); ts != "" {
		if v, _ := strconv.Atoi(ts); v > 0 {
			deadline = time.Duration(v) * time.Second
		}
	}
	return context.WithTimeout(r.Context(), deadline)
}

// decodeBody reads a JSON body into v and validates it. An empty body leaves v
// at its zero value when allowEmpty is set.
func (h *Handle) decodeBody(r *http.Request, v any, allowEmpty bool) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		if !(allowEmpty && errors.Is(err, io.EOF)) {
			return fmt.Errorf("bad json: %w", err)
		}
	}
	if err := h.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}
