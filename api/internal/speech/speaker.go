package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"

	"civic-brain/api/internal/lang"
)

// Speaker synthesises replies through Google Cloud Text-to-Speech. A Speaker
// built without a key is disabled and never produces audio.
type Speaker struct {
	svc *texttospeech.Service
	log *slog.Logger
}

func NewSpeaker(ctx context.Context, apiKey string, log *slog.Logger, opts ...option.ClientOption) (*Speaker, error) {
	if log == nil {
		log = slog.Default()
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" && len(opts) == 0 {
		log.Warn("text-to-speech disabled: GOOGLE_TTS_API_KEY is empty")
		return &Speaker{log: log}, nil
	}
	if apiKey != "" {
		opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	}
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("tts: new service: %w", err)
	}
	return &Speaker{svc: svc, log: log}, nil
}

// Disabled returns a Speaker that never produces audio.
func Disabled(log *slog.Logger) *Speaker {
	if log == nil {
		log = slog.Default()
	}
	return &Speaker{log: log}
}

func (s *Speaker) Enabled() bool { return s != nil && s.svc != nil }

// Speak returns base64 MP3 audio for text in the named language, or nil.
// Failures are logged, never returned.
func (s *Speaker) Speak(ctx context.Context, text, language string) *string {
	if !s.Enabled() || strings.TrimSpace(text) == "" {
		return nil
	}
	code := lang.SpeechCode(language)

	resp, err := s.svc.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: text},
		Voice: &texttospeech.VoiceSelectionParams{LanguageCode: lang.SpeechLocale(code)},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: "MP3",
		},
	}).Context(ctx).Do()
	if err != nil {
		s.log.Error("tts failed", "language", language, "code", code, "error", err)
		return nil
	}
	if resp.AudioContent == "" {
		s.log.Warn("tts returned no audio", "language", language)
		return nil
	}
	audio := resp.AudioContent
	return &audio
}
