package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mama165/sdk-go/logs"

	"civic-brain/api/internal/audio"
	"civic-brain/api/internal/brain"
	"civic-brain/api/internal/config"
	"civic-brain/api/internal/handle"
	"civic-brain/api/internal/httpserver"
	"civic-brain/api/internal/llm"
	"civic-brain/api/internal/llm/gemini"
	"civic-brain/api/internal/llm/groq"
	"civic-brain/api/internal/speech"
	"civic-brain/api/internal/telegram"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Engines
	groqEngine := groq.New(cfg.GroqAPIKey, cfg.GroqModel, cfg.GroqBaseURL)
	engines := llm.Engines{Groq: groqEngine}
	if cfg.LLMProvider == "gemini" {
		g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
		defer func() { _ = g.Close() }()
		engines.Gemini = g
	}
	engine, err := engines.GetEngine(cfg.LLMProvider)
	if err != nil {
		return err
	}

	prompts, err := brain.LoadPrompts(cfg.PromptDir)
	if err != nil {
		return err
	}
	b, err := brain.New(engine, prompts, log)
	if err != nil {
		return err
	}

	listener := speech.NewListener(cfg.GroqAPIKey, cfg.WhisperModel, cfg.GroqBaseURL, groqEngine.HTTPClient(), log)

	speaker := speech.Disabled(log)
	if cfg.TTSEnabled {
		if speaker, err = speech.NewSpeaker(ctx, cfg.GoogleTTSAPIKey, log); err != nil {
			return fmt.Errorf("tts: %w", err)
		}
	}

	stager, err := audio.NewStager(cfg.TempDir, groq.NewHTTPClient(), log)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
		return fmt.Errorf("static dir: %w", err)
	}

	log.Info("façades ready",
		"provider", engine.Name(),
		"model", b.ModelName(),
		"whisper", listener.ModelName(),
		"tts", speaker.Enabled(),
	)

	if cfg.TelegramEnabled() {
		if err := startBot(ctx, cfg.TelegramBotToken, b, listener, speaker, stager, log); err != nil {
			return err
		}
	}

	h := handle.New(b, listener, speaker, stager, log)
	srv := httpserver.New(":"+cfg.Port, h.Routes(cfg.StaticDir), log)
	return srv.Run(ctx)
}

func startBot(ctx context.Context, token string, b *brain.Brain, listener *speech.Listener,
	speaker *speech.Speaker, stager *audio.Stager, log *slog.Logger) error {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = false
	log.Info("telegram bot authorised", "username", bot.Self.UserName)

	r := &telegram.Router{
		Bot:      bot,
		Brain:    b,
		Listener: listener,
		Speaker:  speaker,
		Stager:   stager,
		Log:      log.With("component", "telegram"),
	}
	go telegram.Poll(ctx, bot, r.HandleUpdate, log.With("component", "telegram"))
	return nil
}
