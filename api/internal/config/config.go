package config

import (
	"errors"
	"fmt"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `env:"PORT,default=8000"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	LLMProvider string `env:"LLM_PROVIDER,default=groq"`

	GroqAPIKey   string `env:"GROQ_API_KEY,required=true"`
	GroqBaseURL  string `env:"GROQ_BASE_URL,default=https://api.groq.com/openai/v1"`
	GroqModel    string `env:"GROQ_MODEL,default=llama-3.3-70b-versatile"`
	WhisperModel string `env:"WHISPER_MODEL,default=whisper-large-v3-turbo"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL,default=gemini-2.5-flash"`

	GoogleTTSAPIKey string `env:"GOOGLE_TTS_API_KEY"`
	TTSEnabled      bool   `env:"TTS_ENABLED,default=true"`

	TempDir   string `env:"TEMP_DIR,default=temp"`
	StaticDir string `env:"STATIC_DIR,default=static"`
	PromptDir string `env:"PROMPT_DIR"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	// go-env treats a variable set to "" as present, so required=true alone is not enough.
	if strings.TrimSpace(c.GroqAPIKey) == "" {
		return errors.New("config: GROQ_API_KEY is required")
	}
	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	switch c.LLMProvider {
	case "", "groq":
	case "gemini":
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return errors.New("config: GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("config: unknown LLM_PROVIDER %q; use groq or gemini", c.LLMProvider)
	}
	if strings.TrimSpace(c.Port) == "" {
		c.Port = "8000"
	}
	return nil
}

// TelegramEnabled reports whether the intake bot should be started.
func (c *Config) TelegramEnabled() bool {
	return strings.TrimSpace(c.TelegramBotToken) != ""
}
