package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrEmptyAPIKey   = errors.New("llm: api key is empty")
	ErrEmptyResponse = errors.New("llm: empty response")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Messages []Message
	// JSON asks the provider for a single JSON object reply.
	JSON bool
}

type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, in Request) (string, error)
}

type Engines struct {
	Groq   Engine
	Gemini Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "", "groq":
		if e.Groq == nil {
			return nil, errors.New("groq engine is not configured")
		}
		return e.Groq, nil
	case "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'groq' or 'gemini'", llmName)
	}
}
