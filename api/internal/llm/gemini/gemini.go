package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"civic-brain/api/internal/llm"
)

type Engine struct {
	Model string
	cl    *genai.Client
}

// New dials the client once; it is reused for the life of the process.
func New(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, llm.ErrEmptyAPIKey
	}
	cl, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	return &Engine{Model: strings.TrimSpace(model), cl: cl}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	if e.cl == nil {
		return nil
	}
	return e.cl.Close()
}

func (e *Engine) Complete(ctx context.Context, in llm.Request) (string, error) {
	system, history, last, err := splitMessages(in.Messages)
	if err != nil {
		return "", err
	}

	m := e.cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(0),
	}
	if in.JSON {
		m.GenerationConfig.ResponseMIMEType = "application/json"
	}
	if system != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := m.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini chat: %w", err)
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", fmt.Errorf("gemini chat: %w", llm.ErrEmptyResponse)
	}
	return txt, nil
}

// splitMessages maps chat-completion style turns onto Gemini's shape: system
// turns are joined into the system instruction, the trailing user turn is the
// message to send and everything before it becomes history.
func splitMessages(msgs []llm.Message) (string, []*genai.Content, string, error) {
	var (
		system []string
		turns  []llm.Message
	)
	for _, m := range msgs {
		if m.Role == llm.RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != llm.RoleUser {
		return "", nil, "", errors.New("gemini: conversation must end with a user message")
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, t := range turns[:len(turns)-1] {
		role := "user"
		if t.Role == llm.RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Content)}})
	}
	return strings.Join(system, "\n\n"), history, turns[len(turns)-1].Content, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
