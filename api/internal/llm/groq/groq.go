package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"civic-brain/api/internal/llm"
	"civic-brain/api/internal/util"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

type Engine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

// NewHTTPClient builds the client shared by every call to the provider.
func NewHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 120 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
	}
	// Timeout stays 0: the request context carries the deadline.
	return &http.Client{Timeout: 0, Transport: tr}
}

func New(key, model, baseURL string) *Engine {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Engine{
		APIKey:  strings.TrimSpace(key),
		Model:   strings.TrimSpace(model),
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpc:   NewHTTPClient(),
	}
}

// WithHTTPClient overrides the internal HTTP client (e.g., for custom timeouts or tracing).
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) HTTPClient() *http.Client { return e.httpc }

func (e *Engine) Name() string     { return "groq" }
func (e *Engine) GetModel() string { return e.Model }

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []llm.Message  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (e *Engine) Complete(ctx context.Context, in llm.Request) (string, error) {
	if e.APIKey == "" {
		return "", llm.ErrEmptyAPIKey
	}
	if len(in.Messages) == 0 {
		return "", fmt.Errorf("groq: no messages")
	}

	body := chatRequest{
		Model:       e.Model,
		Messages:    in.Messages,
		Temperature: 0,
	}
	if in.JSON {
		body.ResponseFormat = map[string]any{"type": "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("groq: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq chat: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq chat: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq chat %d: %s", resp.StatusCode, strings.TrimSpace(util.TruncateBytes(raw, 1024)))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("groq chat: bad envelope: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("groq chat: %w; body=%s", llm.ErrEmptyResponse, util.TruncateBytes(raw, 512))
	}
	return out.Choices[0].Message.Content, nil
}
