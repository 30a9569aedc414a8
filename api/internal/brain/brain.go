// Package brain turns free-form model replies into the fixed complaint schemas.
// Every operation returns a usable value: provider and parse failures are
// logged and replaced by deterministic fallbacks.
package brain

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"civic-brain/api/internal/llm"
)

const unknownLabel = "unknown"

type Brain struct {
	engine  llm.Engine
	prompts *Prompts
	schemas *schemas
	log     *slog.Logger
}

func New(engine llm.Engine, prompts *Prompts, log *slog.Logger) (*Brain, error) {
	if engine == nil {
		return nil, errors.New("brain: engine is nil")
	}
	if prompts == nil {
		return nil, errors.New("brain: prompts are nil")
	}
	s, err := compileSchemas()
	if err != nil {
		return nil, fmt.Errorf("brain: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Brain{engine: engine, prompts: prompts, schemas: s, log: log}, nil
}

// ModelName is the model reported in every response.
func (b *Brain) ModelName() string { return b.engine.GetModel() }

// normalizeLabels trims labels, drops blanks and duplicates, keeping first-seen order.
func normalizeLabels(labels []string) []string {
	trimmed := lo.FilterMap(labels, func(l string, _ int) (string, bool) {
		l = strings.TrimSpace(l)
		return l, l != ""
	})
	return lo.Uniq(trimmed)
}

func firstOrUnknown(labels []string) string {
	if len(labels) == 0 {
		return unknownLabel
	}
	return labels[0]
}

// canonicalLabel returns the label equal to s ignoring case and surrounding space.
func canonicalLabel(labels []string, s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return lo.Find(labels, func(l string) bool { return strings.EqualFold(l, s) })
}
