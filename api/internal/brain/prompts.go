package brain

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"civic-brain/api/internal/brain/prompt"
)

type catalogFile struct {
	Classify     string `yaml:"classify"`
	Extract      string `yaml:"extract"`
	ChatSystem   string `yaml:"chat_system"`
	ChatFallback string `yaml:"chat_fallback"`
}

// Prompts is the parsed template set. It is read-only after LoadPrompts.
type Prompts struct {
	classify     *template.Template
	extract      *template.Template
	chatSystem   *template.Template
	chatFallback *template.Template
}

type classifyVars struct {
	Labels     string
	MultiLabel bool
	Text       string
}

type extractVars struct {
	Labels string
	Text   string
}

type chatVars struct {
	Language string
}

// LoadPrompts parses the embedded catalog. When dir is set and holds a
// prompts.yaml, its non-empty entries replace the embedded ones.
func LoadPrompts(dir string) (*Prompts, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(prompt.Catalog, &cf); err != nil {
		return nil, fmt.Errorf("prompts: bad embedded catalog: %w", err)
	}

	if dir = strings.TrimSpace(dir); dir != "" {
		p := filepath.Join(dir, prompt.CatalogFile)
		b, err := os.ReadFile(p)
		switch {
		case err == nil:
			var over catalogFile
			if err := yaml.Unmarshal(b, &over); err != nil {
				return nil, fmt.Errorf("prompts: bad catalog %s: %w", p, err)
			}
			cf.merge(over)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("prompts: read %s: %w", p, err)
		}
	}

	var (
		ps  Prompts
		err error
	)
	if ps.classify, err = parse("classify", cf.Classify); err != nil {
		return nil, err
	}
	if ps.extract, err = parse("extract", cf.Extract); err != nil {
		return nil, err
	}
	if ps.chatSystem, err = parse("chat_system", cf.ChatSystem); err != nil {
		return nil, err
	}
	if ps.chatFallback, err = parse("chat_fallback", cf.ChatFallback); err != nil {
		return nil, err
	}
	return &ps, nil
}

func (c *catalogFile) merge(o catalogFile) {
	if strings.TrimSpace(o.Classify) != "" {
		c.Classify = o.Classify
	}
	if strings.TrimSpace(o.Extract) != "" {
		c.Extract = o.Extract
	}
	if strings.TrimSpace(o.ChatSystem) != "" {
		c.ChatSystem = o.ChatSystem
	}
	if strings.TrimSpace(o.ChatFallback) != "" {
		c.ChatFallback = o.ChatFallback
	}
}

func parse(name, body string) (*template.Template, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("prompts: %s is empty", name)
	}
	t, err := template.New(name).Option("missingkey=error").Parse(body)
	if err != nil {
		return nil, fmt.Errorf("prompts: parse %s: %w", name, err)
	}
	return t, nil
}

func render(t *template.Template, vars any) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, vars); err != nil {
		return "", fmt.Errorf("prompts: render %s: %w", t.Name(), err)
	}
	return strings.TrimSpace(b.String()), nil
}

func (p *Prompts) Classify(text string, labels []string, multiLabel bool) (string, error) {
	return render(p.classify, classifyVars{Labels: strings.Join(labels, ", "), MultiLabel: multiLabel, Text: text})
}

func (p *Prompts) Extract(text string, labels []string) (string, error) {
	return render(p.extract, extractVars{Labels: strings.Join(labels, ", "), Text: text})
}

func (p *Prompts) ChatSystem(language string) (string, error) {
	return render(p.chatSystem, chatVars{Language: language})
}

// ChatFallback never fails: a broken override falls back to a fixed sentence.
func (p *Prompts) ChatFallback(language string) string {
	s, err := render(p.chatFallback, chatVars{Language: language})
	if err != nil || s == "" {
		return "I'm having trouble connecting to my brain right now. Processing in " + language + " is encountering an issue."
	}
	return s
}
