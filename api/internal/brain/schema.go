package brain

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"civic-brain/api/internal/brain/prompt"
)

type schemas struct {
	classify *jsonschema.Schema
	extract  *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	c, err := compile("classify.schema.json", prompt.ClassifySchema)
	if err != nil {
		return nil, err
	}
	e, err := compile("extract.schema.json", prompt.ExtractSchema)
	if err != nil {
		return nil, err
	}
	return &schemas{classify: c, extract: e}, nil
}

func compile(name, src string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(src)); err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	return s, nil
}
