// Package prompt holds the instruction templates and reply schemas sent to the model.
package prompt

import (
	_ "embed"
)

//go:embed prompts.yaml
var Catalog []byte

//go:embed classify.schema.json
var ClassifySchema string

//go:embed extract.schema.json
var ExtractSchema string

// CatalogFile is the file name looked up under PROMPT_DIR to override Catalog.
const CatalogFile = "prompts.yaml"
