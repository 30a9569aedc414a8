package brain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"civic-brain/api/internal/llm"
	"civic-brain/api/internal/util"
)

type outcomeKind int

const (
	outcomeOK outcomeKind = iota
	outcomeInvokeFailed
	outcomeParseFailed
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeOK:
		return "ok"
	case outcomeInvokeFailed:
		return "invoke_failed"
	case outcomeParseFailed:
		return "parse_failed"
	}
	return "unknown"
}

// outcome is the result of one structured round trip. reply is only
// meaningful when kind is outcomeOK.
type outcome[T any] struct {
	kind  outcomeKind
	reply T
	err   error
}

var errNotObject = errors.New("reply is not a JSON object")

// ask sends a single-instruction JSON request and decodes the reply into T
// after validating it against schema.
func ask[T any](ctx context.Context, engine llm.Engine, instruction string, schema *jsonschema.Schema) outcome[T] {
	raw, err := engine.Complete(ctx, llm.Request{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: instruction}},
		JSON:     true,
	})
	if err != nil {
		return outcome[T]{kind: outcomeInvokeFailed, err: err}
	}
	reply, err := decode[T](raw, schema)
	if err != nil {
		return outcome[T]{kind: outcomeParseFailed, err: err}
	}
	return outcome[T]{kind: outcomeOK, reply: reply}
}

func decode[T any](raw string, schema *jsonschema.Schema) (T, error) {
	var zero T
	body := util.ExtractJSONObject(raw)
	if !strings.HasPrefix(body, "{") {
		return zero, fmt.Errorf("%w: %s", errNotObject, util.TruncateBytes([]byte(raw), 200))
	}

	var generic any
	if err := json.Unmarshal([]byte(body), &generic); err != nil {
		return zero, fmt.Errorf("bad JSON: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return zero, fmt.Errorf("schema: %w", err)
	}

	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return zero, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}
