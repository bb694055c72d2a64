package command

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	_ "embed"

	"github.com/meetscribe/meetscribe/internal/lifecycle"
)

//go:embed schema.cue
var schemaSource string

// schemaSet holds the compiled payload schemas, one per event type.
type schemaSet struct {
	ctx        *cue.Context
	started    cue.Value
	transcript cue.Value
	ended      cue.Value
}

var (
	schemasOnce sync.Once
	schemas     *schemaSet
	schemasErr  error
)

// loadSchemas compiles the embedded CUE schemas exactly once.
// A compile failure is a programming error (the schema ships with the
// binary), so it surfaces on every decode rather than being swallowed.
func loadSchemas() (*schemaSet, error) {
	schemasOnce.Do(func() {
		ctx := cuecontext.New()
		root := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := root.Err(); err != nil {
			schemasErr = fmt.Errorf("compile payload schemas: %w", err)
			return
		}
		schemas = &schemaSet{
			ctx:        ctx,
			started:    root.LookupPath(cue.ParsePath("#MeetingStarted")),
			transcript: root.LookupPath(cue.ParsePath("#MeetingTranscript")),
			ended:      root.LookupPath(cue.ParsePath("#MeetingEnded")),
		}
	})
	return schemas, schemasErr
}

// validatePayload unifies a raw JSON payload with the schema for its event
// type and reports schema violations as a single validation error with
// CUE's diagnostics.
func (s *schemaSet) validatePayload(schema cue.Value, raw []byte) error {
	// JSON is a subset of CUE, so the payload compiles directly.
	payload := s.ctx.CompileBytes(raw, cue.Filename("payload.json"))
	if err := payload.Err(); err != nil {
		return lifecycle.NewValidationError(fmt.Sprintf("malformed payload: %v", err))
	}

	unified := schema.Unify(payload)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return lifecycle.NewValidationError(cueerrors.Details(err, nil))
	}
	return nil
}
