package api

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/matzehuels/mathproblem/pkg/errors"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Request body schemas, compiled once at startup.
var (
	setRequestSchema     = mustSchema("schemas/set_request.json")
	diagramRequestSchema = mustSchema("schemas/diagram_request.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return s
}

// validateBody checks body against s and reports every violation in one
// INVALID_INPUT error.
func validateBody(s *gojsonschema.Schema, body []byte) error {
	result, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "request body is not valid JSON")
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, len(result.Errors()))
	for i, e := range result.Errors() {
		msgs[i] = e.String()
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid request: %s", strings.Join(msgs, "; "))
}
