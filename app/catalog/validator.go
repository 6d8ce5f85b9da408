package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError is one structural violation inside a response page.
type FieldError struct {
	Path string // e.g. "Page.Films[3].Slug"
	Rule string // the violated constraint, e.g. "required" or "url"
}

// ValidationError reports that a response page deviated from the expected
// shape. It lists every offending field path; callers log it and abort the
// run rather than skipping the page.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Path, f.Rule))
	}
	return "invalid response shape: " + strings.Join(parts, ", ")
}

// ParsePage decodes and validates one raw response body. A type mismatch or
// any violated field constraint is fatal; the page is never partially
// accepted.
func ParsePage(data []byte) (*Page, error) {
	var page Page
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if err := validate.Struct(&page); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			ve := &ValidationError{}
			for _, fe := range fieldErrs {
				ve.Fields = append(ve.Fields, FieldError{Path: fe.Namespace(), Rule: fe.Tag()})
			}
			return nil, ve
		}
		return nil, fmt.Errorf("failed to validate response: %w", err)
	}

	return &page, nil
}
