package resume

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; validator instances cache struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names in error namespaces so paths match the wire shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// FieldError is a single validation failure addressed by JSON field path,
// e.g. "experience[0].startDate".
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Validate checks required-field and shape constraints before save. It
// returns one entry per offending field rather than a single top-level
// error; an empty result means the document may be saved.
//
// Start/end date ordering is deliberately not checked here: it is a UI-only
// constraint in this system.
func (d *Document) Validate() []FieldError {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Path: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Path:    fieldPath(fe.Namespace()),
			Message: messageFor(fe),
		})
	}
	return out
}

// fieldPath strips the struct name prefix from a validator namespace,
// leaving the JSON path ("Document.Content.experience[0].startDate" ->
// "experience[0].startDate"). The embedded Content segment is elided
// because it is flattened on the wire.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	return strings.TrimPrefix(namespace, "Content.")
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a well-formed URL"
	default:
		return "failed validation rule: " + fe.Tag()
	}
}
