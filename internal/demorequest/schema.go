package demorequest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input is the untrusted demo-request candidate. Its tags are the single schema:
// the server validates with them and Describe publishes them to form clients.
type Input struct {
	Name    string  `json:"name" validate:"required,max=200"`
	Email   string  `json:"email" validate:"required,email,max=320"`
	Company string  `json:"company" validate:"required,max=200"`
	UseCase *string `json:"useCase,omitempty" validate:"omitempty,max=5000"`
}

// Normalize trims surrounding whitespace; a blank useCase becomes absent.
func (in Input) Normalize() Input {
	out := Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Company: strings.TrimSpace(in.Company),
	}
	if in.UseCase != nil {
		if uc := strings.TrimSpace(*in.UseCase); uc != "" {
			out.UseCase = &uc
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// Validate normalizes in and checks it against the schema. On failure the error is a *ValidationError.
func Validate(in Input) (Input, error) {
	n := in.Normalize()
	if err := validate.Struct(n); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			ve := &ValidationError{}
			for _, fe := range verrs {
				ve.Fields = append(ve.Fields, FieldError{Path: fe.Field(), Message: ruleMessage(fe)})
			}
			return Input{}, ve
		}
		return Input{}, fmt.Errorf("validate demo request: %w", err)
	}
	return n, nil
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "max":
		return fmt.Sprintf("String must contain at most %s character(s)", fe.Param())
	}
	return "Invalid value"
}

// DecodeError turns a JSON binding failure into a *ValidationError.
func DecodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		want := strings.TrimPrefix(typeErr.Type.String(), "*")
		if typeErr.Type.Kind() == reflect.Struct {
			want = "object"
		}
		return &ValidationError{Fields: []FieldError{{
			Path:    typeErr.Field,
			Message: fmt.Sprintf("Expected %s, received %s", want, typeErr.Value),
		}}}
	case errors.Is(err, io.EOF):
		return &ValidationError{Fields: []FieldError{{Message: "Request body is required"}}}
	}
	return &ValidationError{Fields: []FieldError{{Message: "Request body must be a valid JSON object"}}}
}

// FieldRule describes one schema field for form clients.
type FieldRule struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Required  bool   `json:"required"`
	Format    string `json:"format,omitempty"`
	MaxLength int    `json:"maxLength,omitempty"`
}

// Describe derives the client-facing rule set from Input's tags.
func Describe() []FieldRule {
	t := reflect.TypeOf(Input{})
	out := make([]FieldRule, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		rule := FieldRule{Name: jsonName(f), Type: "string"}
		for _, tag := range strings.Split(f.Tag.Get("validate"), ",") {
			key, param, _ := strings.Cut(tag, "=")
			switch key {
			case "required":
				rule.Required = true
			case "email":
				rule.Format = "email"
			case "max":
				rule.MaxLength, _ = strconv.Atoi(param)
			}
		}
		out = append(out, rule)
	}
	return out
}
