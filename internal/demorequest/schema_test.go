package demorequest

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidate_AcceptsMinimalInput(t *testing.T) {
	got, err := Validate(Input{Name: " Jane Doe ", Email: "jane@acme.com", Company: "Acme"})
	require.NoError(t, err)
	require.Equal(t, "Jane Doe", got.Name)
	require.Nil(t, got.UseCase)
}

func TestValidate_BlankUseCaseBecomesAbsent(t *testing.T) {
	got, err := Validate(Input{Name: "Jane", Email: "jane@acme.com", Company: "Acme", UseCase: strPtr("   ")})
	require.NoError(t, err)
	require.Nil(t, got.UseCase)

	got, err = Validate(Input{Name: "Jane", Email: "jane@acme.com", Company: "Acme", UseCase: strPtr(" onboarding ")})
	require.NoError(t, err)
	require.NotNil(t, got.UseCase)
	require.Equal(t, "onboarding", *got.UseCase)
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"missing name", Input{Email: "jane@acme.com", Company: "Acme"}, "name"},
		{"blank name", Input{Name: "   ", Email: "jane@acme.com", Company: "Acme"}, "name"},
		{"missing email", Input{Name: "Jane", Company: "Acme"}, "email"},
		{"not an email", Input{Name: "Jane", Email: "not-an-email", Company: "Acme"}, "email"},
		{"no domain", Input{Name: "Jane", Email: "jane@", Company: "Acme"}, "email"},
		{"missing company", Input{Name: "Jane", Email: "jane@acme.com"}, "company"},
		{"use case too long", Input{Name: "Jane", Email: "jane@acme.com", Company: "Acme", UseCase: strPtr(strings.Repeat("x", 5001))}, "useCase"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.in)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want *ValidationError, got %v", err)
			require.True(t, ve.HasField(tc.field), "errors %v should reference %q", ve.Fields, tc.field)
			require.Contains(t, ve.Error(), `"`+tc.field+`"`)
		})
	}
}

func TestValidate_AggregatesAllFields(t *testing.T) {
	_, err := Validate(Input{Email: "nope"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 3)
	require.Equal(t, `Validation error: Required at "name"; Invalid email at "email"; Required at "company"`, ve.Error())
}

func TestDecodeError(t *testing.T) {
	var in Input
	err := json.Unmarshal([]byte(`{"name":42}`), &in)
	require.Error(t, err)
	ve := DecodeError(err)
	require.True(t, ve.HasField("name"))
	require.Contains(t, ve.Error(), "Expected string, received number")

	err = json.Unmarshal([]byte(`[1,2]`), &in)
	require.Error(t, err)
	require.Contains(t, DecodeError(err).Error(), "Expected object, received array")

	require.Contains(t, DecodeError(io.EOF).Error(), "Request body is required")
	require.Contains(t, DecodeError(errors.New("boom")).Error(), "valid JSON object")
}

func TestDescribe(t *testing.T) {
	rules := Describe()
	require.Len(t, rules, 4)
	byName := map[string]FieldRule{}
	for _, r := range rules {
		byName[r.Name] = r
	}
	require.True(t, byName["name"].Required)
	require.Equal(t, "email", byName["email"].Format)
	require.True(t, byName["company"].Required)
	require.False(t, byName["useCase"].Required)
	require.Equal(t, 5000, byName["useCase"].MaxLength)
}

func TestClone(t *testing.T) {
	d := &DemoRequest{ID: "1", Name: "Jane", UseCase: strPtr("a")}
	cp := d.Clone()
	*cp.UseCase = "b"
	require.Equal(t, "a", *d.UseCase)
}
