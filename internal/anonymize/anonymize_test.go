package anonymize_test

import (
	"reflect"
	"regexp"
	"testing"

	"db-shuttle/internal/anonymize"
	"db-shuttle/internal/schema"
)

func TestShouldAnonymize_TypeGate(t *testing.T) {
	cases := []struct {
		name string
		typ  schema.SemanticType
		want bool
	}{
		{"id", schema.TypeInteger, false},
		{"email", schema.TypeString, true},
		{"email", schema.TypeInteger, false},
		{"ssn", schema.TypeString, true},
		{"ssn", schema.TypeInteger, false},
		{"user_name", schema.TypeString, true},
		{"phone_number", schema.TypeString, true},
		{"home_address", schema.TypeString, true},
		{"password_hash", schema.TypeString, true},
		{"api_token", schema.TypeString, true},
		{"credit_card", schema.TypeString, true},
		{"created_at", schema.TypeDate, false},
		{"amount", schema.TypeNumber, false},
		{"description", schema.TypeString, false},
	}
	for _, c := range cases {
		if got := anonymize.ShouldAnonymize(c.name, c.typ); got != c.want {
			t.Errorf("ShouldAnonymize(%q, %s) = %v, want %v", c.name, c.typ, got, c.want)
		}
	}
}

func TestAnonymize_Email(t *testing.T) {
	got := anonymize.Anonymize("email", "john.doe@example.com")
	if ok, _ := regexp.MatchString(`^jo\*+@example\.com$`, got); !ok {
		t.Errorf("email mask = %q", got)
	}
	if len(got) != len("john.doe@example.com") {
		t.Errorf("email mask changed length: %q", got)
	}

	// Short local part is masked entirely with two mask characters.
	if got := anonymize.Anonymize("email", "ab@x.com"); got != "**@x.com" {
		t.Errorf("short local mask = %q", got)
	}

	// No @ at all: fixed placeholder.
	if got := anonymize.Anonymize("email", "not-an-email"); got != "anonymous@example.com" {
		t.Errorf("placeholder = %q", got)
	}
}

func TestAnonymize_Name(t *testing.T) {
	if got := anonymize.Anonymize("full_name", "John Doe"); got != "J*** D**" {
		t.Errorf("name mask = %q", got)
	}
	// Two-character words lose the leading letter too.
	if got := anonymize.Anonymize("name", "Jo Smith"); got != "** S****" {
		t.Errorf("short word mask = %q", got)
	}
}

func TestAnonymize_Phone(t *testing.T) {
	if got := anonymize.Anonymize("phone", "555-123-4567"); got != "***-***-4567" {
		t.Errorf("phone mask = %q", got)
	}
	if got := anonymize.Anonymize("phone", "+1 (555) 123-4567"); got != "***-***-4567" {
		t.Errorf("phone mask with punctuation = %q", got)
	}
	if got := anonymize.Anonymize("phone", "123"); got != "***-***-****" {
		t.Errorf("too few digits = %q", got)
	}
}

func TestAnonymize_Address(t *testing.T) {
	got := anonymize.Anonymize("address", "123 Main Street")
	if ok, _ := regexp.MatchString(`^\*{3} \*{4} Street$`, got); !ok {
		t.Errorf("address mask = %q", got)
	}
	if got := anonymize.Anonymize("address", "123 Broadway Apt 4B"); got != "*** ******** Apt 4B" {
		t.Errorf("address keeps trailing words: %q", got)
	}
	if got := anonymize.Anonymize("address", "Somewhere"); got != "**** ****" {
		t.Errorf("short address placeholder = %q", got)
	}
}

func TestAnonymize_Secret(t *testing.T) {
	for _, v := range []string{"x", "hunter2", "a-very-long-password-indeed"} {
		if got := anonymize.Anonymize("password", v); got != "********" {
			t.Errorf("secret mask of %q = %q, want 8 mask characters", v, got)
		}
	}
	if got := anonymize.Anonymize("api_token", "tok_123456"); got != "********" {
		t.Errorf("token mask = %q", got)
	}
}

func TestAnonymize_Generic(t *testing.T) {
	if got := anonymize.Anonymize("ssn", "sensitive_data"); got != "s************a" {
		t.Errorf("generic mask = %q", got)
	}
	if got := anonymize.Anonymize("ssn", "abc"); got != "***" {
		t.Errorf("short generic mask = %q", got)
	}
	if got := anonymize.Anonymize("passport", "P1234567"); got != "P******7" {
		t.Errorf("passport mask = %q", got)
	}
}

func TestAnonymize_DispatchOrder(t *testing.T) {
	// "email_address" matches both email and address fragments; the email
	// rule comes first and must win.
	got := anonymize.Anonymize("email_address", "john.doe@example.com")
	if ok, _ := regexp.MatchString(`^jo\*+@example\.com$`, got); !ok {
		t.Errorf("email_address should use the email transform, got %q", got)
	}
}

func TestAnonymizeValue_Passthrough(t *testing.T) {
	// Nulls pass through untouched regardless of classification.
	if got := anonymize.AnonymizeValue("email", schema.Null()); !got.IsNull() {
		t.Errorf("null should pass through, got kind %s", got.Kind)
	}
	// Non-string payloads pass through unchanged.
	v := schema.IntValue(123456789)
	if got := anonymize.AnonymizeValue("ssn", v); !reflect.DeepEqual(got, v) {
		t.Errorf("int payload should pass through, got %+v", got)
	}
	// String payloads are masked.
	if got := anonymize.AnonymizeValue("password", schema.StringValue("secret")); got.Str != "********" {
		t.Errorf("string payload should be masked, got %q", got.Str)
	}
}
