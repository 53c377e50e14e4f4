// Package anonymize decides which fields carry personally identifiable or
// otherwise sensitive content and masks their values in transit.
//
// Decisions are purely name+type driven: a field is flagged when its name
// contains a sensitive fragment AND its semantic type is string. An integer
// "ssn" is deliberately left alone; type gates the decision so numeric keys
// and foreign keys never get mangled.
package anonymize

import (
	"strings"

	"db-shuttle/internal/schema"
)

const maskChar = "*"

// placeholderEmail is returned for classified email fields whose value does
// not look like an email at all.
const placeholderEmail = "anonymous@example.com"

// fragment sets for the classification decision. Matching is
// case-insensitive substring containment, like native type normalization.
var sensitiveFragments = []string{
	// email-like
	"email", "e_mail",
	// person-name-like
	"name", "surname",
	// phone-like
	"phone", "mobile", "tel",
	// postal-address-like
	"address", "addr",
	// generic-secret-like
	"password", "passwd", "pwd", "secret", "token", "key",
	"ssn", "passport", "id_number", "idnumber", "credit_card", "creditcard", "card_number",
}

// ShouldAnonymize reports whether a field must be masked. True iff the name
// matches a sensitive fragment and the semantic type is string.
func ShouldAnonymize(fieldName string, t schema.SemanticType) bool {
	if t != schema.TypeString {
		return false
	}
	n := strings.ToLower(fieldName)
	for _, frag := range sensitiveFragments {
		if strings.Contains(n, frag) {
			return true
		}
	}
	return false
}

// maskRule pairs a name predicate with its transform. Rules are evaluated in
// order and the first match wins; the tie-break order is part of the
// contract (an "email_address" field gets the email transform, not the
// address one).
type maskRule struct {
	fragments []string
	transform func(string) string
}

var maskRules = []maskRule{
	{[]string{"email", "e_mail"}, maskEmail},
	{[]string{"name", "surname"}, maskName},
	{[]string{"phone", "mobile", "tel"}, maskPhone},
	{[]string{"address", "addr"}, maskAddress},
	{[]string{"password", "passwd", "pwd", "secret", "token"}, maskSecret},
}

// Anonymize masks a non-null string value according to the field name.
// Fields matching none of the named transforms get the generic mask.
func Anonymize(fieldName, value string) string {
	n := strings.ToLower(fieldName)
	for _, rule := range maskRules {
		for _, frag := range rule.fragments {
			if strings.Contains(n, frag) {
				return rule.transform(value)
			}
		}
	}
	return maskGeneric(value)
}

// AnonymizeValue applies Anonymize to string values and passes everything
// else through unchanged. Nulls always pass through, classified or not.
func AnonymizeValue(fieldName string, v schema.Value) schema.Value {
	if v.Kind != schema.KindString {
		return v
	}
	return schema.StringValue(Anonymize(fieldName, v.Str))
}

// maskEmail keeps the first two characters of the local part and the whole
// domain: "john.doe@example.com" -> "jo******@example.com". Values without
// an "@" get a fixed placeholder.
func maskEmail(s string) string {
	at := strings.Index(s, "@")
	if at < 0 {
		return placeholderEmail
	}
	local := []rune(s[:at])
	domain := s[at:]
	if len(local) <= 2 {
		return strings.Repeat(maskChar, 2) + domain
	}
	return string(local[:2]) + strings.Repeat(maskChar, len(local)-2) + domain
}

// maskName keeps the first letter of each word: "John Doe" -> "J*** D**".
// Words of one or two characters are masked entirely.
func maskName(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r := []rune(w)
		if len(r) <= 2 {
			words[i] = strings.Repeat(maskChar, len(r))
		} else {
			words[i] = string(r[:1]) + strings.Repeat(maskChar, len(r)-1)
		}
	}
	return strings.Join(words, " ")
}

// maskPhone keeps only the last four digits: "555-123-4567" -> "***-***-4567".
func maskPhone(s string) string {
	var digits []rune
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "***-***-****"
	}
	return "***-***-" + string(digits[len(digits)-4:])
}

// maskAddress masks the first two words (street number and name) and leaves
// the rest: "123 Main Street" -> "*** **** Street".
func maskAddress(s string) string {
	words := strings.Split(s, " ")
	if len(words) <= 2 {
		return "**** ****"
	}
	for i := 0; i < 2; i++ {
		words[i] = strings.Repeat(maskChar, len([]rune(words[i])))
	}
	return strings.Join(words, " ")
}

// maskSecret discards the value entirely; output length never leaks input
// length.
func maskSecret(string) string {
	return strings.Repeat(maskChar, 8)
}

// maskGeneric keeps the first and last character and preserves length:
// "sensitive_data" -> "s************a". Short values are masked entirely.
func maskGeneric(s string) string {
	r := []rune(s)
	if len(r) <= 3 {
		return strings.Repeat(maskChar, len(r))
	}
	return string(r[:1]) + strings.Repeat(maskChar, len(r)-2) + string(r[len(r)-1:])
}
