package schema

import "strings"

// typeRule maps native type-name fragments onto a semantic type.
// Rules are evaluated in order and the first containing match wins, so a
// native name with several matchable fragments is classified by rule
// position, not by specificity. Downstream DDL generation depends on this
// exact order; do not re-sort.
type typeRule struct {
	fragments []string
	semantic  SemanticType
}

var typeRules = []typeRule{
	{[]string{"int", "serial"}, TypeInteger},
	{[]string{"varchar", "text", "char"}, TypeString},
	{[]string{"decimal", "numeric", "float", "double"}, TypeNumber},
	{[]string{"date", "time", "timestamp"}, TypeDate},
	{[]string{"bool"}, TypeBoolean},
	{[]string{"json"}, TypeJSON},
	{[]string{"blob", "bytea"}, TypeBinary},
}

// Normalize maps a vendor column type string to the shared vocabulary.
// Total over all inputs: unrecognized names fall back to TypeString.
func Normalize(nativeType string) SemanticType {
	t := strings.ToLower(nativeType)
	for _, rule := range typeRules {
		for _, frag := range rule.fragments {
			if strings.Contains(t, frag) {
				return rule.semantic
			}
		}
	}
	return TypeString
}
