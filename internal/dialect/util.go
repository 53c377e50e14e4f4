package dialect

import (
	"fmt"
	"strings"

	"db-shuttle/internal/schema"
)

// GeneratePlaceholders creates a comma-separated list of bind markers using
// the dialect's placeholder function.
func GeneratePlaceholders(count int, placeholderFunc func(int) string) string {
	placeholders := make([]string, count)
	for i := 0; i < count; i++ {
		placeholders[i] = placeholderFunc(i)
	}
	return strings.Join(placeholders, ", ")
}

// ColumnDefs renders the column definition list for a CREATE TABLE, keeping
// the field order of the descriptor. Defaults are engine-native literals and
// are passed through verbatim, anonymized fields included.
func ColumnDefs(t *schema.Table, typeFor func(schema.SemanticType) string) string {
	defs := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		def := fmt.Sprintf("%s %s", f.Name, typeFor(f.Type))
		if f.HasDefault {
			def += " DEFAULT " + f.Default
		}
		if !f.Nullable {
			def += " NOT NULL"
		}
		defs[i] = def
	}
	return strings.Join(defs, ", ")
}
