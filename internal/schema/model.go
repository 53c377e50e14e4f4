package schema

// SemanticType is the engine-agnostic type vocabulary used for cross-engine
// DDL generation. Every native column type normalizes to exactly one of these.
type SemanticType string

const (
	TypeInteger SemanticType = "integer"
	TypeString  SemanticType = "string"
	TypeNumber  SemanticType = "number"
	TypeDate    SemanticType = "date"
	TypeBoolean SemanticType = "boolean"
	TypeJSON    SemanticType = "json"
	TypeBinary  SemanticType = "binary"
)

// Field describes a single column after normalization.
// Default is the engine-native literal, passed through opaquely.
type Field struct {
	Name       string
	Type       SemanticType
	Nullable   bool
	Default    string
	HasDefault bool
}

// Table describes a table: name, ordered fields and a best-effort row count.
// Field order is semantically significant and must be preserved end to end.
// RowCount is an advisory snapshot; 0 means unknown.
type Table struct {
	Name     string
	Fields   []Field
	RowCount int64
}

// FieldNames returns the field names in declaration order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}

// Project returns a copy of the table with the named fields removed,
// preserving the order of the remaining fields. Name matching is exact.
func (t *Table) Project(exclude map[string]bool) *Table {
	out := &Table{Name: t.Name, RowCount: t.RowCount}
	for _, f := range t.Fields {
		if !exclude[f.Name] {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

// Row maps field names to engine-agnostic values. Transient: a row exists
// only within one pipeline iteration.
type Row map[string]Value

// RowBatch is a bounded, ordered group of rows moved in one read/write cycle.
type RowBatch []Row
