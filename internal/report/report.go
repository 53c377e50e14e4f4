// Package report produces the pre-migration sensitivity advisory: which
// fields the classifier would mask, independent of any user-supplied
// anonymize or exclude lists. Read-only; nothing is written anywhere.
package report

import (
	"context"

	"db-shuttle/internal/anonymize"
	"db-shuttle/internal/connector"
	"db-shuttle/internal/schema"
)

// FieldReport is one field with its normalized type and the classifier's
// verdict.
type FieldReport struct {
	Name      string
	Type      schema.SemanticType
	Sensitive bool
}

// TableReport is the advisory for one table.
type TableReport struct {
	Table    string
	RowCount int64
	Fields   []FieldReport
	Flagged  int
}

// Analyze describes each named table and runs the classifier over every
// field. An empty table list means "analyze all tables on the source".
func Analyze(ctx context.Context, src connector.Connector, tables []string) ([]TableReport, error) {
	if len(tables) == 0 {
		names, err := src.ListTables(ctx)
		if err != nil {
			return nil, err
		}
		tables = names
	}

	reports := make([]TableReport, 0, len(tables))
	for _, name := range tables {
		desc, err := src.DescribeTable(ctx, name)
		if err != nil {
			return nil, err
		}
		r := TableReport{Table: name, RowCount: desc.RowCount}
		for _, f := range desc.Fields {
			sensitive := anonymize.ShouldAnonymize(f.Name, f.Type)
			r.Fields = append(r.Fields, FieldReport{Name: f.Name, Type: f.Type, Sensitive: sensitive})
			if sensitive {
				r.Flagged++
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}
