package schema_test

import (
	"db-shuttle/internal/schema"
	"testing"
	"time"
)

func TestFromDriver_RoundTrip(t *testing.T) {
	now := time.Now()

	cases := []struct {
		raw  any
		typ  schema.SemanticType
		kind schema.Kind
	}{
		{nil, schema.TypeString, schema.KindNull},
		{true, schema.TypeBoolean, schema.KindBool},
		{int64(42), schema.TypeInteger, schema.KindInt},
		{int64(1), schema.TypeBoolean, schema.KindBool},
		{3.14, schema.TypeNumber, schema.KindFloat},
		{"hello", schema.TypeString, schema.KindString},
		{[]byte("hello"), schema.TypeString, schema.KindString},
		{[]byte{0x01, 0x02}, schema.TypeBinary, schema.KindBytes},
		{[]byte(`{"a":1}`), schema.TypeJSON, schema.KindJSON},
		{`{"a":1}`, schema.TypeJSON, schema.KindJSON},
		{now, schema.TypeDate, schema.KindTime},
	}

	for _, c := range cases {
		v := schema.FromDriver(c.raw, c.typ)
		if v.Kind != c.kind {
			t.Errorf("FromDriver(%v, %s): kind = %s, want %s", c.raw, c.typ, v.Kind, c.kind)
		}
	}
}

func TestValue_DriverNullAndPayloads(t *testing.T) {
	if schema.Null().Driver() != nil {
		t.Error("Null().Driver() should be nil")
	}
	if got := schema.StringValue("x").Driver(); got != "x" {
		t.Errorf("StringValue driver = %v", got)
	}
	if got := schema.IntValue(7).Driver(); got != int64(7) {
		t.Errorf("IntValue driver = %v", got)
	}
	if got := schema.JSONValue(`[1]`).Driver(); got != `[1]` {
		t.Errorf("JSONValue driver = %v", got)
	}
}

func TestTable_Project(t *testing.T) {
	tbl := &schema.Table{
		Name: "users",
		Fields: []schema.Field{
			{Name: "id", Type: schema.TypeInteger},
			{Name: "email", Type: schema.TypeString},
			{Name: "ssn", Type: schema.TypeString},
			{Name: "created_at", Type: schema.TypeDate},
		},
		RowCount: 10,
	}

	got := tbl.Project(map[string]bool{"ssn": true})
	want := []string{"id", "email", "created_at"}
	names := got.FieldNames()
	if len(names) != len(want) {
		t.Fatalf("projected %d fields, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("field[%d] = %s, want %s (order must be preserved)", i, names[i], want[i])
		}
	}
	if got.RowCount != 10 {
		t.Errorf("RowCount lost in projection: %d", got.RowCount)
	}
}
