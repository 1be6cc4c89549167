package introspect

import (
	"testing"

	"github.com/phrazzld/schemadoc/internal/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestDescribeSchema(t *testing.T) {
	t.Parallel()

	tables := []domain.Table{
		{
			Name: "users",
			Columns: []domain.Column{
				{Name: "id", DataType: "integer", Nullable: false, Default: strPtr("nextval('users_id_seq'::regclass)")},
				{Name: "name", DataType: "text", Nullable: true},
			},
		},
		{Name: "audit"},
	}

	want := "Table users\n" +
		"- id integer NOT NULL DEFAULT nextval('users_id_seq'::regclass)\n" +
		"- name text NULL\n" +
		"\n" +
		"Table audit\n" +
		"- (no columns)\n"

	assert.Equal(t, want, DescribeSchema(tables))
}

func TestDescribeSchemaEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "The database contains no tables.\n", DescribeSchema(nil))
}

func TestTableNames(t *testing.T) {
	t.Parallel()

	names := TableNames([]domain.Table{{Name: "users"}, {Name: "orders"}})
	assert.Equal(t, []string{"users", "orders"}, names)
	assert.Empty(t, TableNames(nil))
}
