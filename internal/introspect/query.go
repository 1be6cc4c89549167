package introspect

import (
	"fmt"

	"github.com/doug-martin/goqu/v8"
	_ "github.com/doug-martin/goqu/v8/dialect/postgres"
)

// baseTableType is the information_schema table_type of ordinary tables.
const baseTableType = "BASE TABLE"

var psql = goqu.Dialect("postgres")

// text casts an information_schema column to text so the driver never sees
// the sql_identifier or yes_or_no domain types.
func text(col string) any {
	return goqu.L(`"` + col + `"::text`).As(col)
}

// tablesQuery builds the statement listing base tables in schemas.
func tablesQuery(schemas []string) (string, []any, error) {
	if len(schemas) == 0 {
		return "", nil, ErrNoSchemas
	}

	sql, args, err := psql.
		From(goqu.S("information_schema").Table("tables")).
		Select(text("table_schema"), text("table_name")).
		Where(goqu.Ex{
			"table_schema": schemas,
			"table_type":   baseTableType,
		}).
		Order(goqu.C("table_schema").Asc(), goqu.C("table_name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build tables query: %w", err)
	}
	return sql, args, nil
}

// columnsQuery builds the statement listing the columns of one table.
func columnsQuery(ref tableRef) (string, []any, error) {
	if ref.Schema == "" {
		return "", nil, ErrNoSchemas
	}
	if ref.Name == "" {
		return "", nil, ErrEmptyTable
	}

	sql, args, err := psql.
		From(goqu.S("information_schema").Table("columns")).
		Select(
			text("column_name"),
			text("data_type"),
			text("is_nullable"),
			text("column_default"),
		).
		Where(goqu.Ex{
			"table_schema": ref.Schema,
			"table_name":   ref.Name,
		}).
		Order(goqu.C("ordinal_position").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build columns query: %w", err)
	}
	return sql, args, nil
}

// tableRef names a table by schema and name as information_schema reports them.
type tableRef struct {
	Schema string `db:"table_schema"`
	Name   string `db:"table_name"`
}

// displayNames returns the names under which refs are reported. Names are
// qualified with their schema only when more than one schema is introspected.
// The returned map resolves each reported name back to its ref.
func displayNames(schemas []string, refs []tableRef) ([]string, map[string]tableRef) {
	qualify := len(schemas) > 1
	names := make([]string, 0, len(refs))
	byName := make(map[string]tableRef, len(refs))
	for _, ref := range refs {
		name := ref.Name
		if qualify {
			name = ref.Schema + "." + ref.Name
		}
		names = append(names, name)
		byName[name] = ref
	}
	return names, byName
}
