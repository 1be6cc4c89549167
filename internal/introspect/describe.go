package introspect

import (
	"fmt"
	"strings"

	"github.com/phrazzld/schemadoc/internal/domain"
)

// DescribeSchema renders tables as the plain text block embedded in prompts.
// An empty tables slice yields a description stating that no tables exist.
func DescribeSchema(tables []domain.Table) string {
	if len(tables) == 0 {
		return "The database contains no tables.\n"
	}

	var b strings.Builder
	for i, t := range tables {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Table %s\n", t.Name)
		if len(t.Columns) == 0 {
			b.WriteString("- (no columns)\n")
			continue
		}
		for _, c := range t.Columns {
			b.WriteString(describeColumn(c))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func describeColumn(c domain.Column) string {
	null := "NOT NULL"
	if c.Nullable {
		null = "NULL"
	}
	line := fmt.Sprintf("- %s %s %s", c.Name, c.DataType, null)
	if c.Default != nil {
		line += " DEFAULT " + *c.Default
	}
	return line
}

// TableNames returns the names of tables in order.
func TableNames(tables []domain.Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
