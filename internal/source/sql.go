package source

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultTable is the table SQL sources read from.
const DefaultTable = "directory_records"

// recordColumns lists the columns read by SQL sources, in scan order.
var recordColumns = []string{
	"organization",
	"description",
	"address",
	"city",
	"zip",
	"phone",
	"website",
	"categories",
	"subcategories",
	"search_block",
}

// SchemaSQL creates a table SQL sources can read from. Rows are returned in
// position order, which becomes the record order.
func SchemaSQL(table string) string {
	cols := make([]string, len(recordColumns))
	for i, c := range recordColumns {
		cols[i] = "\t" + c + " TEXT"
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\tposition INTEGER NOT NULL PRIMARY KEY,\n%s\n)",
		table, strings.Join(cols, ",\n"))
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// validateTable rejects table names that would need quoting.
func validateTable(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	return nil
}

func selectRecordsSQL(table string) string {
	return "SELECT " + strings.Join(recordColumns, ", ") + " FROM " + table + " ORDER BY position"
}
