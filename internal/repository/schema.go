package repository

import (
	entsql "entgo.io/ent/dialect/sql"
)

// column describes one table column. Columns are NOT NULL unless Nullable.
type column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string // SQL literal, empty for none
	Primary  bool
}

type index struct {
	Name    string
	Columns []string
}

type table struct {
	Name    string
	Columns []column
	Indexes []index
}

// customersSchema holds the customer directory.
var customersSchema = &table{
	Name: "customers",
	Columns: []column{
		{Name: "id", Type: "TEXT", Primary: true},
		{Name: "name", Type: "TEXT", Default: "''"},
		{Name: "display_name", Type: "TEXT", Default: "''"},
		{Name: "company_name", Type: "TEXT", Default: "''"},
		{Name: "given_name", Type: "TEXT", Default: "''"},
		{Name: "family_name", Type: "TEXT", Default: "''"},
		{Name: "email", Type: "TEXT", Default: "''"},
		{Name: "web_addr", Type: "TEXT", Default: "''"},
		{Name: "created_at", Type: "BIGINT"}, // unix nanos
	},
	Indexes: []index{
		{Name: "customers_email_idx", Columns: []string{"email"}},
	},
}

// extractJobsSchema holds one row per processed document.
var extractJobsSchema = &table{
	Name: "extract_jobs",
	Columns: []column{
		{Name: "id", Type: "TEXT", Primary: true},
		{Name: "run_id", Type: "TEXT", Default: "''"},
		{Name: "source_path", Type: "TEXT"},
		{Name: "format", Type: "TEXT", Default: "''"},
		{Name: "status", Type: "TEXT"},
		{Name: "error_message", Type: "TEXT", Nullable: true},
		{Name: "started_at", Type: "BIGINT"},
		{Name: "finished_at", Type: "BIGINT", Nullable: true},
		{Name: "record", Type: "TEXT", Nullable: true}, // ExtractedRecord as JSON
	},
	Indexes: []index{
		{Name: "extract_jobs_run_idx", Columns: []string{"run_id"}},
	},
}

// tables lists every table Migrate creates, in creation order.
var tables = []*table{customersSchema, extractJobsSchema}

// columnNames returns the column names in declaration order.
func (t *table) columnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// definition is the column type followed by its constraints.
func (c column) definition() string {
	def := c.Type
	switch {
	case c.Primary:
		def += " PRIMARY KEY"
	case !c.Nullable:
		def += " NOT NULL"
	}
	if c.Default != "" {
		def += " DEFAULT " + c.Default
	}
	return def
}

// createStatements renders the CREATE TABLE and CREATE INDEX statements for
// the given dialect. All of them are safe to re-run.
func (t *table) createStatements(dialect string) []string {
	d := entsql.Dialect(dialect)
	cols := make([]entsql.Querier, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = d.Column(c.Name).Type(c.definition())
	}
	stmts := []string{d.String(func(b *entsql.Builder) {
		b.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(t.Name).Pad().Wrap(func(b *entsql.Builder) {
			b.JoinComma(cols...)
		})
	})}
	for _, idx := range t.Indexes {
		stmts = append(stmts, d.String(func(b *entsql.Builder) {
			b.WriteString("CREATE INDEX IF NOT EXISTS ").Ident(idx.Name).
				WriteString(" ON ").Ident(t.Name).Pad().
				Wrap(func(b *entsql.Builder) { b.IdentComma(idx.Columns...) })
		}))
	}
	return stmts
}
