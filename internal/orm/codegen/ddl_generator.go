package codegen

import (
	"fmt"
	"strings"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// columnIndent prefixes every column clause of a CREATE TABLE statement
const columnIndent = "   "

// DDLGenerator generates CREATE/ALTER/DROP statements for dictionary tables
type DDLGenerator struct {
	dict       *schema.Dictionary
	typeMapper *TypeMapper
}

// NewDDLGenerator creates a new DDL generator
func NewDDLGenerator(dict *schema.Dictionary) *DDLGenerator {
	return &DDLGenerator{
		dict:       dict,
		typeMapper: NewTypeMapper(dict),
	}
}

// GenerateCreateTable generates the CREATE TABLE statement of a table, or
// the CREATE VIEW statement when the table is a view
func (g *DDLGenerator) GenerateCreateTable(table *schema.Table) (string, error) {
	if table == nil {
		return "", fmt.Errorf("table cannot be nil")
	}
	if table.IsView() {
		return g.GenerateCreateView(table)
	}

	columnDefs := make([]string, 0, len(table.Attributes))
	for _, attr := range table.Attributes {
		if attr.CalcKind.IsTableLevel() {
			continue
		}
		def, err := g.generateColumnDefinition(table, attr)
		if err != nil {
			return "", fmt.Errorf("table %s: %w", table.Name, err)
		}
		columnDefs = append(columnDefs, columnIndent+def)
	}

	if len(columnDefs) == 0 {
		return "", schema.EmptyResult(g.dict.Name(), "table", table.Name, "no eligible columns")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("CREATE TABLE %s (\n", table.FullSQLName()))
	b.WriteString(strings.Join(columnDefs, ",\n"))
	b.WriteString("\n);")
	return b.String(), nil
}

// generateColumnDefinition generates the column clause of an attribute
func (g *DDLGenerator) generateColumnDefinition(table *schema.Table, attr *schema.Attribute) (string, error) {
	if attr.IsComputed() {
		return computedColumn(attr), nil
	}

	columnType, err := g.typeMapper.MapType(attr)
	if err != nil {
		return "", err
	}

	parts := []string{attr.ColumnName(), columnType, g.typeMapper.MapNullability(attr)}

	if attr.Init != "" {
		parts = append(parts, "DEFAULT "+attr.Init)
	}

	switch attr.CheckKind {
	case schema.CheckDirect:
		parts = append(parts, fmt.Sprintf("CHECK (%s)", attr.Check))
	case schema.CheckAttribute:
		parts = append(parts, fmt.Sprintf("CONSTRAINT %s CHECK (%s)", checkName(table, attr), attr.Check))
	case schema.CheckUndefined:
		tmpl, err := g.typeMapper.CheckTemplate(attr)
		if err != nil {
			return "", err
		}
		if tmpl != "" {
			parts = append(parts, fmt.Sprintf("CHECK (%s)", tmpl))
		}
	}

	return strings.Join(parts, " "), nil
}

// computedColumn renders "<col> AS (<expr>)" with PERSISTED when required
func computedColumn(attr *schema.Attribute) string {
	def := fmt.Sprintf("%s AS (%s)", attr.ColumnName(), attr.Computed)
	if attr.CalcKind.IsPersisted() {
		def += " PERSISTED"
	}
	return def
}

// GenerateCreateView builds a view from the table's post conditions
func (g *DDLGenerator) GenerateCreateView(table *schema.Table) (string, error) {
	body := strings.TrimSpace(strings.Join(table.PostConditions, "\n"))
	body = strings.TrimSpace(strings.TrimSuffix(body, ";"))
	if body == "" {
		return "", schema.EmptyResult(g.dict.Name(), "view", table.Name, "no select statement")
	}
	return fmt.Sprintf("CREATE VIEW %s AS\n%s\n;", table.FullSQLName(), body), nil
}

// GenerateAlterTable generates one ALTER TABLE statement per table-level
// computed attribute
func (g *DDLGenerator) GenerateAlterTable(table *schema.Table) []string {
	var stmts []string
	for _, attr := range table.Attributes {
		if !attr.CalcKind.IsTableLevel() {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD %s;", table.FullSQLName(), computedColumn(attr)))
	}
	return stmts
}

// GenerateDropTable generates a DROP TABLE (or DROP VIEW) statement
func (g *DDLGenerator) GenerateDropTable(table *schema.Table) string {
	if table.IsView() {
		return fmt.Sprintf("DROP VIEW %s;", table.FullSQLName())
	}
	return fmt.Sprintf("DROP TABLE %s;", table.FullSQLName())
}

// GenerateRangeValues passes the table's seed statements through
func (g *DDLGenerator) GenerateRangeValues(table *schema.Table) []string {
	return passThrough(table.RangeValues)
}

// GeneratePostConditions passes the table's post condition statements
// through. Views consume their post conditions in GenerateCreateView.
func (g *DDLGenerator) GeneratePostConditions(table *schema.Table) []string {
	if table.IsView() {
		return nil
	}
	return passThrough(table.PostConditions)
}

// GenerateCleanupStatements passes the table's cleanup statements through
func (g *DDLGenerator) GenerateCleanupStatements(table *schema.Table) []string {
	return passThrough(table.CleanupStatements)
}

func passThrough(stmts []string) []string {
	out := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		out = append(out, terminate(stmt))
	}
	return out
}
