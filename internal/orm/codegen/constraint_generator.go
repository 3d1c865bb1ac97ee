package codegen

import (
	"fmt"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// ConstraintGenerator generates primary key, foreign key, unique and check
// constraints
type ConstraintGenerator struct {
	dict *schema.Dictionary
}

// NewConstraintGenerator creates a new constraint generator
func NewConstraintGenerator(dict *schema.Dictionary) *ConstraintGenerator {
	return &ConstraintGenerator{dict: dict}
}

// GeneratePrimaryKey generates the primary key constraint. A table without
// primary attributes yields "".
func (g *ConstraintGenerator) GeneratePrimaryKey(table *schema.Table) string {
	pk := table.PrimaryKey()
	if len(pk) == 0 {
		return ""
	}
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT pk%s PRIMARY KEY (%s);",
		table.FullSQLName(), table.TableSQLName(), columnList(pk))
}

// GenerateForeignKeys generates one foreign key per reference, with the
// columns in join key order
func (g *ConstraintGenerator) GenerateForeignKeys(table *schema.Table) ([]string, error) {
	stmts := make([]string, 0, len(table.References))
	for _, ref := range table.References {
		stmt, err := g.generateForeignKey(table, ref)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (g *ConstraintGenerator) generateForeignKey(table *schema.Table, ref *schema.Reference) (string, error) {
	target, err := g.dict.FindTable(ref.Target)
	if err != nil {
		return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
	}
	if len(ref.Keys) == 0 {
		return "", schema.EmptyResult(g.dict.Name(), "reference", ref.Name, "table "+table.Name+": no key pairs")
	}

	own, err := resolveIDs(table, ownIDs(ref.Keys))
	if err != nil {
		return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
	}
	foreign, err := resolveIDs(target, foreignIDs(ref.Keys))
	if err != nil {
		return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
	}

	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT ref%s FOREIGN KEY (%s) REFERENCES %s (%s);",
		table.FullSQLName(), ref.Name, columnList(own), target.FullSQLName(), columnList(foreign)), nil
}

// GenerateDropForeignKeys generates the statements removing the table's
// foreign keys
func (g *ConstraintGenerator) GenerateDropForeignKeys(table *schema.Table) []string {
	stmts := make([]string, 0, len(table.References))
	for _, ref := range table.References {
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT ref%s;", table.FullSQLName(), ref.Name))
	}
	return stmts
}

// GenerateUniqueKeys generates a unique constraint for every key index
func (g *ConstraintGenerator) GenerateUniqueKeys(table *schema.Table) ([]string, error) {
	var stmts []string
	for _, idx := range table.Indices {
		if idx.Kind != schema.IndexKey {
			continue
		}
		cols, err := indexColumns(table, idx)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT uk%s UNIQUE (%s);",
			table.FullSQLName(), idx.Name, columnList(cols)))
	}
	return stmts, nil
}

// GenerateCheckConstraints promotes table-level checks to ALTER TABLE
// statements
func (g *ConstraintGenerator) GenerateCheckConstraints(table *schema.Table) []string {
	var stmts []string
	for _, attr := range table.Attributes {
		if attr.CheckKind != schema.CheckTable {
			continue
		}
		stmts = append(stmts, fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s);",
			table.FullSQLName(), checkName(table, attr), attr.Check))
	}
	return stmts
}

// indexColumns resolves the attributes of an index in column order
func indexColumns(table *schema.Table, idx *schema.Index) ([]*schema.Attribute, error) {
	ids := make([]int, len(idx.Columns))
	for i, col := range idx.Columns {
		ids[i] = col.Attribute
	}
	attrs, err := resolveIDs(table, ids)
	if err != nil {
		return nil, fmt.Errorf("index %s.%s: %w", table.Name, idx.Name, err)
	}
	return attrs, nil
}
