// Package codegen synthesizes SQL text from a data dictionary: table, view
// and computed column DDL, key/index/check constraints, seed statements and
// parameterized query statements.
package codegen

import (
	"fmt"
	"strings"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// columnPlaceholder is replaced by the column name in datatype check templates
const columnPlaceholder = "%column%"

// TypeMapper maps attributes to their storage-engine column types
type TypeMapper struct {
	dict *schema.Dictionary
}

// NewTypeMapper creates a new TypeMapper
func NewTypeMapper(dict *schema.Dictionary) *TypeMapper {
	return &TypeMapper{dict: dict}
}

// MapType returns the column type of an attribute, with length and scale
// when its datatype uses them
func (tm *TypeMapper) MapType(attr *schema.Attribute) (string, error) {
	dt, err := tm.dict.FindDataType(attr.Datatype)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", attr.Name, err)
	}

	switch {
	case dt.UseScale:
		return fmt.Sprintf("%s(%d, %d)", dt.DBType, attr.Length, attr.Scale), nil
	case dt.UseLength:
		return fmt.Sprintf("%s(%d)", dt.DBType, attr.Length), nil
	default:
		return dt.DBType, nil
	}
}

// MapNullability returns the NULL/NOT NULL clause of an attribute. Primary
// attributes are always NOT NULL.
func (tm *TypeMapper) MapNullability(attr *schema.Attribute) string {
	if attr.NotNull || attr.Primary {
		return "NOT NULL"
	}
	return "NULL"
}

// CheckTemplate returns the datatype check rendered for the attribute's
// column, or "" when the datatype has none
func (tm *TypeMapper) CheckTemplate(attr *schema.Attribute) (string, error) {
	dt, err := tm.dict.FindDataType(attr.Datatype)
	if err != nil {
		return "", fmt.Errorf("attribute %s: %w", attr.Name, err)
	}
	if dt.CheckTemplate == "" {
		return "", nil
	}
	return strings.ReplaceAll(dt.CheckTemplate, columnPlaceholder, attr.ColumnName()), nil
}

// terminate appends the statement separator when it is missing
func terminate(stmt string) string {
	stmt = strings.TrimRight(stmt, " \t\r\n")
	if strings.HasSuffix(stmt, ";") {
		return stmt
	}
	return stmt + ";"
}

// columnList joins the column names of attributes
func columnList(attrs []*schema.Attribute) string {
	names := make([]string, len(attrs))
	for i, attr := range attrs {
		names[i] = attr.ColumnName()
	}
	return strings.Join(names, ", ")
}

// resolveIDs resolves attribute ids on table in the given order
func resolveIDs(table *schema.Table, ids []int) ([]*schema.Attribute, error) {
	attrs := make([]*schema.Attribute, 0, len(ids))
	for _, id := range ids {
		attr, err := table.FindAttributeByID(id)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

// ownIDs returns the own side of the key pairs in declared order
func ownIDs(keys []schema.KeyPair) []int {
	ids := make([]int, len(keys))
	for i, key := range keys {
		ids[i] = key.Own
	}
	return ids
}

// foreignIDs returns the foreign side of the key pairs in declared order
func foreignIDs(keys []schema.KeyPair) []int {
	ids := make([]int, len(keys))
	for i, key := range keys {
		ids[i] = key.Foreign
	}
	return ids
}

// checkName returns the constraint name of an attribute check
func checkName(table *schema.Table, attr *schema.Attribute) string {
	return fmt.Sprintf("chk%s_%s", table.TableSQLName(), attr.ColumnName())
}
