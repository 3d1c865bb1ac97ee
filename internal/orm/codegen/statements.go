package codegen

import (
	"fmt"
	"strings"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// QueryType identifies a parameterized statement derived from a table
type QueryType int

const (
	QuerySelectAll QueryType = iota
	QuerySelectByPrimaryKey
	QuerySelectByUniqueIndex
	QuerySelectByIndex
	QuerySelectByReference
	QuerySelectByReverseReference
	QueryInsert
	QueryUpdateAll
	QueryUpdateWithoutPrimaryKey
	QueryDeleteAll
	QueryDeleteByPrimaryKey
)

var queryTypeNames = map[QueryType]string{
	QuerySelectAll:                "select_all",
	QuerySelectByPrimaryKey:       "select_by_primary_key",
	QuerySelectByUniqueIndex:      "select_by_unique_index",
	QuerySelectByIndex:            "select_by_index",
	QuerySelectByReference:        "select_by_reference",
	QuerySelectByReverseReference: "select_by_reverse_reference",
	QueryInsert:                   "insert",
	QueryUpdateAll:                "update_all",
	QueryUpdateWithoutPrimaryKey:  "update_without_primary_key",
	QueryDeleteAll:                "delete_all",
	QueryDeleteByPrimaryKey:       "delete_by_primary_key",
}

// statementNames maps each query type to its name template. {table} is
// the table name, {name} the index or reference name.
var statementNames = map[QueryType]string{
	QuerySelectAll:                "Select{table}_All",
	QuerySelectByPrimaryKey:       "Select{table}_Detail",
	QuerySelectByUniqueIndex:      "Select{table}_Unq{name}",
	QuerySelectByIndex:            "Select{table}_Idx{name}",
	QuerySelectByReference:        "Select{table}_Ref{name}",
	QuerySelectByReverseReference: "Select{table}_Rev{name}",
	QueryInsert:                   "Insert{table}",
	QueryUpdateAll:                "Update{table}_All",
	QueryUpdateWithoutPrimaryKey:  "Update{table}_WithoutPK",
	QueryDeleteAll:                "Delete{table}_All",
	QueryDeleteByPrimaryKey:       "Delete{table}_Detail",
}

// String returns the snake case name of the query type
func (q QueryType) String() string {
	if name, ok := queryTypeNames[q]; ok {
		return name
	}
	return fmt.Sprintf("QueryType(%d)", int(q))
}

// ParseQueryType parses a snake case query type name
func ParseQueryType(s string) (QueryType, error) {
	for q, name := range queryTypeNames {
		if strings.EqualFold(name, s) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown query type %q", s)
}

// NeedsName reports whether the query type addresses an index or reference
func (q QueryType) NeedsName() bool {
	switch q {
	case QuerySelectByUniqueIndex, QuerySelectByIndex, QuerySelectByReference, QuerySelectByReverseReference:
		return true
	default:
		return false
	}
}

// QueryRequest pairs a query type with the index or reference it addresses
type QueryRequest struct {
	Type QueryType
	Name string
}

// QueryGenerator derives statement names and bodies from table metadata
type QueryGenerator struct {
	dict *schema.Dictionary
}

// NewQueryGenerator creates a new query generator
func NewQueryGenerator(dict *schema.Dictionary) *QueryGenerator {
	return &QueryGenerator{dict: dict}
}

// StatementName renders the statement name of a query. The index or
// reference named by name must exist when the query type addresses one.
func (g *QueryGenerator) StatementName(q QueryType, table *schema.Table, name string) (string, error) {
	tmpl, ok := statementNames[q]
	if !ok {
		return "", fmt.Errorf("%w: query type %d", schema.ErrInvalid, int(q))
	}

	switch q {
	case QuerySelectByUniqueIndex, QuerySelectByIndex:
		if _, err := g.findIndex(q, table, name); err != nil {
			return "", err
		}
	case QuerySelectByReference, QuerySelectByReverseReference:
		if _, err := table.FindReference(name); err != nil {
			return "", err
		}
	}

	return strings.NewReplacer("{table}", table.Name, "{name}", name).Replace(tmpl), nil
}

// Body renders the statement text of a query without the terminating
// semicolon
func (g *QueryGenerator) Body(q QueryType, table *schema.Table, name string) (string, error) {
	switch q {
	case QuerySelectAll:
		return g.selectWhere(table, nil)

	case QuerySelectByPrimaryKey:
		pk, err := g.primaryKey(table, q)
		if err != nil {
			return "", err
		}
		return g.selectWhere(table, pk)

	case QuerySelectByUniqueIndex, QuerySelectByIndex:
		idx, err := g.findIndex(q, table, name)
		if err != nil {
			return "", err
		}
		cols, err := indexColumns(table, idx)
		if err != nil {
			return "", err
		}
		return g.selectWhere(table, cols)

	case QuerySelectByReference:
		ref, err := table.FindReference(name)
		if err != nil {
			return "", err
		}
		own, err := resolveIDs(table, ownIDs(ref.Keys))
		if err != nil {
			return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
		}
		if len(own) == 0 {
			return "", schema.EmptyResult(g.dict.Name(), "reference", ref.Name, "table "+table.Name+": no key pairs")
		}
		return g.selectWhere(table, own)

	case QuerySelectByReverseReference:
		return g.reverseReference(table, name)

	case QueryInsert:
		cols := writableColumns(table, false)
		if len(cols) == 0 {
			return "", g.emptyResult(table, q)
		}
		params := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table.FullSQLName(), columnList(cols), params), nil

	case QueryUpdateAll, QueryUpdateWithoutPrimaryKey:
		pk, err := g.primaryKey(table, q)
		if err != nil {
			return "", err
		}
		cols := writableColumns(table, q == QueryUpdateWithoutPrimaryKey)
		if len(cols) == 0 {
			return "", g.emptyResult(table, q)
		}
		return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
			table.FullSQLName(), predicate(cols, "", ", "), predicate(pk, "", " AND ")), nil

	case QueryDeleteAll:
		return "DELETE FROM " + table.FullSQLName(), nil

	case QueryDeleteByPrimaryKey:
		pk, err := g.primaryKey(table, q)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("DELETE FROM %s WHERE %s", table.FullSQLName(), predicate(pk, "", " AND ")), nil
	}

	return "", fmt.Errorf("%w: query type %d", schema.ErrInvalid, int(q))
}

// Requests lists every query applicable to the table in generation order
func (g *QueryGenerator) Requests(table *schema.Table) []QueryRequest {
	if len(table.Attributes) == 0 {
		return nil
	}
	requests := []QueryRequest{{Type: QuerySelectAll}}
	if table.IsView() {
		return requests
	}

	hasPK := len(table.PrimaryKey()) > 0
	if hasPK {
		requests = append(requests, QueryRequest{Type: QuerySelectByPrimaryKey})
	}
	for _, idx := range table.Indices {
		requests = append(requests, QueryRequest{Type: indexQuery(idx), Name: idx.Name})
	}
	for _, ref := range table.References {
		if len(ref.Keys) == 0 {
			continue
		}
		requests = append(requests, QueryRequest{Type: QuerySelectByReference, Name: ref.Name})
		if hasPK {
			requests = append(requests, QueryRequest{Type: QuerySelectByReverseReference, Name: ref.Name})
		}
	}
	if len(writableColumns(table, false)) > 0 {
		requests = append(requests, QueryRequest{Type: QueryInsert})
	}
	if hasPK && len(writableColumns(table, false)) > 0 {
		requests = append(requests, QueryRequest{Type: QueryUpdateAll})
		if len(writableColumns(table, true)) > 0 {
			requests = append(requests, QueryRequest{Type: QueryUpdateWithoutPrimaryKey})
		}
	}
	requests = append(requests, QueryRequest{Type: QueryDeleteAll})
	if hasPK {
		requests = append(requests, QueryRequest{Type: QueryDeleteByPrimaryKey})
	}
	return requests
}

// indexQuery returns the select query type matching the kind of idx
func indexQuery(idx *schema.Index) QueryType {
	if idx.Kind == schema.IndexKey || idx.Kind == schema.IndexUnique {
		return QuerySelectByUniqueIndex
	}
	return QuerySelectByIndex
}

// findIndex looks up the index addressed by an index query and checks that
// its uniqueness matches the query type
func (g *QueryGenerator) findIndex(q QueryType, table *schema.Table, name string) (*schema.Index, error) {
	idx, err := table.FindIndex(name)
	if err != nil {
		return nil, err
	}
	if indexQuery(idx) != q {
		return nil, fmt.Errorf("%w: %s index %s.%s cannot serve %s", schema.ErrInvalid, idx.Kind, table.Name, idx.Name, q)
	}
	return idx, nil
}

func (g *QueryGenerator) selectWhere(table *schema.Table, where []*schema.Attribute) (string, error) {
	if len(table.Attributes) == 0 {
		return "", schema.EmptyResult(g.dict.Name(), "table", table.Name, "no columns to select")
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s", columnList(table.Attributes), table.FullSQLName())
	if len(where) > 0 {
		stmt += " WHERE " + predicate(where, "", " AND ")
	}
	return stmt, nil
}

// reverseReference selects the rows of the reference target that belong to
// one row of the referencing table
func (g *QueryGenerator) reverseReference(table *schema.Table, name string) (string, error) {
	ref, err := table.FindReference(name)
	if err != nil {
		return "", err
	}
	target, err := g.dict.FindTable(ref.Target)
	if err != nil {
		return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
	}
	pk, err := g.primaryKey(table, QuerySelectByReverseReference)
	if err != nil {
		return "", err
	}
	own, err := resolveIDs(table, ownIDs(ref.Keys))
	if err != nil {
		return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
	}
	foreign, err := resolveIDs(target, foreignIDs(ref.Keys))
	if err != nil {
		return "", fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err)
	}
	if len(own) == 0 {
		return "", schema.EmptyResult(g.dict.Name(), "reference", ref.Name, "table "+table.Name+": no key pairs")
	}

	src, tgt := table.FullSQLName(), target.FullSQLName()
	cols := make([]string, len(target.Attributes))
	for i, attr := range target.Attributes {
		cols[i] = tgt + "." + attr.ColumnName()
	}
	joins := make([]string, len(own))
	for i := range own {
		joins[i] = fmt.Sprintf("%s.%s = %s.%s", tgt, foreign[i].ColumnName(), src, own[i].ColumnName())
	}

	return fmt.Sprintf("SELECT %s FROM %s INNER JOIN %s ON %s WHERE %s",
		strings.Join(cols, ", "), tgt, src, strings.Join(joins, " AND "), predicate(pk, src+".", " AND ")), nil
}

func (g *QueryGenerator) primaryKey(table *schema.Table, q QueryType) ([]*schema.Attribute, error) {
	pk := table.PrimaryKey()
	if len(pk) == 0 {
		return nil, schema.EmptyResult(g.dict.Name(), "table", table.Name, q.String()+": no primary key")
	}
	return pk, nil
}

func (g *QueryGenerator) emptyResult(table *schema.Table, q QueryType) error {
	return schema.EmptyResult(g.dict.Name(), "table", table.Name, q.String()+": no writable columns")
}

// writableColumns returns the attributes that take part in INSERT and
// UPDATE, skipping computed columns and optionally the primary key
func writableColumns(table *schema.Table, withoutPK bool) []*schema.Attribute {
	var cols []*schema.Attribute
	for _, attr := range table.Attributes {
		if attr.IsComputed() || (withoutPK && attr.Primary) {
			continue
		}
		cols = append(cols, attr)
	}
	return cols
}

// predicate renders "<prefix><col> = ?" terms joined by sep
func predicate(attrs []*schema.Attribute, prefix, sep string) string {
	terms := make([]string, len(attrs))
	for i, attr := range attrs {
		terms[i] = prefix + attr.ColumnName() + " = ?"
	}
	return strings.Join(terms, sep)
}
