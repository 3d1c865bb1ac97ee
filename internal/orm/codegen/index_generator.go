package codegen

import (
	"fmt"
	"strings"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// IndexGenerator generates CREATE INDEX statements
type IndexGenerator struct {
	dict *schema.Dictionary
}

// NewIndexGenerator creates a new index generator
func NewIndexGenerator(dict *schema.Dictionary) *IndexGenerator {
	return &IndexGenerator{dict: dict}
}

// GenerateIndexes generates one CREATE INDEX per index that is not a key.
// Keys become unique constraints, see GenerateUniqueKeys.
func (g *IndexGenerator) GenerateIndexes(table *schema.Table) ([]string, error) {
	var stmts []string
	for _, idx := range table.Indices {
		if idx.Kind == schema.IndexKey {
			continue
		}
		stmt, err := g.generateIndex(table, idx)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (g *IndexGenerator) generateIndex(table *schema.Table, idx *schema.Index) (string, error) {
	attrs, err := indexColumns(table, idx)
	if err != nil {
		return "", err
	}

	cols := make([]string, len(attrs))
	for i, attr := range attrs {
		direction := "ASC"
		if !idx.Columns[i].Ascending {
			direction = "DESC"
		}
		cols[i] = attr.ColumnName() + " " + direction
	}

	return fmt.Sprintf("CREATE %sINDEX idx%s ON %s (%s);",
		indexModifier(idx.Kind), idx.Name, table.FullSQLName(), strings.Join(cols, ", ")), nil
}

func indexModifier(kind schema.IndexKind) string {
	switch kind {
	case schema.IndexUnique:
		return "UNIQUE "
	case schema.IndexClustered:
		return "CLUSTERED "
	case schema.IndexNonClustered:
		return "NONCLUSTERED "
	default:
		return ""
	}
}
