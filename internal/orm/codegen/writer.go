package codegen

import (
	"fmt"
	"io"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// StatementWriter appends statement text for one table at a time to a
// sink. Every Write method returns the writer for chaining. The first error
// sticks: later calls are no-ops and Err reports it.
//
//	sw := codegen.NewStatementWriter(w, dict)
//	sw.Use("Address").WriteCreateTable().WritePrimaryKey().WriteForeignKeys()
//	if err := sw.Err(); err != nil { ... }
type StatementWriter struct {
	w    io.Writer
	dict *schema.Dictionary

	ddl         *DDLGenerator
	constraints *ConstraintGenerator
	indexes     *IndexGenerator
	queries     *QueryGenerator

	table *schema.Table
	err   error
}

// NewStatementWriter creates a writer over dict appending to w
func NewStatementWriter(w io.Writer, dict *schema.Dictionary) *StatementWriter {
	return &StatementWriter{
		w:           w,
		dict:        dict,
		ddl:         NewDDLGenerator(dict),
		constraints: NewConstraintGenerator(dict),
		indexes:     NewIndexGenerator(dict),
		queries:     NewQueryGenerator(dict),
	}
}

// Use selects the table the following Write calls operate on
func (sw *StatementWriter) Use(name string) *StatementWriter {
	if sw.err != nil {
		return sw
	}
	table, err := sw.dict.FindTable(name)
	if err != nil {
		sw.err = err
		return sw
	}
	sw.table = table
	return sw
}

// Table returns the current table
func (sw *StatementWriter) Table() *schema.Table {
	return sw.table
}

// Err returns the first error encountered
func (sw *StatementWriter) Err() error {
	return sw.err
}

// WriteCreateTable writes the CREATE TABLE (or CREATE VIEW) statement
func (sw *StatementWriter) WriteCreateTable() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		stmt, err := sw.ddl.GenerateCreateTable(t)
		if err != nil {
			return nil, err
		}
		return []string{stmt}, nil
	})
}

// WriteAlterTable writes the table-level computed columns
func (sw *StatementWriter) WriteAlterTable() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return sw.ddl.GenerateAlterTable(t), nil
	})
}

// WritePrimaryKey writes the primary key constraint, if any
func (sw *StatementWriter) WritePrimaryKey() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		if stmt := sw.constraints.GeneratePrimaryKey(t); stmt != "" {
			return []string{stmt}, nil
		}
		return nil, nil
	})
}

// WriteForeignKeys writes one foreign key per reference
func (sw *StatementWriter) WriteForeignKeys() *StatementWriter {
	return sw.block(sw.constraints.GenerateForeignKeys)
}

// WriteDropForeignKeys writes the statements removing the foreign keys
func (sw *StatementWriter) WriteDropForeignKeys() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return sw.constraints.GenerateDropForeignKeys(t), nil
	})
}

// WriteUniqueKeys writes the unique constraints of key indices
func (sw *StatementWriter) WriteUniqueKeys() *StatementWriter {
	return sw.block(sw.constraints.GenerateUniqueKeys)
}

// WriteCreateIndices writes the CREATE INDEX statements
func (sw *StatementWriter) WriteCreateIndices() *StatementWriter {
	return sw.block(sw.indexes.GenerateIndexes)
}

// WriteCreateCheckConditions writes the table-level check constraints
func (sw *StatementWriter) WriteCreateCheckConditions() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return sw.constraints.GenerateCheckConstraints(t), nil
	})
}

// WriteRangeValues writes the seed statements
func (sw *StatementWriter) WriteRangeValues() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return sw.ddl.GenerateRangeValues(t), nil
	})
}

// WriteCreatePostConditions writes the post condition statements
func (sw *StatementWriter) WriteCreatePostConditions() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return sw.ddl.GeneratePostConditions(t), nil
	})
}

// WriteCleanupStatements writes the cleanup statements
func (sw *StatementWriter) WriteCleanupStatements() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return sw.ddl.GenerateCleanupStatements(t), nil
	})
}

// WriteDropTable writes the DROP TABLE (or DROP VIEW) statement
func (sw *StatementWriter) WriteDropTable() *StatementWriter {
	return sw.block(func(t *schema.Table) ([]string, error) {
		return []string{sw.ddl.GenerateDropTable(t)}, nil
	})
}

// WriteQueryHeader writes the statement name of a query as a comment line
func (sw *StatementWriter) WriteQueryHeader(q QueryType, name string) *StatementWriter {
	if !sw.ready() {
		return sw
	}
	stmtName, err := sw.queries.StatementName(q, sw.table, name)
	if err != nil {
		sw.err = err
		return sw
	}
	return sw.printf("-- %s\n", stmtName)
}

// WriteQueryBody writes the statement text of a query followed by a blank
// line
func (sw *StatementWriter) WriteQueryBody(q QueryType, name string) *StatementWriter {
	if !sw.ready() {
		return sw
	}
	body, err := sw.queries.Body(q, sw.table, name)
	if err != nil {
		sw.err = err
		return sw
	}
	return sw.printf("%s;\n\n", body)
}

// WriteQuery writes header and body of a query
func (sw *StatementWriter) WriteQuery(q QueryType, name string) *StatementWriter {
	return sw.WriteQueryHeader(q, name).WriteQueryBody(q, name)
}

// block writes the generated statements one per line followed by a blank
// line when at least one statement was generated
func (sw *StatementWriter) block(generate func(*schema.Table) ([]string, error)) *StatementWriter {
	if !sw.ready() {
		return sw
	}
	stmts, err := generate(sw.table)
	if err != nil {
		sw.err = err
		return sw
	}
	if len(stmts) == 0 {
		return sw
	}
	for _, stmt := range stmts {
		sw.printf("%s\n", stmt)
	}
	return sw.printf("\n")
}

func (sw *StatementWriter) ready() bool {
	if sw.err != nil {
		return false
	}
	if sw.table == nil {
		sw.err = fmt.Errorf("%w: no table selected", schema.ErrInvalid)
		return false
	}
	return true
}

func (sw *StatementWriter) printf(format string, args ...any) *StatementWriter {
	if sw.err != nil {
		return sw
	}
	if _, err := fmt.Fprintf(sw.w, format, args...); err != nil {
		sw.err = err
	}
	return sw
}
