package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/cli/ui"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/codegen"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand() *cobra.Command {
	var (
		query string
		name  string
	)

	cmd := &cobra.Command{
		Use:   "inspect [table]",
		Short: "Show dictionary and table metadata",
		Long: `Without arguments, list the tables, datatypes and namespaces of the
dictionary. With a table name, show its attributes, references, indices,
dependencies and the tables composed into it.

--query prints one statement of the table. Query types:
  select_all, select_by_primary_key, select_by_unique_index, select_by_index,
  select_by_reference, select_by_reverse_reference, insert, update_all,
  update_without_primary_key, delete_all, delete_by_primary_key

Examples:
  datadict inspect
  datadict inspect Address
  datadict inspect Address --query select_by_reference --name Address2Countries`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			out := cmd.OutOrStdout()

			if len(args) == 0 {
				if query != "" {
					return fmt.Errorf("--query requires a table")
				}
				inspectDictionary(out, s)
				return nil
			}

			table, err := s.table(args[0])
			if err != nil {
				return err
			}

			if query != "" {
				return inspectQuery(out, s, table, query, name)
			}
			return inspectTable(out, s, table)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "print one statement of the table")
	cmd.Flags().StringVarP(&name, "name", "n", "", "index or reference addressed by --query")

	return cmd
}

func inspectDictionary(out io.Writer, s *session) {
	project := s.dict.Project()
	stats := s.dict.GetStats()

	ui.Header(out, "Dictionary "+s.dict.Name(), s.noColor)
	kv := ui.NewKeyValueTable(out, s.noColor)
	kv.AddRow("Project", project.Name)
	kv.AddRow("Version", project.Version)
	kv.AddRow("Description", project.Description)
	kv.AddRow("Tables", strconv.Itoa(stats.TotalTables))
	kv.AddRow("Views", strconv.Itoa(stats.TotalViews))
	kv.AddRow("Attributes", strconv.Itoa(stats.TotalAttributes))
	kv.AddRow("References", strconv.Itoa(stats.TotalReferences))
	kv.AddRow("Indices", strconv.Itoa(stats.TotalIndices))
	kv.Render()
	fmt.Fprintln(out)

	tables := ui.NewTable(out, s.noColor, "TABLE", "KIND", "NAMESPACE", "SQL NAME", "ATTRIBUTES", "REFERENCES")
	for _, t := range s.dict.Tables() {
		tables.AddRow(t.Name, t.Kind.String(), t.Namespace, t.FullSQLName(),
			strconv.Itoa(len(t.Attributes)), strconv.Itoa(len(t.References)))
	}
	tables.Render()
	fmt.Fprintln(out)

	types := ui.NewTable(out, s.noColor, "DATATYPE", "DB TYPE", "SOURCE TYPE", "CHECK")
	for _, dt := range s.dict.DataTypes() {
		dbType := dt.DBType
		switch {
		case dt.UseScale:
			dbType += "(len, scale)"
		case dt.UseLength:
			dbType += "(len)"
		}
		types.AddRow(dt.Name, dbType, dt.SourceType, dt.CheckTemplate)
	}
	types.Render()
	fmt.Fprintln(out)

	namespaces := ui.NewSection(out, "Namespaces", s.noColor)
	for _, ns := range s.dict.NameSpaces() {
		namespaces.AddLine("%s  %s", ns.Name, ns.Denotation)
	}
	namespaces.Render()
}

func inspectTable(out io.Writer, s *session, table *schema.Table) error {
	ui.Header(out, "Table "+table.Name, s.noColor)
	kv := ui.NewKeyValueTable(out, s.noColor)
	kv.AddRow("Kind", table.Kind.String())
	kv.AddRow("SQL name", table.FullSQLName())
	kv.AddRow("Source name", table.SourceName)
	kv.AddRow("Namespace", table.Namespace)
	kv.AddRow("Denotation", table.Denotation)
	kv.AddRow("Description", table.Description)
	kv.Render()
	fmt.Fprintln(out)

	items, err := s.dict.GetProcessingData(table)
	if err != nil {
		return s.fail(err)
	}
	attrs := ui.NewTable(out, s.noColor, "ID", "ATTRIBUTE", "TYPE", "SOURCE TYPE", "KEY", "NULL", "CHECK", "COMPUTED")
	for _, item := range items {
		attr := item.Attribute
		key, null := "", "NULL"
		if attr.Primary {
			key = "PK"
		}
		if attr.NotNull {
			null = "NOT NULL"
		}
		check := ""
		if attr.CheckKind != schema.CheckUndefined {
			check = attr.CheckKind.String() + ": " + attr.Check
		}
		computed := ""
		if attr.IsComputed() {
			computed = attr.CalcKind.String() + ": " + attr.Computed
		}
		attrs.AddRow(strconv.Itoa(attr.ID), attr.ColumnName(), item.Datatype.Name, item.Datatype.SourceType,
			key, null, check, computed)
	}
	attrs.Render()
	fmt.Fprintln(out)

	refs := ui.NewSection(out, "References", s.noColor)
	for _, ref := range table.References {
		pairs := make([]string, len(ref.Keys))
		for i, k := range ref.Keys {
			pairs[i] = fmt.Sprintf("%d->%d", k.Own, k.Foreign)
		}
		refs.AddLine("%s  %s -> %s (%s)", ref.Name, ref.Kind, ref.Target, strings.Join(pairs, ", "))
	}
	refs.Render()

	indices := ui.NewSection(out, "Indices", s.noColor)
	for _, idx := range table.Indices {
		indices.AddLine("%s  %s (%d columns)", idx.Name, idx.Kind, len(idx.Columns))
	}
	indices.Render()

	precursors, err := s.dict.GetPrecursors(table, true)
	if err != nil {
		return s.fail(err)
	}
	successors, err := s.dict.GetSuccessors(table, true)
	if err != nil {
		return s.fail(err)
	}
	deps := ui.NewSection(out, "Dependencies", s.noColor)
	deps.AddLine("precursors: %s", listOrNone(precursors))
	deps.AddLine("successors: %s", listOrNone(successors))
	deps.Render()

	parts := ui.NewSection(out, "Composed parts", s.noColor)
	partOfs, err := s.dict.GetPartOfs(table, schema.RefComposition)
	switch {
	case errors.Is(err, schema.ErrNotImplemented):
		parts.AddLine("%s", strings.TrimRight(ui.Warning(err.Error(), s.noColor), "\n"))
	case err != nil:
		return s.fail(err)
	}
	for _, part := range partOfs {
		parts.AddLine("%s %s  (%s via %s)", part.TypeName(), part.Variable, part.Container, part.Reference.Name)
	}
	parts.Render()

	return nil
}

func inspectQuery(out io.Writer, s *session, table *schema.Table, query, name string) error {
	q, err := codegen.ParseQueryType(query)
	if err != nil {
		return err
	}
	if q.NeedsName() && name == "" {
		return fmt.Errorf("query %s needs --name", q)
	}

	sw := codegen.NewStatementWriter(out, s.dict).Use(table.Name).WriteQuery(q, name)
	if err := sw.Err(); err != nil {
		return s.fail(err)
	}
	return nil
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
