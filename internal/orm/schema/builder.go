package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Builder assembles a Dictionary. Errors are recorded as they happen and
// reported together by Build.
type Builder struct {
	name    string
	project Project

	datatypes   map[string]*Datatype
	tables      map[string]*Table
	namespaces  map[string]*Namespace
	directories map[string]*Directory

	errors []error
	built  bool
}

// NewBuilder creates a builder for a dictionary with the given name
func NewBuilder(name string) *Builder {
	return &Builder{
		name:        name,
		datatypes:   make(map[string]*Datatype),
		tables:      make(map[string]*Table),
		namespaces:  make(map[string]*Namespace),
		directories: make(map[string]*Directory),
		errors:      make([]error, 0),
	}
}

// Name returns the dictionary name
func (b *Builder) Name() string {
	return b.name
}

// SetProject sets the project metadata
func (b *Builder) SetProject(project Project) *Builder {
	if b.checkOpen() {
		b.project = project
	}
	return b
}

// AddDataType registers a datatype
func (b *Builder) AddDataType(dt Datatype) *Builder {
	if !b.checkOpen() {
		return b
	}
	if _, exists := b.datatypes[dt.Name]; exists {
		b.errors = append(b.errors, DuplicateKey(b.name, "datatype", dt.Name))
		return b
	}
	b.datatypes[dt.Name] = &dt
	return b
}

// AddNameSpace registers a namespace
func (b *Builder) AddNameSpace(ns Namespace) *Builder {
	if !b.checkOpen() {
		return b
	}
	if _, exists := b.namespaces[ns.Name]; exists {
		b.errors = append(b.errors, DuplicateKey(b.name, "namespace", ns.Name))
		return b
	}
	b.namespaces[ns.Name] = &ns
	return b
}

// AddDirectory registers a directory
func (b *Builder) AddDirectory(dir Directory) *Builder {
	if !b.checkOpen() {
		return b
	}
	if _, exists := b.directories[dir.Name]; exists {
		b.errors = append(b.errors, DuplicateKey(b.name, "directory", dir.Name))
		return b
	}
	b.directories[dir.Name] = &dir
	return b
}

// TableDef describes a table without its attributes, references and indices
type TableDef struct {
	Name       string
	Kind       EntityKind
	SQLName    string
	SQLSchema  string
	SourceName string
	Namespace  string
	SourcePath string
	SQLPath    string
	DocPath    string

	Denotation  string
	Description string
	Comment     string
}

// AddTable registers a table and returns a handle to fill it. A duplicate
// name is recorded and the returned handle writes to a detached table.
func (b *Builder) AddTable(def TableDef) *TableBuilder {
	table := &Table{
		Name:        def.Name,
		Kind:        def.Kind,
		SQLName:     def.SQLName,
		SQLSchema:   def.SQLSchema,
		SourceName:  def.SourceName,
		Namespace:   def.Namespace,
		SourcePath:  def.SourcePath,
		SQLPath:     def.SQLPath,
		DocPath:     def.DocPath,
		Denotation:  def.Denotation,
		Description: def.Description,
		Comment:     def.Comment,
		dictionary:  b.name,
	}
	if table.Kind == EntityUndefined {
		table.Kind = EntityTable
	}

	tb := &TableBuilder{builder: b, table: table}
	if !b.checkOpen() {
		return tb
	}
	if _, exists := b.tables[def.Name]; exists {
		b.errors = append(b.errors, DuplicateKey(b.name, "table", def.Name))
		return tb
	}
	b.tables[def.Name] = table
	return tb
}

// Table returns the builder handle of an already added table
func (b *Builder) Table(name string) (*TableBuilder, error) {
	table, exists := b.tables[name]
	if !exists {
		return nil, NotFound(b.name, "table", name)
	}
	return &TableBuilder{builder: b, table: table}, nil
}

// Errors returns the errors recorded so far
func (b *Builder) Errors() []error {
	return b.errors
}

// Build validates the assembled schema and freezes it into a Dictionary
func (b *Builder) Build() (*Dictionary, error) {
	if b.built {
		return nil, fmt.Errorf("dictionary %s: %w", b.name, ErrFrozen)
	}

	if len(b.errors) > 0 {
		return nil, joinErrors(b.name, b.errors)
	}

	dict := &Dictionary{
		name:        b.name,
		project:     b.project,
		datatypes:   b.datatypes,
		tables:      b.tables,
		namespaces:  b.namespaces,
		directories: b.directories,
	}
	dict.tableNames = make([]string, 0, len(dict.tables))
	for name := range dict.tables {
		dict.tableNames = append(dict.tableNames, name)
	}
	sort.Strings(dict.tableNames)

	validator := NewValidator(dict)
	if errs := validator.Validate(); len(errs) > 0 {
		return nil, joinErrors(b.name, errs)
	}

	dict.graph = newTableGraph(dict)
	b.built = true

	return dict, nil
}

// MustBuild is like Build but panics on error. It is meant for seed code
// whose schema is fixed at compile time.
func (b *Builder) MustBuild() *Dictionary {
	dict, err := b.Build()
	if err != nil {
		panic(err)
	}
	return dict
}

func (b *Builder) checkOpen() bool {
	if b.built {
		b.errors = append(b.errors, fmt.Errorf("dictionary %s: %w", b.name, ErrFrozen))
		return false
	}
	return true
}

// joinErrors keeps errors.Is working on every recorded error
func joinErrors(name string, errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, "  "+err.Error())
	}
	return &BuildError{
		Dictionary: name,
		Errors:     errs,
		msg:        fmt.Sprintf("dictionary %s failed with %d errors:\n%s", name, len(errs), strings.Join(msgs, "\n")),
	}
}

// BuildError aggregates the errors found while building a dictionary
type BuildError struct {
	Dictionary string
	Errors     []error
	msg        string
}

// Error implements the error interface
func (e *BuildError) Error() string {
	return e.msg
}

// Unwrap exposes the aggregated errors to errors.Is and errors.As
func (e *BuildError) Unwrap() []error {
	return e.Errors
}

// TableBuilder fills a table during assembly
type TableBuilder struct {
	builder *Builder
	table   *Table
}

// Name returns the table name
func (tb *TableBuilder) Name() string {
	return tb.table.Name
}

// AttributeDef describes an attribute with raw check and computed text.
// The text is classified by its outer brackets, see ClassifyExpression.
type AttributeDef struct {
	ID       int
	Name     string
	DBName   string
	Datatype string
	Length   int
	Scale    int
	NotNull  bool
	Primary  bool
	Check    string
	Init     string
	Computed string

	Denotation  string
	Description string
	Comment     string
}

// AddAttribute appends an attribute to the table
func (tb *TableBuilder) AddAttribute(def AttributeDef) *TableBuilder {
	if !tb.builder.checkOpen() {
		return tb
	}
	for _, existing := range tb.table.Attributes {
		if existing.ID == def.ID {
			tb.builder.errors = append(tb.builder.errors,
				newError(ErrDuplicateKey, tb.builder.name, "attribute", fmt.Sprintf("#%d", def.ID), "table "+tb.table.Name))
			return tb
		}
		if existing.Name == def.Name {
			tb.builder.errors = append(tb.builder.errors,
				newError(ErrDuplicateKey, tb.builder.name, "attribute", def.Name, "table "+tb.table.Name))
			return tb
		}
	}

	check := ClassifyExpression(def.Check)
	computed := ClassifyExpression(def.Computed)

	tb.table.Attributes = append(tb.table.Attributes, &Attribute{
		ID:          def.ID,
		Name:        def.Name,
		DBName:      def.DBName,
		Datatype:    def.Datatype,
		Length:      def.Length,
		Scale:       def.Scale,
		NotNull:     def.NotNull,
		Primary:     def.Primary,
		Check:       check.Text,
		CheckKind:   check.CheckKind(),
		Init:        def.Init,
		Computed:    computed.Text,
		CalcKind:    computed.CalcKind(),
		Denotation:  def.Denotation,
		Description: def.Description,
		Comment:     def.Comment,
	})
	return tb
}

// AddReference appends a reference to the table
func (tb *TableBuilder) AddReference(ref Reference) *TableBuilder {
	if !tb.builder.checkOpen() {
		return tb
	}
	if _, err := tb.table.FindReference(ref.Name); err == nil {
		tb.builder.errors = append(tb.builder.errors,
			newError(ErrDuplicateKey, tb.builder.name, "reference", ref.Name, "table "+tb.table.Name))
		return tb
	}
	ref.Keys = append([]KeyPair(nil), ref.Keys...)
	tb.table.References = append(tb.table.References, &ref)
	return tb
}

// AddIndex appends an index to the table
func (tb *TableBuilder) AddIndex(idx Index) *TableBuilder {
	if !tb.builder.checkOpen() {
		return tb
	}
	if _, err := tb.table.FindIndex(idx.Name); err == nil {
		tb.builder.errors = append(tb.builder.errors,
			newError(ErrDuplicateKey, tb.builder.name, "index", idx.Name, "table "+tb.table.Name))
		return tb
	}
	idx.Columns = append([]IndexColumn(nil), idx.Columns...)
	tb.table.Indices = append(tb.table.Indices, &idx)
	return tb
}

// AddRangeValues appends seed statements
func (tb *TableBuilder) AddRangeValues(stmts ...string) *TableBuilder {
	if tb.builder.checkOpen() {
		tb.table.RangeValues = append(tb.table.RangeValues, stmts...)
	}
	return tb
}

// AddPostConditions appends post-condition statements. For views they form
// the view body.
func (tb *TableBuilder) AddPostConditions(stmts ...string) *TableBuilder {
	if tb.builder.checkOpen() {
		tb.table.PostConditions = append(tb.table.PostConditions, stmts...)
	}
	return tb
}

// AddCleanupStatements appends statements run before the table is dropped
func (tb *TableBuilder) AddCleanupStatements(stmts ...string) *TableBuilder {
	if tb.builder.checkOpen() {
		tb.table.CleanupStatements = append(tb.table.CleanupStatements, stmts...)
	}
	return tb
}
