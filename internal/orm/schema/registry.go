package schema

import (
	"sort"
)

// Dictionary is the read-only aggregate root of a built schema. It is
// produced by Builder.Build and never modified afterwards, so it may be
// shared between readers without locking. Lookups hand out copies;
// changing them does not change the dictionary.
type Dictionary struct {
	name    string
	project Project

	datatypes   map[string]*Datatype
	tables      map[string]*Table
	namespaces  map[string]*Namespace
	directories map[string]*Directory

	tableNames []string // sorted
	graph      *tableGraph
}

// Name returns the dictionary name
func (d *Dictionary) Name() string {
	return d.name
}

// Project returns the project metadata
func (d *Dictionary) Project() Project {
	return d.project
}

// FindDataType returns the datatype registered under name
func (d *Dictionary) FindDataType(name string) (*Datatype, error) {
	dt, exists := d.datatypes[name]
	if !exists {
		return nil, NotFound(d.name, "datatype", name)
	}
	c := *dt
	return &c, nil
}

// FindTable returns the table registered under name
func (d *Dictionary) FindTable(name string) (*Table, error) {
	table, exists := d.tables[name]
	if !exists {
		return nil, NotFound(d.name, "table", name)
	}
	return table.clone(), nil
}

// FindNameSpace returns the namespace registered under name
func (d *Dictionary) FindNameSpace(name string) (*Namespace, error) {
	ns, exists := d.namespaces[name]
	if !exists {
		return nil, NotFound(d.name, "namespace", name)
	}
	c := *ns
	return &c, nil
}

// FindDirectory returns the directory registered under name
func (d *Dictionary) FindDirectory(name string) (*Directory, error) {
	dir, exists := d.directories[name]
	if !exists {
		return nil, NotFound(d.name, "directory", name)
	}
	c := *dir
	return &c, nil
}

// Tables returns all tables ordered by name
func (d *Dictionary) Tables() []*Table {
	result := make([]*Table, 0, len(d.tableNames))
	for _, name := range d.tableNames {
		result = append(result, d.tables[name].clone())
	}
	return result
}

// TableNames returns all table names in sorted order
func (d *Dictionary) TableNames() []string {
	names := make([]string, len(d.tableNames))
	copy(names, d.tableNames)
	return names
}

// DataTypes returns all datatypes ordered by name
func (d *Dictionary) DataTypes() []*Datatype {
	return sortedValues(d.datatypes)
}

// NameSpaces returns all namespaces ordered by name
func (d *Dictionary) NameSpaces() []*Namespace {
	return sortedValues(d.namespaces)
}

// Directories returns all directories ordered by name
func (d *Dictionary) Directories() []*Directory {
	return sortedValues(d.directories)
}

// Count returns the number of tables
func (d *Dictionary) Count() int {
	return len(d.tables)
}

// Exists checks if a table exists
func (d *Dictionary) Exists(name string) bool {
	_, exists := d.tables[name]
	return exists
}

// Stats summarizes a dictionary
type Stats struct {
	TotalTables     int
	TotalDatatypes  int
	TotalAttributes int
	TotalReferences int
	TotalIndices    int
	TotalViews      int
}

// GetStats returns statistics about the dictionary
func (d *Dictionary) GetStats() *Stats {
	stats := &Stats{
		TotalTables:    len(d.tables),
		TotalDatatypes: len(d.datatypes),
	}
	for _, table := range d.tables {
		stats.TotalAttributes += len(table.Attributes)
		stats.TotalReferences += len(table.References)
		stats.TotalIndices += len(table.Indices)
		if table.IsView() {
			stats.TotalViews++
		}
	}
	return stats
}

func sortedValues[T any](m map[string]*T) []*T {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := make([]*T, 0, len(keys))
	for _, k := range keys {
		v := *m[k]
		result = append(result, &v)
	}
	return result
}
