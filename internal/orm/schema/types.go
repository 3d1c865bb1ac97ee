// Package schema provides the relational metadata model of a data dictionary.
// It defines datatypes, tables, attributes, references and indices, the
// builder used to assemble them, and the dependency analysis that orders
// tables for DDL generation.
package schema

import (
	"fmt"
	"strings"
)

// EntityKind classifies a table
type EntityKind int

const (
	EntityUndefined EntityKind = iota
	EntityTable
	EntityRange
	EntityRelationship
	EntityView
)

// String returns the string representation of the entity kind
func (k EntityKind) String() string {
	switch k {
	case EntityTable:
		return "table"
	case EntityRange:
		return "range"
	case EntityRelationship:
		return "relationship"
	case EntityView:
		return "view"
	default:
		return "undefined"
	}
}

// ParseEntityKind converts a string to an EntityKind
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(s) {
	case "", "undefined":
		return EntityUndefined, nil
	case "table":
		return EntityTable, nil
	case "range":
		return EntityRange, nil
	case "relationship":
		return EntityRelationship, nil
	case "view":
		return EntityView, nil
	default:
		return 0, fmt.Errorf("unknown entity kind: %s", s)
	}
}

// ReferenceKind represents the kind of a reference between tables
type ReferenceKind int

const (
	RefUndefined ReferenceKind = iota
	RefGeneralization
	RefRange
	RefAssociation
	RefAggregation
	RefComposition
)

// String returns the string representation of the reference kind
func (k ReferenceKind) String() string {
	switch k {
	case RefGeneralization:
		return "generalization"
	case RefRange:
		return "range"
	case RefAssociation:
		return "association"
	case RefAggregation:
		return "aggregation"
	case RefComposition:
		return "composition"
	default:
		return "undefined"
	}
}

// ParseReferenceKind converts a string to a ReferenceKind
func ParseReferenceKind(s string) (ReferenceKind, error) {
	switch strings.ToLower(s) {
	case "", "undefined":
		return RefUndefined, nil
	case "generalization":
		return RefGeneralization, nil
	case "range":
		return RefRange, nil
	case "association":
		return RefAssociation, nil
	case "aggregation":
		return RefAggregation, nil
	case "composition":
		return RefComposition, nil
	default:
		return 0, fmt.Errorf("unknown reference kind: %s", s)
	}
}

// IndexKind represents the kind of an index
type IndexKind int

const (
	IndexUndefined IndexKind = iota
	IndexKey
	IndexUnique
	IndexClustered
	IndexNonClustered
)

// String returns the string representation of the index kind
func (k IndexKind) String() string {
	switch k {
	case IndexKey:
		return "key"
	case IndexUnique:
		return "unique"
	case IndexClustered:
		return "clustered"
	case IndexNonClustered:
		return "nonclustered"
	default:
		return "undefined"
	}
}

// ParseIndexKind converts a string to an IndexKind
func ParseIndexKind(s string) (IndexKind, error) {
	switch strings.ToLower(s) {
	case "", "undefined":
		return IndexUndefined, nil
	case "key":
		return IndexKey, nil
	case "unique":
		return IndexUnique, nil
	case "clustered":
		return IndexClustered, nil
	case "nonclustered":
		return IndexNonClustered, nil
	default:
		return 0, fmt.Errorf("unknown index kind: %s", s)
	}
}

// CheckKind tells where a check expression is enforced
type CheckKind int

const (
	CheckUndefined CheckKind = iota
	CheckDirect
	CheckAttribute
	CheckTable
)

// String returns the string representation of the check kind
func (k CheckKind) String() string {
	switch k {
	case CheckDirect:
		return "direct"
	case CheckAttribute:
		return "attribute"
	case CheckTable:
		return "table"
	default:
		return "undefined"
	}
}

// CalcKind tells where a computed expression lives and whether it is persisted
type CalcKind int

const (
	CalcUndefined CalcKind = iota
	CalcInlineAttribute
	CalcPersistedAttribute
	CalcInlineTable
	CalcPersistedTable
)

// String returns the string representation of the calc kind
func (k CalcKind) String() string {
	switch k {
	case CalcInlineAttribute:
		return "inline_attribute"
	case CalcPersistedAttribute:
		return "persisted_attribute"
	case CalcInlineTable:
		return "inline_table"
	case CalcPersistedTable:
		return "persisted_table"
	default:
		return "undefined"
	}
}

// IsTableLevel reports whether the computed column is added by ALTER TABLE
func (k CalcKind) IsTableLevel() bool {
	return k == CalcInlineTable || k == CalcPersistedTable
}

// IsPersisted reports whether the computed column is persisted
func (k CalcKind) IsPersisted() bool {
	return k == CalcPersistedAttribute || k == CalcPersistedTable
}

// Datatype maps a logical datatype to its storage type and source type
type Datatype struct {
	Name          string
	DBType        string
	UseLength     bool
	UseScale      bool
	CheckTemplate string // may contain %column%
	SourceType    string
	Header        string
	Prefix        string
	Comment       string
}

// Attribute is a column of a table
type Attribute struct {
	ID       int
	Name     string
	DBName   string
	Datatype string
	Length   int
	Scale    int
	NotNull  bool
	Primary  bool

	Check     string
	CheckKind CheckKind
	Init      string
	Computed  string
	CalcKind  CalcKind

	Denotation  string
	Description string
	Comment     string
}

// ColumnName returns the database column name of the attribute
func (a *Attribute) ColumnName() string {
	if a.DBName != "" {
		return a.DBName
	}
	return a.Name
}

// IsComputed reports whether the attribute has a computed expression
func (a *Attribute) IsComputed() bool {
	return a.CalcKind != CalcUndefined
}

// KeyPair joins an own attribute to an attribute of the referenced table
type KeyPair struct {
	Own     int
	Foreign int
}

// Reference is a typed, directed edge to another table, resolved by name
type Reference struct {
	Name             string
	Kind             ReferenceKind
	Target           string
	Description      string
	Cardinality      string
	DisplayAttribute int
	Comment          string
	Keys             []KeyPair
}

// IndexColumn is an attribute of an index with its sort direction
type IndexColumn struct {
	Attribute int
	Ascending bool
}

// Index is a named ordered set of attributes
type Index struct {
	Name    string
	Kind    IndexKind
	Comment string
	Columns []IndexColumn
}

// Table is an entity of the dictionary
type Table struct {
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

	Attributes        []*Attribute
	References        []*Reference
	Indices           []*Index
	RangeValues       []string
	PostConditions    []string
	CleanupStatements []string

	dictionary string
}

// TableSQLName returns the SQL name of the table without schema
func (t *Table) TableSQLName() string {
	if t.SQLName != "" {
		return t.SQLName
	}
	return t.Name
}

// FullSQLName returns the schema qualified SQL name of the table
func (t *Table) FullSQLName() string {
	if t.SQLSchema != "" {
		return t.SQLSchema + "." + t.TableSQLName()
	}
	return t.TableSQLName()
}

// FindAttribute returns the attribute with the given name
func (t *Table) FindAttribute(name string) (*Attribute, error) {
	for _, attr := range t.Attributes {
		if attr.Name == name {
			return attr, nil
		}
	}
	return nil, NotFoundIn(t.dictionary, "attribute", name, "table "+t.Name)
}

// FindAttributeByID returns the attribute with the given id
func (t *Table) FindAttributeByID(id int) (*Attribute, error) {
	for _, attr := range t.Attributes {
		if attr.ID == id {
			return attr, nil
		}
	}
	return nil, NotFoundIn(t.dictionary, "attribute", fmt.Sprintf("#%d", id), "table "+t.Name)
}

// FindReference returns the reference with the given name
func (t *Table) FindReference(name string) (*Reference, error) {
	for _, ref := range t.References {
		if ref.Name == name {
			return ref, nil
		}
	}
	return nil, NotFoundIn(t.dictionary, "reference", name, "table "+t.Name)
}

// FindIndex returns the index with the given name
func (t *Table) FindIndex(name string) (*Index, error) {
	for _, idx := range t.Indices {
		if idx.Name == name {
			return idx, nil
		}
	}
	return nil, NotFoundIn(t.dictionary, "index", name, "table "+t.Name)
}

// PrimaryKey returns the primary attributes in declaration order
func (t *Table) PrimaryKey() []*Attribute {
	var pk []*Attribute
	for _, attr := range t.Attributes {
		if attr.Primary {
			pk = append(pk, attr)
		}
	}
	return pk
}

// IsView reports whether the table is a view
func (t *Table) IsView() bool {
	return t.Kind == EntityView
}

// clone returns a deep copy of the table
func (t *Table) clone() *Table {
	c := *t

	c.Attributes = make([]*Attribute, len(t.Attributes))
	for i, attr := range t.Attributes {
		a := *attr
		c.Attributes[i] = &a
	}
	c.References = make([]*Reference, len(t.References))
	for i, ref := range t.References {
		r := *ref
		r.Keys = append([]KeyPair(nil), ref.Keys...)
		c.References[i] = &r
	}
	c.Indices = make([]*Index, len(t.Indices))
	for i, idx := range t.Indices {
		x := *idx
		x.Columns = append([]IndexColumn(nil), idx.Columns...)
		c.Indices[i] = &x
	}
	c.RangeValues = append([]string(nil), t.RangeValues...)
	c.PostConditions = append([]string(nil), t.PostConditions...)
	c.CleanupStatements = append([]string(nil), t.CleanupStatements...)

	return &c
}

// Namespace groups tables for generated source code
type Namespace struct {
	Name        string
	Denotation  string
	Description string
}

// Directory describes an output location
type Directory struct {
	Name        string
	Path        string
	Description string
}

// Project holds the project level metadata of a dictionary
type Project struct {
	Name        string
	Version     string
	Description string

	SQLPath    string
	SourcePath string
	DocPath    string

	BaseClass            string
	BaseNamespace        string
	PersistenceClass     string
	PersistenceNamespace string
}
