// Package loader reads dictionary seed files. A seed file is a YAML
// document replaying the builder calls that assemble a dictionary.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

type yamlFile struct {
	Name        string          `yaml:"name"`
	Project     yamlProject     `yaml:"project"`
	Datatypes   []yamlDatatype  `yaml:"datatypes"`
	Namespaces  []yamlNamespace `yaml:"namespaces"`
	Directories []yamlDirectory `yaml:"directories"`
	Tables      []yamlTable     `yaml:"tables"`
}

type yamlProject struct {
	Name                 string `yaml:"name"`
	Version              string `yaml:"version"`
	Description          string `yaml:"description"`
	SQLPath              string `yaml:"sql_path"`
	SourcePath           string `yaml:"source_path"`
	DocPath              string `yaml:"doc_path"`
	BaseClass            string `yaml:"base_class"`
	BaseNamespace        string `yaml:"base_namespace"`
	PersistenceClass     string `yaml:"persistence_class"`
	PersistenceNamespace string `yaml:"persistence_namespace"`
}

type yamlDatatype struct {
	Name          string `yaml:"name"`
	DBType        string `yaml:"db_type"`
	UseLength     bool   `yaml:"use_length"`
	UseScale      bool   `yaml:"use_scale"`
	CheckTemplate string `yaml:"check"`
	SourceType    string `yaml:"source_type"`
	Header        string `yaml:"header"`
	Prefix        string `yaml:"prefix"`
	Comment       string `yaml:"comment"`
}

type yamlNamespace struct {
	Name        string `yaml:"name"`
	Denotation  string `yaml:"denotation"`
	Description string `yaml:"description"`
}

type yamlDirectory struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
}

type yamlTable struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	SQLName     string `yaml:"sql_name"`
	SQLSchema   string `yaml:"sql_schema"`
	SourceName  string `yaml:"source_name"`
	Namespace   string `yaml:"namespace"`
	SourcePath  string `yaml:"source_path"`
	SQLPath     string `yaml:"sql_path"`
	DocPath     string `yaml:"doc_path"`
	Denotation  string `yaml:"denotation"`
	Description string `yaml:"description"`
	Comment     string `yaml:"comment"`

	Attributes        []yamlAttribute `yaml:"attributes"`
	References        []yamlReference `yaml:"references"`
	Indices           []yamlIndex     `yaml:"indices"`
	RangeValues       []string        `yaml:"range_values"`
	PostConditions    []string        `yaml:"post_conditions"`
	CleanupStatements []string        `yaml:"cleanup_statements"`
}

type yamlAttribute struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	DBName      string `yaml:"db_name"`
	Datatype    string `yaml:"datatype"`
	Length      int    `yaml:"length"`
	Scale       int    `yaml:"scale"`
	NotNull     bool   `yaml:"not_null"`
	Primary     bool   `yaml:"primary"`
	Check       string `yaml:"check"`
	Init        string `yaml:"init"`
	Computed    string `yaml:"computed"`
	Denotation  string `yaml:"denotation"`
	Description string `yaml:"description"`
	Comment     string `yaml:"comment"`
}

type yamlReference struct {
	Name             string        `yaml:"name"`
	Kind             string        `yaml:"kind"`
	Target           string        `yaml:"target"`
	Description      string        `yaml:"description"`
	Cardinality      string        `yaml:"cardinality"`
	DisplayAttribute int           `yaml:"display_attribute"`
	Comment          string        `yaml:"comment"`
	Keys             []yamlKeyPair `yaml:"keys"`
}

type yamlKeyPair struct {
	Own     int `yaml:"own"`
	Foreign int `yaml:"foreign"`
}

type yamlIndex struct {
	Name    string            `yaml:"name"`
	Kind    string            `yaml:"kind"`
	Comment string            `yaml:"comment"`
	Columns []yamlIndexColumn `yaml:"columns"`
}

type yamlIndexColumn struct {
	Attribute int    `yaml:"attribute"`
	Order     string `yaml:"order"` // asc (default) or desc
}

// LoadFile reads a seed file and builds its dictionary
func LoadFile(filename string) (*schema.Dictionary, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a seed document and builds its dictionary
func Load(r io.Reader) (*schema.Dictionary, error) {
	b, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Decode replays a seed document on a new builder. Unknown keys and
// unknown kind names are errors.
func Decode(r io.Reader) (*schema.Builder, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var yf yamlFile
	if err := dec.Decode(&yf); err != nil {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}
	if strings.TrimSpace(yf.Name) == "" {
		return nil, fmt.Errorf("%w: seed file has no dictionary name", schema.ErrInvalid)
	}

	b := schema.NewBuilder(yf.Name)
	b.SetProject(schema.Project(yf.Project))

	for _, dt := range yf.Datatypes {
		b.AddDataType(schema.Datatype(dt))
	}
	for _, ns := range yf.Namespaces {
		b.AddNameSpace(schema.Namespace(ns))
	}
	for _, dir := range yf.Directories {
		b.AddDirectory(schema.Directory(dir))
	}
	for _, t := range yf.Tables {
		if err := addTable(b, t); err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Name, err)
		}
	}

	return b, nil
}

func addTable(b *schema.Builder, t yamlTable) error {
	kind, err := schema.ParseEntityKind(t.Kind)
	if err != nil {
		return err
	}

	tb := b.AddTable(schema.TableDef{
		Name:        t.Name,
		Kind:        kind,
		SQLName:     t.SQLName,
		SQLSchema:   t.SQLSchema,
		SourceName:  t.SourceName,
		Namespace:   t.Namespace,
		SourcePath:  t.SourcePath,
		SQLPath:     t.SQLPath,
		DocPath:     t.DocPath,
		Denotation:  t.Denotation,
		Description: t.Description,
		Comment:     t.Comment,
	})

	for _, a := range t.Attributes {
		tb.AddAttribute(schema.AttributeDef(a))
	}

	for _, r := range t.References {
		kind, err := schema.ParseReferenceKind(r.Kind)
		if err != nil {
			return fmt.Errorf("reference %s: %w", r.Name, err)
		}
		keys := make([]schema.KeyPair, len(r.Keys))
		for i, k := range r.Keys {
			keys[i] = schema.KeyPair(k)
		}
		tb.AddReference(schema.Reference{
			Name:             r.Name,
			Kind:             kind,
			Target:           r.Target,
			Description:      r.Description,
			Cardinality:      r.Cardinality,
			DisplayAttribute: r.DisplayAttribute,
			Comment:          r.Comment,
			Keys:             keys,
		})
	}

	for _, idx := range t.Indices {
		kind, err := schema.ParseIndexKind(idx.Kind)
		if err != nil {
			return fmt.Errorf("index %s: %w", idx.Name, err)
		}
		cols := make([]schema.IndexColumn, len(idx.Columns))
		for i, c := range idx.Columns {
			ascending, err := parseOrder(c.Order)
			if err != nil {
				return fmt.Errorf("index %s: %w", idx.Name, err)
			}
			cols[i] = schema.IndexColumn{Attribute: c.Attribute, Ascending: ascending}
		}
		tb.AddIndex(schema.Index{Name: idx.Name, Kind: kind, Comment: idx.Comment, Columns: cols})
	}

	tb.AddRangeValues(t.RangeValues...).
		AddPostConditions(t.PostConditions...).
		AddCleanupStatements(t.CleanupStatements...)
	return nil
}

func parseOrder(order string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", "asc":
		return true, nil
	case "desc":
		return false, nil
	default:
		return false, fmt.Errorf("unknown column order %q", order)
	}
}
