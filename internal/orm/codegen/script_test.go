package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

func TestScriptGenerator_CreateScript(t *testing.T) {
	dict := newAddressDictionary(t)
	gen := NewScriptGenerator(dict, zaptest.NewLogger(t))

	var buf bytes.Buffer
	require.NoError(t, gen.CreateScript(&buf))
	script := buf.String()

	assertOrdered(t, script,
		"CREATE TABLE Countries (",
		"CREATE TABLE Person (",
		"CREATE TABLE Address (",
		"ADD CONSTRAINT refAddress2Person",
		"ADD CONSTRAINT refAddress2Countries FOREIGN KEY (Country) REFERENCES Countries (ID);",
		"VALUES (1, 'Germany');",
	)
}

func TestScriptGenerator_DropScript(t *testing.T) {
	dict := newAddressDictionary(t)
	gen := NewScriptGenerator(dict, nil)

	var buf bytes.Buffer
	require.NoError(t, gen.DropScript(&buf))

	assertOrdered(t, buf.String(),
		"ALTER TABLE Address DROP CONSTRAINT refAddress2Countries;",
		"DELETE FROM Address;",
		"DROP TABLE Address;",
		"DROP TABLE Person;",
		"DROP TABLE Countries;",
	)
}

func TestScriptGenerator_Views(t *testing.T) {
	b := newAddressBuilder()
	b.AddTable(schema.TableDef{Name: "AAView", Kind: schema.EntityView}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "Name", Datatype: "String", Length: 100}).
		AddPostConditions("SELECT Name FROM Person")
	dict, err := b.Build()
	require.NoError(t, err)
	gen := NewScriptGenerator(dict, zaptest.NewLogger(t))

	var create bytes.Buffer
	require.NoError(t, gen.CreateScript(&create))
	assertOrdered(t, create.String(), "CREATE TABLE Address (", "refAddress2Countries", "CREATE VIEW AAView AS")

	var drop bytes.Buffer
	require.NoError(t, gen.DropScript(&drop))
	assertOrdered(t, drop.String(), "DROP VIEW AAView;", "DROP TABLE Address;")
}

func TestScriptGenerator_StatementsScript(t *testing.T) {
	dict := newAddressDictionary(t)
	gen := NewScriptGenerator(dict, zaptest.NewLogger(t))

	var buf bytes.Buffer
	require.NoError(t, gen.StatementsScript(&buf))
	script := buf.String()

	assert.Contains(t, script, "-- SelectAddress_All\nSELECT ID, AddressType, Street, Country FROM Address;\n\n")
	assert.Contains(t, script, "-- SelectCountries_UnqCountriesDenotation\n")
	assert.Contains(t, script, "-- DeletePerson_Detail\nDELETE FROM Person WHERE ID = ?;\n\n")
	assertOrdered(t, script, "-- SelectAddress_All", "-- SelectCountries_All", "-- SelectPerson_All")
}

func TestScriptGenerator_CycleAbortsScript(t *testing.T) {
	b := addBaseTypes(schema.NewBuilder("Cyclic"))
	b.AddTable(schema.TableDef{Name: "A"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", Primary: true}).
		AddReference(schema.Reference{Name: "A2B", Kind: schema.RefGeneralization, Target: "B",
			Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}})
	b.AddTable(schema.TableDef{Name: "B"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", Primary: true}).
		AddReference(schema.Reference{Name: "B2A", Kind: schema.RefComposition, Target: "A",
			Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}})
	dict, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = NewScriptGenerator(dict, zaptest.NewLogger(t)).CreateScript(&buf)
	assert.ErrorIs(t, err, schema.ErrCycleDetected)
	assert.Empty(t, buf.String())
}

// assertOrdered checks that every fragment occurs in s after the previous one
func assertOrdered(t *testing.T, s string, fragments ...string) {
	t.Helper()
	pos := 0
	for _, fragment := range fragments {
		idx := strings.Index(s[pos:], fragment)
		if !assert.GreaterOrEqual(t, idx, 0, "missing %q after offset %d", fragment, pos) {
			return
		}
		pos += idx + len(fragment)
	}
}
