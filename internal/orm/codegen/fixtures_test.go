package codegen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

func addBaseTypes(b *schema.Builder) *schema.Builder {
	return b.
		AddDataType(schema.Datatype{Name: "Integer", DBType: "INT", SourceType: "int"}).
		AddDataType(schema.Datatype{Name: "String", DBType: "VARCHAR", UseLength: true, SourceType: "std::string"}).
		AddDataType(schema.Datatype{Name: "Decimal", DBType: "DECIMAL", UseLength: true, UseScale: true, SourceType: "double"}).
		AddDataType(schema.Datatype{Name: "Percent", DBType: "DECIMAL", UseLength: true, UseScale: true,
			CheckTemplate: "%column% BETWEEN 0 AND 100", SourceType: "double"})
}

// newAddressBuilder assembles Countries, Person and Address, where Address
// is composed into Person and associated with Countries
func newAddressBuilder() *schema.Builder {
	b := addBaseTypes(schema.NewBuilder("Sample"))

	b.AddTable(schema.TableDef{Name: "Countries", Kind: schema.EntityRange}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "Denotation", Datatype: "String", Length: 50, NotNull: true}).
		AddIndex(schema.Index{Name: "CountriesDenotation", Kind: schema.IndexKey,
			Columns: []schema.IndexColumn{{Attribute: 2, Ascending: true}}}).
		AddRangeValues(
			"INSERT INTO Countries (ID, Denotation) VALUES (1, 'Germany')",
			"INSERT INTO Countries (ID, Denotation) VALUES (2, 'France');",
		)

	b.AddTable(schema.TableDef{Name: "Person"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "Name", Datatype: "String", Length: 100, NotNull: true})

	b.AddTable(schema.TableDef{Name: "Address"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "AddressType", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "Street", Datatype: "String", Length: 100}).
		AddAttribute(schema.AttributeDef{ID: 4, Name: "Country", Datatype: "Integer"}).
		AddReference(schema.Reference{Name: "Address2Person", Kind: schema.RefComposition, Target: "Person",
			Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}}).
		AddReference(schema.Reference{Name: "Address2Countries", Kind: schema.RefAssociation, Target: "Countries",
			Keys: []schema.KeyPair{{Own: 4, Foreign: 1}}}).
		AddCleanupStatements("DELETE FROM Address")

	return b
}

func newAddressDictionary(t *testing.T) *schema.Dictionary {
	t.Helper()
	dict, err := newAddressBuilder().Build()
	require.NoError(t, err)
	return dict
}

// newItemDictionary holds one table exercising every check and computed
// column shape
func newItemDictionary(t *testing.T) *schema.Dictionary {
	t.Helper()
	b := addBaseTypes(schema.NewBuilder("Items"))
	b.AddTable(schema.TableDef{Name: "Item"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true, Check: "ID > 0"}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "Price", Datatype: "Decimal", Length: 10, Scale: 2, NotNull: true, Init: "0", Check: "(Price >= 0)"}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "Discount", Datatype: "Decimal", Length: 10, Scale: 2, Check: "[Discount <= Price]"}).
		AddAttribute(schema.AttributeDef{ID: 4, Name: "Rate", Datatype: "Percent", Length: 5, Scale: 2}).
		AddAttribute(schema.AttributeDef{ID: 5, Name: "Net", Datatype: "Decimal", Computed: "{Price - Discount}"}).
		AddAttribute(schema.AttributeDef{ID: 6, Name: "Gross", Datatype: "Decimal", Computed: "Price * 1.19"}).
		AddAttribute(schema.AttributeDef{ID: 7, Name: "Tax", Datatype: "Decimal", Computed: "(Price * 0.19)"}).
		AddAttribute(schema.AttributeDef{ID: 8, Name: "Margin", Datatype: "Decimal", Computed: "[Price - Discount]"})

	dict, err := b.Build()
	require.NoError(t, err)
	return dict
}

func mustTable(t *testing.T, dict *schema.Dictionary, name string) *schema.Table {
	t.Helper()
	table, err := dict.FindTable(name)
	require.NoError(t, err)
	return table
}
