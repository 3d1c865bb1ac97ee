package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

func TestConstraintGenerator_PrimaryKey(t *testing.T) {
	dict := newAddressDictionary(t)
	gen := NewConstraintGenerator(dict)

	assert.Equal(t, "ALTER TABLE Address ADD CONSTRAINT pkAddress PRIMARY KEY (ID, AddressType);",
		gen.GeneratePrimaryKey(mustTable(t, dict, "Address")))
	assert.Equal(t, "ALTER TABLE Countries ADD CONSTRAINT pkCountries PRIMARY KEY (ID);",
		gen.GeneratePrimaryKey(mustTable(t, dict, "Countries")))
}

func TestConstraintGenerator_PrimaryKeyEmptyWithoutPrimaryAttributes(t *testing.T) {
	b := addBaseTypes(schema.NewBuilder("Views"))
	b.AddTable(schema.TableDef{Name: "Names", Kind: schema.EntityView}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "Name", Datatype: "String", Length: 20}).
		AddPostConditions("SELECT 'x' AS Name")
	dict, err := b.Build()
	require.NoError(t, err)

	assert.Empty(t, NewConstraintGenerator(dict).GeneratePrimaryKey(mustTable(t, dict, "Names")))
}

func TestConstraintGenerator_ForeignKeys(t *testing.T) {
	dict := newAddressDictionary(t)
	gen := NewConstraintGenerator(dict)

	stmts, err := gen.GenerateForeignKeys(mustTable(t, dict, "Address"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ALTER TABLE Address ADD CONSTRAINT refAddress2Person FOREIGN KEY (ID) REFERENCES Person (ID);",
		"ALTER TABLE Address ADD CONSTRAINT refAddress2Countries FOREIGN KEY (Country) REFERENCES Countries (ID);",
	}, stmts)

	stmts, err = gen.GenerateForeignKeys(mustTable(t, dict, "Person"))
	require.NoError(t, err)
	assert.Empty(t, stmts)

	assert.Equal(t, []string{
		"ALTER TABLE Address DROP CONSTRAINT refAddress2Person;",
		"ALTER TABLE Address DROP CONSTRAINT refAddress2Countries;",
	}, gen.GenerateDropForeignKeys(mustTable(t, dict, "Address")))
}

func TestConstraintGenerator_ForeignKeyFollowsKeyPairOrder(t *testing.T) {
	b := addBaseTypes(schema.NewBuilder("Pairs"))
	b.AddTable(schema.TableDef{Name: "Pair"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "A", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "B", Datatype: "Integer", NotNull: true, Primary: true})
	b.AddTable(schema.TableDef{Name: "Link"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "PB", Datatype: "Integer"}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "PA", Datatype: "Integer"}).
		AddReference(schema.Reference{Name: "Link2Pair", Kind: schema.RefAssociation, Target: "Pair",
			Keys: []schema.KeyPair{{Own: 3, Foreign: 1}, {Own: 2, Foreign: 2}}})
	dict, err := b.Build()
	require.NoError(t, err)

	stmts, err := NewConstraintGenerator(dict).GenerateForeignKeys(mustTable(t, dict, "Link"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "ALTER TABLE Link ADD CONSTRAINT refLink2Pair FOREIGN KEY (PA, PB) REFERENCES Pair (A, B);", stmts[0])
}

func TestConstraintGenerator_UniqueKeys(t *testing.T) {
	dict := newAddressDictionary(t)
	gen := NewConstraintGenerator(dict)

	stmts, err := gen.GenerateUniqueKeys(mustTable(t, dict, "Countries"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ALTER TABLE Countries ADD CONSTRAINT ukCountriesDenotation UNIQUE (Denotation);"}, stmts)
}

func TestConstraintGenerator_CheckConstraints(t *testing.T) {
	dict := newItemDictionary(t)

	assert.Equal(t, []string{
		"ALTER TABLE Item ADD CONSTRAINT chkItem_Discount CHECK (Discount <= Price);",
	}, NewConstraintGenerator(dict).GenerateCheckConstraints(mustTable(t, dict, "Item")))
}
