package seed

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/codegen"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

func TestSample_Builds(t *testing.T) {
	dict, err := Sample()
	require.NoError(t, err)

	assert.Equal(t, SampleName, dict.Name())
	assert.Equal(t, 8, dict.Count())
	assert.Len(t, dict.NameSpaces(), 2)
	assert.Len(t, dict.Directories(), 3)
	assert.Equal(t, "1.0", dict.Project().Version)
}

func TestSample_TopologicalSequence(t *testing.T) {
	dict, err := Sample()
	require.NoError(t, err)

	order, err := dict.TopologicalSequence()
	require.NoError(t, err)
	require.Len(t, order, dict.Count())

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	for _, dependent := range []string{"Address", "Phones", "Passport", "Employee"} {
		assert.Less(t, pos["Person"], pos[dependent], dependent)
	}
	assert.Less(t, pos["Countries"], pos["Address"])
}

func TestSample_PartOfs(t *testing.T) {
	dict, err := Sample()
	require.NoError(t, err)
	person, err := dict.FindTable("Person")
	require.NoError(t, err)

	parts, err := dict.GetPartOfs(person, schema.RefComposition)
	require.NoError(t, err)
	require.Len(t, parts, 3)

	byTable := make(map[string]schema.PartOf)
	for _, part := range parts {
		byTable[part.Table.Name] = part
	}
	assert.Equal(t, "map<int, Phone>", byTable["Phones"].TypeName())
	assert.Equal(t, "phones", byTable["Phones"].Variable)
	assert.Equal(t, schema.ContainerValue, byTable["Passport"].Container)
	assert.Equal(t, "passport", byTable["Passport"].Variable)
	assert.Equal(t, schema.ContainerMap, byTable["Address"].Container)
}

func TestSample_Scripts(t *testing.T) {
	dict, err := Sample()
	require.NoError(t, err)
	gen := codegen.NewScriptGenerator(dict, nil)

	var create, drop, statements bytes.Buffer
	require.NoError(t, gen.CreateScript(&create))
	require.NoError(t, gen.DropScript(&drop))
	require.NoError(t, gen.StatementsScript(&statements))

	assert.Contains(t, create.String(),
		"ALTER TABLE Address ADD CONSTRAINT refAddress2Countries FOREIGN KEY (Country) REFERENCES Countries (ID);")
	assert.Contains(t, create.String(), "ALTER TABLE Employee ADD YearlySalary AS (Salary * 12) PERSISTED;")
	assert.Contains(t, create.String(), "CREATE VIEW PersonAddresses AS\n")
	assert.Contains(t, drop.String(), "DROP VIEW PersonAddresses;")
	assert.Contains(t, statements.String(), "-- SelectEmployee_UnqEmployeeNumber\n")
}
