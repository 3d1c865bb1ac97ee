package loader

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/codegen"
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

func TestLoadFile(t *testing.T) {
	dict, err := LoadFile(filepath.Join("testdata", "address.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Sample", dict.Name())
	assert.Equal(t, []string{"Address", "Countries", "Person"}, dict.TableNames())
	assert.Equal(t, "1.0", dict.Project().Version)

	countries, err := dict.FindTable("Countries")
	require.NoError(t, err)
	assert.Equal(t, schema.EntityRange, countries.Kind)
	assert.Len(t, countries.RangeValues, 1)

	person, err := dict.FindTable("Person")
	require.NoError(t, err)
	name, err := person.FindAttribute("Name")
	require.NoError(t, err)
	assert.Equal(t, schema.CheckAttribute, name.CheckKind)
	assert.Equal(t, "LEN(Name) > 0", name.Check)
	require.Len(t, person.Indices, 1)
	assert.Equal(t, schema.IndexNonClustered, person.Indices[0].Kind)
	assert.False(t, person.Indices[0].Columns[0].Ascending)

	dir, err := dict.FindDirectory("sql")
	require.NoError(t, err)
	assert.Equal(t, "build/sql", dir.Path)
}

func TestLoadFile_AddressScenario(t *testing.T) {
	dict, err := LoadFile(filepath.Join("testdata", "address.yaml"))
	require.NoError(t, err)

	order, err := dict.TopologicalSequence()
	require.NoError(t, err)
	assert.Equal(t, []string{"Countries", "Person", "Address"}, order)

	address, err := dict.FindTable("Address")
	require.NoError(t, err)
	stmts, err := codegen.NewConstraintGenerator(dict).GenerateForeignKeys(address)
	require.NoError(t, err)
	assert.Contains(t, stmts,
		"ALTER TABLE Address ADD CONSTRAINT refAddress2Countries FOREIGN KEY (Country) REFERENCES Countries (ID);")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing name",
			input:   "tables: []\n",
			wantErr: schema.ErrInvalid,
			wantMsg: "no dictionary name",
		},
		{
			name:    "unknown key",
			input:   "name: X\nfoo: bar\n",
			wantMsg: "field foo not found",
		},
		{
			name: "unknown reference kind",
			input: `name: X
tables:
  - name: A
    references:
      - { name: A2B, kind: inheritance, target: B }
`,
			wantMsg: "reference A2B",
		},
		{
			name: "unknown column order",
			input: `name: X
tables:
  - name: A
    indices:
      - name: AIdx
        columns:
          - { attribute: 1, order: sideways }
`,
			wantMsg: "sideways",
		},
		{
			name: "duplicate table",
			input: `name: X
datatypes:
  - { name: Integer, db_type: INT }
tables:
  - name: A
    attributes:
      - { id: 1, name: ID, datatype: Integer, primary: true }
  - name: A
`,
			wantErr: schema.ErrDuplicateKey,
			wantMsg: `"A"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading seed file")
}
