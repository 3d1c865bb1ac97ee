// Package seed assembles the built-in sample dictionary used by the
// command line when no seed file is given.
package seed

import (
	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// SampleName is the name of the sample dictionary
const SampleName = "Sample"

// Sample builds and freezes the sample dictionary
func Sample() (*schema.Dictionary, error) {
	return NewSampleBuilder().Build()
}

// NewSampleBuilder assembles a small person/address model: countries as a
// range table, persons with composed addresses, phones and a passport,
// employees generalizing persons and a view over persons.
func NewSampleBuilder() *schema.Builder {
	b := schema.NewBuilder(SampleName)

	b.SetProject(schema.Project{
		Name:                 "Sample",
		Version:              "1.0",
		Description:          "Sample person and address model",
		SQLPath:              "sql",
		SourcePath:           "src",
		DocPath:              "doc",
		BaseClass:            "TBase",
		BaseNamespace:        "model",
		PersistenceClass:     "TPersistence",
		PersistenceNamespace: "storage",
	})

	addDataTypes(b)

	b.AddNameSpace(schema.Namespace{Name: "core", Denotation: "Core", Description: "Master data"}).
		AddNameSpace(schema.Namespace{Name: "hr", Denotation: "Human resources", Description: "Employment data"})

	b.AddDirectory(schema.Directory{Name: "sql", Path: "sql", Description: "Generated SQL scripts"}).
		AddDirectory(schema.Directory{Name: "src", Path: "src", Description: "Generated source code"}).
		AddDirectory(schema.Directory{Name: "doc", Path: "doc", Description: "Generated documentation"})

	addCountries(b)
	addPerson(b)
	addAddress(b)
	addPhones(b)
	addPassport(b)
	addEmployee(b)
	addPersonView(b)

	return b
}

func addDataTypes(b *schema.Builder) {
	b.AddDataType(schema.Datatype{Name: "Integer", DBType: "INT", SourceType: "int"}).
		AddDataType(schema.Datatype{Name: "BigInt", DBType: "BIGINT", SourceType: "long long"}).
		AddDataType(schema.Datatype{Name: "String", DBType: "NVARCHAR", UseLength: true,
			SourceType: "std::string", Header: "<string>", Prefix: "str"}).
		AddDataType(schema.Datatype{Name: "Text", DBType: "NVARCHAR(MAX)", SourceType: "std::string", Header: "<string>"}).
		AddDataType(schema.Datatype{Name: "Decimal", DBType: "DECIMAL", UseLength: true, UseScale: true, SourceType: "double"}).
		AddDataType(schema.Datatype{Name: "Boolean", DBType: "BIT", SourceType: "bool", Prefix: "b"}).
		AddDataType(schema.Datatype{Name: "Date", DBType: "DATE", SourceType: "std::chrono::year_month_day", Header: "<chrono>"}).
		AddDataType(schema.Datatype{Name: "Percent", DBType: "DECIMAL", UseLength: true, UseScale: true,
			CheckTemplate: "%column% BETWEEN 0 AND 100", SourceType: "double"})
}

func addCountries(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "Countries", Kind: schema.EntityRange, Namespace: "core",
		Denotation: "Country", Description: "ISO countries"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true, Denotation: "Id"}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "Denotation", Datatype: "String", Length: 50, NotNull: true}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "ISOCode", Datatype: "String", Length: 2, NotNull: true, Check: "LEN(ISOCode) = 2"}).
		AddIndex(schema.Index{Name: "CountriesDenotation", Kind: schema.IndexKey,
			Columns: []schema.IndexColumn{{Attribute: 2, Ascending: true}}}).
		AddIndex(schema.Index{Name: "CountriesISOCode", Kind: schema.IndexUnique,
			Columns: []schema.IndexColumn{{Attribute: 3, Ascending: true}}}).
		AddRangeValues(
			"INSERT INTO Countries (ID, Denotation, ISOCode) VALUES (1, 'Germany', 'DE')",
			"INSERT INTO Countries (ID, Denotation, ISOCode) VALUES (2, 'France', 'FR')",
			"INSERT INTO Countries (ID, Denotation, ISOCode) VALUES (3, 'Austria', 'AT')",
		)
}

func addPerson(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "Person", Namespace: "core", Denotation: "Person",
		Description: "Natural person"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "FirstName", Datatype: "String", Length: 100}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "Name", Datatype: "String", Length: 100, NotNull: true}).
		AddAttribute(schema.AttributeDef{ID: 4, Name: "Birthday", Datatype: "Date"}).
		AddAttribute(schema.AttributeDef{ID: 5, Name: "FullName", Datatype: "String",
			Computed: "(ISNULL(FirstName + ' ', '') + Name)"}).
		AddIndex(schema.Index{Name: "PersonName", Kind: schema.IndexNonClustered,
			Columns: []schema.IndexColumn{{Attribute: 3, Ascending: true}, {Attribute: 2, Ascending: true}}})
}

func addAddress(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "Address", Namespace: "core", Denotation: "Address",
		Description: "Postal address of a person"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "AddressType", Datatype: "Integer", NotNull: true, Primary: true,
			Check: "[AddressType BETWEEN 1 AND 3]"}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "Street", Datatype: "String", Length: 100}).
		AddAttribute(schema.AttributeDef{ID: 4, Name: "ZipCode", Datatype: "String", Length: 10}).
		AddAttribute(schema.AttributeDef{ID: 5, Name: "City", Datatype: "String", Length: 100}).
		AddAttribute(schema.AttributeDef{ID: 6, Name: "Country", Datatype: "Integer", NotNull: true, Init: "1"}).
		AddReference(schema.Reference{Name: "Address2Person", Kind: schema.RefComposition, Target: "Person",
			Cardinality: "1:n", Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}}).
		AddReference(schema.Reference{Name: "Address2Countries", Kind: schema.RefAssociation, Target: "Countries",
			Cardinality: "n:1", DisplayAttribute: 2, Keys: []schema.KeyPair{{Own: 6, Foreign: 1}}})
}

func addPhones(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "Phones", SourceName: "Phone", Namespace: "core", Denotation: "Phone",
		Description: "Phone numbers of a person"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "PhoneType", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "Number", Datatype: "String", Length: 30, NotNull: true}).
		AddReference(schema.Reference{Name: "Phones2Person", Kind: schema.RefComposition, Target: "Person",
			Cardinality: "1:n", Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}}).
		AddCleanupStatements("DELETE FROM Phones WHERE Number = ''")
}

func addPassport(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "Passport", Namespace: "core", Denotation: "Passport"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "Number", Datatype: "String", Length: 20, NotNull: true}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "ValidUntil", Datatype: "Date"}).
		AddReference(schema.Reference{Name: "Passport2Person", Kind: schema.RefComposition, Target: "Person",
			Cardinality: "1:1", Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}})
}

func addEmployee(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "Employee", Namespace: "hr", Denotation: "Employee",
		Description: "Person employed by the company"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "PersonalNumber", Datatype: "String", Length: 10, NotNull: true}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "Salary", Datatype: "Decimal", Length: 12, Scale: 2, Check: "(Salary >= 0)"}).
		AddAttribute(schema.AttributeDef{ID: 4, Name: "Bonus", Datatype: "Percent", Length: 5, Scale: 2}).
		AddAttribute(schema.AttributeDef{ID: 5, Name: "Active", Datatype: "Boolean", NotNull: true, Init: "1"}).
		AddAttribute(schema.AttributeDef{ID: 6, Name: "YearlySalary", Datatype: "Decimal", Computed: "{Salary * 12}"}).
		AddReference(schema.Reference{Name: "Employee2Person", Kind: schema.RefGeneralization, Target: "Person",
			Cardinality: "1:1", Keys: []schema.KeyPair{{Own: 1, Foreign: 1}}}).
		AddIndex(schema.Index{Name: "EmployeeNumber", Kind: schema.IndexKey,
			Columns: []schema.IndexColumn{{Attribute: 2, Ascending: true}}}).
		AddPostConditions("UPDATE Employee SET Active = 1 WHERE Active IS NULL")
}

func addPersonView(b *schema.Builder) {
	b.AddTable(schema.TableDef{Name: "PersonAddresses", Kind: schema.EntityView, Namespace: "core",
		Description: "Persons with their addresses"}).
		AddAttribute(schema.AttributeDef{ID: 1, Name: "ID", Datatype: "Integer"}).
		AddAttribute(schema.AttributeDef{ID: 2, Name: "Name", Datatype: "String", Length: 100}).
		AddAttribute(schema.AttributeDef{ID: 3, Name: "City", Datatype: "String", Length: 100}).
		AddPostConditions(
			"SELECT p.ID, p.Name, a.City",
			"FROM Person p INNER JOIN Address a ON a.ID = p.ID",
		)
}
