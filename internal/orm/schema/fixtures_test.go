package schema

func addBaseTypes(b *Builder) *Builder {
	return b.
		AddDataType(Datatype{Name: "Integer", DBType: "INT", SourceType: "int"}).
		AddDataType(Datatype{Name: "String", DBType: "VARCHAR", UseLength: true, SourceType: "std::string", Header: "<string>"}).
		AddDataType(Datatype{Name: "Decimal", DBType: "DECIMAL", UseLength: true, UseScale: true, SourceType: "double"})
}

// newAddressBuilder assembles Countries, Person and Address, where Address
// is composed into Person and associated with Countries
func newAddressBuilder() *Builder {
	b := addBaseTypes(NewBuilder("Sample"))

	b.AddTable(TableDef{Name: "Countries", Kind: EntityRange}).
		AddAttribute(AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(AttributeDef{ID: 2, Name: "Denotation", Datatype: "String", Length: 50, NotNull: true}).
		AddIndex(Index{Name: "CountriesDenotation", Kind: IndexKey, Columns: []IndexColumn{{Attribute: 2, Ascending: true}}})

	b.AddTable(TableDef{Name: "Person"}).
		AddAttribute(AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(AttributeDef{ID: 2, Name: "Name", Datatype: "String", Length: 100, NotNull: true})

	b.AddTable(TableDef{Name: "Address"}).
		AddAttribute(AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(AttributeDef{ID: 2, Name: "AddressType", Datatype: "Integer", NotNull: true, Primary: true}).
		AddAttribute(AttributeDef{ID: 3, Name: "Street", Datatype: "String", Length: 100}).
		AddAttribute(AttributeDef{ID: 4, Name: "Country", Datatype: "Integer"}).
		AddReference(Reference{Name: "Address2Person", Kind: RefComposition, Target: "Person",
			Keys: []KeyPair{{Own: 1, Foreign: 1}}}).
		AddReference(Reference{Name: "Address2Countries", Kind: RefAssociation, Target: "Countries",
			Keys: []KeyPair{{Own: 4, Foreign: 1}}})

	return b
}

// idTable adds a table with a single integer primary key
func idTable(b *Builder, name, namespace string) *TableBuilder {
	return b.AddTable(TableDef{Name: name, Namespace: namespace}).
		AddAttribute(AttributeDef{ID: 1, Name: "ID", Datatype: "Integer", NotNull: true, Primary: true})
}

func generalization(name, target string) Reference {
	return Reference{Name: name, Kind: RefGeneralization, Target: target, Keys: []KeyPair{{Own: 1, Foreign: 1}}}
}

func composition(name, target string) Reference {
	return Reference{Name: name, Kind: RefComposition, Target: target, Keys: []KeyPair{{Own: 1, Foreign: 1}}}
}
