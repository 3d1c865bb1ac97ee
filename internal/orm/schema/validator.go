package schema

import "fmt"

// Validator checks the structural invariants of a dictionary: attribute
// ids, primary keys, datatype names, reference keys and index columns.
// Cycles are reported by TopologicalSequence, not here.
type Validator struct {
	dict   *Dictionary
	errors []error
}

// NewValidator creates a validator for the given dictionary
func NewValidator(dict *Dictionary) *Validator {
	return &Validator{
		dict:   dict,
		errors: make([]error, 0),
	}
}

// Validate runs all checks and returns every violation found
func (v *Validator) Validate() []error {
	v.errors = make([]error, 0)

	for _, table := range v.dict.Tables() {
		v.validateAttributes(table)
		v.validatePrimaryKey(table)
		v.validateReferences(table)
		v.validateIndices(table)
	}

	return v.errors
}

func (v *Validator) validateAttributes(table *Table) {
	for _, attr := range table.Attributes {
		if attr.ID < 1 {
			v.errors = append(v.errors, newError(ErrInvalid, v.dict.name, "attribute", attr.Name,
				fmt.Sprintf("table %s: id must be at least 1, got %d", table.Name, attr.ID)))
		}
		if _, exists := v.dict.datatypes[attr.Datatype]; !exists {
			v.errors = append(v.errors, NotFoundIn(v.dict.name, "datatype", attr.Datatype,
				fmt.Sprintf("attribute %s.%s", table.Name, attr.Name)))
		}
	}
}

// validatePrimaryKey ensures every table except views has a primary key
func (v *Validator) validatePrimaryKey(table *Table) {
	if table.IsView() {
		return
	}
	if len(table.PrimaryKey()) == 0 {
		v.errors = append(v.errors, newError(ErrInvalid, v.dict.name, "table", table.Name,
			"no primary attribute"))
	}
}

func (v *Validator) validateReferences(table *Table) {
	for _, ref := range table.References {
		target, exists := v.dict.tables[ref.Target]
		if !exists {
			v.errors = append(v.errors, NotFoundIn(v.dict.name, "table", ref.Target,
				fmt.Sprintf("reference %s.%s", table.Name, ref.Name)))
			continue
		}
		if len(ref.Keys) == 0 {
			v.errors = append(v.errors, newError(ErrInvalid, v.dict.name, "reference", ref.Name,
				"table "+table.Name+": no key pairs"))
		}
		for _, key := range ref.Keys {
			if _, err := table.FindAttributeByID(key.Own); err != nil {
				v.errors = append(v.errors, fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err))
			}
			if _, err := target.FindAttributeByID(key.Foreign); err != nil {
				v.errors = append(v.errors, fmt.Errorf("reference %s.%s: %w", table.Name, ref.Name, err))
			}
		}
		if ref.DisplayAttribute != 0 {
			if _, err := target.FindAttributeByID(ref.DisplayAttribute); err != nil {
				v.errors = append(v.errors, fmt.Errorf("reference %s.%s display attribute: %w", table.Name, ref.Name, err))
			}
		}
	}
}

func (v *Validator) validateIndices(table *Table) {
	for _, idx := range table.Indices {
		if len(idx.Columns) == 0 {
			v.errors = append(v.errors, newError(ErrInvalid, v.dict.name, "index", idx.Name,
				"table "+table.Name+": no columns"))
		}
		for _, col := range idx.Columns {
			if _, err := table.FindAttributeByID(col.Attribute); err != nil {
				v.errors = append(v.errors, fmt.Errorf("index %s.%s: %w", table.Name, idx.Name, err))
			}
		}
	}
}
