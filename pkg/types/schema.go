package types

import "sort"

// Schema is the ordered field set for one object type. It is immutable
// after construction.
type Schema struct {
	typeName string
	fields   []string
}

// NewSchema builds a Schema for typeName. Duplicate and empty field names
// are dropped, as is FieldLinks, which holds a list rather than a string;
// the first occurrence keeps its position.
func NewSchema(typeName string, fields []string) Schema {
	seen := make(map[string]bool, len(fields))
	ordered := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || f == FieldLinks || seen[f] {
			continue
		}
		seen[f] = true
		ordered = append(ordered, f)
	}
	return Schema{typeName: typeName, fields: ordered}
}

// TypeName returns the object type this schema describes.
func (s Schema) TypeName() string { return s.typeName }

// Fields returns a copy of the declared field names in order.
func (s Schema) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Declares reports whether field is part of the schema.
func (s Schema) Declares(field string) bool {
	for _, f := range s.fields {
		if f == field {
			return true
		}
	}
	return false
}

// Undeclared returns the sorted attribute names that the schema does not
// declare. Create drops these.
func (s Schema) Undeclared(attrs map[string]string) []string {
	var out []string
	for k := range attrs {
		if !s.Declares(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
