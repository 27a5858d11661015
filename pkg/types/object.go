package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Reserved record keys.
const (
	// FieldID holds the object's identifier inside its own record.
	FieldID = "Unique Requirement ID"
	// FieldLinks holds the list of linked object IDs.
	FieldLinks = "links"
	// FieldTitle is shown when listing links.
	FieldTitle = "Title"
)

// NoTitle stands in for the title of a record that has none or cannot be read.
const NoTitle = "No title"

// Object is one stored record. Field order is preserved through
// serialization; Links grows append-only and never holds duplicates.
type Object struct {
	// ID is the storage key. It is not serialized separately; the record
	// carries it under FieldID.
	ID string

	Links []string

	order  []string
	values map[string]string
}

// NewObject returns an empty record for id.
func NewObject(id string) *Object {
	return &Object{ID: id, values: make(map[string]string)}
}

// NewObjectFromSchema builds a record whose fields are exactly those the
// schema declares, filled from attrs or "", followed by FieldID.
// Attributes the schema does not declare are dropped.
func NewObjectFromSchema(s Schema, id string, attrs map[string]string) *Object {
	o := NewObject(id)
	for _, f := range s.fields {
		o.Set(f, attrs[f])
	}
	o.Set(FieldID, id)
	return o
}

// Set assigns a field value. New fields are appended after existing ones.
func (o *Object) Set(field, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[field]; !ok {
		o.order = append(o.order, field)
	}
	o.values[field] = value
}

// Get returns a field value and whether it is present.
func (o *Object) Get(field string) (string, bool) {
	v, ok := o.values[field]
	return v, ok
}

// Fields returns the field names in record order.
func (o *Object) Fields() []string {
	out := make([]string, len(o.order))
	copy(out, o.order)
	return out
}

// Values returns a copy of all field values.
func (o *Object) Values() map[string]string {
	out := make(map[string]string, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out
}

// Title returns the Title field, or NoTitle when the record has none.
func (o *Object) Title() string {
	if v, ok := o.values[FieldTitle]; ok {
		return v
	}
	return NoTitle
}

// HasLink reports whether target is in Links.
func (o *Object) HasLink(target string) bool {
	for _, l := range o.Links {
		if l == target {
			return true
		}
	}
	return false
}

// AddLink appends target to Links unless present. It reports whether the
// record changed.
func (o *Object) AddLink(target string) bool {
	if o.HasLink(target) {
		return false
	}
	o.Links = append(o.Links, target)
	return true
}

// MarshalJSON writes fields in record order followed by links, which is
// omitted while empty.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(&buf, f, o.values[f]); err != nil {
			return nil, err
		}
	}
	if len(o.Links) > 0 {
		if len(o.order) > 0 {
			buf.WriteByte(',')
		}
		if err := writeKeyValue(&buf, FieldLinks, o.Links); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKeyValue(buf *bytes.Buffer, key string, value any) error {
	k, err := marshalNoEscape(key)
	if err != nil {
		return err
	}
	v, err := marshalNoEscape(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reads a record, keeping field order. Field values must be
// strings and links must be a list of strings; anything else is
// ErrMalformedRecord. ID is left untouched.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("%w: record is not a JSON object", ErrMalformedRecord)
	}

	o.order = nil
	o.values = make(map[string]string)
	o.Links = nil

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		key, _ := tok.(string)

		if key == FieldLinks {
			var links []string
			if err := dec.Decode(&links); err != nil {
				return fmt.Errorf("%w: %q must be a list of strings", ErrMalformedRecord, FieldLinks)
			}
			for _, l := range links {
				o.AddLink(l)
			}
			continue
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: field %q is not a string", ErrMalformedRecord, key)
		}
		o.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return nil
}

// EncodeObject serializes a record the way it is stored: indented JSON with
// four spaces.
func EncodeObject(o *Object) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("encoding object %q: %w", o.ID, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// DecodeObject parses a stored record and sets its ID to key.
func DecodeObject(key string, data []byte) (*Object, error) {
	o := NewObject(key)
	if err := json.Unmarshal(data, o); err != nil {
		if errors.Is(err, ErrMalformedRecord) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	o.ID = key
	return o, nil
}
