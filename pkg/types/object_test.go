package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObjectFromSchema(t *testing.T) {
	s := NewSchema("requirement", []string{"Title", "Description"})

	o := NewObjectFromSchema(s, "REQ-1", map[string]string{
		"Title":   "Brakes",
		"Unknown": "dropped",
	})

	assert.Equal(t, []string{"Title", "Description", FieldID}, o.Fields())
	assert.Equal(t, map[string]string{
		"Title":       "Brakes",
		"Description": "",
		FieldID:       "REQ-1",
	}, o.Values())
	assert.Empty(t, o.Links)
}

func TestNewObjectFromSchemaIDFieldWins(t *testing.T) {
	s := NewSchema("requirement", []string{FieldID, "Title"})

	o := NewObjectFromSchema(s, "REQ-1", map[string]string{FieldID: "other"})

	v, ok := o.Get(FieldID)
	require.True(t, ok)
	assert.Equal(t, "REQ-1", v)
	assert.Equal(t, []string{FieldID, "Title"}, o.Fields(), "ID keeps its schema position")
}

func TestObjectAddLink(t *testing.T) {
	o := NewObject("REQ-1")

	assert.True(t, o.AddLink("REQ-2"))
	assert.False(t, o.AddLink("REQ-2"), "second add is a no-op")
	assert.True(t, o.AddLink("REQ-3"))
	assert.Equal(t, []string{"REQ-2", "REQ-3"}, o.Links)
}

func TestObjectTitle(t *testing.T) {
	o := NewObject("REQ-1")
	assert.Equal(t, NoTitle, o.Title())

	o.Set(FieldTitle, "")
	assert.Equal(t, "", o.Title(), "present but empty title is kept")

	o.Set(FieldTitle, "Brakes")
	assert.Equal(t, "Brakes", o.Title())
}

func TestEncodeObjectLayout(t *testing.T) {
	o := NewObjectFromSchema(NewSchema("requirement", []string{"Title", "Description"}), "REQ-1",
		map[string]string{"Title": "Brakes & <pads>"})

	data, err := EncodeObject(o)
	require.NoError(t, err)
	assert.Equal(t, `{
    "Title": "Brakes & <pads>",
    "Description": "",
    "Unique Requirement ID": "REQ-1"
}`, string(data))

	o.AddLink("REQ-2")
	data, err = EncodeObject(o)
	require.NoError(t, err)
	assert.Equal(t, `{
    "Title": "Brakes & <pads>",
    "Description": "",
    "Unique Requirement ID": "REQ-1",
    "links": [
        "REQ-2"
    ]
}`, string(data))
}

func TestDecodeObjectPreservesOrder(t *testing.T) {
	data := []byte(`{"Zeta": "z", "Alpha": "a", "links": ["B", "C", "B"], "Unique Requirement ID": "A"}`)

	o, err := DecodeObject("A", data)
	require.NoError(t, err)
	assert.Equal(t, "A", o.ID)
	assert.Equal(t, []string{"Zeta", "Alpha", FieldID}, o.Fields())
	assert.Equal(t, []string{"B", "C"}, o.Links, "duplicate link entries collapse")
}

func TestDecodeObjectMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{"Title": `},
		{name: "array record", data: `["a"]`},
		{name: "numeric field", data: `{"Title": 3}`},
		{name: "nested field", data: `{"Title": {"x": "y"}}`},
		{name: "links not a list", data: `{"links": "REQ-2"}`},
		{name: "links with numbers", data: `{"links": [1, 2]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeObject("REQ-1", []byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestObjectRoundTripKeepsEditedFields(t *testing.T) {
	o := NewObjectFromSchema(NewSchema("requirement", []string{"Title"}), "REQ-1", nil)
	o.Set("Owner", "ops")
	o.AddLink("REQ-9")

	data, err := EncodeObject(o)
	require.NoError(t, err)

	back, err := DecodeObject("REQ-1", data)
	require.NoError(t, err)
	assert.Equal(t, o.Fields(), back.Fields())
	assert.Equal(t, o.Values(), back.Values())
	assert.Equal(t, o.Links, back.Links)
}
