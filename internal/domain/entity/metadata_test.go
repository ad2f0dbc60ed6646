package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_UnmarshalKinds(t *testing.T) {
	var m Metadata
	raw := `{"order":"SO-1","weight":12.3456789012345678,"fragile":true,"note":null,"tags":["a", "b"],"dims":{"w": 1}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	s, ok := m["order"].AsString()
	assert.True(t, ok)
	assert.Equal(t, "SO-1", s)

	d, ok := m["weight"].AsDecimal()
	assert.True(t, ok)
	assert.Equal(t, "12.3456789012345678", d.String())

	b, ok := m["fragile"].AsBool()
	assert.True(t, ok && b)

	assert.Equal(t, MetaNull, m["note"].Kind())

	tags, ok := m["tags"].Raw()
	assert.True(t, ok)
	assert.JSONEq(t, `["a","b"]`, string(tags))
	assert.Equal(t, `["a","b"]`, string(tags))

	assert.Equal(t, MetaJSON, m["dims"].Kind())
}

func TestMetadata_MarshalPreservesValues(t *testing.T) {
	m := Metadata{
		"qty":  NumberValue(decimal.RequireFromString("0.10")),
		"ok":   BoolValue(false),
		"name": StringValue("caja"),
	}
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"qty":0.10,"ok":false,"name":"caja"}`, string(out))
}

func TestMetadata_InvalidNumber(t *testing.T) {
	var v MetaValue
	assert.Error(t, v.UnmarshalJSON([]byte("1e")))
}

func TestMetadata_CloneAndOrEmpty(t *testing.T) {
	var nilMeta Metadata
	assert.NotNil(t, nilMeta.OrEmpty())
	assert.Nil(t, nilMeta.Clone())

	m := Metadata{"a": StringValue("x")}
	c := m.Clone()
	c["a"] = StringValue("y")
	got, _ := m["a"].AsString()
	assert.Equal(t, "x", got)
}

func TestParseMovementType(t *testing.T) {
	mt, err := ParseMovementType("waste")
	require.NoError(t, err)
	assert.Equal(t, MovementTypeWaste, mt)

	_, err = ParseMovementType("robo")
	assert.Error(t, err)
}
