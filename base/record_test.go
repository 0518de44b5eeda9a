package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordKeepsInsertionOrder(t *testing.T) {
	record := NewRecord(4)
	record.Set("z", 1)
	record.Set("a", "two")
	record.Set("m", true)

	fields := record.Fields()
	assert.Equal(t, 3, record.Len())
	assert.Equal(t, []Field{
		{Key: "z", Value: 1},
		{Key: "a", Value: "two"},
		{Key: "m", Value: true},
	}, fields)
}

func TestRecordReplaceInPlace(t *testing.T) {
	record := NewRecord(2)
	record.Set("first", 1)
	record.Set("second", 2)
	record.Set("first", 10)

	assert.Equal(t, 2, record.Len())
	assert.Equal(t, "first", record.Fields()[0].Key)
	assert.Equal(t, 10, record.Fields()[0].Value)
}

func TestRecordGet(t *testing.T) {
	record := NewRecord(1)
	record.Set("msg", "hello")

	value, found := record.Get("msg")
	assert.True(t, found)
	assert.Equal(t, "hello", value)

	_, found = record.Get("missing")
	assert.False(t, found)
}

func TestRecordFromMapSortsKeys(t *testing.T) {
	record := RecordFromMap(map[string]interface{}{
		"c": 3,
		"a": 1,
		"b": 2,
	})
	assert.Equal(t, []Field{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
	}, record.Fields())
}
