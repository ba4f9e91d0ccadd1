package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeItem(t *testing.T, blob string) RawItem {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(blob), &m))
	return RawItem(m)
}

func TestString_MissingKey(t *testing.T) {
	item := decodeItem(t, `{}`)
	assert.Equal(t, "", item.String("id"))
}

func TestString_NumericValue(t *testing.T) {
	item := decodeItem(t, `{"id": 7041997751718137094}`)
	assert.Equal(t, "7041997751718137094", item.String("id"))
}

func TestInt_NumericString(t *testing.T) {
	item := decodeItem(t, `{"diggCount": "1234"}`)
	assert.Equal(t, int64(1234), item.Int("diggCount"))
}

func TestInt_PaddedNumericString(t *testing.T) {
	item := decodeItem(t, `{"diggCount": " 42 "}`)
	assert.Equal(t, int64(42), item.Int("diggCount"))
}

func TestInt_NonNumericString(t *testing.T) {
	item := decodeItem(t, `{"diggCount": "N/A"}`)
	assert.Equal(t, int64(0), item.Int("diggCount"))
}

func TestInt_MissingKey(t *testing.T) {
	item := decodeItem(t, `{}`)
	assert.Equal(t, int64(0), item.Int("diggCount"))
}

func TestInt_WrongType(t *testing.T) {
	item := decodeItem(t, `{"diggCount": {"nested": true}}`)
	assert.Equal(t, int64(0), item.Int("diggCount"))
}

func TestBool_Variants(t *testing.T) {
	item := decodeItem(t, `{"a": true, "b": 1, "c": "true", "d": 0, "e": "nope"}`)
	assert.True(t, item.Bool("a"))
	assert.True(t, item.Bool("b"))
	assert.True(t, item.Bool("c"))
	assert.False(t, item.Bool("d"))
	assert.False(t, item.Bool("e"))
	assert.False(t, item.Bool("missing"))
}

func TestMap_MissingAndWrongType(t *testing.T) {
	item := decodeItem(t, `{"stats": "not-an-object"}`)
	assert.Nil(t, item.Map("stats"))
	assert.Nil(t, item.Map("missing"))
	// Indexing a nil map is still safe.
	assert.Equal(t, int64(0), item.Map("missing").Int("diggCount"))
}

func TestList_SkipsNonObjects(t *testing.T) {
	item := decodeItem(t, `{"challenges": [{"id": "1"}, "garbage", {"id": "2"}]}`)
	list := item.List("challenges")
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].String("id"))
	assert.Equal(t, "2", list[1].String("id"))
}

func TestStrings_SkipsNonStrings(t *testing.T) {
	item := decodeItem(t, `{"urlList": ["a", 3, "b"]}`)
	assert.Equal(t, []string{"a", "b"}, item.Strings("urlList"))
}

func TestHas(t *testing.T) {
	item := decodeItem(t, `{"cursor": null}`)
	assert.True(t, item.Has("cursor"))
	assert.False(t, item.Has("hasMore"))
}
