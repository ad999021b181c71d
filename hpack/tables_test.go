package hpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindStaticTable(t *testing.T) {
	tbl := newHeaderTable()

	idx, exact := tbl.find(":method", "GET")
	assert.Equal(t, 2, idx)
	assert.True(t, exact)

	idx, exact = tbl.find(":path", "/")
	assert.Equal(t, 4, idx)
	assert.True(t, exact)

	// Name-only match picks the lowest static index carrying the name.
	idx, exact = tbl.find(":method", "PUT")
	assert.Equal(t, 2, idx)
	assert.False(t, exact)

	idx, _ = tbl.find("x-nowhere", "")
	assert.Equal(t, 0, idx)
}

func TestFindDynamicTable(t *testing.T) {
	tbl := newHeaderTable()
	tbl.add(Header{Name: "x-a", Value: "1"})
	tbl.add(Header{Name: "x-a", Value: "2"})

	// Newest entry sits at the first dynamic index.
	idx, exact := tbl.find("x-a", "2")
	assert.Equal(t, 62, idx)
	assert.True(t, exact)

	idx, exact = tbl.find("x-a", "1")
	assert.Equal(t, 63, idx)
	assert.True(t, exact)

	// Name-only matches prefer the most recent occurrence.
	idx, exact = tbl.find("x-a", "3")
	assert.Equal(t, 62, idx)
	assert.False(t, exact)
}

func TestFindPrefersExactOverStaticName(t *testing.T) {
	tbl := newHeaderTable()
	tbl.add(Header{Name: ":authority", Value: "example.com"})

	// :authority is name-only at static index 1, but the dynamic table holds
	// the exact pair; the exact match wins.
	idx, exact := tbl.find(":authority", "example.com")
	assert.Equal(t, 62, idx)
	assert.True(t, exact)
}

func TestAddEvictsOldestFirst(t *testing.T) {
	tbl := newHeaderTable()
	tbl.setMaxSize(100)

	a := Header{Name: "aaaa", Value: "bbbb"} // Size() == 40
	b := Header{Name: "cccc", Value: "dddd"}
	c := Header{Name: "eeee", Value: "ffff"}
	require.Equal(t, 40, a.Size())

	tbl.add(a)
	tbl.add(b)
	assert.Equal(t, 80, tbl.size)

	tbl.add(c)
	assert.Equal(t, 80, tbl.size)
	assert.Equal(t, []Header{c, b}, tbl.dynamicTable)

	idx, _ := tbl.find("aaaa", "bbbb")
	assert.Equal(t, 0, idx)
}

func TestAddOversizedEntryEmptiesTable(t *testing.T) {
	tbl := newHeaderTable()
	tbl.setMaxSize(50)

	tbl.add(Header{Name: "aaaa", Value: "bbbb"})
	require.Len(t, tbl.dynamicTable, 1)

	tbl.add(Header{Name: "big-name", Value: "a value far larger than fifty octets with overhead"})
	assert.Empty(t, tbl.dynamicTable)
	assert.Equal(t, 0, tbl.size)
}

func TestSetMaxSizeEvicts(t *testing.T) {
	tbl := newHeaderTable()
	newest := Header{Name: "x-3", Value: "3"}
	tbl.add(Header{Name: "x-1", Value: "1"})
	tbl.add(Header{Name: "x-2", Value: "2"})
	tbl.add(newest)
	require.Equal(t, 108, tbl.size)

	tbl.setMaxSize(50)
	assert.Equal(t, []Header{newest}, tbl.dynamicTable)
	assert.Equal(t, 36, tbl.size)
}

func TestGetCombinedIndexSpace(t *testing.T) {
	tbl := newHeaderTable()
	tbl.add(Header{Name: "x-a", Value: "1"})

	h, err := tbl.get(1)
	require.NoError(t, err)
	assert.Equal(t, Header{Name: ":authority"}, h)

	h, err = tbl.get(61)
	require.NoError(t, err)
	assert.Equal(t, Header{Name: "www-authenticate"}, h)

	h, err = tbl.get(62)
	require.NoError(t, err)
	assert.Equal(t, Header{Name: "x-a", Value: "1"}, h)

	_, err = tbl.get(0)
	assert.ErrorIs(t, err, errTableIndex)
	_, err = tbl.get(63)
	assert.ErrorIs(t, err, errTableIndex)
}
