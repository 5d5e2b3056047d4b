package textstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDropsMalformedEntries(t *testing.T) {
	s := New(
		Entry{ID: "1", Text: "House"},
		Entry{ID: "", Text: "No id"},
		Entry{ID: "2", Text: "   "},
		Entry{ID: " 3 ", Text: " Farm "},
	)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.Dropped())
	assert.Equal(t, []string{"1", "3"}, s.IDs())

	text, ok := s.Get("3")
	require.True(t, ok)
	assert.Equal(t, "Farm", text)

	_, ok = s.Get("2")
	assert.False(t, ok)
}

func TestNewRepeatedIDKeepsPositionAndLastText(t *testing.T) {
	s := New(
		Entry{ID: "a", Text: "first"},
		Entry{ID: "b", Text: "other"},
		Entry{ID: "a", Text: "second"},
	)

	assert.Equal(t, []string{"a", "b"}, s.IDs())
	text, _ := s.Get("a")
	assert.Equal(t, "second", text)
}

func TestAllIteratesInOrder(t *testing.T) {
	s := New(Entry{ID: "z", Text: "Z"}, Entry{ID: "a", Text: "A"})

	var got []string
	for id, text := range s.All() {
		got = append(got, id+"="+text)
	}
	assert.Equal(t, []string{"z=Z", "a=A"}, got)

	// early break
	count := 0
	for range s.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestFromMapSortsIDs(t *testing.T) {
	s := FromMap(map[string]string{"g2": "B", "g1": "A", "g3": ""})
	assert.Equal(t, []string{"g1", "g2"}, s.IDs())
	assert.Equal(t, 1, s.Dropped())
}

func TestIDsReturnsCopy(t *testing.T) {
	s := New(Entry{ID: "1", Text: "x"})
	ids := s.IDs()
	ids[0] = "changed"
	assert.Equal(t, []string{"1"}, s.IDs())
}
