package crossmap

import (
	"testing"

	"preset-localizer/internal/textstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func store(pairs ...string) *textstore.Store {
	var entries []textstore.Entry
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, textstore.Entry{ID: pairs[i], Text: pairs[i+1]})
	}
	return textstore.New(entries...)
}

func TestBuildSimplePair(t *testing.T) {
	m := Build(store("g1", "House"), store("g1", "Casa"))

	assert.Equal(t, 1, m.Len())
	text, ok := m.Lookup("house")
	require.True(t, ok)
	assert.Equal(t, "Casa", text)
}

func TestBuildSkipsUntranslatedPlaceholders(t *testing.T) {
	m := Build(store("g1", "House"), store("g1", "House"))
	assert.Equal(t, 0, m.Len())

	m = Build(store("g1", "House"), store("g1", " HOUSE "))
	assert.Equal(t, 0, m.Len())
}

func TestBuildIgnoresOneSidedIDs(t *testing.T) {
	m := Build(
		store("g1", "House", "g2", "Farm"),
		store("g1", "Casa", "g3", "Granja"),
	)

	assert.Equal(t, []string{"house"}, m.Keys())
}

func TestBuildEmptyStores(t *testing.T) {
	assert.Equal(t, 0, Build(store(), store("g1", "Casa")).Len())
	assert.Equal(t, 0, Build(store("g1", "House"), store()).Len())
}

func TestBuildFoldsSourceAndTrimsTarget(t *testing.T) {
	m := Build(store("g1", "  Town HALL "), store("g1", "  Rathaus  "))

	text, ok := m.Lookup("town hall")
	require.True(t, ok)
	assert.Equal(t, "Rathaus", text)
}

func TestBuildCollisionPolicies(t *testing.T) {
	src := store("g1", "Market", "g2", "market", "g3", "Market")
	tgt := store("g1", "Marché", "g2", "Halle", "g3", "Marché")

	t.Run("last wins by default", func(t *testing.T) {
		m := Build(src, tgt)
		assert.Equal(t, LastWins, m.Policy())

		text, _ := m.Lookup("market")
		assert.Equal(t, "Marché", text)

		collisions := m.Collisions()
		require.Len(t, collisions, 2)
		assert.Equal(t, Collision{Key: "market", Kept: "Halle", Dropped: "Marché", ID: "g2"}, collisions[0])
		assert.Equal(t, Collision{Key: "market", Kept: "Marché", Dropped: "Halle", ID: "g3"}, collisions[1])
	})

	t.Run("first wins", func(t *testing.T) {
		m := Build(src, tgt, WithPolicy(FirstWins))

		text, _ := m.Lookup("market")
		assert.Equal(t, "Marché", text)

		collisions := m.Collisions()
		require.Len(t, collisions, 1)
		assert.Equal(t, Collision{Key: "market", Kept: "Marché", Dropped: "Halle", ID: "g2"}, collisions[0])
	})
}

func TestBuildSameTextTwiceIsNotACollision(t *testing.T) {
	m := Build(store("g1", "Farm", "g2", "Farm"), store("g1", "Granja", "g2", "Granja"))
	assert.Empty(t, m.Collisions())
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "last-wins", LastWins.String())
	assert.Equal(t, "first-wins", FirstWins.String())
}
