package person

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHideShowAncestorsRoundtrip(t *testing.T) {
	p := New("p")
	p.Rels.Father = "father"
	p.Rels.Mother = "mother"

	p.HideAncestors()
	assert.Empty(t, p.Rels.Father)
	assert.Empty(t, p.Rels.Mother)
	assert.True(t, p.HasHiddenAncestors())

	p.ShowAncestors()
	assert.Equal(t, "father", p.Rels.Father)
	assert.Equal(t, "mother", p.Rels.Mother)
	assert.False(t, p.HasHiddenAncestors())
}

func TestHideShowChildRoundtrip(t *testing.T) {
	p := New("p")
	p.Rels.Children = []string{"a", "b"}

	p.HideChild("a")
	assert.Equal(t, []string{"b"}, p.Rels.Children)
	assert.Equal(t, []string{"a"}, p.HiddenChildren())

	p.ShowChild("a")
	assert.ElementsMatch(t, []string{"a", "b"}, p.Rels.Children)
	assert.Empty(t, p.HiddenChildren())
}

func TestHideChildNoOpWhenAlreadyGone(t *testing.T) {
	p := New("p")
	p.Rels.Children = []string{"a"}
	p.HideChild("nonexistent")
	assert.Equal(t, []string{"a"}, p.Rels.Children)
}

func TestShowChildNoOpWhenNotHidden(t *testing.T) {
	p := New("p")
	p.ShowChild("a")
	assert.Empty(t, p.Rels.Children)
}

func TestRefAttrKeyRoundtrip(t *testing.T) {
	key := RefAttrKey("nickname", "other-id")
	field, otherID, ok := ParseRefAttrKey(key)
	require.True(t, ok)
	assert.Equal(t, "nickname", field)
	assert.Equal(t, "other-id", otherID)
}

func TestParseRefAttrKeyRejectsPlainKey(t *testing.T) {
	_, _, ok := ParseRefAttrKey("plain")
	assert.False(t, ok)
}

func TestGenderRoundtrip(t *testing.T) {
	p := New("p")
	assert.Equal(t, GenderUnset, p.Gender())
	p.SetGender(GenderMale)
	assert.Equal(t, GenderMale, p.Gender())
	p.SetGender(GenderUnset)
	assert.Equal(t, GenderUnset, p.Gender())
}

func TestNewToAddHasNoOtherAttributes(t *testing.T) {
	p := NewToAdd("ph1", GenderFemale)
	assert.True(t, p.ToAdd)
	assert.Equal(t, GenderFemale, p.Gender())
	assert.Len(t, p.Data, 1) // just the gender key
}

func TestIsSpouseOf(t *testing.T) {
	p := New("p")
	p.Rels.Spouses = []string{"a", "b"}
	assert.True(t, p.IsSpouseOf("a"))
	assert.False(t, p.IsSpouseOf("z"))
}
