package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Concept-Album-Go/pkg/music"
)

func TestClassifyKnownAliases(t *testing.T) {
	c := New(nil)
	tests := []struct {
		raw  []string
		want []music.GenreTag
	}{
		{[]string{"Rap/Hip Hop"}, []music.GenreTag{music.GenreRap}},
		{[]string{"French Rap"}, []music.GenreTag{music.GenreRap}},
		{[]string{"Dance"}, []music.GenreTag{music.GenreHouse}},
		{[]string{"Electronic"}, []music.GenreTag{music.GenreElectro}},
		{[]string{"Alternative"}, []music.GenreTag{music.GenreIndie}},
		{[]string{"Drill", "Trap"}, []music.GenreTag{music.GenreDrill, music.GenreTrap}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.raw), "raw %v", tt.raw)
	}
}

func TestClassifySubstringTolerant(t *testing.T) {
	c := New(nil)
	assert.Equal(t, []music.GenreTag{music.GenreTechno}, c.Classify([]string{"Detroit Techno"}))
	assert.Equal(t, []music.GenreTag{music.GenreDrill}, c.Classify([]string{"UK Drill"}))
	assert.Equal(t, []music.GenreTag{music.GenreJazz}, c.Classify([]string{"Jazz Fusion"}))
}

// An exact alias hit must not also trigger substring matches: "trap" contains
// no other alias but is itself contained in nothing relevant, while a raw
// "Trap" must classify to trap alone.
func TestClassifyExactBeatsSubstring(t *testing.T) {
	c := New(nil)
	assert.Equal(t, []music.GenreTag{music.GenreTrap}, c.Classify([]string{"Trap"}))
	assert.Equal(t, []music.GenreTag{music.GenreRap}, c.Classify([]string{"rap"}))
}

// Aliases only match whole words: a label that merely contains an alias's
// letters must not pick up its tag.
func TestClassifyRequiresWordBoundaries(t *testing.T) {
	c := New(nil)
	assert.Equal(t, []music.GenreTag{music.GenreTrap}, c.Classify([]string{"Trap Music"}))
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify([]string{"Therapy"}))
	assert.Equal(t, []music.GenreTag{music.GenreMetal}, c.Classify([]string{"Scrap Metal Sounds"}))
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify([]string{"Lollipop"}))
}

func TestClassifyUnmatchedDroppedAndEmptyFallsBack(t *testing.T) {
	c := New(nil)
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify(nil))
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify([]string{}))
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify([]string{"polka", ""}))
	// A matched string next to garbage keeps only the match.
	assert.Equal(t, []music.GenreTag{music.GenrePop}, c.Classify([]string{"polka fest", "Pop"}))
}

func TestClassifyIdempotent(t *testing.T) {
	c := New(nil)
	first := c.Classify([]string{"Rap/Hip Hop", "Techno", "nonsense"})
	asStrings := make([]string, len(first))
	for i, tag := range first {
		asStrings[i] = string(tag)
	}
	assert.Equal(t, first, c.Classify(asStrings))

	// The fallback singleton is a fixed point too.
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify([]string{"unknown"}))
}

func TestClassifyExtraAliases(t *testing.T) {
	c := New(map[string]string{
		"phonk":    "trap",
		"bizarre":  "not-a-genre", // outside the vocabulary, ignored
		"  Grime ": " drill ",
	})
	assert.Equal(t, []music.GenreTag{music.GenreTrap}, c.Classify([]string{"Phonk"}))
	assert.Equal(t, []music.GenreTag{music.GenreDrill}, c.Classify([]string{"grime"}))
	assert.Equal(t, []music.GenreTag{music.GenreUnknown}, c.Classify([]string{"bizarre"}))
}

func TestStyleForFallback(t *testing.T) {
	require.NotEmpty(t, StyleFor(music.GenreDrill).Moods)
	assert.Equal(t, StyleFor(music.GenreRap), StyleFor(music.GenreTag("no-such-tag")))
}

func TestVocabularyCoversStyles(t *testing.T) {
	for _, tag := range Vocabulary() {
		assert.True(t, IsValid(tag), "tag %s missing style info", tag)
		assert.NotEqual(t, music.GenreUnknown, tag)
	}
	assert.True(t, IsValid(music.GenreUnknown))
}

func TestPresetByName(t *testing.T) {
	p, ok := PresetByName("Nocturne")
	require.True(t, ok)
	assert.Equal(t, "nuit", p.Theme)
	for _, tag := range p.Genres {
		assert.True(t, IsValid(tag))
	}
	_, ok = PresetByName("nope")
	assert.False(t, ok)
}
