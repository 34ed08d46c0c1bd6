// This file implements the classifier mapping raw provider genre strings to
// the internal vocabulary. Matching is case-insensitive and tolerant of the
// provider embedding a known label inside a longer one ("French Rap",
// "Detroit Techno"), but only at word boundaries: "Therapy" does not contain
// the word "rap". Unmatched strings are dropped; an empty result becomes
// {unknown} so downstream code always has at least one tag to work with.
package genre

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"Concept-Album-Go/pkg/music"
)

// defaultAliases maps lowercased provider labels to vocabulary tags. Each
// vocabulary value also maps to itself so classifying already-classified tags
// is a no-op.
var defaultAliases = map[string]music.GenreTag{
	"rap/hip hop": music.GenreRap,
	"hip hop":     music.GenreRap,
	"hip-hop":     music.GenreRap,
	"french rap":  music.GenreRap,
	"dance":       music.GenreHouse,
	"electronic":  music.GenreElectro,
	"edm":         music.GenreElectro,
	"alternative": music.GenreIndie,
	"soul":        music.GenreRnB,
	"rnb":         music.GenreRnB,
	"chill":       music.GenreLofi,
	"soundtrack":  music.GenreCinematic,
	"film score":  music.GenreCinematic,
}

// Classifier performs the raw-string to vocabulary mapping. The zero value is
// not usable; construct with New.
type Classifier struct {
	aliases map[string]music.GenreTag
}

// New builds a classifier from the built-in alias table merged with extra
// user aliases from configuration. Extra aliases win on conflict; entries
// pointing at labels outside the vocabulary are ignored.
func New(extra map[string]string) *Classifier {
	aliases := make(map[string]music.GenreTag, len(defaultAliases)+len(styles)+len(extra))
	for raw, tag := range defaultAliases {
		aliases[raw] = tag
	}
	// Identity entries keep classification idempotent over its own output.
	for tag := range styles {
		aliases[string(tag)] = tag
	}
	for raw, label := range extra {
		tag := music.GenreTag(strings.ToLower(strings.TrimSpace(label)))
		if _, ok := styles[tag]; ok {
			aliases[strings.ToLower(strings.TrimSpace(raw))] = tag
		}
	}
	return &Classifier{aliases: aliases}
}

// Classify maps raw provider genre strings to a sorted, de-duplicated set of
// vocabulary tags. An exact alias hit takes the single matching tag;
// otherwise every alias appearing as a whole word in the raw string
// contributes its tag. When nothing matches at all the result is the
// singleton {unknown}.
func (c *Classifier) Classify(raw []string) []music.GenreTag {
	set := make(map[music.GenreTag]struct{})
	for _, r := range raw {
		lower := strings.ToLower(strings.TrimSpace(r))
		if lower == "" {
			continue
		}
		if tag, ok := c.aliases[lower]; ok {
			set[tag] = struct{}{}
			continue
		}
		for alias, tag := range c.aliases {
			if containsWord(lower, alias) {
				set[tag] = struct{}{}
			}
		}
	}
	if len(set) == 0 {
		return []music.GenreTag{music.GenreUnknown}
	}
	tags := make([]music.GenreTag, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// containsWord reports whether alias occurs in s delimited by word
// boundaries. "trap music" contains the word "trap" but not "rap".
func containsWord(s, alias string) bool {
	for start := 0; ; start++ {
		i := strings.Index(s[start:], alias)
		if i < 0 {
			return false
		}
		start += i
		end := start + len(alias)
		if wordBoundary(s, start) && wordBoundary(s, end) {
			return true
		}
	}
}

func wordBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	before, _ := utf8.DecodeLastRuneInString(s[:i])
	after, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(before) || !isWordRune(after)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
