// Package generator produces album and track titles from template pools
// conditioned on genre, theme and language. Randomness comes from an
// injectable source so tests can pin a seed and assert exact output. The
// generator is safe for concurrent use; a mutex guards the random source.
package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/music"
)

// Profile is the interpreted, generation-ready view of one artist: the
// classified tags plus the tempo window, mood and shuffled word pools derived
// from them.
type Profile struct {
	Name      string
	Tags      []music.GenreTag
	TempoLow  int
	TempoHigh int
	Mood      string
	Keywords  []string
	Themes    []string
	Language  Language
	Link      string
	FromAPI   bool
}

// Generator holds the random source shared by all title selection.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a generator seeded with the provided value. Equal seeds yield
// equal output for equal inputs.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// intn and pick serialize access to the random source.
func (g *Generator) intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Intn(n)
}

func pick[T any](g *Generator, items []T) T {
	return items[g.intn(len(items))]
}

// between returns a random value in [low, high].
func (g *Generator) between(low, high int) int {
	if high <= low {
		return low
	}
	return low + g.intn(high-low+1)
}

// shuffled returns a shuffled copy of items.
func shuffled(g *Generator, items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	g.mu.Lock()
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	g.mu.Unlock()
	return out
}

// Interpret turns a raw artist profile and its classified tags into a
// generation-ready Profile. The tempo window comes from the style of the
// first tag, nudged up when the artist's top tracks run short.
func (g *Generator) Interpret(p music.ArtistProfile, tags []music.GenreTag) Profile {
	main := tags[0]
	for _, t := range tags {
		if t != music.GenreUnknown {
			main = t
			break
		}
	}
	style := genre.StyleFor(main)
	low, high := style.TempoLow, style.TempoHigh
	if p.AvgTrackSeconds > 0 && p.AvgTrackSeconds < 150 {
		low += 10
		high += 10
	}
	lang := DetectLanguage(p.Name, p.Genres)
	return Profile{
		Name:      p.Name,
		Tags:      tags,
		TempoLow:  low,
		TempoHigh: high,
		Mood:      pick(g, style.Moods),
		Keywords:  firstN(shuffled(g, keywordsFor(lang)), 5),
		Themes:    firstN(shuffled(g, themesFor(lang)), 7),
		Language:  lang,
		Link:      p.Link,
		FromAPI:   p.FromAPI,
	}
}

// Fallback synthesizes a Profile for an artist the providers could not
// resolve. It carries no genre contribution of its own; the assembler's
// genre union decides the tags its tracks end up with.
func (g *Generator) Fallback(name string) Profile {
	lang := DetectLanguage(name, nil)
	low := g.between(60, 100)
	high := g.between(max(low+10, 90), 160)
	return Profile{
		Name:      name,
		Tags:      []music.GenreTag{music.GenreUnknown},
		TempoLow:  low,
		TempoHigh: high,
		Mood:      pick(g, genre.StyleFor(music.GenreUnknown).Moods),
		Keywords:  firstN(shuffled(g, keywordsFor(lang)), 5),
		Themes:    firstN(shuffled(g, themesFor(lang)), 7),
		Language:  lang,
	}
}

// Title combines two words from the pool with a theme using one of the
// per-language patterns. Repeated calls may repeat titles; uniqueness is not
// guaranteed.
func (g *Generator) Title(words []string, theme string, lang Language) string {
	if len(words) < 2 {
		if len(words) == 1 {
			words = append(words, words[0])
		} else if lang == French {
			words = []string{"Écho", "Son", "Rêve"}
		} else {
			words = []string{"Echo", "Sound", "Dream"}
		}
	}
	a := pick(g, words)
	b := pick(g, words)
	// The pool may contain duplicates, so bound the re-rolls.
	for tries := 0; b == a && tries < 5; tries++ {
		b = pick(g, words)
	}
	if lang == French {
		patterns := []string{
			"%[1]s %[3]s",
			"%[1]s // %[2]s",
			"%[4]s de %[5]s",
			"%[1]s dans la %[3]s",
			"%[1]s et %[2]s",
			"Le %[5]s %[3]s",
			"%[1]s sans %[6]s",
			"%[4]s : %[1]s",
		}
		return fmt.Sprintf(pick(g, patterns), a, b, theme, capitalize(theme), strings.ToLower(a), strings.ToLower(b))
	}
	patterns := []string{
		"%[1]s %[3]s",
		"%[1]s // %[2]s",
		"%[4]s of %[1]s",
		"%[1]s in the %[3]s",
		"%[1]s & %[2]s",
		"The %[1]s %[3]s",
		"%[1]s without %[2]s",
		"%[4]s: %[1]s",
	}
	return fmt.Sprintf(pick(g, patterns), a, b, theme, capitalize(theme))
}

// AlbumTitle derives the album title from the theme and dominant genre.
// Unlike track titles, every album pattern embeds the theme verbatim so the
// result always carries it.
func (g *Generator) AlbumTitle(theme string, dominant music.GenreTag, lang Language) string {
	words := append(albumWordsFor(lang), capitalize(string(dominant)))
	w := pick(g, words)
	if lang == French {
		patterns := []string{
			"%[1]s %[2]s",
			"%[3]s de %[4]s",
			"%[1]s dans la %[2]s",
			"Le %[4]s %[2]s",
			"%[3]s : %[1]s",
		}
		return fmt.Sprintf(pick(g, patterns), w, theme, capitalize(theme), strings.ToLower(w))
	}
	patterns := []string{
		"%[1]s %[2]s",
		"%[3]s of %[1]s",
		"%[1]s in the %[2]s",
		"The %[1]s %[2]s",
		"%[3]s: %[1]s",
	}
	return fmt.Sprintf(pick(g, patterns), w, theme, capitalize(theme))
}

// Narration builds the one-line album blurb in the album's language.
func Narration(theme string, lang Language) string {
	if lang == French {
		return fmt.Sprintf("Album narratif explorant le thème %q, à travers des esthétiques musicales et émotionnelles variées.", theme)
	}
	return fmt.Sprintf("A narrative album exploring the theme %q through varied musical and emotional aesthetics.", theme)
}

// Tracks generates count tracks from the interpreted profiles, the album
// genre union and the album theme. Positions are 1-based and contiguous.
// Each track independently picks a contributing profile, a per-track theme
// drawn without repetition until the pool is exhausted, and a genre tag from
// the union. profiles and genres must be non-empty.
func (g *Generator) Tracks(profiles []Profile, genres []music.GenreTag, theme string, count int) []music.Track {
	moods := make([]string, 0, len(genres)*3)
	for _, tag := range genres {
		moods = append(moods, genre.StyleFor(tag).Moods...)
	}
	used := make(map[string]struct{})
	tracks := make([]music.Track, count)
	for i := range tracks {
		p := pick(g, profiles)
		available := make([]string, 0, len(p.Themes))
		for _, t := range p.Themes {
			if _, ok := used[t]; !ok {
				available = append(available, t)
			}
		}
		if len(available) == 0 {
			used = make(map[string]struct{})
			available = p.Themes
		}
		trackTheme := pick(g, available)
		used[trackTheme] = struct{}{}

		words := append(append([]string{}, p.Keywords...), moods...)
		tracks[i] = music.Track{
			Position: i + 1,
			Title:    g.Title(words, trackTheme, p.Language),
			Seconds:  g.between(150, 300),
			TempoBPM: g.between(p.TempoLow, p.TempoHigh),
			Mood:     p.Mood,
			Theme:    trackTheme,
			Genre:    pick(g, genres),
			Link:     p.Link,
		}
	}
	return tracks
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
