// This file handles language selection for generated titles. Detection is a
// heuristic: explicit francophone genre labels win, then a list of well-known
// French-speaking artists, and everything else defaults to English.
package generator

import "strings"

// Language selects which word pools and title patterns are used.
type Language string

const (
	French  Language = "fr"
	English Language = "en"
)

// frenchGenreHints are provider genre labels that pin an artist to French
// regardless of the artist list below.
var frenchGenreHints = []string{"french rap", "rap français", "chanson française", "variété française"}

// frenchArtists holds lowercased, accent-stripped names of francophone
// artists the original lookup providers label inconsistently.
var frenchArtists = []string{
	"pnl", "nekfeu", "orelsan", "stromae", "booba", "ninho", "soolking",
	"jul", "aya nakamura", "naps", "damso", "alpha wann", "freeze corleone",
	"dinos", "laylow", "lomepal", "eddy de pretto", "angele", "pomme",
	"videoclub", "benjamin biolay", "air", "phoenix", "kavinsky", "justice",
	"daft punk", "sebastien tellier", "m83", "yelle", "plk", "1plike140",
	"koba lad", "kalash criminel", "kaaris", "rim'k", "gradur", "sch",
	"sofiane", "niska", "vald", "lacrim", "leto", "zola", "soso maness",
	"kekra", "hamza", "mhd", "gims", "black m", "dadju", "slimane",
}

// DetectLanguage guesses the dominant language of an artist from its name
// and raw genre strings.
func DetectLanguage(artist string, rawGenres []string) Language {
	joined := strings.ToLower(strings.Join(rawGenres, " "))
	for _, hint := range frenchGenreHints {
		if strings.Contains(joined, hint) {
			return French
		}
	}
	name := stripAccents(strings.ToLower(strings.TrimSpace(artist)))
	for _, a := range frenchArtists {
		if strings.Contains(name, a) {
			return French
		}
	}
	return English
}

// stripAccents folds the accented vowels that commonly appear in French
// artist names. A full Unicode normalization is overkill for this list.
func stripAccents(s string) string {
	r := strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e", "ë", "e",
		"à", "a", "â", "a", "î", "i", "ï", "i",
		"ô", "o", "û", "u", "ù", "u", "ç", "c",
	)
	return r.Replace(s)
}

// Word pools per language. Keywords seed track titles, themePool seeds the
// per-track themes, albumWords seed the album title.
var (
	keywordsFR = []string{"Nuit", "Ombre", "Lueur", "Silence", "Âme", "Vertige", "Brume", "Écho", "Aube", "Ciel", "Larme", "Souffle"}
	keywordsEN = []string{"Shadow", "Light", "Echo", "Dream", "Night", "Fire", "Silence", "Road", "Sky", "Time", "Soul", "Wind"}

	themesFR = []string{"solitude", "mélancolie", "révolte", "liberté", "errance", "nostalgie", "espoir", "quête", "transformation"}
	themesEN = []string{"loneliness", "freedom", "rebellion", "hope", "melancholy", "search", "truth", "transformation", "wandering"}

	albumWordsFR = []string{"Écho", "Cycle", "Vision", "Nuit", "Odyssée"}
	albumWordsEN = []string{"Echo", "Cycle", "Vision", "Night", "Odyssey"}
)

func keywordsFor(lang Language) []string {
	if lang == French {
		return keywordsFR
	}
	return keywordsEN
}

func themesFor(lang Language) []string {
	if lang == French {
		return themesFR
	}
	return themesEN
}

func albumWordsFor(lang Language) []string {
	if lang == French {
		return albumWordsFR
	}
	return albumWordsEN
}
