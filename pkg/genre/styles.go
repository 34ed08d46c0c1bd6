// Package genre folds raw provider genre strings into the fixed internal
// vocabulary and carries the static style knowledge (tempo windows, moods,
// presets) used when generating tracks. All data here is configuration, not
// inference: classification is a deterministic, pure lookup.
package genre

import "Concept-Album-Go/pkg/music"

// Style describes the musical character of one genre tag. Tempo bounds are in
// BPM; Moods feed both track metadata and the title word pool.
type Style struct {
	TempoLow  int
	TempoHigh int
	Moods     []string
}

// styles maps every vocabulary tag to its style info. GenreUnknown borrows
// the rap window so fallback profiles still get plausible tempos.
var styles = map[music.GenreTag]Style{
	music.GenreRap:       {80, 110, []string{"brut", "introspectif", "réaliste"}},
	music.GenreTrap:      {120, 150, []string{"tendu", "minimal", "sombre"}},
	music.GenreDrill:     {130, 150, []string{"froid", "menaçant", "urbain"}},
	music.GenreBoomBap:   {85, 100, []string{"authentique", "old-school", "lyrical"}},
	music.GenrePop:       {90, 120, []string{"émotionnel", "lumineux", "accessible"}},
	music.GenreRnB:       {70, 100, []string{"sensuel", "intime", "doux"}},
	music.GenreElectro:   {115, 140, []string{"futuriste", "énergique", "hypnotique"}},
	music.GenreTechno:    {125, 145, []string{"industriel", "transe", "sombre"}},
	music.GenreHouse:     {118, 130, []string{"groove", "festif", "solaire"}},
	music.GenreAmbient:   {50, 80, []string{"planant", "méditatif", "minimal"}},
	music.GenreLofi:      {60, 90, []string{"nostalgique", "calme", "intimiste"}},
	music.GenreJazz:      {90, 140, []string{"libre", "nocturne", "chaleureux"}},
	music.GenreNeoJazz:   {95, 125, []string{"fluide", "moderne", "atmosphérique"}},
	music.GenreRock:      {100, 140, []string{"rebelle", "organique", "brut"}},
	music.GenreIndie:     {95, 130, []string{"introspectif", "mélodique", "libre"}},
	music.GenreMetal:     {120, 180, []string{"violent", "épique", "sombre"}},
	music.GenreCinematic: {60, 100, []string{"épique", "immersif", "dramatique"}},
	music.GenreUnknown:   {80, 110, []string{"libre", "brut", "hypnotique"}},
}

// IsValid reports whether tag is part of the internal vocabulary, including
// GenreUnknown.
func IsValid(tag music.GenreTag) bool {
	_, ok := styles[tag]
	return ok
}

// StyleFor returns the style info for tag, falling back to the rap style for
// tags outside the vocabulary.
func StyleFor(tag music.GenreTag) Style {
	if s, ok := styles[tag]; ok {
		return s
	}
	return styles[music.GenreRap]
}

// Vocabulary returns all tags of the internal vocabulary except
// GenreUnknown, in a stable order. Useful for checklists in adapters.
func Vocabulary() []music.GenreTag {
	return []music.GenreTag{
		music.GenreRap, music.GenreTrap, music.GenreDrill, music.GenreBoomBap,
		music.GenrePop, music.GenreRnB, music.GenreElectro, music.GenreTechno,
		music.GenreHouse, music.GenreAmbient, music.GenreLofi, music.GenreJazz,
		music.GenreNeoJazz, music.GenreRock, music.GenreIndie, music.GenreMetal,
		music.GenreCinematic,
	}
}

// Preset bundles a ready-made genre selection and theme so users can start
// from a known mood instead of picking genres one by one.
type Preset struct {
	Name        string
	Genres      []music.GenreTag
	Theme       string
	Description string
}

// Presets returns the built-in album presets in display order.
func Presets() []Preset {
	return []Preset{
		{"Introspectif", []music.GenreTag{music.GenreLofi, music.GenreAmbient, music.GenreNeoJazz}, "introspection", "Album calme et contemplatif"},
		{"Énergique", []music.GenreTag{music.GenreTrap, music.GenreElectro, music.GenreTechno}, "énergie", "Album dynamique et puissant"},
		{"Nocturne", []music.GenreTag{music.GenreAmbient, music.GenreJazz, music.GenreRnB}, "nuit", "Ambiance de fin de soirée"},
		{"Urbain", []music.GenreTag{music.GenreRap, music.GenreDrill, music.GenreTrap}, "ville", "Sonorités street"},
		{"Expérimental", []music.GenreTag{music.GenreTechno, music.GenreAmbient, music.GenreNeoJazz}, "exploration", "Mélange audacieux"},
	}
}

// PresetByName returns the preset with the given name, matched
// case-sensitively, and reports whether it exists.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
