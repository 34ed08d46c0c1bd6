// Package handlers contains the HTTP adapter for the album generator. It is
// a thin, replaceable surface: every endpoint validates its input, calls the
// assembler or the database, and serializes the result. No business logic
// lives here.

package handlers

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"Concept-Album-Go/pkg/album"
	"Concept-Album-Go/pkg/db"
	"Concept-Album-Go/pkg/export"
	"Concept-Album-Go/pkg/genre"
	"Concept-Album-Go/pkg/music"
)

// Application bundles the dependencies used by the HTTP handlers.
type Application struct {
	Assembler *album.Assembler
	DB        *db.DB
	Log       logrus.FieldLogger
}

// homeTemplate renders the generation form: a genre checklist, comma
// separated artists, a free-text theme and a track count.
var homeTemplate = template.Must(template.New("home").Parse(`
<h1>Concept Album Generator</h1>
<form action="/generate" method="post">
	<fieldset>
		<legend>Genres</legend>
		{{range .Genres}}<label><input type="checkbox" name="genre" value="{{.}}"> {{.}}</label> {{end}}
	</fieldset>
	<p><label>Artists (comma separated)<br><input type="text" name="artists" size="60" placeholder="1pliké140, Freeze Corleone, Koba LaD"></label></p>
	<p><label>Theme<br><input type="text" name="theme" placeholder="liberté"></label></p>
	<p><label>Tracks<br><input type="number" name="tracks" value="8" min="3" max="30"></label></p>
	<button type="submit">Generate</button>
</form>
<p><a href="/api/albums">Previous albums</a></p>
`))

// Home displays the generation form with the genre checklist.
func (app *Application) Home(w http.ResponseWriter, r *http.Request) {
	data := struct{ Genres []music.GenreTag }{Genres: genre.Vocabulary()}
	if err := homeTemplate.Execute(w, data); err != nil {
		app.Log.WithError(err).Error("home template execute")
	}
}

// GenerateJSON accepts a JSON generation request and responds with the
// assembled album. Invalid input yields 400 with the validation reason; all
// lookup failures are absorbed by the assembler's degrade policy, so any
// other failure is a genuine server error.
func (app *Application) GenerateJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req album.Request
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	alb, err := app.Assembler.Assemble(r.Context(), req)
	if err != nil {
		var inputErr *music.InputError
		if errors.As(err, &inputErr) {
			generationRejected.Inc()
			respondJSONError(w, http.StatusBadRequest, inputErr.Reason)
			return
		}
		app.Log.WithError(err).Error("assemble failed")
		respondJSONError(w, http.StatusInternalServerError, "album generation failed")
		return
	}
	albumsGenerated.Inc()
	w.WriteHeader(http.StatusCreated)
	respondJSON(w, alb)
}

// Generate handles the HTML form submission by translating it into an
// assembler request and rendering the album as a plain-text sheet, which
// keeps the page free of any frontend tooling.
func (app *Application) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	tracks, _ := strconv.Atoi(r.PostForm.Get("tracks"))
	req := album.Request{
		Artists: splitArtists(r.PostForm.Get("artists")),
		Theme:   r.PostForm.Get("theme"),
		Tracks:  tracks,
	}
	for _, g := range r.PostForm["genre"] {
		req.Genres = append(req.Genres, music.GenreTag(g))
	}
	alb, err := app.Assembler.Assemble(r.Context(), req)
	if err != nil {
		var inputErr *music.InputError
		if errors.As(err, &inputErr) {
			generationRejected.Inc()
			http.Error(w, inputErr.Reason, http.StatusBadRequest)
			return
		}
		app.Log.WithError(err).Error("assemble failed")
		http.Error(w, "album generation failed", http.StatusInternalServerError)
		return
	}
	albumsGenerated.Inc()
	w.Header().Set("Content-Type", export.FormatText.ContentType())
	if err := export.Write(alb, export.FormatText, w); err != nil {
		app.Log.WithError(err).Error("render album")
	}
}

// HistoryJSON lists previously generated albums, most recent first. The
// optional limit query parameter caps the result; it must be positive and
// defaults to 20.
func (app *Application) HistoryJSON(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "history not configured")
		return
	}
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondJSONError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	albums, err := app.DB.ListAlbums(r.Context(), limit)
	if err != nil {
		app.Log.WithError(err).Error("list albums")
		respondJSONError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if albums == nil {
		albums = []music.Album{}
	}
	respondJSON(w, albums)
}

// ExportAlbum streams one album from the history in the requested format.
// The id and format query parameters select the album and encoding.
func (app *Application) ExportAlbum(w http.ResponseWriter, r *http.Request) {
	if app.DB == nil {
		respondJSONError(w, http.StatusServiceUnavailable, "history not configured")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		respondJSONError(w, http.StatusBadRequest, "id is required")
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "format must be one of json, csv, txt")
		return
	}
	alb, err := app.DB.GetAlbum(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondJSONError(w, http.StatusNotFound, "album not found")
			return
		}
		app.Log.WithError(err).Error("load album")
		respondJSONError(w, http.StatusInternalServerError, "failed to load album")
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(alb, format)+`"`)
	if err := export.Write(alb, format, w); err != nil {
		// Headers are gone at this point; log and count it.
		exportFailures.Inc()
		app.Log.WithError(err).Error("export album")
		return
	}
	exportsServed.WithLabelValues(string(format)).Inc()
}

// PresetsJSON returns the built-in album presets.
func (app *Application) PresetsJSON(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, genre.Presets())
}

// GenresJSON returns the internal genre vocabulary for checklist rendering.
func (app *Application) GenresJSON(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, genre.Vocabulary())
}

// splitArtists breaks a comma separated artist field into trimmed names,
// dropping empties.
func splitArtists(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
