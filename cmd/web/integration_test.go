package main

// Integration test spinning up the full HTTP server with an in-memory
// database and exercising the typical flow: generate an album, find it in the
// history, download it as CSV. httptest keeps everything off the network.

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"Concept-Album-Go/pkg/music"
)

func TestIntegrationGenerateHistoryExport(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/api/albums", "application/json",
		strings.NewReader(`{"artists":["Gesaffelstein"],"genres":["techno"],"theme":"machines","tracks":4}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate failed with %d", resp.StatusCode)
	}
	var alb music.Album
	if err := json.NewDecoder(resp.Body).Decode(&alb); err != nil {
		t.Fatal(err)
	}
	if alb.ID == "" || len(alb.Tracks) != 4 {
		t.Fatalf("unexpected album %+v", alb)
	}

	histResp, err := http.Get(srv.URL + "/api/albums")
	if err != nil {
		t.Fatal(err)
	}
	defer histResp.Body.Close()
	var albums []music.Album
	if err := json.NewDecoder(histResp.Body).Decode(&albums); err != nil {
		t.Fatal(err)
	}
	if len(albums) != 1 || albums[0].ID != alb.ID {
		t.Fatalf("album not in history: %+v", albums)
	}

	expResp, err := http.Get(srv.URL + "/api/albums/export?id=" + alb.ID + "&format=csv")
	if err != nil {
		t.Fatal(err)
	}
	defer expResp.Body.Close()
	if expResp.StatusCode != http.StatusOK {
		t.Fatalf("export failed with %d", expResp.StatusCode)
	}
	if cd := expResp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("expected attachment disposition, got %q", cd)
	}
}
