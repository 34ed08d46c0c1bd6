// Package spotify wraps the official Spotify client library as a secondary
// metadata provider. It performs authentication using the client credentials
// flow and exposes only the artist search needed by the assembler. Spotify
// attaches genre strings directly to artists, so a lookup is a single call.
//
// All exported methods accept a context parameter allowing callers to cancel
// long running requests. The wrapped library does not provide context support
// so cancellation is checked explicitly before each call.

package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify"
	"golang.org/x/oauth2/clientcredentials"

	"Concept-Album-Go/pkg/music"
)

// searcher defines the subset of the spotify.Client used by this package.
// It allows the concrete client to be replaced in tests.
type searcher interface {
	Search(query string, t spotify.SearchType) (*spotify.SearchResult, error)
}

// SpotifyClient wraps the official Spotify client providing the artist
// lookup used by the assembler.
type SpotifyClient struct {
	client searcher
}

// Compile-time interface check ensuring SpotifyClient satisfies the generic
// music.MetadataService interface used by the rest of the application.
var _ music.MetadataService = (*SpotifyClient)(nil)

// NewSpotifyClient authenticates using the client credentials flow and
// returns a SpotifyClient ready for API calls. clientID and clientSecret are
// obtained from the Spotify developer dashboard.
func NewSpotifyClient(clientID string, clientSecret string) (*SpotifyClient, error) {
	// The client credentials OAuth2 flow yields an application token which
	// allows searching the Spotify catalog without a user login.
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotify.TokenURL,
	}

	token, err := config.Token(context.Background())
	if err != nil {
		return nil, err
	}

	c := spotify.Authenticator{}.NewClient(token)
	return &SpotifyClient{client: &c}, nil
}

// SearchArtist implements music.MetadataService by querying the Spotify API
// for the supplied artist name. The first match is taken; its genre strings
// are passed through unmodified for classification downstream. A LookupError
// is returned when the search fails or nothing matches.
func (sc *SpotifyClient) SearchArtist(ctx context.Context, name string) (music.ArtistProfile, error) {
	// The underlying client does not accept a context, but we honour the
	// provided one by checking for cancellation before the call.
	if err := ctx.Err(); err != nil {
		return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: err}
	}
	results, err := sc.client.Search(name, spotify.SearchTypeArtist)
	if err != nil {
		return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: err}
	}
	if results.Artists == nil || len(results.Artists.Artists) == 0 {
		return music.ArtistProfile{}, &music.LookupError{Artist: name, Err: fmt.Errorf("no artist found")}
	}

	a := results.Artists.Artists[0]
	return music.ArtistProfile{
		Name:    a.Name,
		Genres:  a.Genres,
		Link:    a.ExternalURLs["spotify"],
		Fans:    int(a.Followers.Count),
		FromAPI: true,
	}, nil
}
