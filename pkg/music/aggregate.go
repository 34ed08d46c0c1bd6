// This file implements an aggregation service which combines multiple
// metadata providers to broaden genre coverage for a single artist. Providers
// disagree about genre labels, so querying several of them and merging the
// raw strings gives the classifier more to work with.
//
// An error is only surfaced when every configured provider fails; failure of
// one provider does not discard results from the others.
package music

import (
	"context"
	"sync"
)

// Aggregator queries each configured MetadataService and merges the results
// into a single ArtistProfile.
type Aggregator struct {
	Services []MetadataService
}

var _ MetadataService = Aggregator{}

// SearchArtist fans the lookup out to all underlying services. The first
// successful profile provides the scalar fields (name, link, popularity);
// genre strings are unioned across all successful responses with duplicates
// removed.
func (a Aggregator) SearchArtist(ctx context.Context, name string) (ArtistProfile, error) {
	if len(a.Services) == 0 {
		return ArtistProfile{}, &LookupError{Artist: name}
	}
	type result struct {
		profile ArtistProfile
		err     error
	}
	var wg sync.WaitGroup
	resCh := make(chan result, len(a.Services))
	for _, svc := range a.Services {
		svc := svc
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := svc.SearchArtist(ctx, name)
			resCh <- result{profile: p, err: err}
		}()
	}
	wg.Wait()
	close(resCh)

	seen := make(map[string]struct{})
	var merged ArtistProfile
	var firstErr error
	successes := 0
	for r := range resCh {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		if successes == 0 {
			merged = r.profile
			merged.Genres = nil
		}
		successes++
		for _, g := range r.profile.Genres {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				merged.Genres = append(merged.Genres, g)
			}
		}
	}
	if successes == 0 {
		return ArtistProfile{}, firstErr
	}
	merged.FromAPI = true
	return merged, nil
}
