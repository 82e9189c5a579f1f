package metadata

import (
	"context"

	"github.com/cinescope/cinescope/internal/metadata/letterboxd"
	"github.com/cinescope/cinescope/internal/metadata/omdb"
	"github.com/cinescope/cinescope/internal/metadata/tmdb"
)

// Provider is an upstream that can be checked for connectivity.
type Provider interface {
	Name() string
	IsConfigured() bool
	Test(ctx context.Context) error
}

// TMDBClient defines the interface for TMDB API operations.
type TMDBClient interface {
	Provider
	GetMovieDetails(ctx context.Context, id int) (*tmdb.NormalizedDetails, error)
	GetSeriesDetails(ctx context.Context, id int) (*tmdb.NormalizedDetails, error)
	GetExternalIDs(ctx context.Context, id int, mediaType string) (string, error)
	GetCredits(ctx context.Context, id int, mediaType string) ([]tmdb.NormalizedPerson, error)
	GetAllEpisodes(ctx context.Context, seriesID, seasons int) ([]tmdb.NormalizedEpisode, error)
	Search(ctx context.Context, query, mediaType string) ([]tmdb.NormalizedSearchResult, error)
	GetTrending(ctx context.Context) ([]tmdb.NormalizedSearchResult, error)
	GetPerson(ctx context.Context, id int) (*tmdb.NormalizedPersonDetails, error)
	GetPersonCredits(ctx context.Context, id int) (*tmdb.NormalizedPersonCredits, error)
	GetImageURL(path string, width int) string
}

// OMDBClient defines the interface for OMDb operations. Both lookups
// degrade to zero values instead of failing.
type OMDBClient interface {
	Provider
	GetRatings(ctx context.Context, imdbID string) omdb.NormalizedRatings
	GetDistribution(ctx context.Context, imdbID string) []int
}

// FilmResolver finds Letterboxd data for a film.
type FilmResolver interface {
	Resolve(ctx context.Context, q letterboxd.Query) (*letterboxd.FilmData, []letterboxd.Attempt, bool)
}

// StatusReader reads a member's personal status for a film.
type StatusReader interface {
	PersonalStatus(ctx context.Context, username, id string) letterboxd.PersonalStatus
}
