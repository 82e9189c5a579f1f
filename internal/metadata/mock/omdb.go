package mock

import (
	"context"

	"github.com/cinescope/cinescope/internal/metadata/letterboxd"
	"github.com/cinescope/cinescope/internal/metadata/omdb"
)

// OMDBClient is a mock implementation of the OMDb client.
type OMDBClient struct{}

// NewOMDBClient creates a new mock OMDb client.
func NewOMDBClient() *OMDBClient {
	return &OMDBClient{}
}

func (c *OMDBClient) Name() string {
	return "omdb-mock"
}

func (c *OMDBClient) IsConfigured() bool {
	return true
}

func (c *OMDBClient) Test(ctx context.Context) error {
	return nil
}

// GetRatings returns the canned ratings, or zero values for unknown ids.
func (c *OMDBClient) GetRatings(ctx context.Context, imdbID string) omdb.NormalizedRatings {
	return mockRatings[imdbID]
}

// GetDistribution returns a bell-shaped histogram scaled by the vote count.
func (c *OMDBClient) GetDistribution(ctx context.Context, imdbID string) []int {
	ratings, ok := mockRatings[imdbID]
	if !ok {
		return omdb.EmptyDistribution()
	}

	shape := []int{1, 1, 1, 2, 3, 6, 12, 25, 30, 19}
	dist := make([]int, omdb.Buckets)
	for i, share := range shape {
		dist[i] = ratings.ImdbVotes * share / 100
	}
	return dist
}

// StatusReader answers personal status questions with a fixed rating.
type StatusReader struct{}

// NewStatusReader creates a new mock status reader.
func NewStatusReader() *StatusReader {
	return &StatusReader{}
}

// PersonalStatus rates every film 4 stars for any non-empty username.
func (r *StatusReader) PersonalStatus(ctx context.Context, username, id string) letterboxd.PersonalStatus {
	if username == "" || id == "" {
		return letterboxd.PersonalStatus{}
	}
	rating := 4.0
	return letterboxd.PersonalStatus{Rating: &rating}
}

var mockRatings = map[string]omdb.NormalizedRatings{
	"tt1375666": { // Inception
		ImdbRating:     8.8,
		ImdbVotes:      2400000,
		RottenTomatoes: 87,
		Metacritic:     74,
	},
	"tt0816692": { // Interstellar
		ImdbRating:     8.7,
		ImdbVotes:      1900000,
		RottenTomatoes: 73,
		Metacritic:     74,
	},
	"tt0468569": { // The Dark Knight
		ImdbRating:     9.0,
		ImdbVotes:      2700000,
		RottenTomatoes: 94,
		Metacritic:     84,
	},
	"tt0137523": { // Fight Club
		ImdbRating:     8.8,
		ImdbVotes:      2200000,
		RottenTomatoes: 79,
		Metacritic:     66,
	},
	"tt0903747": { // Breaking Bad
		ImdbRating:     9.5,
		ImdbVotes:      2000000,
		RottenTomatoes: 96,
	},
	"tt4574334": { // Stranger Things
		ImdbRating:     8.7,
		ImdbVotes:      1200000,
		RottenTomatoes: 91,
	},
}
