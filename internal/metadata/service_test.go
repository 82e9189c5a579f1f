package metadata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinescope/cinescope/internal/config"
	"github.com/cinescope/cinescope/internal/metadata/letterboxd"
	"github.com/cinescope/cinescope/internal/metadata/omdb"
	"github.com/cinescope/cinescope/internal/metadata/tmdb"
	"github.com/cinescope/cinescope/internal/metrics"
)

type fakeTMDB struct {
	movies      map[int]*tmdb.NormalizedDetails
	series      map[int]*tmdb.NormalizedDetails
	imdbIDs     map[int]string
	externalErr error
	cast        []tmdb.NormalizedPerson
	creditsErr  error
	seasons     map[int][]tmdb.NormalizedEpisode
	failSeason  int
	search      []tmdb.NormalizedSearchResult
	searchErr   error
	person      *tmdb.NormalizedPersonDetails
	credits     *tmdb.NormalizedPersonCredits

	externalCalls atomic.Int32
	searchCalls   atomic.Int32
}

func (f *fakeTMDB) Name() string { return "tmdb" }
func (f *fakeTMDB) IsConfigured() bool { return true }
func (f *fakeTMDB) Test(ctx context.Context) error { return nil }

func (f *fakeTMDB) GetImageURL(path string, width int) string {
	return fmt.Sprintf("img/w%d%s", width, path)
}

func (f *fakeTMDB) GetMovieDetails(ctx context.Context, id int) (*tmdb.NormalizedDetails, error) {
	if d, ok := f.movies[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, &tmdb.UpstreamError{Provider: "tmdb", Op: "movie details", StatusCode: http.StatusNotFound, Err: tmdb.ErrNotFound}
}

func (f *fakeTMDB) GetSeriesDetails(ctx context.Context, id int) (*tmdb.NormalizedDetails, error) {
	if d, ok := f.series[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, &tmdb.UpstreamError{Provider: "tmdb", Op: "series details", StatusCode: http.StatusNotFound, Err: tmdb.ErrNotFound}
}

func (f *fakeTMDB) GetExternalIDs(ctx context.Context, id int, mediaType string) (string, error) {
	f.externalCalls.Add(1)
	if f.externalErr != nil {
		return "", f.externalErr
	}
	return f.imdbIDs[id], nil
}

func (f *fakeTMDB) GetCredits(ctx context.Context, id int, mediaType string) ([]tmdb.NormalizedPerson, error) {
	return f.cast, f.creditsErr
}

func (f *fakeTMDB) GetAllEpisodes(ctx context.Context, seriesID, seasons int) ([]tmdb.NormalizedEpisode, error) {
	all := []tmdb.NormalizedEpisode{}
	for n := 1; n <= seasons; n++ {
		if n == f.failSeason {
			return nil, &tmdb.UpstreamError{Provider: "tmdb", Op: "season episodes", StatusCode: http.StatusInternalServerError, Err: tmdb.ErrAPIError}
		}
		all = append(all, f.seasons[n]...)
	}
	return all, nil
}

func (f *fakeTMDB) Search(ctx context.Context, query, mediaType string) ([]tmdb.NormalizedSearchResult, error) {
	f.searchCalls.Add(1)
	return f.search, f.searchErr
}

func (f *fakeTMDB) GetTrending(ctx context.Context) ([]tmdb.NormalizedSearchResult, error) {
	return f.search, f.searchErr
}

func (f *fakeTMDB) GetPerson(ctx context.Context, id int) (*tmdb.NormalizedPersonDetails, error) {
	if f.person == nil {
		return nil, &tmdb.UpstreamError{Provider: "tmdb", Op: "person", StatusCode: http.StatusNotFound, Err: tmdb.ErrNotFound}
	}
	return f.person, nil
}

func (f *fakeTMDB) GetPersonCredits(ctx context.Context, id int) (*tmdb.NormalizedPersonCredits, error) {
	if f.credits == nil {
		return nil, errors.New("credits unavailable")
	}
	return f.credits, nil
}

type fakeOMDB struct {
	ratings       map[string]omdb.NormalizedRatings
	distributions map[string][]int
	calls         atomic.Int32
}

func (f *fakeOMDB) Name() string { return "omdb" }
func (f *fakeOMDB) IsConfigured() bool { return true }
func (f *fakeOMDB) Test(ctx context.Context) error { return nil }

func (f *fakeOMDB) GetRatings(ctx context.Context, imdbID string) omdb.NormalizedRatings {
	f.calls.Add(1)
	return f.ratings[imdbID]
}

func (f *fakeOMDB) GetDistribution(ctx context.Context, imdbID string) []int {
	f.calls.Add(1)
	if d, ok := f.distributions[imdbID]; ok {
		return d
	}
	return omdb.EmptyDistribution()
}

type countingResolver struct {
	data  *letterboxd.FilmData
	calls atomic.Int32
}

func (r *countingResolver) Resolve(ctx context.Context, q letterboxd.Query) (*letterboxd.FilmData, []letterboxd.Attempt, bool) {
	r.calls.Add(1)
	if r.data == nil {
		return nil, []letterboxd.Attempt{{Strategy: "stub"}}, false
	}
	return r.data, []letterboxd.Attempt{{Strategy: "stub", Found: true}}, true
}

var inceptionHistogram = []int{5, 4, 6, 12, 30, 70, 180, 450, 700, 520}

func newFakeTMDB() *fakeTMDB {
	return &fakeTMDB{
		movies: map[int]*tmdb.NormalizedDetails{
			27205: {
				ID: 27205, MediaType: tmdb.MediaMovie, Title: "Inception", Year: 2010, Runtime: 148,
				Overview: "A thief who steals corporate secrets.", VoteAverage: 8.4,
				PosterURL: "img/w500/inception.jpg", BackdropURL: "img/w1280/inception.jpg",
				Director: &tmdb.NormalizedPerson{ID: 525, Name: "Christopher Nolan", Role: "Director"},
			},
			999: {ID: 999, MediaType: tmdb.MediaMovie, Title: "Obscure", VoteAverage: 6.1,
				Director: &tmdb.NormalizedPerson{Name: "Unknown Director"}},
		},
		series: map[int]*tmdb.NormalizedDetails{
			1399: {ID: 1399, MediaType: tmdb.MediaTV, Title: "Show", Year: 2011, Runtime: 55, VoteAverage: 8.1, NumberOfSeasons: 2},
		},
		imdbIDs: map[int]string{27205: "tt1375666", 1399: "tt0944947"},
		cast: []tmdb.NormalizedPerson{
			{ID: 6193, Name: "Leonardo DiCaprio", Role: "Dom Cobb", PhotoURL: "img/w185/leo.jpg"},
		},
		seasons: map[int][]tmdb.NormalizedEpisode{
			1: episodes(1, 7),
			2: episodes(2, 13),
		},
	}
}

func episodes(season, count int) []tmdb.NormalizedEpisode {
	eps := make([]tmdb.NormalizedEpisode, count)
	for i := range eps {
		eps[i] = tmdb.NormalizedEpisode{SeasonNumber: season, EpisodeNumber: i + 1, Title: fmt.Sprintf("S%dE%d", season, i+1), Rating: 8}
	}
	return eps
}

func newFakeOMDB() *fakeOMDB {
	return &fakeOMDB{
		ratings: map[string]omdb.NormalizedRatings{
			"tt1375666": {ImdbRating: 8.8, ImdbVotes: 2400000, RottenTomatoes: 87, Metacritic: 74},
			"tt0944947": {ImdbRating: 9.2},
		},
		distributions: map[string][]int{"tt1375666": inceptionHistogram},
	}
}

// newLetterboxd returns a resolver over the popular table whose network
// strategies point at a server that counts every request.
func newLetterboxd(t *testing.T) (*letterboxd.Resolver, *atomic.Int32) {
	t.Helper()
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	client := letterboxd.NewClient(config.LetterboxdConfig{BaseURL: server.URL, ProxyURL: server.URL, Timeout: 5}, zerolog.Nop())
	return letterboxd.NewDefaultResolver(letterboxd.NewPopularTable(), client, zerolog.Nop()), &requests
}

func TestService_Aggregate_Movie(t *testing.T) {
	resolver, requests := newLetterboxd(t)
	tm := newFakeTMDB()
	svc := NewServiceWithClients(tm, newFakeOMDB(), resolver, nil, nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 27205, KindMovie)
	require.NoError(t, err)

	assert.Equal(t, "Inception", record.Title)
	assert.Equal(t, KindMovie, record.Kind)
	assert.Equal(t, 2010, record.Year)
	assert.Equal(t, 148, record.Runtime)
	assert.Equal(t, "tt1375666", record.ImdbID)
	require.NotNil(t, record.Director)
	assert.Equal(t, "Christopher Nolan", record.Director.Name)
	require.Len(t, record.Cast, 1)
	assert.Equal(t, "Dom Cobb", record.Cast[0].Character)
	assert.Empty(t, record.Episodes)

	r := record.Ratings
	assert.Equal(t, 8.4, r.PrimaryScore)
	assert.Equal(t, 8.8, r.SecondaryScore)
	assert.Equal(t, 2400000, r.SecondaryVotes)
	assert.Equal(t, 87, r.RottenTomatoes)
	assert.Equal(t, 74, r.Metacritic)
	assert.Equal(t, inceptionHistogram, r.SecondaryDistribution)

	assert.Equal(t, 4.2, r.TertiaryScore)
	assert.Equal(t, 16170, r.TertiaryWatchCount)
	assert.Equal(t, []int{120, 450, 800, 1200, 2000, 3500, 5000, 4200, 2100, 800}, r.TertiaryDistribution)
	assert.Equal(t, int32(0), requests.Load(), "popular titles are answered without Letterboxd requests")
	assert.Equal(t, int32(1), tm.externalCalls.Load())
}

func TestService_Aggregate_Series(t *testing.T) {
	resolver := &countingResolver{data: &letterboxd.FilmData{Rating: 4}}
	tm := newFakeTMDB()
	svc := NewServiceWithClients(tm, newFakeOMDB(), resolver, nil, nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 1399, KindSeries)
	require.NoError(t, err)

	assert.Nil(t, record.Director)
	assert.Equal(t, 55, record.Runtime)
	require.Len(t, record.Episodes, 20)
	assert.Equal(t, Episode{SeasonNumber: 1, EpisodeNumber: 1, Title: "S1E1", Rating: 8}, record.Episodes[0])
	assert.Equal(t, 1, record.Episodes[6].SeasonNumber)
	assert.Equal(t, 7, record.Episodes[6].EpisodeNumber)
	assert.Equal(t, 2, record.Episodes[7].SeasonNumber)
	assert.Equal(t, 1, record.Episodes[7].EpisodeNumber)
	assert.Equal(t, 13, record.Episodes[19].EpisodeNumber)

	assert.Equal(t, 9.2, record.Ratings.SecondaryScore)
	assert.Equal(t, 0.0, record.Ratings.TertiaryScore)
	assert.Equal(t, []int{}, record.Ratings.TertiaryDistribution)
	assert.Equal(t, 0, record.Ratings.TertiaryWatchCount)
	assert.Equal(t, int32(0), resolver.calls.Load(), "series never consult Letterboxd")
	assert.Equal(t, make([]int, 10), record.Ratings.SecondaryDistribution)
}

func TestService_Aggregate_SeasonFailure(t *testing.T) {
	tm := newFakeTMDB()
	tm.failSeason = 2
	svc := NewServiceWithClients(tm, newFakeOMDB(), &countingResolver{}, nil, nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 1399, KindSeries)
	assert.Nil(t, record)

	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "Failed to fetch TV show data. Please try again.", err.Error())
	assert.True(t, aggErr.Retryable())

	var upErr *tmdb.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, "season episodes", upErr.Op)
}

func TestService_Aggregate_PrimaryFailure(t *testing.T) {
	omdbClient := newFakeOMDB()
	resolver := &countingResolver{}
	svc := NewServiceWithClients(newFakeTMDB(), omdbClient, resolver, nil, nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 404, KindMovie)
	assert.Nil(t, record)

	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.Equal(t, "Failed to fetch movie data. Please try again.", aggErr.Error())
	assert.Equal(t, 404, aggErr.ID)
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
	assert.Equal(t, int32(0), omdbClient.calls.Load())
	assert.Equal(t, int32(0), resolver.calls.Load())
}

func TestService_Aggregate_InvalidInput(t *testing.T) {
	svc := NewServiceWithClients(newFakeTMDB(), newFakeOMDB(), nil, nil, nil, zerolog.Nop())

	_, err := svc.Aggregate(context.Background(), 27205, MediaKind("book"))
	var aggErr *AggregationError
	require.ErrorAs(t, err, &aggErr)
	assert.ErrorIs(t, err, ErrInvalidKind)
	assert.False(t, aggErr.Retryable())

	_, err = svc.Aggregate(context.Background(), 0, KindMovie)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.False(t, IsRetryable(err))
}

func TestService_Aggregate_NoCrossReference(t *testing.T) {
	omdbClient := newFakeOMDB()
	resolver := &countingResolver{data: &letterboxd.FilmData{Rating: 4}}
	svc := NewServiceWithClients(newFakeTMDB(), omdbClient, resolver, nil, nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 999, KindMovie)
	require.NoError(t, err)

	assert.Empty(t, record.ImdbID)
	assert.Equal(t, 6.1, record.Ratings.SecondaryScore, "falls back to the primary score")
	assert.Equal(t, make([]int, 10), record.Ratings.SecondaryDistribution)
	assert.Equal(t, []int{}, record.Ratings.TertiaryDistribution)
	assert.Equal(t, "No summary available.", record.Summary)
	assert.Equal(t, "Unknown Director", record.Director.Name)
	assert.Equal(t, int32(0), omdbClient.calls.Load())
	assert.Equal(t, int32(0), resolver.calls.Load())
}

func TestService_Aggregate_Degradations(t *testing.T) {
	tm := newFakeTMDB()
	tm.creditsErr = errors.New("credits down")
	tm.externalErr = errors.New("external ids down")
	m := metrics.New()
	svc := NewServiceWithClients(tm, newFakeOMDB(), &countingResolver{}, nil, m, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 27205, KindMovie)
	require.NoError(t, err)

	assert.Equal(t, []CastMember{}, record.Cast)
	assert.Empty(t, record.ImdbID)
	assert.Equal(t, record.Ratings.PrimaryScore, record.Ratings.SecondaryScore)
	assert.Equal(t, int32(1), tm.externalCalls.Load())

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	degraded := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "cinescope_degraded_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "source" {
					degraded[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, 1.0, degraded["credits"])
	assert.Equal(t, 1.0, degraded["external_ids"])
}

func TestService_Aggregate_SecondaryFallbackAndClamp(t *testing.T) {
	omdbClient := newFakeOMDB()
	omdbClient.ratings["tt1375666"] = omdb.NormalizedRatings{}
	omdbClient.distributions["tt1375666"] = []int{-3, 2, 7}
	resolver := &countingResolver{data: &letterboxd.FilmData{Rating: 3.9, Distribution: []int{1, 2}}}
	svc := NewServiceWithClients(newFakeTMDB(), omdbClient, resolver, nil, nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 27205, KindMovie)
	require.NoError(t, err)

	assert.Equal(t, 8.4, record.Ratings.SecondaryScore)
	assert.Equal(t, []int{0, 2, 7, 0, 0, 0, 0, 0, 0, 0}, record.Ratings.SecondaryDistribution)
	assert.Equal(t, 3.9, record.Ratings.TertiaryScore)
	assert.Equal(t, []int{1, 2, 0, 0, 0, 0, 0, 0, 0, 0}, record.Ratings.TertiaryDistribution)
}

func TestService_Aggregate_Idempotent(t *testing.T) {
	resolver, _ := newLetterboxd(t)
	svc := NewServiceWithClients(newFakeTMDB(), newFakeOMDB(), resolver, nil, nil, zerolog.Nop())

	first, err := svc.Aggregate(context.Background(), 27205, KindMovie)
	require.NoError(t, err)
	second, err := svc.Aggregate(context.Background(), 27205, KindMovie)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestService_Search(t *testing.T) {
	tm := newFakeTMDB()
	tm.search = []tmdb.NormalizedSearchResult{
		{ID: 1, MediaType: tmdb.MediaMovie, Title: "Dated", Year: 1999, ImagePath: "/a.jpg", VoteAverage: 7},
		{ID: 2, MediaType: tmdb.MediaMovie, Title: "Undated"},
		{ID: 3, MediaType: tmdb.MediaTV, Title: "Show", Year: 2011},
		{ID: 4, MediaType: tmdb.MediaPerson, Title: "Someone", Department: "Acting", ImagePath: "/p.jpg"},
	}
	svc := NewServiceWithClients(tm, nil, nil, nil, nil, zerolog.Nop())

	results := svc.Search(context.Background(), "anything", "movie")
	require.Len(t, results, 4)
	assert.Equal(t, SearchResult{ID: 1, Title: "Dated", Year: "1999", PosterURL: "img/w500/a.jpg", MediaType: "movie", Rating: 7}, results[0])
	assert.Equal(t, "Unknown", results[1].Year)
	assert.Equal(t, "img/w500", results[1].PosterURL)
	assert.Equal(t, "series", results[2].MediaType)
	assert.Equal(t, "Acting", results[3].Year)
	assert.Equal(t, "person", results[3].MediaType)
}

func TestService_Search_EmptyCases(t *testing.T) {
	tm := newFakeTMDB()
	svc := NewServiceWithClients(tm, nil, nil, nil, nil, zerolog.Nop())

	assert.Equal(t, []SearchResult{}, svc.Search(context.Background(), "   ", "movie"))
	assert.Equal(t, []SearchResult{}, svc.Search(context.Background(), "dune", "podcast"))
	assert.Equal(t, int32(0), tm.searchCalls.Load())

	tm.searchErr = errors.New("boom")
	assert.Equal(t, []SearchResult{}, svc.Search(context.Background(), "dune", "tv"))
	assert.Equal(t, int32(1), tm.searchCalls.Load())
}

func TestService_Trending(t *testing.T) {
	tm := newFakeTMDB()
	tm.search = []tmdb.NormalizedSearchResult{{ID: 1, Title: "Hit", Year: 2026, ImagePath: "/h.jpg", VoteAverage: 7.7}}
	svc := NewServiceWithClients(tm, nil, nil, nil, nil, zerolog.Nop())

	items, err := svc.Trending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TrendingItem{{ID: 1, Title: "Hit", Year: 2026, PosterURL: "img/w500/h.jpg", Rating: 7.7}}, items)

	tm.searchErr = errors.New("boom")
	_, err = svc.Trending(context.Background())
	assert.Error(t, err)
}

func TestService_PersonProfile(t *testing.T) {
	tm := newFakeTMDB()
	tm.person = &tmdb.NormalizedPersonDetails{ID: 525, Name: "Christopher Nolan", KnownForDepartment: "Directing"}
	tm.credits = &tmdb.NormalizedPersonCredits{
		Cast: []tmdb.NormalizedPersonCredit{{ID: 9, MediaType: tmdb.MediaMovie, Title: "Cameo", Character: "Himself"}},
		Crew: []tmdb.NormalizedPersonCredit{
			{ID: 1, MediaType: tmdb.MediaMovie, Title: "Inception", Job: "Director", Department: "Directing"},
			{ID: 1, MediaType: tmdb.MediaMovie, Title: "Inception", Job: "Screenplay", Department: "Writing"},
			{ID: 2, MediaType: tmdb.MediaMovie, Title: "Tenet", Job: "Director", Department: "Directing"},
			{ID: 3, MediaType: tmdb.MediaTV, Title: "Show", Job: "Producer"},
		},
	}
	svc := NewServiceWithClients(tm, nil, nil, nil, nil, zerolog.Nop())

	profile, err := svc.PersonProfile(context.Background(), 525)
	require.NoError(t, err)

	assert.Equal(t, "Christopher Nolan", profile.Name)
	require.Len(t, profile.Cast, 1)
	assert.Equal(t, "Himself", profile.Cast[0].Role)

	require.Len(t, profile.Crew, 3)
	assert.Equal(t, "Directing", profile.Crew[0].Department)
	assert.Len(t, profile.Crew[0].Credits, 2)
	assert.Equal(t, "Tenet", profile.Crew[0].Credits[1].Title)
	assert.Equal(t, "Writing", profile.Crew[1].Department)
	assert.Equal(t, "Other", profile.Crew[2].Department)
	assert.Equal(t, "series", profile.Crew[2].Credits[0].MediaType)
}

func TestService_PersonProfile_Failures(t *testing.T) {
	tm := newFakeTMDB()
	svc := NewServiceWithClients(tm, nil, nil, nil, nil, zerolog.Nop())

	_, err := svc.PersonProfile(context.Background(), 525)
	assert.ErrorIs(t, err, tmdb.ErrNotFound)

	_, err = svc.PersonProfile(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidID)

	tm.person = &tmdb.NormalizedPersonDetails{ID: 525, Name: "Christopher Nolan"}
	profile, err := svc.PersonProfile(context.Background(), 525)
	require.NoError(t, err)
	assert.Empty(t, profile.Cast)
	assert.Empty(t, profile.Crew)
}

func TestService_DevMode(t *testing.T) {
	cfg := &config.MetadataConfig{DevMode: true}
	svc := NewService(cfg, letterboxd.NewPopularTable(), nil, zerolog.Nop())

	record, err := svc.Aggregate(context.Background(), 27205, KindMovie)
	require.NoError(t, err)
	assert.Equal(t, "Inception", record.Title)
	assert.Equal(t, 148, record.Runtime)
	assert.Equal(t, 8.8, record.Ratings.SecondaryScore)
	assert.Equal(t, 4.2, record.Ratings.TertiaryScore)
	assert.Len(t, record.Ratings.SecondaryDistribution, 10)

	series, err := svc.Aggregate(context.Background(), 1396, KindSeries)
	require.NoError(t, err)
	assert.Len(t, series.Episodes, 50)

	status := svc.PersonalStatus(context.Background(), "someone", "tt1375666")
	require.NotNil(t, status.Rating)
	assert.Equal(t, 4.0, *status.Rating)

	for _, p := range svc.ProviderStatus() {
		assert.True(t, p.Configured, p.Name)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    MediaKind
		wantErr bool
	}{
		{"movie", KindMovie, false},
		{"series", KindSeries, false},
		{"tv", KindSeries, false},
		{"book", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
