package metadata

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/cinescope/cinescope/internal/config"
	"github.com/cinescope/cinescope/internal/metadata/letterboxd"
	"github.com/cinescope/cinescope/internal/metadata/mock"
	"github.com/cinescope/cinescope/internal/metadata/omdb"
	"github.com/cinescope/cinescope/internal/metadata/tmdb"
	"github.com/cinescope/cinescope/internal/metrics"
)

const (
	defaultSummary = "No summary available."
	unknownYear    = "Unknown"
)

// Service aggregates one title across TMDB, OMDb/IMDb and Letterboxd.
type Service struct {
	tmdb     TMDBClient
	omdb     OMDBClient
	resolver FilmResolver
	status   StatusReader
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewService creates a new metadata service with real API clients. lookup
// answers Letterboxd questions before any network strategy is tried. In dev
// mode the providers are offline mocks and Letterboxd answers from lookup only.
func NewService(cfg *config.MetadataConfig, lookup letterboxd.Lookup, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if cfg.DevMode {
		logger.Info().Msg("Metadata dev mode enabled, using mock providers")
		return NewServiceWithClients(
			mock.NewTMDBClient(),
			mock.NewOMDBClient(),
			letterboxd.NewResolver(logger, letterboxd.TableStrategy{Lookup: lookup}),
			mock.NewStatusReader(),
			m,
			logger,
		)
	}

	lb := letterboxd.NewClient(cfg.Letterboxd, logger)
	return NewServiceWithClients(
		tmdb.NewClient(cfg.TMDB, logger),
		omdb.NewClient(cfg.OMDB, logger),
		letterboxd.NewDefaultResolver(lookup, lb, logger),
		lb,
		m,
		logger,
	)
}

// NewServiceWithClients creates a new metadata service with custom clients (for testing/mocking).
func NewServiceWithClients(tmdbClient TMDBClient, omdbClient OMDBClient, resolver FilmResolver, status StatusReader, m *metrics.Metrics, logger zerolog.Logger) *Service {
	return &Service{
		tmdb:     tmdbClient,
		omdb:     omdbClient,
		resolver: resolver,
		status:   status,
		metrics:  m,
		logger:   logger.With().Str("component", "metadata").Logger(),
	}
}

// Providers returns the upstream providers that support connectivity checks.
func (s *Service) Providers() []Provider {
	providers := []Provider{s.tmdb}
	if s.omdb != nil {
		providers = append(providers, s.omdb)
	}
	return providers
}

// ProviderStatus reports which providers are configured.
func (s *Service) ProviderStatus() []ProviderStatus {
	status := []ProviderStatus{{Name: s.tmdb.Name(), Configured: s.tmdb.IsConfigured()}}
	if s.omdb != nil {
		status = append(status, ProviderStatus{Name: s.omdb.Name(), Configured: s.omdb.IsConfigured()})
	}
	status = append(status, ProviderStatus{Name: "letterboxd", Configured: s.resolver != nil})
	return status
}

// Aggregate builds the full record for one movie or series. Only a failed
// details lookup or a failed season fetch is fatal; every other source
// degrades to neutral values.
func (s *Service) Aggregate(ctx context.Context, id int, kind MediaKind) (record *MediaRecord, err error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveAggregation(string(kind), err, time.Since(start))
	}()

	if !kind.Valid() {
		return nil, newAggregationError(id, kind, ErrInvalidKind)
	}
	if id <= 0 {
		return nil, newAggregationError(id, kind, ErrInvalidID)
	}

	details, err := s.fetchDetails(ctx, id, kind)
	if err != nil {
		s.logger.Warn().Err(err).Int("tmdbId", id).Str("kind", string(kind)).Msg("Failed to fetch details")
		return nil, newAggregationError(id, kind, err)
	}

	record = newRecord(details, kind)

	var (
		wg          conc.WaitGroup
		episodesErr error
	)
	wg.Go(func() {
		record.Cast = s.fetchCast(ctx, id, kind)
	})
	wg.Go(func() {
		record.ImdbID, record.Ratings = s.fetchRatings(ctx, record, details.VoteAverage)
	})
	if kind == KindSeries {
		wg.Go(func() {
			record.Episodes, episodesErr = s.fetchEpisodes(ctx, id, details.NumberOfSeasons)
		})
	}
	wg.Wait()

	if episodesErr != nil {
		s.logger.Warn().Err(episodesErr).Int("tmdbId", id).Msg("Failed to fetch episodes")
		return nil, newAggregationError(id, kind, episodesErr)
	}

	s.logger.Info().
		Int("tmdbId", id).
		Str("kind", string(kind)).
		Str("imdbId", record.ImdbID).
		Int("cast", len(record.Cast)).
		Int("episodes", len(record.Episodes)).
		Dur("elapsed", time.Since(start)).
		Msg("Aggregated media record")

	return record, nil
}

func (s *Service) fetchDetails(ctx context.Context, id int, kind MediaKind) (*tmdb.NormalizedDetails, error) {
	if kind == KindSeries {
		return s.tmdb.GetSeriesDetails(ctx, id)
	}
	return s.tmdb.GetMovieDetails(ctx, id)
}

func newRecord(details *tmdb.NormalizedDetails, kind MediaKind) *MediaRecord {
	record := &MediaRecord{
		ID:          details.ID,
		Title:       details.Title,
		Kind:        kind,
		Year:        details.Year,
		Runtime:     details.Runtime,
		Summary:     details.Overview,
		PosterURL:   details.PosterURL,
		BackdropURL: details.BackdropURL,
		Cast:        []CastMember{},
	}
	if strings.TrimSpace(record.Summary) == "" {
		record.Summary = defaultSummary
	}
	if kind == KindMovie && details.Director != nil {
		record.Director = &Person{
			ID:       details.Director.ID,
			Name:     details.Director.Name,
			ImageURL: details.Director.PhotoURL,
		}
	}
	return record
}

func (s *Service) fetchCast(ctx context.Context, id int, kind MediaKind) []CastMember {
	people, err := s.tmdb.GetCredits(ctx, id, providerType(kind))
	if err != nil {
		s.logger.Warn().Err(err).Int("tmdbId", id).Msg("Failed to fetch credits")
		s.metrics.Degraded("credits")
		return []CastMember{}
	}

	cast := make([]CastMember, len(people))
	for i, p := range people {
		cast[i] = CastMember{
			ID:        p.ID,
			Name:      p.Name,
			Character: p.Role,
			ImageURL:  p.PhotoURL,
		}
	}
	return cast
}

func (s *Service) fetchEpisodes(ctx context.Context, id, seasons int) ([]Episode, error) {
	all, err := s.tmdb.GetAllEpisodes(ctx, id, seasons)
	if err != nil {
		return nil, err
	}

	episodes := make([]Episode, len(all))
	for i, ep := range all {
		episodes[i] = Episode{
			SeasonNumber:  ep.SeasonNumber,
			EpisodeNumber: ep.EpisodeNumber,
			Title:         ep.Title,
			Rating:        ep.Rating,
		}
	}
	return episodes, nil
}

// fetchRatings resolves the IMDb id once and gathers every score keyed on it.
func (s *Service) fetchRatings(ctx context.Context, record *MediaRecord, primary float64) (string, RatingBlock) {
	ratings := RatingBlock{
		PrimaryScore:          primary,
		SecondaryDistribution: omdb.EmptyDistribution(),
		TertiaryDistribution:  []int{},
	}

	imdbID, err := s.tmdb.GetExternalIDs(ctx, record.ID, providerType(record.Kind))
	if err != nil {
		s.logger.Warn().Err(err).Int("tmdbId", record.ID).Msg("Failed to fetch external ids")
		s.metrics.Degraded("external_ids")
		imdbID = ""
	}

	if imdbID != "" {
		s.enrichFromIMDb(ctx, imdbID, record, &ratings)
	}

	if ratings.SecondaryScore == 0 {
		ratings.SecondaryScore = ratings.PrimaryScore
	}
	return imdbID, ratings
}

func (s *Service) enrichFromIMDb(ctx context.Context, imdbID string, record *MediaRecord, ratings *RatingBlock) {
	var (
		wg           conc.WaitGroup
		secondary    omdb.NormalizedRatings
		distribution []int
		film         *letterboxd.FilmData
	)

	if s.omdb != nil {
		wg.Go(func() {
			secondary = s.omdb.GetRatings(ctx, imdbID)
		})
		wg.Go(func() {
			distribution = s.omdb.GetDistribution(ctx, imdbID)
		})
	}
	if record.Kind == KindMovie && s.resolver != nil {
		wg.Go(func() {
			film = s.resolveFilm(ctx, letterboxd.Query{ImdbID: imdbID, Title: record.Title, Year: record.Year})
		})
	}
	wg.Wait()

	ratings.SecondaryScore = secondary.ImdbRating
	ratings.SecondaryVotes = secondary.ImdbVotes
	ratings.RottenTomatoes = secondary.RottenTomatoes
	ratings.Metacritic = secondary.Metacritic
	ratings.SecondaryDistribution = buckets(distribution)

	if secondary.ImdbRating == 0 {
		s.metrics.Degraded("omdb")
	}
	if isEmpty(ratings.SecondaryDistribution) {
		s.metrics.Degraded("imdb_distribution")
	}

	if film != nil {
		ratings.TertiaryScore = film.Rating
		ratings.TertiaryWatchCount = film.WatchCount
		ratings.TertiaryDistribution = buckets(film.Distribution)
	}
}

func (s *Service) resolveFilm(ctx context.Context, q letterboxd.Query) *letterboxd.FilmData {
	film, attempts, ok := s.resolver.Resolve(ctx, q)
	if !ok {
		s.logger.Debug().Str("imdbId", q.ImdbID).Int("attempts", len(attempts)).Msg("No Letterboxd data")
		s.metrics.Resolved("none")
		s.metrics.Degraded("letterboxd")
		return nil
	}
	s.metrics.Resolved(attempts[len(attempts)-1].Strategy)
	return film
}

// Search returns hits for one kind. A blank query or any upstream failure
// yields an empty list.
func (s *Service) Search(ctx context.Context, query, kind string) []SearchResult {
	results := []SearchResult{}

	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}

	mediaType, ok := searchType(kind)
	if !ok {
		s.logger.Debug().Str("kind", kind).Msg("Ignoring search for unknown kind")
		return results
	}

	hits, err := s.tmdb.Search(ctx, query, mediaType)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Str("kind", kind).Msg("Search failed")
		return results
	}

	for _, hit := range hits {
		result := SearchResult{
			ID:        hit.ID,
			Title:     hit.Title,
			PosterURL: s.tmdb.GetImageURL(hit.ImagePath, tmdb.PosterWidth),
			MediaType: kindName(hit.MediaType),
			Rating:    hit.VoteAverage,
		}
		switch {
		case hit.MediaType == tmdb.MediaPerson:
			result.Year = hit.Department
		case hit.Year > 0:
			result.Year = strconv.Itoa(hit.Year)
		default:
			result.Year = unknownYear
		}
		results = append(results, result)
	}

	return results
}

// Trending returns this week's trending movies.
func (s *Service) Trending(ctx context.Context) ([]TrendingItem, error) {
	hits, err := s.tmdb.GetTrending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending movies: %w", err)
	}

	items := make([]TrendingItem, len(hits))
	for i, hit := range hits {
		items[i] = TrendingItem{
			ID:        hit.ID,
			Title:     hit.Title,
			Year:      hit.Year,
			PosterURL: s.tmdb.GetImageURL(hit.ImagePath, tmdb.PosterWidth),
			Rating:    hit.VoteAverage,
		}
	}
	return items, nil
}

// PersonProfile fetches a person and their filmography concurrently. A
// failed filmography leaves the credit lists empty.
func (s *Service) PersonProfile(ctx context.Context, personID int) (*PersonProfile, error) {
	if personID <= 0 {
		return nil, ErrInvalidID
	}

	var (
		wg         conc.WaitGroup
		details    *tmdb.NormalizedPersonDetails
		detailsErr error
		credits    *tmdb.NormalizedPersonCredits
		creditsErr error
	)
	wg.Go(func() {
		details, detailsErr = s.tmdb.GetPerson(ctx, personID)
	})
	wg.Go(func() {
		credits, creditsErr = s.tmdb.GetPersonCredits(ctx, personID)
	})
	wg.Wait()

	if detailsErr != nil {
		return nil, fmt.Errorf("failed to fetch person %d: %w", personID, detailsErr)
	}
	if creditsErr != nil {
		s.logger.Warn().Err(creditsErr).Int("personId", personID).Msg("Failed to fetch person credits")
		s.metrics.Degraded("person_credits")
		credits = &tmdb.NormalizedPersonCredits{}
	}

	profile := &PersonProfile{
		ID:                 details.ID,
		Name:               details.Name,
		Biography:          details.Biography,
		ProfileURL:         details.ProfileURL,
		Birthday:           details.Birthday,
		PlaceOfBirth:       details.PlaceOfBirth,
		KnownForDepartment: details.KnownForDepartment,
		Cast:               make([]PersonCredit, len(credits.Cast)),
		Crew:               groupByDepartment(credits.Crew),
	}
	for i, c := range credits.Cast {
		profile.Cast[i] = toPersonCredit(c, c.Character)
	}

	return profile, nil
}

// groupByDepartment partitions crew credits, keeping departments in the
// order they first appear.
func groupByDepartment(crew []tmdb.NormalizedPersonCredit) []DepartmentCredits {
	groups := []DepartmentCredits{}
	index := make(map[string]int)

	for _, c := range crew {
		dept := c.Department
		if dept == "" {
			dept = "Other"
		}
		i, ok := index[dept]
		if !ok {
			i = len(groups)
			index[dept] = i
			groups = append(groups, DepartmentCredits{Department: dept})
		}
		groups[i].Credits = append(groups[i].Credits, toPersonCredit(c, c.Job))
	}
	return groups
}

func toPersonCredit(c tmdb.NormalizedPersonCredit, role string) PersonCredit {
	return PersonCredit{
		ID:        c.ID,
		Title:     c.Title,
		MediaType: kindName(c.MediaType),
		Year:      c.Year,
		Role:      role,
		PosterURL: c.PosterURL,
		Rating:    c.VoteAverage,
	}
}

// PersonalStatus reads a Letterboxd member's rating of a film.
func (s *Service) PersonalStatus(ctx context.Context, username, id string) letterboxd.PersonalStatus {
	if s.status == nil {
		return letterboxd.PersonalStatus{}
	}
	return s.status.PersonalStatus(ctx, username, id)
}

// providerType maps a kind to TMDB's path segment.
func providerType(kind MediaKind) string {
	if kind == KindSeries {
		return tmdb.MediaTV
	}
	return tmdb.MediaMovie
}

// searchType maps a search kind to TMDB's search type. An empty kind searches movies.
func searchType(kind string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "movie":
		return tmdb.MediaMovie, true
	case "series", "tv":
		return tmdb.MediaTV, true
	case "person":
		return tmdb.MediaPerson, true
	default:
		return "", false
	}
}

// kindName maps TMDB's media type back to the names this service exposes.
func kindName(mediaType string) string {
	if mediaType == tmdb.MediaTV {
		return string(KindSeries)
	}
	return mediaType
}

// buckets copies dist into exactly ten non-negative buckets.
func buckets(dist []int) []int {
	out := make([]int, omdb.Buckets)
	for i := 0; i < len(dist) && i < len(out); i++ {
		if dist[i] > 0 {
			out[i] = dist[i]
		}
	}
	return out
}

func isEmpty(dist []int) bool {
	for _, v := range dist {
		if v != 0 {
			return false
		}
	}
	return true
}

// IsRetryable reports whether err is worth retrying from a client.
func IsRetryable(err error) bool {
	var aggErr *AggregationError
	if errors.As(err, &aggErr) {
		return aggErr.Retryable()
	}
	return true
}
