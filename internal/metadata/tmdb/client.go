package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"

	"github.com/cinescope/cinescope/internal/config"
)

const (
	placeholderImage = "https://via.placeholder.com/%dx%d?text=No+Poster"
	unknownDirector  = "Unknown Director"
)

// Client is a TMDB API client.
type Client struct {
	httpClient *http.Client
	config     config.TMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new TMDB client.
func NewClient(cfg config.TMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "tmdb").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "tmdb"
}

// IsConfigured returns true if the API key is set.
func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test verifies connectivity to the TMDB API by making a configuration request.
func (c *Client) Test(ctx context.Context) error {
	if !c.IsConfigured() {
		return ErrAPIKeyMissing
	}

	var result struct {
		Images struct {
			BaseURL string `json:"base_url"`
		} `json:"images"`
	}

	return c.doRequest(ctx, "configuration", "/configuration", nil, &result)
}

// ImageURL builds an artwork URL for the given width. An empty path yields a
// placeholder image of the same width.
func ImageURL(base, path string, width int) string {
	if path == "" {
		return fmt.Sprintf(placeholderImage, width, width)
	}
	return fmt.Sprintf("%s/w%d%s", base, width, path)
}

// GetImageURL builds an artwork URL against the configured image host.
func (c *Client) GetImageURL(path string, width int) string {
	return ImageURL(c.config.ImageBaseURL, path, width)
}

func (c *Client) imageURL(path *string, width int) string {
	if path == nil {
		return c.GetImageURL("", width)
	}
	return c.GetImageURL(*path, width)
}

// GetMovieDetails fetches a movie with its credits appended. The director is
// the first crew member whose job is "Director".
func (c *Client) GetMovieDetails(ctx context.Context, id int) (*NormalizedDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits")

	var details MovieDetails
	if err := c.doRequest(ctx, "movie details", fmt.Sprintf("/movie/%d", id), params, &details); err != nil {
		return nil, err
	}

	result := &NormalizedDetails{
		ID:          details.ID,
		MediaType:   MediaMovie,
		Title:       details.Title,
		Overview:    details.Overview,
		ReleaseDate: details.ReleaseDate,
		Year:        parseYear(details.ReleaseDate),
		Runtime:     details.Runtime,
		PosterURL:   c.imageURL(details.PosterPath, PosterWidth),
		BackdropURL: c.imageURL(details.BackdropPath, BackdropWidth),
		VoteAverage: details.VoteAverage,
		Director:    &NormalizedPerson{Name: unknownDirector},
	}
	if details.PosterPath != nil {
		result.PosterPath = *details.PosterPath
	}
	if details.BackdropPath != nil {
		result.BackdropPath = *details.BackdropPath
	}

	if details.Credits != nil {
		for _, crew := range details.Credits.Crew {
			if crew.Job == "Director" {
				result.Director = &NormalizedPerson{
					ID:       crew.ID,
					Name:     crew.Name,
					Role:     crew.Job,
					PhotoURL: c.imageURL(crew.ProfilePath, ProfileWidth),
				}
				break
			}
		}
	}

	return result, nil
}

// GetSeriesDetails fetches a TV series. Series carry no director.
func (c *Client) GetSeriesDetails(ctx context.Context, id int) (*NormalizedDetails, error) {
	var details TVDetails
	if err := c.doRequest(ctx, "series details", fmt.Sprintf("/tv/%d", id), nil, &details); err != nil {
		return nil, err
	}

	result := &NormalizedDetails{
		ID:              details.ID,
		MediaType:       MediaTV,
		Title:           details.Name,
		Overview:        details.Overview,
		ReleaseDate:     details.FirstAirDate,
		Year:            parseYear(details.FirstAirDate),
		PosterURL:       c.imageURL(details.PosterPath, PosterWidth),
		BackdropURL:     c.imageURL(details.BackdropPath, BackdropWidth),
		VoteAverage:     details.VoteAverage,
		NumberOfSeasons: details.NumberOfSeasons,
	}
	if details.PosterPath != nil {
		result.PosterPath = *details.PosterPath
	}
	if details.BackdropPath != nil {
		result.BackdropPath = *details.BackdropPath
	}
	if len(details.EpisodeRunTime) > 0 {
		result.Runtime = details.EpisodeRunTime[0]
	}

	return result, nil
}

// GetExternalIDs returns the IMDb id of a title, or "" when TMDB has none.
func (c *Client) GetExternalIDs(ctx context.Context, id int, mediaType string) (string, error) {
	var ids ExternalIDs
	endpoint := fmt.Sprintf("/%s/%d/external_ids", mediaType, id)
	if err := c.doRequest(ctx, "external ids", endpoint, nil, &ids); err != nil {
		return "", err
	}
	return ids.ImdbID, nil
}

// GetCredits returns up to MaxCast billed cast members in provider order.
func (c *Client) GetCredits(ctx context.Context, id int, mediaType string) ([]NormalizedPerson, error) {
	var credits CreditsResponse
	endpoint := fmt.Sprintf("/%s/%d/credits", mediaType, id)
	if err := c.doRequest(ctx, "credits", endpoint, nil, &credits); err != nil {
		return nil, err
	}

	cast := credits.Cast
	if len(cast) > MaxCast {
		cast = cast[:MaxCast]
	}

	result := make([]NormalizedPerson, len(cast))
	for i, member := range cast {
		result[i] = NormalizedPerson{
			ID:       member.ID,
			Name:     member.Name,
			Role:     member.Character,
			PhotoURL: c.imageURL(member.ProfilePath, ProfileWidth),
		}
	}
	return result, nil
}

// GetSeasonEpisodes fetches the episodes of a single season.
func (c *Client) GetSeasonEpisodes(ctx context.Context, seriesID, seasonNumber int) ([]NormalizedEpisode, error) {
	var details SeasonDetails
	endpoint := fmt.Sprintf("/tv/%d/season/%d", seriesID, seasonNumber)
	if err := c.doRequest(ctx, "season episodes", endpoint, nil, &details); err != nil {
		return nil, err
	}

	episodes := make([]NormalizedEpisode, len(details.Episodes))
	for i, ep := range details.Episodes {
		season := ep.SeasonNumber
		if season == 0 {
			season = seasonNumber
		}
		episodes[i] = NormalizedEpisode{
			SeasonNumber:  season,
			EpisodeNumber: ep.EpisodeNumber,
			Title:         ep.Name,
			AirDate:       ep.AirDate,
			Rating:        ep.VoteAverage,
		}
	}
	return episodes, nil
}

// GetAllEpisodes fetches seasons 1..seasons concurrently and flattens them in
// season order. Any failed season fails the whole call.
func (c *Client) GetAllEpisodes(ctx context.Context, seriesID, seasons int) ([]NormalizedEpisode, error) {
	if seasons <= 0 {
		return []NormalizedEpisode{}, nil
	}

	bySeason := make([][]NormalizedEpisode, seasons)
	p := pool.New().WithContext(ctx).WithFirstError().WithCancelOnError()
	for i := range seasons {
		p.Go(func(ctx context.Context) error {
			episodes, err := c.GetSeasonEpisodes(ctx, seriesID, i+1)
			if err != nil {
				return err
			}
			bySeason[i] = episodes
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	all := make([]NormalizedEpisode, 0)
	for _, episodes := range bySeason {
		all = append(all, episodes...)
	}

	c.logger.Debug().
		Int("seriesId", seriesID).
		Int("seasons", seasons).
		Int("episodes", len(all)).
		Msg("Fetched all episodes")

	return all, nil
}

// Search queries one media type and returns hits in provider order.
func (c *Client) Search(ctx context.Context, query, mediaType string) ([]NormalizedSearchResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var response SearchResponse
	if err := c.doRequest(ctx, "search", "/search/"+mediaType, params, &response); err != nil {
		return nil, err
	}

	results := make([]NormalizedSearchResult, len(response.Results))
	for i, item := range response.Results {
		results[i] = toSearchResult(item, mediaType)
	}

	c.logger.Debug().
		Str("query", query).
		Str("mediaType", mediaType).
		Int("results", len(results)).
		Msg("Search completed")

	return results, nil
}

// GetTrending returns this week's trending movies.
func (c *Client) GetTrending(ctx context.Context) ([]NormalizedSearchResult, error) {
	var response SearchResponse
	if err := c.doRequest(ctx, "trending", "/trending/movie/week", nil, &response); err != nil {
		return nil, err
	}

	results := make([]NormalizedSearchResult, len(response.Results))
	for i, item := range response.Results {
		results[i] = toSearchResult(item, MediaMovie)
	}
	return results, nil
}

// GetPerson fetches a person's biography.
func (c *Client) GetPerson(ctx context.Context, id int) (*NormalizedPersonDetails, error) {
	var details PersonDetails
	if err := c.doRequest(ctx, "person", fmt.Sprintf("/person/%d", id), nil, &details); err != nil {
		return nil, err
	}

	result := &NormalizedPersonDetails{
		ID:                 details.ID,
		Name:               details.Name,
		Biography:          details.Biography,
		ProfileURL:         c.imageURL(details.ProfilePath, PosterWidth),
		KnownForDepartment: details.KnownForDepartment,
	}
	if details.Birthday != nil {
		result.Birthday = *details.Birthday
	}
	if details.PlaceOfBirth != nil {
		result.PlaceOfBirth = *details.PlaceOfBirth
	}
	return result, nil
}

// GetPersonCredits fetches a person's combined movie and tv credits.
func (c *Client) GetPersonCredits(ctx context.Context, id int) (*NormalizedPersonCredits, error) {
	var credits CombinedCreditsResponse
	endpoint := fmt.Sprintf("/person/%d/combined_credits", id)
	if err := c.doRequest(ctx, "person credits", endpoint, nil, &credits); err != nil {
		return nil, err
	}

	result := &NormalizedPersonCredits{
		Cast: make([]NormalizedPersonCredit, len(credits.Cast)),
		Crew: make([]NormalizedPersonCredit, len(credits.Crew)),
	}
	for i, credit := range credits.Cast {
		result.Cast[i] = c.toPersonCredit(credit)
	}
	for i, credit := range credits.Crew {
		result.Crew[i] = c.toPersonCredit(credit)
	}
	return result, nil
}

// doRequest performs a GET against the TMDB API and decodes the JSON body.
// Every failure is reported as an *UpstreamError.
func (c *Client) doRequest(ctx context.Context, op, path string, params url.Values, result any) error {
	if !c.IsConfigured() {
		return upstreamErr(op, 0, ErrAPIKeyMissing)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.config.APIKey)
	if c.config.Language != "" {
		params.Set("language", c.config.Language)
	}

	endpoint := c.config.BaseURL + path
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return upstreamErr(op, 0, fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Msg("HTTP request failed")
		return upstreamErr(op, 0, fmt.Errorf("HTTP request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			c.logger.Error().
				Int("status", resp.StatusCode).
				Str("op", op).
				Str("message", errResp.StatusMessage).
				Msg("TMDB API error")
		}

		switch resp.StatusCode {
		case http.StatusNotFound:
			return upstreamErr(op, resp.StatusCode, ErrNotFound)
		case http.StatusUnauthorized:
			return upstreamErr(op, resp.StatusCode, fmt.Errorf("%w: invalid API key", ErrAPIError))
		case http.StatusTooManyRequests:
			return upstreamErr(op, resp.StatusCode, ErrRateLimited)
		default:
			return upstreamErr(op, resp.StatusCode, ErrAPIError)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return upstreamErr(op, 0, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

func toSearchResult(item SearchItem, mediaType string) NormalizedSearchResult {
	result := NormalizedSearchResult{
		ID:          item.ID,
		MediaType:   mediaType,
		Title:       item.Title,
		VoteAverage: item.VoteAverage,
	}

	switch mediaType {
	case MediaPerson:
		result.Title = item.Name
		result.Department = item.KnownForDepartment
		if item.ProfilePath != nil {
			result.ImagePath = *item.ProfilePath
		}
	case MediaTV:
		result.Title = item.Name
		result.Year = parseYear(item.FirstAirDate)
		if item.PosterPath != nil {
			result.ImagePath = *item.PosterPath
		}
	default:
		result.Year = parseYear(item.ReleaseDate)
		if item.PosterPath != nil {
			result.ImagePath = *item.PosterPath
		}
	}

	return result
}

func (c *Client) toPersonCredit(credit PersonCredit) NormalizedPersonCredit {
	result := NormalizedPersonCredit{
		ID:          credit.ID,
		MediaType:   credit.MediaType,
		Title:       credit.Title,
		Year:        parseYear(credit.ReleaseDate),
		Character:   credit.Character,
		Job:         credit.Job,
		Department:  credit.Department,
		PosterURL:   c.imageURL(credit.PosterPath, PosterWidth),
		VoteAverage: credit.VoteAverage,
	}
	if credit.MediaType == MediaTV {
		result.Title = credit.Name
		result.Year = parseYear(credit.FirstAirDate)
	}
	return result
}

// parseYear extracts the year from a YYYY-MM-DD date, 0 when absent.
func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}
