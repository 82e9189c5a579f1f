package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinescope/cinescope/internal/config"
)

var (
	ErrAPIKeyMissing = errors.New("OMDb API key is not configured")
	ErrNotFound      = errors.New("not found on OMDb")
	ErrAPIError      = errors.New("OMDb API error")
)

// probeID is a long-lived title used for connectivity checks.
const probeID = "tt0133093"

// Client is an OMDb API client. It also reads the vote histogram from the
// IMDb ratings page, which OMDb does not expose.
type Client struct {
	httpClient *http.Client
	config     config.OMDBConfig
	logger     zerolog.Logger
}

// NewClient creates a new OMDb client.
func NewClient(cfg config.OMDBConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config: cfg,
		logger: logger.With().Str("component", "omdb").Logger(),
	}
}

func (c *Client) Name() string {
	return "omdb"
}

func (c *Client) IsConfigured() bool {
	return c.config.APIKey != ""
}

// Test looks up a known title.
func (c *Client) Test(ctx context.Context) error {
	_, err := c.GetByIMDbID(ctx, probeID)
	return err
}

// GetByIMDbID fetches the ratings OMDb reports for a title.
func (c *Client) GetByIMDbID(ctx context.Context, imdbID string) (*NormalizedRatings, error) {
	if !c.IsConfigured() {
		return nil, ErrAPIKeyMissing
	}
	if imdbID == "" {
		return nil, ErrNotFound
	}

	params := url.Values{
		"apikey": {c.config.APIKey},
		"i":      {imdbID},
		"plot":   {"short"},
	}
	body, err := c.fetch(ctx, c.config.BaseURL+"?"+params.Encode(), http.Header{
		"Accept": {"application/json"},
	})
	if err != nil {
		return nil, err
	}

	var payload Response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if payload.Response == "False" {
		switch payload.Error {
		case "Movie not found!", "Incorrect IMDb ID.":
			return nil, fmt.Errorf("%s: %w", imdbID, ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %s", ErrAPIError, payload.Error)
	}

	ratings := normalizeRatings(payload)
	c.logger.Debug().
		Str("imdbId", imdbID).
		Float64("imdbRating", ratings.ImdbRating).
		Int("rottenTomatoes", ratings.RottenTomatoes).
		Int("metacritic", ratings.Metacritic).
		Msg("Fetched OMDb ratings")

	return &ratings, nil
}

// GetRatings is GetByIMDbID with every failure degraded to zero ratings.
func (c *Client) GetRatings(ctx context.Context, imdbID string) NormalizedRatings {
	ratings, err := c.GetByIMDbID(ctx, imdbID)
	if err != nil {
		c.logger.Warn().Err(err).Str("imdbId", imdbID).Msg("OMDb ratings unavailable")
		return NormalizedRatings{}
	}
	return *ratings
}

// fetch performs a GET and returns at most maxPageSize bytes of a 200 body.
func (c *Client) fetch(ctx context.Context, target string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		req.Header[key] = values
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d from %s", ErrAPIError, resp.StatusCode, req.URL.Host)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// normalizeRatings parses OMDb's display strings. "N/A" and anything else
// non-numeric stays 0.
func normalizeRatings(resp Response) NormalizedRatings {
	var result NormalizedRatings

	if rating, err := strconv.ParseFloat(resp.ImdbRating, 64); err == nil && rating > 0 {
		result.ImdbRating = rating
	}
	if votes, err := strconv.Atoi(strings.ReplaceAll(resp.ImdbVotes, ",", "")); err == nil {
		result.ImdbVotes = votes
	}
	if score, err := strconv.Atoi(resp.Metascore); err == nil {
		result.Metacritic = score
	}

	for _, rating := range resp.Ratings {
		switch rating.Source {
		case "Rotten Tomatoes": // "92%"
			result.RottenTomatoes = leadingInt(rating.Value)
		case "Metacritic": // "74/100"
			if result.Metacritic == 0 {
				result.Metacritic = leadingInt(rating.Value)
			}
		}
	}

	return result
}

// leadingInt parses the leading digits of s, 0 when there are none.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
