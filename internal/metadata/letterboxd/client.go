package letterboxd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/cinescope/cinescope/internal/config"
)

const maxPageSize = 4 << 20

var (
	ErrFilmNotFound       = errors.New("film not found on Letterboxd")
	ErrNoTitle            = errors.New("no title to derive a slug from")
	ErrProxyNotConfigured = errors.New("Letterboxd proxy is not configured")
	ErrUnexpectedStatus   = errors.New("unexpected Letterboxd status")
	ErrNoFilmRedirect     = errors.New("id did not resolve to a film page")
)

// Client scrapes public Letterboxd pages. All requests share one rate
// limiter.
type Client struct {
	httpClient *http.Client
	config     config.LetterboxdConfig
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a new Letterboxd client. A non-positive request rate
// disables throttling.
func NewClient(cfg config.LetterboxdConfig, logger zerolog.Logger) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		config:  cfg,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With().Str("component", "letterboxd").Logger(),
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "letterboxd"
}

// HasProxy returns true if a community proxy URL is set.
func (c *Client) HasProxy() bool {
	return c.config.ProxyURL != ""
}

// FetchFilm scrapes the film page for slug.
func (c *Client) FetchFilm(ctx context.Context, slug string) (*FilmData, error) {
	body, err := c.fetchPage(ctx, fmt.Sprintf("%s/film/%s/", c.baseURL(), url.PathEscape(slug)))
	if err != nil {
		return nil, err
	}

	data := ExtractFilmData(body)

	c.logger.Debug().
		Str("slug", slug).
		Float64("rating", data.Rating).
		Int("watchCount", data.WatchCount).
		Msg("Scraped film page")

	return &data, nil
}

// Scrape derives the slug from title and fetches the film page. When the
// plain slug is unknown and the year is known, the "{slug}-{year}" form used
// for remakes is tried once.
func (c *Client) Scrape(ctx context.Context, title string, year int) (*FilmData, error) {
	slug := Slug(title)
	if slug == "" {
		return nil, ErrNoTitle
	}

	data, err := c.FetchFilm(ctx, slug)
	if errors.Is(err, ErrFilmNotFound) && year > 0 {
		return c.FetchFilm(ctx, fmt.Sprintf("%s-%d", slug, year))
	}
	return data, err
}

// FetchProxy asks the configured community proxy for a film by IMDb id.
func (c *Client) FetchProxy(ctx context.Context, imdbID string) (*FilmData, error) {
	if !c.HasProxy() {
		return nil, ErrProxyNotConfigured
	}

	endpoint := fmt.Sprintf("%s/movie/%s", strings.TrimSuffix(c.config.ProxyURL, "/"), url.PathEscape(imdbID))
	resp, err := c.get(ctx, endpoint, "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrFilmNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: proxy status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var data FilmData
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPageSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode proxy response: %w", err)
	}

	data = data.normalized()
	return &data, nil
}

// PersonalStatus reads a member's rating for a film. The id is an IMDb id
// ("tt...") or a TMDB id; the site redirects either to the film page. Every
// failure yields an empty status.
func (c *Client) PersonalStatus(ctx context.Context, username, id string) PersonalStatus {
	status := PersonalStatus{}
	if username == "" || id == "" {
		return status
	}

	slug, err := c.resolveFilmSlug(ctx, id)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", id).Msg("Could not resolve film for personal status")
		return status
	}

	page := fmt.Sprintf("%s/%s/film/%s/", c.baseURL(), url.PathEscape(username), url.PathEscape(slug))
	body, err := c.fetchPage(ctx, page)
	if err != nil {
		if !errors.Is(err, ErrFilmNotFound) {
			c.logger.Warn().Err(err).Str("username", username).Str("slug", slug).Msg("Could not fetch member film page")
		}
		return status
	}

	if rating, ok := ExtractUserRating(body); ok {
		status.Rating = &rating
	}
	return status
}

// resolveFilmSlug follows the id redirect and returns the slug of the film
// page it lands on.
func (c *Client) resolveFilmSlug(ctx context.Context, id string) (string, error) {
	source := "tmdb"
	if strings.HasPrefix(id, "tt") {
		source = "imdb"
	}

	resp, err := c.get(ctx, fmt.Sprintf("%s/%s/%s/", c.baseURL(), source, url.PathEscape(id)), "text/html")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageSize))

	final := resp.Request.URL.Path
	_, after, ok := strings.Cut(final, "/film/")
	if !ok {
		return "", fmt.Errorf("%w: landed on %s", ErrNoFilmRedirect, final)
	}
	slug, _, _ := strings.Cut(after, "/")
	if slug == "" {
		return "", fmt.Errorf("%w: landed on %s", ErrNoFilmRedirect, final)
	}
	return slug, nil
}

// fetchPage GETs an HTML page. 404 maps to ErrFilmNotFound.
func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := c.get(ctx, pageURL, "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrFilmNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, target, accept string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("url", target).Msg("HTTP request failed")
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) baseURL() string {
	return strings.TrimSuffix(c.config.BaseURL, "/")
}
