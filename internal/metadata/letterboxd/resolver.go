package letterboxd

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Query identifies the film a Strategy is asked about.
type Query struct {
	ImdbID string
	Title  string
	Year   int
}

// Strategy is one source of film data. Fetch returns nil data and a nil
// error when the source simply has nothing for the film.
type Strategy interface {
	Name() string
	Fetch(ctx context.Context, q Query) (*FilmData, error)
}

// Attempt records the outcome of one strategy during a resolution.
type Attempt struct {
	Strategy string
	Found    bool
	Skipped  bool
	Err      error
}

// Resolver tries its strategies in order and returns the first hit.
type Resolver struct {
	strategies []Strategy
	logger     zerolog.Logger
}

// NewResolver creates a resolver over strategies, tried in the given order.
func NewResolver(logger zerolog.Logger, strategies ...Strategy) *Resolver {
	return &Resolver{
		strategies: strategies,
		logger:     logger.With().Str("component", "letterboxd-resolver").Logger(),
	}
}

// NewDefaultResolver wires the usual chain: the lookup table, then the
// proxy, then a live scrape.
func NewDefaultResolver(lookup Lookup, client *Client, logger zerolog.Logger) *Resolver {
	return NewResolver(logger,
		TableStrategy{Lookup: lookup},
		ProxyStrategy{Client: client},
		LiveStrategy{Client: client},
	)
}

// Resolve returns the first film data any strategy produces, along with the
// attempt trace. Absence is not an error.
func (r *Resolver) Resolve(ctx context.Context, q Query) (*FilmData, []Attempt, bool) {
	attempts := make([]Attempt, 0, len(r.strategies))

	for _, s := range r.strategies {
		if ctx.Err() != nil {
			break
		}

		data, err := s.Fetch(ctx, q)
		attempt := Attempt{Strategy: s.Name(), Found: data != nil && err == nil, Err: err}
		if errors.Is(err, ErrProxyNotConfigured) || errors.Is(err, ErrNoTitle) {
			attempt.Skipped = true
			attempt.Err = nil
		}
		attempts = append(attempts, attempt)

		if attempt.Found {
			normalized := data.normalized()
			r.logAttempts(q, attempts)
			return &normalized, attempts, true
		}
	}

	r.logAttempts(q, attempts)
	return nil, attempts, false
}

func (r *Resolver) logAttempts(q Query, attempts []Attempt) {
	arr := zerolog.Arr()
	for _, a := range attempts {
		d := zerolog.Dict().Str("strategy", a.Strategy).Bool("found", a.Found).Bool("skipped", a.Skipped)
		if a.Err != nil {
			d = d.Str("error", a.Err.Error())
		}
		arr = arr.Dict(d)
	}
	r.logger.Debug().
		Str("imdbId", q.ImdbID).
		Str("title", q.Title).
		Array("attempts", arr).
		Msg("Resolved film data")
}

// TableStrategy answers from a Lookup.
type TableStrategy struct {
	Lookup Lookup
}

func (s TableStrategy) Name() string { return "table" }

func (s TableStrategy) Fetch(ctx context.Context, q Query) (*FilmData, error) {
	if s.Lookup == nil || q.ImdbID == "" {
		return nil, nil
	}
	data, ok := s.Lookup.Lookup(ctx, q.ImdbID)
	if !ok {
		return nil, nil
	}
	return data, nil
}

// ProxyStrategy asks the community proxy by IMDb id.
type ProxyStrategy struct {
	Client *Client
}

func (s ProxyStrategy) Name() string { return "proxy" }

func (s ProxyStrategy) Fetch(ctx context.Context, q Query) (*FilmData, error) {
	if q.ImdbID == "" {
		return nil, nil
	}
	data, err := s.Client.FetchProxy(ctx, q.ImdbID)
	if errors.Is(err, ErrFilmNotFound) {
		return nil, nil
	}
	return data, err
}

// LiveStrategy scrapes the film page derived from the title.
type LiveStrategy struct {
	Client *Client
}

func (s LiveStrategy) Name() string { return "live" }

func (s LiveStrategy) Fetch(ctx context.Context, q Query) (*FilmData, error) {
	data, err := s.Client.Scrape(ctx, q.Title, q.Year)
	if errors.Is(err, ErrFilmNotFound) {
		return nil, nil
	}
	return data, err
}
