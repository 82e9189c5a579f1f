package letterboxd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinescope/cinescope/internal/config"
)

const filmPage = `<html><head><script type="application/ld+json">{"aggregateRating":{"ratingValue":3.8}}</script></head>
<body>"checkinCount": 1234</body></html>`

func newTestClient(base, proxy string) *Client {
	return NewClient(config.LetterboxdConfig{
		BaseURL:   base,
		ProxyURL:  proxy,
		UserAgent: "test-agent",
		Timeout:   5,
	}, zerolog.Nop())
}

func TestClient_Scrape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		if r.URL.Path != "/film/amelie/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(filmPage))
	}))
	defer server.Close()

	data, err := newTestClient(server.URL, "").Scrape(context.Background(), "Amélie", 2001)
	require.NoError(t, err)
	assert.Equal(t, 3.8, data.Rating)
	assert.Equal(t, 1234, data.WatchCount)
	assert.Len(t, data.Distribution, Buckets)
}

func TestClient_Scrape_YearFallback(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/film/dune-2021/" {
			w.Write([]byte(filmPage))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	data, err := newTestClient(server.URL, "").Scrape(context.Background(), "Dune", 2021)
	require.NoError(t, err)
	assert.Equal(t, 3.8, data.Rating)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/film/dune/", "/film/dune-2021/"}, paths)
}

func TestClient_Scrape_NotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")

	_, err := client.Scrape(context.Background(), "Nothing", 0)
	assert.ErrorIs(t, err, ErrFilmNotFound)
	assert.Equal(t, int32(1), calls.Load(), "no year means no second attempt")

	_, err = client.Scrape(context.Background(), "???", 1999)
	assert.ErrorIs(t, err, ErrNoTitle)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Scrape_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "").Scrape(context.Background(), "Inception", 2010)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_FetchProxy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/movie/tt0816692":
			w.Write([]byte(`{"rating":4.3,"distribution":[1,2,3],"watchCount":99}`))
		case "/movie/tt404":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := newTestClient("http://unused", server.URL)

	data, err := client.FetchProxy(context.Background(), "tt0816692")
	require.NoError(t, err)
	assert.Equal(t, 4.3, data.Rating)
	assert.Equal(t, 99, data.WatchCount)
	assert.Equal(t, []int{1, 2, 3, 0, 0, 0, 0, 0, 0, 0}, data.Distribution)

	_, err = client.FetchProxy(context.Background(), "tt404")
	assert.ErrorIs(t, err, ErrFilmNotFound)

	_, err = client.FetchProxy(context.Background(), "tt500")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestClient_FetchProxy_NotConfigured(t *testing.T) {
	client := newTestClient("http://unused", "")
	assert.False(t, client.HasProxy())

	_, err := client.FetchProxy(context.Background(), "tt1")
	assert.ErrorIs(t, err, ErrProxyNotConfigured)
}

func TestClient_PersonalStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/imdb/tt1375666/", "/tmdb/27205/":
			http.Redirect(w, r, "/film/inception/", http.StatusFound)
		case "/tmdb/1/":
			http.Redirect(w, r, "/search/nothing/", http.StatusFound)
		case "/film/inception/":
			w.Write([]byte(filmPage))
		case "/cinephile/film/inception/":
			w.Write([]byte(`<span class="rating rated-9"></span>`))
		case "/newbie/film/inception/":
			w.Write([]byte(`<span class="rating"></span>`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	ctx := context.Background()

	status := client.PersonalStatus(ctx, "cinephile", "tt1375666")
	require.NotNil(t, status.Rating)
	assert.Equal(t, 4.5, *status.Rating)
	assert.False(t, status.InWatchlist)

	status = client.PersonalStatus(ctx, "cinephile", "27205")
	require.NotNil(t, status.Rating)
	assert.Equal(t, 4.5, *status.Rating)

	tests := []struct {
		name     string
		username string
		id       string
	}{
		{"unrated", "newbie", "tt1375666"},
		{"unknown member", "ghost", "tt1375666"},
		{"no film redirect", "cinephile", "1"},
		{"unknown id", "cinephile", "tt0000000"},
		{"empty username", "", "tt1375666"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := client.PersonalStatus(ctx, tt.username, tt.id)
			assert.Nil(t, status.Rating)
			assert.False(t, status.InWatchlist)
		})
	}
}

func TestClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(filmPage))
	}))
	defer server.Close()

	client := NewClient(config.LetterboxdConfig{BaseURL: server.URL, RequestsPerSecond: 0.001, Timeout: 5}, zerolog.Nop())

	_, err := client.FetchFilm(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.FetchFilm(ctx, "second")
	assert.Error(t, err, "a throttled request must respect a cancelled context")
}
