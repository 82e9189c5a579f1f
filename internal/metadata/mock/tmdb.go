// Package mock provides offline implementations of the metadata providers for developer mode.
package mock

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cinescope/cinescope/internal/metadata/tmdb"
)

const imageBase = "https://image.tmdb.org/t/p"

// TMDBClient is a mock implementation of the TMDB client.
type TMDBClient struct{}

// NewTMDBClient creates a new mock TMDB client.
func NewTMDBClient() *TMDBClient {
	return &TMDBClient{}
}

func (c *TMDBClient) Name() string {
	return "tmdb-mock"
}

func (c *TMDBClient) IsConfigured() bool {
	return true
}

func (c *TMDBClient) Test(ctx context.Context) error {
	return nil
}

func (c *TMDBClient) GetImageURL(path string, width int) string {
	return tmdb.ImageURL(imageBase, path, width)
}

func (c *TMDBClient) GetMovieDetails(ctx context.Context, id int) (*tmdb.NormalizedDetails, error) {
	title, ok := findTitle(mockMovies, id)
	if !ok {
		return nil, &tmdb.UpstreamError{Provider: c.Name(), Op: "movie details", StatusCode: http.StatusNotFound, Err: tmdb.ErrNotFound}
	}
	return c.details(title, tmdb.MediaMovie), nil
}

func (c *TMDBClient) GetSeriesDetails(ctx context.Context, id int) (*tmdb.NormalizedDetails, error) {
	title, ok := findTitle(mockSeries, id)
	if !ok {
		return nil, &tmdb.UpstreamError{Provider: c.Name(), Op: "series details", StatusCode: http.StatusNotFound, Err: tmdb.ErrNotFound}
	}
	return c.details(title, tmdb.MediaTV), nil
}

func (c *TMDBClient) GetExternalIDs(ctx context.Context, id int, mediaType string) (string, error) {
	catalog := mockMovies
	if mediaType == tmdb.MediaTV {
		catalog = mockSeries
	}
	title, _ := findTitle(catalog, id)
	return title.imdbID, nil
}

func (c *TMDBClient) GetCredits(ctx context.Context, id int, mediaType string) ([]tmdb.NormalizedPerson, error) {
	cast, ok := mockCast[id]
	if !ok {
		return []tmdb.NormalizedPerson{}, nil
	}
	out := make([]tmdb.NormalizedPerson, len(cast))
	copy(out, cast)
	return out, nil
}

// GetAllEpisodes generates ten episodes per season with a slowly rising rating.
func (c *TMDBClient) GetAllEpisodes(ctx context.Context, seriesID, seasons int) ([]tmdb.NormalizedEpisode, error) {
	episodes := make([]tmdb.NormalizedEpisode, 0, seasons*episodesPerSeason)
	for season := 1; season <= seasons; season++ {
		for ep := 1; ep <= episodesPerSeason; ep++ {
			episodes = append(episodes, tmdb.NormalizedEpisode{
				SeasonNumber:  season,
				EpisodeNumber: ep,
				Title:         fmt.Sprintf("Episode %d", ep),
				Rating:        7.5 + float64(season)*0.1 + float64(ep)*0.05,
			})
		}
	}
	return episodes, nil
}

func (c *TMDBClient) Search(ctx context.Context, query, mediaType string) ([]tmdb.NormalizedSearchResult, error) {
	query = strings.ToLower(query)
	var results []tmdb.NormalizedSearchResult

	switch mediaType {
	case tmdb.MediaPerson:
		for _, p := range mockPeople {
			if strings.Contains(strings.ToLower(p.Name), query) {
				results = append(results, tmdb.NormalizedSearchResult{
					ID:         p.ID,
					MediaType:  tmdb.MediaPerson,
					Title:      p.Name,
					Department: p.KnownForDepartment,
				})
			}
		}
	default:
		catalog := mockMovies
		if mediaType == tmdb.MediaTV {
			catalog = mockSeries
		}
		for _, t := range catalog {
			if strings.Contains(strings.ToLower(t.title), query) {
				results = append(results, t.searchResult(mediaType))
			}
		}
	}

	return results, nil
}

func (c *TMDBClient) GetTrending(ctx context.Context) ([]tmdb.NormalizedSearchResult, error) {
	results := make([]tmdb.NormalizedSearchResult, len(mockMovies))
	for i, t := range mockMovies {
		results[i] = t.searchResult(tmdb.MediaMovie)
	}
	return results, nil
}

func (c *TMDBClient) GetPerson(ctx context.Context, id int) (*tmdb.NormalizedPersonDetails, error) {
	for i := range mockPeople {
		if mockPeople[i].ID == id {
			p := mockPeople[i]
			return &p, nil
		}
	}
	return nil, &tmdb.UpstreamError{Provider: c.Name(), Op: "person", StatusCode: http.StatusNotFound, Err: tmdb.ErrNotFound}
}

func (c *TMDBClient) GetPersonCredits(ctx context.Context, id int) (*tmdb.NormalizedPersonCredits, error) {
	credits := &tmdb.NormalizedPersonCredits{
		Cast: []tmdb.NormalizedPersonCredit{},
		Crew: []tmdb.NormalizedPersonCredit{},
	}

	for _, t := range mockMovies {
		for _, member := range mockCast[t.id] {
			if member.ID == id {
				credits.Cast = append(credits.Cast, t.personCredit(member.Role, "", ""))
			}
		}
		if t.director.ID == id {
			credits.Crew = append(credits.Crew, t.personCredit("", "Director", "Directing"))
		}
	}
	return credits, nil
}

func (c *TMDBClient) details(t title, mediaType string) *tmdb.NormalizedDetails {
	d := &tmdb.NormalizedDetails{
		ID:              t.id,
		MediaType:       mediaType,
		Title:           t.title,
		Overview:        t.overview,
		ReleaseDate:     fmt.Sprintf("%d-01-01", t.year),
		Year:            t.year,
		Runtime:         t.runtime,
		PosterPath:      t.poster,
		PosterURL:       c.GetImageURL(t.poster, tmdb.PosterWidth),
		BackdropURL:     c.GetImageURL("", tmdb.BackdropWidth),
		VoteAverage:     t.vote,
		NumberOfSeasons: t.seasons,
	}
	if mediaType == tmdb.MediaMovie {
		director := t.director
		d.Director = &director
	}
	return d
}

const episodesPerSeason = 10

type title struct {
	id       int
	imdbID   string
	title    string
	overview string
	year     int
	runtime  int
	poster   string
	vote     float64
	seasons  int
	director tmdb.NormalizedPerson
}

func (t title) searchResult(mediaType string) tmdb.NormalizedSearchResult {
	return tmdb.NormalizedSearchResult{
		ID:          t.id,
		MediaType:   mediaType,
		Title:       t.title,
		Year:        t.year,
		ImagePath:   t.poster,
		VoteAverage: t.vote,
	}
}

func (t title) personCredit(character, job, department string) tmdb.NormalizedPersonCredit {
	return tmdb.NormalizedPersonCredit{
		ID:          t.id,
		MediaType:   tmdb.MediaMovie,
		Title:       t.title,
		Year:        t.year,
		Character:   character,
		Job:         job,
		Department:  department,
		PosterURL:   tmdb.ImageURL(imageBase, t.poster, tmdb.PosterWidth),
		VoteAverage: t.vote,
	}
}

func findTitle(catalog []title, id int) (title, bool) {
	for _, t := range catalog {
		if t.id == id {
			return t, true
		}
	}
	return title{}, false
}

var nolan = tmdb.NormalizedPerson{ID: 525, Name: "Christopher Nolan", Role: "Director", PhotoURL: imageBase + "/w185/xuAIuYSmsUzKlUMBFGVZaWsY3DZ.jpg"}

var mockMovies = []title{
	{
		id: 27205, imdbID: "tt1375666", title: "Inception", year: 2010, runtime: 148, vote: 8.4,
		overview: "Cobb, a skilled thief who commits corporate espionage by infiltrating the subconscious of his targets, is offered a chance to regain his old life.",
		poster:   "/oYuLEt3zVCKq57qu2F8dT7NIa6f.jpg",
		director: nolan,
	},
	{
		id: 157336, imdbID: "tt0816692", title: "Interstellar", year: 2014, runtime: 169, vote: 8.4,
		overview: "The adventures of a group of explorers who make use of a newly discovered wormhole to surpass the limitations on human space travel.",
		poster:   "/gEU2QniE6E77NI6lCU6MxlNBvIx.jpg",
		director: nolan,
	},
	{
		id: 155, imdbID: "tt0468569", title: "The Dark Knight", year: 2008, runtime: 152, vote: 8.5,
		overview: "Batman raises the stakes in his war on crime.",
		poster:   "/qJ2tW6WMUDux911r6m7haRef0WH.jpg",
		director: nolan,
	},
	{
		id: 550, imdbID: "tt0137523", title: "Fight Club", year: 1999, runtime: 139, vote: 8.4,
		overview: "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression into a shocking new form of therapy.",
		poster:   "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg",
		director: tmdb.NormalizedPerson{ID: 7467, Name: "David Fincher", Role: "Director"},
	},
}

var mockSeries = []title{
	{
		id: 1396, imdbID: "tt0903747", title: "Breaking Bad", year: 2008, runtime: 45, vote: 8.9, seasons: 5,
		overview: "A high school chemistry teacher diagnosed with terminal lung cancer turns to manufacturing and selling methamphetamine.",
		poster:   "/ggFHVNu6YYI5L9pCfOacjizRGt.jpg",
	},
	{
		id: 66732, imdbID: "tt4574334", title: "Stranger Things", year: 2016, runtime: 50, vote: 8.6, seasons: 4,
		overview: "When a young boy vanishes, a small town uncovers a mystery involving secret experiments.",
		poster:   "/49WJfeN0moxb9IPfGn8AIqMGskD.jpg",
	},
}

var mockCast = map[int][]tmdb.NormalizedPerson{
	27205: {
		{ID: 6193, Name: "Leonardo DiCaprio", Role: "Dom Cobb", PhotoURL: imageBase + "/w185/wo2hJpn04vbtmh0B9utCFdsQhxM.jpg"},
		{ID: 24045, Name: "Joseph Gordon-Levitt", Role: "Arthur", PhotoURL: imageBase + "/w185/zvwJpU44vs1FfkBpCf5chCRfJo8.jpg"},
		{ID: 27578, Name: "Elliot Page", Role: "Ariadne"},
	},
	157336: {
		{ID: 10297, Name: "Matthew McConaughey", Role: "Cooper"},
		{ID: 1813, Name: "Anne Hathaway", Role: "Brand"},
	},
	1396: {
		{ID: 17419, Name: "Bryan Cranston", Role: "Walter White", PhotoURL: imageBase + "/w185/7Jahy5LZX2Fo8fGJltMreAI49hC.jpg"},
		{ID: 84497, Name: "Aaron Paul", Role: "Jesse Pinkman", PhotoURL: imageBase + "/w185/8Kce1FGpuSqnYasp5ahXVYFqGPn.jpg"},
	},
}

var mockPeople = []tmdb.NormalizedPersonDetails{
	{
		ID: 525, Name: "Christopher Nolan", KnownForDepartment: "Directing",
		Biography:    "British-American filmmaker known for cerebral, nonlinear storytelling.",
		Birthday:     "1970-07-30",
		PlaceOfBirth: "Westminster, London, England, UK",
		ProfileURL:   nolan.PhotoURL,
	},
	{
		ID: 6193, Name: "Leonardo DiCaprio", KnownForDepartment: "Acting",
		Biography:    "American actor and film producer.",
		Birthday:     "1974-11-11",
		PlaceOfBirth: "Los Angeles, California, USA",
		ProfileURL:   imageBase + "/w185/wo2hJpn04vbtmh0B9utCFdsQhxM.jpg",
	},
}
