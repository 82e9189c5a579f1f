package metadata

import "fmt"

// MediaKind is the kind of title a record describes.
type MediaKind string

const (
	KindMovie  MediaKind = "movie"
	KindSeries MediaKind = "series"
)

// ParseKind accepts "movie", "series" and the provider spelling "tv".
func ParseKind(s string) (MediaKind, error) {
	switch s {
	case "movie":
		return KindMovie, nil
	case "series", "tv":
		return KindSeries, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Valid reports whether k is a known kind.
func (k MediaKind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// MediaRecord is the aggregated view of one movie or series. It is built
// fresh for every request.
type MediaRecord struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Kind        MediaKind    `json:"kind"`
	Year        int          `json:"year"`
	Runtime     int          `json:"runtime"`
	Summary     string       `json:"summary"`
	PosterURL   string       `json:"posterUrl"`
	BackdropURL string       `json:"backdropUrl"`
	Director    *Person      `json:"director,omitempty"`
	Cast        []CastMember `json:"cast"`
	ImdbID      string       `json:"imdbId,omitempty"`
	Ratings     RatingBlock  `json:"ratings"`
	Episodes    []Episode    `json:"episodes,omitempty"`
}

// Person is a credited person.
type Person struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CastMember is one billed cast entry.
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	ImageURL  string `json:"imageUrl"`
}

// RatingBlock gathers the scores of every source. A score of 0 means the
// source had no data. Distributions hold ten buckets, lowest rating first.
type RatingBlock struct {
	PrimaryScore          float64 `json:"primaryScore"`
	SecondaryScore        float64 `json:"secondaryScore"`
	SecondaryVotes        int     `json:"secondaryVotes"`
	SecondaryDistribution []int   `json:"secondaryDistribution"`
	TertiaryScore         float64 `json:"tertiaryScore"`
	TertiaryDistribution  []int   `json:"tertiaryDistribution"`
	TertiaryWatchCount    int     `json:"tertiaryWatchCount"`
	RottenTomatoes        int     `json:"rottenTomatoes"`
	Metacritic            int     `json:"metacritic"`
}

// Episode is one episode of a series.
type Episode struct {
	SeasonNumber  int     `json:"seasonNumber"`
	EpisodeNumber int     `json:"episodeNumber"`
	Title         string  `json:"title"`
	Rating        float64 `json:"rating"`
}

// SearchResult is one search hit. For people Year carries the department
// they are known for.
type SearchResult struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Year      string  `json:"year"`
	PosterURL string  `json:"posterUrl"`
	MediaType string  `json:"mediaType"`
	Rating    float64 `json:"rating,omitempty"`
}

// TrendingItem is one entry of the weekly trending list.
type TrendingItem struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	Year      int     `json:"year"`
	PosterURL string  `json:"posterUrl"`
	Rating    float64 `json:"rating"`
}

// PersonProfile is a person's biography with their filmography.
type PersonProfile struct {
	ID                 int                 `json:"id"`
	Name               string              `json:"name"`
	Biography          string              `json:"biography"`
	ProfileURL         string              `json:"profileUrl"`
	Birthday           string              `json:"birthday,omitempty"`
	PlaceOfBirth       string              `json:"placeOfBirth,omitempty"`
	KnownForDepartment string              `json:"knownForDepartment"`
	Cast               []PersonCredit      `json:"cast"`
	Crew               []DepartmentCredits `json:"crew"`
}

// PersonCredit is one title in a filmography.
type PersonCredit struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	MediaType string  `json:"mediaType"`
	Year      int     `json:"year,omitempty"`
	Role      string  `json:"role,omitempty"`
	PosterURL string  `json:"posterUrl"`
	Rating    float64 `json:"rating"`
}

// DepartmentCredits groups crew credits of one department.
type DepartmentCredits struct {
	Department string         `json:"department"`
	Credits    []PersonCredit `json:"credits"`
}

// ProviderStatus reports whether a provider is usable.
type ProviderStatus struct {
	Name       string `json:"name"`
	Configured bool   `json:"configured"`
}
