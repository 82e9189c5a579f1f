package tmdb

// Media types as used in TMDB URL paths.
const (
	MediaMovie  = "movie"
	MediaTV     = "tv"
	MediaPerson = "person"
)

// MaxCast bounds the number of cast entries returned by GetCredits.
const MaxCast = 15

// Image widths used for the different artwork kinds.
const (
	PosterWidth   = 500
	BackdropWidth = 1280
	ProfileWidth  = 185
)

// MovieDetails is the detailed movie info from TMDB.
type MovieDetails struct {
	ID           int              `json:"id"`
	Title        string           `json:"title"`
	Overview     string           `json:"overview"`
	ReleaseDate  string           `json:"release_date"`
	PosterPath   *string          `json:"poster_path"`
	BackdropPath *string          `json:"backdrop_path"`
	VoteAverage  float64          `json:"vote_average"`
	VoteCount    int              `json:"vote_count"`
	Runtime      int              `json:"runtime"`
	ImdbID       string           `json:"imdb_id"`
	Credits      *CreditsResponse `json:"credits,omitempty"`
}

// TVDetails is the detailed TV series info from TMDB.
type TVDetails struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	Overview        string   `json:"overview"`
	FirstAirDate    string   `json:"first_air_date"`
	PosterPath      *string  `json:"poster_path"`
	BackdropPath    *string  `json:"backdrop_path"`
	VoteAverage     float64  `json:"vote_average"`
	VoteCount       int      `json:"vote_count"`
	NumberOfSeasons int      `json:"number_of_seasons"`
	EpisodeRunTime  []int    `json:"episode_run_time"`
	Seasons         []Season `json:"seasons"`
}

// Season represents a TV season summary from TMDB series details.
type Season struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	SeasonNumber int    `json:"season_number"`
}

// ExternalIDs contains external IDs from TMDB.
type ExternalIDs struct {
	ImdbID string `json:"imdb_id"`
	TvdbID int    `json:"tvdb_id"`
}

// CreditsResponse is the response from TMDB credits endpoint.
type CreditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// CastMember represents a cast member from TMDB credits.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath *string `json:"profile_path"`
}

// CrewMember represents a crew member from TMDB credits.
type CrewMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Job         string  `json:"job"`
	Department  string  `json:"department"`
	ProfilePath *string `json:"profile_path"`
}

// SeasonDetails is the season payload from /tv/{id}/season/{number}.
type SeasonDetails struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	SeasonNumber int              `json:"season_number"`
	Episodes     []EpisodeDetails `json:"episodes"`
}

// EpisodeDetails is the episode info from TMDB season details.
type EpisodeDetails struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	AirDate       string  `json:"air_date"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	VoteAverage   float64 `json:"vote_average"`
}

// SearchResponse is the shared page shape of the search and trending endpoints.
type SearchResponse struct {
	Page         int          `json:"page"`
	Results      []SearchItem `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

// SearchItem covers movie, tv and person results. Which fields are set
// depends on the media type searched.
type SearchItem struct {
	ID                 int     `json:"id"`
	MediaType          string  `json:"media_type,omitempty"`
	Title              string  `json:"title,omitempty"`
	Name               string  `json:"name,omitempty"`
	ReleaseDate        string  `json:"release_date,omitempty"`
	FirstAirDate       string  `json:"first_air_date,omitempty"`
	PosterPath         *string `json:"poster_path,omitempty"`
	BackdropPath       *string `json:"backdrop_path,omitempty"`
	ProfilePath        *string `json:"profile_path,omitempty"`
	KnownForDepartment string  `json:"known_for_department,omitempty"`
	Overview           string  `json:"overview,omitempty"`
	VoteAverage        float64 `json:"vote_average"`
	Popularity         float64 `json:"popularity"`
}

// PersonDetails is the response from /person/{id}.
type PersonDetails struct {
	ID                 int     `json:"id"`
	Name               string  `json:"name"`
	Biography          string  `json:"biography"`
	ProfilePath        *string `json:"profile_path"`
	Birthday           *string `json:"birthday"`
	PlaceOfBirth       *string `json:"place_of_birth"`
	KnownForDepartment string  `json:"known_for_department"`
}

// CombinedCreditsResponse is the response from /person/{id}/combined_credits.
type CombinedCreditsResponse struct {
	ID   int            `json:"id"`
	Cast []PersonCredit `json:"cast"`
	Crew []PersonCredit `json:"crew"`
}

// PersonCredit is one movie or tv credit of a person.
type PersonCredit struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	MediaType    string  `json:"media_type"`
	PosterPath   *string `json:"poster_path"`
	Character    string  `json:"character,omitempty"`
	Job          string  `json:"job,omitempty"`
	Department   string  `json:"department,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
}

// ErrorResponse is an error from the TMDB API.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}

// NormalizedDetails is the normalized movie or series record returned by the
// detail endpoints. VoteAverage is 0 when the title is unrated.
type NormalizedDetails struct {
	ID              int               `json:"id"`
	MediaType       string            `json:"mediaType"`
	Title           string            `json:"title"`
	Overview        string            `json:"overview"`
	ReleaseDate     string            `json:"releaseDate,omitempty"`
	Year            int               `json:"year"`
	Runtime         int               `json:"runtime"`
	PosterPath      string            `json:"posterPath,omitempty"`
	BackdropPath    string            `json:"backdropPath,omitempty"`
	PosterURL       string            `json:"posterUrl"`
	BackdropURL     string            `json:"backdropUrl"`
	VoteAverage     float64           `json:"voteAverage"`
	Director        *NormalizedPerson `json:"director,omitempty"`
	NumberOfSeasons int               `json:"numberOfSeasons,omitempty"`
}

// NormalizedPerson represents a person with optional role and photo.
type NormalizedPerson struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// NormalizedEpisode is one episode of a season.
type NormalizedEpisode struct {
	SeasonNumber  int     `json:"seasonNumber"`
	EpisodeNumber int     `json:"episodeNumber"`
	Title         string  `json:"title"`
	AirDate       string  `json:"airDate,omitempty"`
	Rating        float64 `json:"rating"`
}

// NormalizedSearchResult is a search or trending hit.
type NormalizedSearchResult struct {
	ID          int     `json:"id"`
	MediaType   string  `json:"mediaType"`
	Title       string  `json:"title"`
	Year        int     `json:"year,omitempty"`
	Department  string  `json:"department,omitempty"`
	ImagePath   string  `json:"imagePath,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
}

// NormalizedPersonDetails is the normalized person profile.
type NormalizedPersonDetails struct {
	ID                 int    `json:"id"`
	Name               string `json:"name"`
	Biography          string `json:"biography"`
	ProfileURL         string `json:"profileUrl"`
	Birthday           string `json:"birthday,omitempty"`
	PlaceOfBirth       string `json:"placeOfBirth,omitempty"`
	KnownForDepartment string `json:"knownForDepartment"`
}

// NormalizedPersonCredit is one normalized credit of a person.
type NormalizedPersonCredit struct {
	ID          int     `json:"id"`
	MediaType   string  `json:"mediaType"`
	Title       string  `json:"title"`
	Year        int     `json:"year,omitempty"`
	Character   string  `json:"character,omitempty"`
	Job         string  `json:"job,omitempty"`
	Department  string  `json:"department,omitempty"`
	PosterURL   string  `json:"posterUrl"`
	VoteAverage float64 `json:"voteAverage"`
}

// NormalizedPersonCredits holds acting and crew credits.
type NormalizedPersonCredits struct {
	Cast []NormalizedPersonCredit `json:"cast"`
	Crew []NormalizedPersonCredit `json:"crew"`
}
