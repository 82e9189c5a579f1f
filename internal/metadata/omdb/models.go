package omdb

// Buckets is the number of rating buckets in a distribution (ratings 1..10).
const Buckets = 10

// Response represents the OMDb API response.
type Response struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	ImdbRating string   `json:"imdbRating"`
	ImdbVotes  string   `json:"imdbVotes"`
	ImdbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	Response   string   `json:"Response"`
	Error      string   `json:"Error,omitempty"`
}

// Rating represents a single rating from a source.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// NormalizedRatings is the normalized ratings output. Zero means unknown for
// every field.
type NormalizedRatings struct {
	ImdbRating     float64 `json:"imdbRating,omitempty"`
	ImdbVotes      int     `json:"imdbVotes,omitempty"`
	RottenTomatoes int     `json:"rottenTomatoes,omitempty"`
	Metacritic     int     `json:"metacritic,omitempty"`
}

// nextData is the subset of the ratings page's __NEXT_DATA__ payload that
// carries the vote histogram.
type nextData struct {
	Props struct {
		PageProps struct {
			ContentData struct {
				HistogramData struct {
					HistogramValues []histogramValue `json:"histogramValues"`
				} `json:"histogramData"`
			} `json:"contentData"`
		} `json:"pageProps"`
	} `json:"props"`
}

// histogramValue is one bucket. Older payloads name the count "count",
// newer ones "voteCount".
type histogramValue struct {
	Rating    int `json:"rating"`
	Count     int `json:"count"`
	VoteCount int `json:"voteCount"`
}

func (h histogramValue) votes() int {
	if h.Count != 0 {
		return h.Count
	}
	return h.VoteCount
}
