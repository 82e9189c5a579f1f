package letterboxd

// Buckets is the number of half-star buckets in a distribution (0.5..5.0).
const Buckets = 10

// FilmData is the community rating block for one film. Rating is on a 0-5
// scale and 0 means unknown.
type FilmData struct {
	Rating       float64 `json:"rating" yaml:"rating"`
	Distribution []int   `json:"distribution" yaml:"distribution"`
	WatchCount   int     `json:"watchCount" yaml:"watch_count"`
}

// normalized returns a copy whose distribution is exactly Buckets long with
// no negative entries.
func (f FilmData) normalized() FilmData {
	dist := make([]int, Buckets)
	for i := 0; i < len(f.Distribution) && i < Buckets; i++ {
		dist[i] = max(f.Distribution[i], 0)
	}
	f.Distribution = dist
	return f
}

// PersonalStatus is one user's relation to a film. Rating is nil when the
// user has not rated it. InWatchlist cannot be read without a session and is
// always false.
type PersonalStatus struct {
	Rating      *float64 `json:"rating"`
	InWatchlist bool     `json:"inWatchlist"`
}
