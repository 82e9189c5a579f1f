package omdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const maxPageSize = 4 << 20

// EmptyDistribution returns the neutral distribution: ten zero buckets.
func EmptyDistribution() []int {
	return make([]int, Buckets)
}

// GetDistribution returns the IMDb vote histogram for a title, bucket i
// holding the votes for rating i+1. Any failure yields ten zeros.
func (c *Client) GetDistribution(ctx context.Context, imdbID string) []int {
	if imdbID == "" {
		return EmptyDistribution()
	}

	body, err := c.fetchRatingsPage(ctx, imdbID)
	if err != nil {
		c.logger.Warn().Err(err).Str("imdbId", imdbID).Msg("IMDb ratings page unavailable")
		return EmptyDistribution()
	}

	dist, ok := ExtractDistribution(body)
	if !ok {
		c.logger.Warn().Str("imdbId", imdbID).Msg("IMDb histogram not found, likely blocked")
		return EmptyDistribution()
	}

	c.logger.Debug().Str("imdbId", imdbID).Ints("distribution", dist).Msg("Fetched IMDb histogram")
	return dist
}

func (c *Client) fetchRatingsPage(ctx context.Context, imdbID string) ([]byte, error) {
	pageURL := fmt.Sprintf("%s/title/%s/ratings/", strings.TrimSuffix(c.config.RatingsPageURL, "/"), imdbID)
	return c.fetch(ctx, pageURL, http.Header{
		"Accept-Language": {"en-US,en;q=0.9"},
		"Cache-Control":   {"no-cache"},
	})
}

// ExtractDistribution reads the histogram out of a ratings page. It reports
// false when the __NEXT_DATA__ block is missing, unparseable or has no
// histogram. Ratings outside 1..10 are ignored and negative counts clamp to 0.
func ExtractDistribution(page []byte) ([]int, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, false
	}

	script := doc.Find(`script#__NEXT_DATA__`).First()
	if script.Length() == 0 {
		return nil, false
	}

	var data nextData
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return nil, false
	}

	values := data.Props.PageProps.ContentData.HistogramData.HistogramValues
	if len(values) == 0 {
		return nil, false
	}

	dist := EmptyDistribution()
	for _, v := range values {
		if v.Rating < 1 || v.Rating > Buckets {
			continue
		}
		dist[v.Rating-1] = max(v.votes(), 0)
	}
	return dist, true
}
