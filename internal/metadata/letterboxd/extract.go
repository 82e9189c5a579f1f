package letterboxd

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	ratingValueRe  = regexp.MustCompile(`"ratingValue":\s*([\d.]+)`)
	checkinCountRe = regexp.MustCompile(`"checkinCount":\s*(\d+)`)
	ratedClassRe   = regexp.MustCompile(`\brated-(\d+)\b`)
)

type linkedData struct {
	AggregateRating struct {
		RatingValue float64 `json:"ratingValue"`
		RatingCount int     `json:"ratingCount"`
	} `json:"aggregateRating"`
}

// ExtractFilmData reads the average rating and watch count from a film page.
// The rating comes from the JSON-LD block when it parses, otherwise from the
// raw markup. Missing values stay 0 and the distribution is all zeros since
// the page does not render the histogram inline.
func ExtractFilmData(page []byte) FilmData {
	data := FilmData{Distribution: make([]int, Buckets)}

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page)); err == nil {
		doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			var ld linkedData
			if err := json.Unmarshal([]byte(stripCDATA(s.Text())), &ld); err != nil {
				return true
			}
			if ld.AggregateRating.RatingValue > 0 {
				data.Rating = ld.AggregateRating.RatingValue
				return false
			}
			return true
		})
	}

	if data.Rating == 0 {
		if m := ratingValueRe.FindSubmatch(page); m != nil {
			if v, err := strconv.ParseFloat(string(m[1]), 64); err == nil {
				data.Rating = v
			}
		}
	}

	if m := checkinCountRe.FindSubmatch(page); m != nil {
		if v, err := strconv.Atoi(string(m[1])); err == nil {
			data.WatchCount = v
		}
	}

	return data
}

// ExtractUserRating finds the "rated-N" marker on a member's film page and
// returns N/2 stars. It reports false when the member has not rated the film.
func ExtractUserRating(page []byte) (float64, bool) {
	var found string

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page)); err == nil {
		doc.Find(`[class*="rated-"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := ratedClassRe.FindStringSubmatch(s.AttrOr("class", "")); m != nil {
				found = m[1]
				return false
			}
			return true
		})
	}

	if found == "" {
		m := ratedClassRe.FindSubmatch(page)
		if m == nil {
			return 0, false
		}
		found = string(m[1])
	}

	n, err := strconv.Atoi(found)
	if err != nil {
		return 0, false
	}
	return float64(n) / 2, true
}

// stripCDATA removes the commented CDATA wrapper the site puts around its
// JSON-LD.
func stripCDATA(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/* <![CDATA[ */")
	s = strings.TrimSuffix(s, "/* ]]> */")
	return strings.TrimSpace(s)
}
