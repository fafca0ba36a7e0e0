package project

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/geobasenrn/nrn-go/internal/httpfetch"
)

// Version is a bundle's declared (major, minor) version and the calendar
// year it was released.
type Version struct {
	Major       int `json:"major"`
	Minor       int `json:"minor"`
	ReleaseYear int `json:"release_year"`
}

// FetchPreviousVersion downloads and decodes the previous vintage's
// declared version metadata document (spec.md §4.7 "Version numbering":
// "fetch the previous vintage's declared version (major, minor) and
// release year"). The metadata endpoint is expected to serve a small JSON
// document; encoding/json is standard library because no retrieved
// example repo's JSON handling (there is none beyond stdlib in the
// pack) offers anything this one-shot decode would benefit from.
func FetchPreviousVersion(client *httpfetch.Client, url string) (Version, error) {
	body, err := client.Get(url)
	if err != nil {
		return Version{}, eris.Wrap(err, "project: fetching previous version metadata")
	}

	var v Version
	if err := json.Unmarshal(body, &v); err != nil {
		return Version{}, eris.Wrap(err, "project: decoding previous version metadata")
	}
	return v, nil
}

// NextVersion implements spec.md §4.7's numbering rule: if the previous
// release year equals currentYear, increment minor; otherwise increment
// major and reset minor to 0.
func NextVersion(prev Version, currentYear int) Version {
	if prev.ReleaseYear == currentYear {
		return Version{Major: prev.Major, Minor: prev.Minor + 1, ReleaseYear: currentYear}
	}
	return Version{Major: prev.Major + 1, Minor: 0, ReleaseYear: currentYear}
}
