// Package games is the client for the backend's game catalog: bulk listing
// with filters, the reference data behind the filter menus, and batch lookup
// of games referenced by other records.
package games

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Game struct {
	GameID    string `json:"gameId"`
	GameName  string `json:"gameName"`
	ImgURL    string `json:"imgUrl"`
	AltImgURL string `json:"altImgUrl"`
}

// Sort fields accepted by the bulk listing.
type SortField string

const (
	SortByName        SortField = "name"
	SortByPublishYear SortField = "publishingYear"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func validSortField(v string) bool {
	return v == string(SortByName) || v == string(SortByPublishYear)
}

func ValidSortDirection(v string) bool {
	return v == string(SortAsc) || v == string(SortDesc)
}

// BulkParams is the filter/sort selection for the game listing. Zero values
// mean "not selected" and are omitted from the outgoing query, never sent as
// empty strings.
type BulkParams struct {
	Page int
	Size int

	GenreIDs     []string
	DeveloperIDs []string
	AgeIDs       []string
	PlatformIDs  []string

	PublishingYear int

	SortBy        SortField
	SortDirection SortDirection
}

// Query renders the selection as backend query parameters.
func (p BulkParams) Query() url.Values {
	values := url.Values{}
	setInt(values, "page", p.Page)
	setInt(values, "size", p.Size)
	setIDs(values, "genreIds", p.GenreIDs)
	setIDs(values, "developerIds", p.DeveloperIDs)
	setIDs(values, "ageIds", p.AgeIDs)
	setIDs(values, "platformIds", p.PlatformIDs)
	setInt(values, "publishingYear", p.PublishingYear)
	if p.SortBy != "" {
		values.Set("sortBy", string(p.SortBy))
	}
	if p.SortDirection != "" {
		values.Set("sortDirection", string(p.SortDirection))
	}
	return values
}

// ParseQuery reconstructs a selection from URL query parameters, the inverse
// of Query. Unknown enum values and out-of-range numbers are dropped rather
// than rejected so a stale bookmark still renders a page. Legacy parameter
// aliases are accepted for older shared links.
func ParseQuery(values url.Values) BulkParams {
	p := BulkParams{}

	if page, ok := parseNonNegative(values.Get("page")); ok {
		p.Page = page
	}
	if size, ok := parsePositive(values.Get("size")); ok {
		p.Size = size
	}

	p.GenreIDs = idList(first(values, "genreIds", "genres"))
	p.DeveloperIDs = idList(first(values, "developerIds", "developers"))
	p.AgeIDs = idList(first(values, "ageIds", "ages"))
	p.PlatformIDs = idList(first(values, "platformIds", "platforms"))

	if year, err := strconv.Atoi(first(values, "publishingYear", "year")); err == nil {
		if year > 1900 && year <= time.Now().Year() {
			p.PublishingYear = year
		}
	}

	if sortBy := first(values, "sortBy", "sort"); validSortField(sortBy) {
		p.SortBy = SortField(sortBy)
	}
	if direction := first(values, "sortDirection", "direction"); ValidSortDirection(direction) {
		p.SortDirection = SortDirection(direction)
	}

	return p
}

func setInt(values url.Values, key string, v int) {
	if v != 0 {
		values.Set(key, strconv.Itoa(v))
	}
}

func setIDs(values url.Values, key string, ids []string) {
	if len(ids) > 0 {
		values.Set(key, strings.Join(ids, ","))
	}
}

func first(values url.Values, keys ...string) string {
	for _, key := range keys {
		if v := values.Get(key); v != "" {
			return v
		}
	}
	return ""
}

func idList(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseNonNegative(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func parsePositive(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
