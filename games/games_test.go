package games_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/games"
)

func TestBulkParamsQuery(t *testing.T) {
	t.Run("zero values are omitted entirely", func(t *testing.T) {
		require.Empty(t, games.BulkParams{}.Query())
	})

	t.Run("full selection", func(t *testing.T) {
		params := games.BulkParams{
			Page:           2,
			Size:           10,
			GenreIDs:       []string{"fps", "moba"},
			DeveloperIDs:   []string{"dev-1"},
			AgeIDs:         []string{"usk16"},
			PlatformIDs:    []string{"pc", "ps5"},
			PublishingYear: 2020,
			SortBy:         games.SortByName,
			SortDirection:  games.SortAsc,
		}

		values := params.Query()
		require.Equal(t, "2", values.Get("page"))
		require.Equal(t, "10", values.Get("size"))
		require.Equal(t, "fps,moba", values.Get("genreIds"))
		require.Equal(t, "dev-1", values.Get("developerIds"))
		require.Equal(t, "usk16", values.Get("ageIds"))
		require.Equal(t, "pc,ps5", values.Get("platformIds"))
		require.Equal(t, "2020", values.Get("publishingYear"))
		require.Equal(t, "name", values.Get("sortBy"))
		require.Equal(t, "asc", values.Get("sortDirection"))
	})

	t.Run("page zero is not sent", func(t *testing.T) {
		values := games.BulkParams{Page: 0, Size: 10}.Query()
		require.Empty(t, values.Get("page"))
		require.Equal(t, "10", values.Get("size"))
	})
}

func TestParseQuery(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		params := games.BulkParams{
			Page:           3,
			Size:           20,
			GenreIDs:       []string{"fps"},
			PublishingYear: 2018,
			SortBy:         games.SortByPublishYear,
			SortDirection:  games.SortDesc,
		}
		require.Equal(t, params, games.ParseQuery(params.Query()))
	})

	t.Run("legacy aliases are accepted", func(t *testing.T) {
		values := url.Values{
			"genres":    {"fps,moba"},
			"platforms": {"pc"},
			"year":      {"2019"},
			"sort":      {"name"},
			"direction": {"desc"},
		}
		params := games.ParseQuery(values)
		require.Equal(t, []string{"fps", "moba"}, params.GenreIDs)
		require.Equal(t, []string{"pc"}, params.PlatformIDs)
		require.Equal(t, 2019, params.PublishingYear)
		require.Equal(t, games.SortByName, params.SortBy)
		require.Equal(t, games.SortDesc, params.SortDirection)
	})

	t.Run("invalid values are dropped, not rejected", func(t *testing.T) {
		values := url.Values{
			"page":           {"-1"},
			"size":           {"0"},
			"publishingYear": {"1850"},
			"sortBy":         {"danger"},
			"sortDirection":  {"sideways"},
		}
		require.Equal(t, games.BulkParams{}, games.ParseQuery(values))
	})

	t.Run("future publishing years are dropped", func(t *testing.T) {
		values := url.Values{"publishingYear": {"2999"}}
		require.Zero(t, games.ParseQuery(values).PublishingYear)
	})

	t.Run("list values tolerate stray whitespace and commas", func(t *testing.T) {
		values := url.Values{"genreIds": {" fps , ,moba "}}
		require.Equal(t, []string{"fps", "moba"}, games.ParseQuery(values).GenreIDs)
	})
}
