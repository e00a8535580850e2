package teams_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/teams"
)

func TestBulkParamsQuery(t *testing.T) {
	t.Run("zero values are omitted", func(t *testing.T) {
		require.Empty(t, teams.BulkParams{}.Query())
	})

	t.Run("full selection", func(t *testing.T) {
		params := teams.BulkParams{
			Page:         3,
			Size:         25,
			GameIDs:      []string{"g1", "g2"},
			FoundingYear: 2014,
			RegionID:     "eu",
			OrgaID:       "o1",
			SortBy:       teams.SortByFoundingDate,
			SortOrder:    "asc",
		}

		values := params.Query()
		require.Equal(t, "3", values.Get("page"))
		require.Equal(t, "25", values.Get("size"))
		require.Equal(t, "g1,g2", values.Get("gameId"))
		require.Equal(t, "2014", values.Get("foundingYear"))
		require.Equal(t, "eu", values.Get("regionId"))
		require.Equal(t, "o1", values.Get("orgaId"))
		require.Equal(t, "foundingDate", values.Get("sortBy"))
		require.Equal(t, "asc", values.Get("sortDirection"))
	})
}

func TestParseQuery(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		params := teams.BulkParams{
			Page:         1,
			Size:         10,
			GameIDs:      []string{"g1"},
			FoundingYear: 2010,
			RegionID:     "na",
			SortBy:       teams.SortByName,
			SortOrder:    "desc",
		}
		require.Equal(t, params, teams.ParseQuery(params.Query()))
	})

	t.Run("legacy aliases", func(t *testing.T) {
		values := url.Values{
			"games":     {"g1, g2"},
			"founding":  {"2018"},
			"region":    {"eu"},
			"orga":      {"o9"},
			"sort":      {"name"},
			"direction": {"asc"},
		}
		params := teams.ParseQuery(values)
		require.Equal(t, []string{"g1", "g2"}, params.GameIDs)
		require.Equal(t, 2018, params.FoundingYear)
		require.Equal(t, "eu", params.RegionID)
		require.Equal(t, "o9", params.OrgaID)
		require.Equal(t, teams.SortByName, params.SortBy)
		require.Equal(t, "asc", params.SortOrder)
	})

	t.Run("invalid values are dropped", func(t *testing.T) {
		values := url.Values{
			"page":          {"-2"},
			"size":          {"0"},
			"foundingYear":  {"abc"},
			"sortBy":        {"elo"},
			"sortDirection": {"sideways"},
		}
		require.Equal(t, teams.BulkParams{}, teams.ParseQuery(values))
	})
}

func TestGameIDs(t *testing.T) {
	items := []teams.Team{
		{UID: "t1", GameID: "g1"},
		{UID: "t2"},
		{UID: "t3", GameID: "g2"},
	}
	require.Equal(t, []string{"g1", "g2"}, teams.GameIDs(items))
}
