package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tournamentfox/web/pagination"
)

func TestPage_HasMore(t *testing.T) {
	t.Run("more pages remain", func(t *testing.T) {
		page := pagination.Page[int]{Items: []int{1, 2, 3}, Page: 0, TotalPages: 3}
		require.True(t, page.HasMore(3))
	})

	t.Run("last page by totalPages", func(t *testing.T) {
		page := pagination.Page[int]{Items: []int{1, 2, 3}, Page: 2, TotalPages: 3}
		require.False(t, page.HasMore(3))
	})

	t.Run("short page stops even when totalPages disagrees", func(t *testing.T) {
		page := pagination.Page[int]{Items: []int{1, 2}, Page: 0, TotalPages: 5}
		require.False(t, page.HasMore(3))
	})

	t.Run("empty page stops", func(t *testing.T) {
		page := pagination.Page[int]{Items: nil, Page: 0, TotalPages: 5}
		require.False(t, page.HasMore(3))
	})

	t.Run("unknown requested size falls back to totalPages", func(t *testing.T) {
		page := pagination.Page[int]{Items: []int{1}, Page: 0, TotalPages: 2}
		require.True(t, page.HasMore(0))
	})
}
