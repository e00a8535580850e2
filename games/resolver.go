package games

import (
	"context"
	"fmt"
)

// Resolver fills the reference cache for game IDs mentioned by other
// records. Only IDs absent from the cache are batch-fetched, so duplicate
// references across pages and lists cost a single lookup.
type Resolver struct {
	cache  *Cache
	client *Client
}

func NewResolver(cache *Cache, client *Client) *Resolver {
	return &Resolver{cache: cache, client: client}
}

func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve ensures every referenced game ID is present in the cache.
func (r *Resolver) Resolve(ctx context.Context, referencedIDs []string) error {
	missing := r.cache.MissingIDs(referencedIDs)
	if len(missing) == 0 {
		return nil
	}

	result := r.client.Batch(ctx, missing)
	if !result.Ok {
		return fmt.Errorf("[Resolver Resolve] game batch failed: %s", result.Code)
	}

	r.cache.Add(result.Data...)
	return nil
}
