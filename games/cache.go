package games

import "sync"

// Cache accumulates games referenced by match and team records as their
// pages arrive, keyed by game ID. It lives for the duration of one rendered
// view and is rebuilt on the next page load. Entries are never overwritten:
// game data is stable within a session, so first-seen wins.
type Cache struct {
	mu    sync.RWMutex
	games map[string]Game
}

func NewCache() *Cache {
	return &Cache{games: make(map[string]Game)}
}

// Add merges records into the cache, keeping existing entries.
func (c *Cache) Add(games ...Game) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, game := range games {
		if game.GameID == "" {
			continue
		}
		if _, exists := c.games[game.GameID]; exists {
			continue
		}
		c.games[game.GameID] = game
	}
}

func (c *Cache) Get(id string) (Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	game, ok := c.games[id]
	return game, ok
}

// MissingIDs returns the subset of ids not yet cached, deduplicated, with
// blanks dropped. The order of first appearance is preserved.
func (c *Cache) MissingIDs(ids []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	var missing []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, cached := c.games[id]; !cached {
			missing = append(missing, id)
		}
	}
	return missing
}

// All returns a snapshot of every cached game.
func (c *Cache) All() []Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	all := make([]Game, 0, len(c.games))
	for _, game := range c.games {
		all = append(all, game)
	}
	return all
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}
