package segprep

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type gridKey struct {
	height, width, radius int
}

// IndexCache memoizes IndicesInRadius tables per grid shape. It is safe for
// concurrent use; concurrent misses on one shape compute the table once.
// Returned tables are shared and must not be modified.
type IndexCache struct {
	mu     sync.RWMutex
	tables map[gridKey][]IndexPair
	group  singleflight.Group
}

func NewIndexCache() *IndexCache {
	return &IndexCache{tables: make(map[gridKey][]IndexPair)}
}

// Get returns the table for (height, width, radius), computing it on first use.
func (c *IndexCache) Get(height, width, radius int) ([]IndexPair, error) {
	key := gridKey{height, width, radius}
	c.mu.RLock()
	table, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		return table, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%d/%d/%d", height, width, radius), func() (any, error) {
		table, err := IndicesInRadius(height, width, radius)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[key] = table
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]IndexPair), nil
}

// Len reports the number of cached shapes.
func (c *IndexCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
