package plinkbed

import (
	"container/list"
	"sync"
)

// rowCache is a small LRU over decoded SNP rows. It exists for
// individual-major files, where every row is a strided gather; on
// SNP-major files a row is one contiguous read and caching rarely pays.
// The mutex makes insertion safe under concurrent readers; at most one
// value per SNP is ever visible.
type rowCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]*list.Element
	order    *list.List // front is most recently used
}

type rowCacheEntry struct {
	snp int
	row []Genotype
}

func newRowCache(capacity int) *rowCache {
	return &rowCache{
		capacity: capacity,
		entries:  make(map[int]*list.Element, capacity),
		order:    list.New(),
	}
}

func (c *rowCache) get(snp int) ([]Genotype, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[snp]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*rowCacheEntry).row, true
}

func (c *rowCache) put(snp int, row []Genotype) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[snp]; ok {
		// A concurrent reader decoded the same row; both copies are
		// identical, keep the resident one.
		c.order.MoveToFront(elem)
		return
	}

	c.entries[snp] = c.order.PushFront(&rowCacheEntry{snp: snp, row: row})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*rowCacheEntry).snp)
	}
}
