package cache

import (
	"container/list"

	"github.com/hupe1980/termfilter/docset"
	"github.com/hupe1980/termfilter/resource"
)

// lru is a byte-bounded LRU. It is not safe for concurrent use.
type lru struct {
	capacity   int64
	maxEntries int
	size       int64
	items      map[Key]*list.Element
	evictList  *list.List
	rc         *resource.Controller
}

type entry struct {
	key   Key
	value docset.DocIDSet
	size  int64
}

func newLRU(capacity int64, maxEntries int, rc *resource.Controller) *lru {
	return &lru{
		capacity:   capacity,
		maxEntries: maxEntries,
		items:      make(map[Key]*list.Element),
		evictList:  list.New(),
		rc:         rc,
	}
}

func (c *lru) get(key Key) (docset.DocIDSet, bool) {
	ent, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.evictList.MoveToFront(ent)
	return ent.Value.(*entry).value, true
}

// add inserts value and returns the number of entries evicted to make room,
// and whether the value was retained.
func (c *lru) add(key Key, value docset.DocIDSet) (evicted int, ok bool) {
	if ent, exists := c.items[key]; exists {
		// Results for a key never change, keep the resident copy.
		c.evictList.MoveToFront(ent)
		return 0, true
	}

	itemSize := sizeOf(value)
	if itemSize > c.capacity {
		return 0, false
	}

	// Free local capacity first; this also returns memory to the controller.
	for c.size+itemSize > c.capacity || (c.maxEntries > 0 && c.len() >= c.maxEntries) {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
		evicted++
	}

	if itemSize > 0 && !c.rc.TryAcquireMemory(itemSize) {
		return evicted, false
	}

	ent := &entry{key: key, value: value, size: itemSize}
	c.items[key] = c.evictList.PushFront(ent)
	c.size += itemSize
	return evicted, true
}

// removeIf removes the entries whose key matches pred and returns how many
// were removed.
func (c *lru) removeIf(pred func(Key) bool) int {
	var toRemove []*list.Element
	for key, element := range c.items {
		if pred(key) {
			toRemove = append(toRemove, element)
		}
	}
	for _, e := range toRemove {
		c.removeElement(e)
	}
	return len(toRemove)
}

func (c *lru) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	ent := e.Value.(*entry)
	delete(c.items, ent.key)
	c.size -= ent.size
	if ent.size > 0 {
		c.rc.ReleaseMemory(ent.size)
	}
}

func (c *lru) len() int {
	return c.evictList.Len()
}
