package route

import (
	"container/list"
	"sync"
	"time"
)

// fileEntry is a parsed route file together with the stat data it was
// parsed from.
type fileEntry struct {
	path    string
	modTime time.Time
	size    int64
	route   map[string]any
}

// fileCache is a thread-safe LRU of parsed route files keyed by absolute
// path. An entry is only served while the file's modification time and size
// are unchanged.
type fileCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

func newFileCache(capacity int) *fileCache {
	if capacity <= 0 {
		return nil
	}
	return &fileCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// get returns the cached route for path if it is still fresh.
func (c *fileCache) get(path string, modTime time.Time, size int64) (map[string]any, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[path]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*fileEntry)
	if !entry.modTime.Equal(modTime) || entry.size != size {
		c.eviction.Remove(elem)
		delete(c.items, path)
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return entry.route, true
}

func (c *fileCache) put(entry *fileEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[entry.path]; ok {
		elem.Value = entry
		c.eviction.MoveToFront(elem)
		return
	}
	c.items[entry.path] = c.eviction.PushFront(entry)
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*fileEntry).path)
	}
}

func (c *fileCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}
