package geoingest

import (
	"container/list"
	"sync"
)

// DatasetCache keeps loaded datasets in memory with LRU eviction.
//
// Entries are keyed by cache directory and the de-duplication options,
// since LoadDataset applies those at load time. Memory use is estimated
// from the coordinate counts of each layer, so the limit is approximate.
//
// Example:
//
//	dc := geoingest.NewDatasetCache(256 * 1024 * 1024)
//	ds, err := dc.Load("/var/cache/geoingest", opts)
type DatasetCache struct {
	maxMemory    int64
	usedMemory   int64
	datasets     map[datasetKey]*list.Element
	lru          *list.List // of *cacheEntry, most recent at front
	hits, misses int
	mu           sync.Mutex
}

type datasetKey struct {
	dir           string
	minRadius     float64
	minPopulation int64
}

type cacheEntry struct {
	key        datasetKey
	dataset    *Dataset
	memorySize int64
}

// NewDatasetCache creates a cache holding at most maxMemoryBytes of
// estimated dataset memory. 0 means unlimited.
func NewDatasetCache(maxMemoryBytes int64) *DatasetCache {
	return &DatasetCache{
		maxMemory: maxMemoryBytes,
		datasets:  make(map[datasetKey]*list.Element),
		lru:       list.New(),
	}
}

// Load returns the dataset in dir as LoadDataset would, reading it from
// disk only on a miss. A dataset too large to cache is still returned.
// Errors are never cached.
func (c *DatasetCache) Load(dir string, opts IngestOptions) (*Dataset, error) {
	key := datasetKey{dir: dir, minRadius: opts.MinRadius, minPopulation: opts.MinPopulation}

	c.mu.Lock()
	if elem, ok := c.datasets[key]; ok {
		c.hits++
		c.lru.MoveToFront(elem)
		c.mu.Unlock()
		return elem.Value.(*cacheEntry).dataset, nil
	}
	c.misses++
	c.mu.Unlock()

	ds, err := LoadDataset(dir, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	size := estimateDatasetMemory(ds)
	if c.maxMemory > 0 && size > c.maxMemory {
		return ds, nil
	}
	if elem, ok := c.datasets[key]; ok {
		// loaded concurrently
		c.remove(elem)
	}
	for c.maxMemory > 0 && c.usedMemory+size > c.maxMemory && c.lru.Len() > 0 {
		c.remove(c.lru.Back())
	}
	c.datasets[key] = c.lru.PushFront(&cacheEntry{key: key, dataset: ds, memorySize: size})
	c.usedMemory += size
	return ds, nil
}

// Invalidate drops every entry loaded from dir. Call it after saving a new
// dataset there.
func (c *DatasetCache) Invalidate(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, elem := range c.datasets {
		if key.dir == dir {
			c.remove(elem)
		}
	}
}

// remove must be called with c.mu held.
func (c *DatasetCache) remove(elem *list.Element) {
	entry := elem.Value.(*cacheEntry)
	c.lru.Remove(elem)
	delete(c.datasets, entry.key)
	c.usedMemory -= entry.memorySize
}

// Stats returns cache statistics.
func (c *DatasetCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		DatasetCount: len(c.datasets),
		UsedMemory:   c.usedMemory,
		MaxMemory:    c.maxMemory,
		Hits:         c.hits,
		Misses:       c.misses,
	}
}

// CacheStats holds cache usage figures.
type CacheStats struct {
	DatasetCount int
	UsedMemory   int64 // estimated bytes
	MaxMemory    int64
	Hits, Misses int
}

// estimateDatasetMemory approximates the heap held by ds:
// 1KB base, 64 bytes per feature header and 24 bytes per point.
func estimateDatasetMemory(ds *Dataset) int64 {
	if ds == nil {
		return 0
	}
	size := int64(1024)
	for _, ways := range ds.Ways {
		for _, w := range ways {
			size += 64 + int64(len(w.Points))*24
		}
	}
	for _, r := range ds.Regions {
		size += 64
		for _, p := range r.Polygons {
			size += int64(len(p.Exterior)) * 16
			for _, h := range p.Interiors {
				size += int64(len(h)) * 16
			}
		}
	}
	for _, b := range ds.Boundaries {
		size += 24 + int64(len(b))*24
	}
	size += int64(len(ds.Settlements)) * 64
	return size
}
