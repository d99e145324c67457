package aggregate

import (
	"bytes"
	"strings"

	"brc/radix"

	"github.com/cespare/xxhash/v2"
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// hashTable is the baseline aggregator the radix tree is measured against:
// names are hashed with xxhash and kept in a swiss map, with colliding
// names chained.
type hashTable struct {
	buckets *swiss.Map[uint64, *hashEntry]
}

type hashEntry struct {
	name  []byte
	stats radix.Stats
	next  *hashEntry
}

func newHashTable() *hashTable {
	return &hashTable{buckets: swiss.NewMap[uint64, *hashEntry](1024)}
}

func (h *hashTable) scan(mem []byte) {
	pos := 0
	for pos < len(mem) {
		semi := pos + bytes.IndexByte(mem[pos:], ';')
		e := h.entry(mem[pos:semi])

		temp, next := parseTemperature(mem, semi+1)
		e.stats.Add(temp)
		pos = next
	}
}

func (h *hashTable) entry(name []byte) *hashEntry {
	key := xxhash.Sum64(name)
	head, _ := h.buckets.Get(key)
	for e := head; e != nil; e = e.next {
		if bytes.Equal(e.name, name) {
			return e
		}
	}

	e := &hashEntry{
		name:  bytes.Clone(name),
		stats: radix.NewStats(),
		next:  head,
	}
	h.buckets.Put(key, e)
	return e
}

func (h *hashTable) nodes() int {
	return h.buckets.Count()
}

func (h *hashTable) entries() []Entry {
	entries := make([]Entry, 0, h.buckets.Count())
	h.buckets.Iter(func(_ uint64, head *hashEntry) (stop bool) {
		for e := head; e != nil; e = e.next {
			entries = append(entries, Entry{Name: string(e.name), Stats: e.stats})
		}
		return false
	})
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	return entries
}
