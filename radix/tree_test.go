package radix

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// record returns the node for name, going through Lookup first like the
// line scanner does.
func record(t *Tree, name string, temp int32) *Node {
	mem := []byte(name + ";")
	n := t.Lookup(mem, 0)
	if n == nil {
		n = t.Insert(mem, 0)
	}
	n.Add(temp)
	return n
}

func collect(t *Tree) map[string]Stats {
	got := make(map[string]Stats)
	t.Walk(func(name []byte, n *Node) {
		got[string(name)] = n.Stats
	})
	return got
}

func TestPrefixSplit(t *testing.T) {
	tree := New()

	record(tree, "ab", 10)
	record(tree, "ac", 20)
	record(tree, "a", 30)

	for _, name := range []string{"ab", "ac", "a"} {
		record(tree, name, 5)
	}

	got := collect(tree)
	require.Len(t, got, 3)
	assert.Equal(t, Stats{Sum: 15, Count: 2, Min: 5, Max: 10}, got["ab"])
	assert.Equal(t, Stats{Sum: 25, Count: 2, Min: 5, Max: 20}, got["ac"])
	assert.Equal(t, Stats{Sum: 35, Count: 2, Min: 5, Max: 30}, got["a"])

	seen := make(map[*Node]string)
	for _, name := range []string{"ab", "ac", "a"} {
		n := tree.Lookup([]byte(name+";"), 0)
		require.NotNil(t, n, name)
		assert.Equal(t, int32(len(name)+1), n.KeyLength, name)
		assert.NotContains(t, seen, n, name)
		seen[n] = name
	}
	assert.Equal(t, 3, tree.Nodes())
}

func TestNameEndsInsidePrefix(t *testing.T) {
	tree := New()
	record(tree, "Hamburg", 120)

	assert.Nil(t, tree.Lookup([]byte("Ham;"), 0))

	n := record(tree, "Ham", -10)
	assert.Equal(t, int32(4), n.KeyLength)
	assert.Equal(t, int64(1), n.Count)

	got := collect(tree)
	assert.Equal(t, Stats{Sum: 120, Count: 1, Min: 120, Max: 120}, got["Hamburg"])
	assert.Equal(t, Stats{Sum: -10, Count: 1, Min: -10, Max: -10}, got["Ham"])

	long := tree.Lookup([]byte("Hamburg;"), 0)
	require.NotNil(t, long)
	assert.Equal(t, int32(8), long.KeyLength)
}

func TestSplitMovesKeyLength(t *testing.T) {
	tree := New()
	record(tree, "abc", 1)
	record(tree, "abd", 2)

	// The branch point "ab" must not inherit the key length of "abc".
	n := record(tree, "ab", 3)
	assert.Equal(t, int32(3), n.KeyLength)

	abc := tree.Lookup([]byte("abc;"), 0)
	require.NotNil(t, abc)
	assert.Equal(t, int32(4), abc.KeyLength)
	assert.Equal(t, int64(1), abc.Sum)
}

func TestLookupMisses(t *testing.T) {
	tree := New()
	record(tree, "Berlin", 85)

	var tests = []struct {
		name string
	}{
		{"Bern"},
		{"Berlin2"},
		{"Oslo"},
		{"B"},
	}

	for _, tt := range tests {
		assert.Nil(t, tree.Lookup([]byte(tt.name+";"), 0), tt.name)
	}
	assert.NotNil(t, tree.Lookup([]byte("Berlin;"), 0))
}

func TestLookupReadsFromOffset(t *testing.T) {
	tree := New()
	mem := []byte("Oslo;1.0\nOsaka;2.0\n")

	assert.Equal(t, int32(5), tree.Insert(mem, 0).KeyLength)

	m := tree.Insert(mem, 9)
	assert.Equal(t, int32(6), m.KeyLength)
	assert.Same(t, m, tree.Lookup(mem, 9))

	// Inserting Osaka split Oslo, so Oslo now lives in a new node.
	n := tree.Lookup(mem, 0)
	require.NotNil(t, n)
	assert.NotSame(t, m, n)
	assert.Equal(t, int32(5), n.KeyLength)
}

func TestWalkOrder(t *testing.T) {
	tree := New()
	names := []string{"b", "ab", "abc", "a", "ba", "\xffz", "Z", "aa"}
	for _, name := range names {
		record(tree, name, 1)
	}

	var walked []string
	tree.Walk(func(name []byte, n *Node) {
		walked = append(walked, string(name))
	})

	slices.Sort(names)
	assert.Equal(t, names, walked)
}

func TestMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tree := New()
	reference := make(map[string]Stats)

	// A tiny alphabet and short names force lots of shared prefixes.
	alphabet := "abc"
	for n := 0; n < 100_000; n++ {
		var sb strings.Builder
		for j, k := 0, 1+r.Intn(6); j < k; j++ {
			sb.WriteByte(alphabet[r.Intn(len(alphabet))])
		}
		name := sb.String()
		temp := int32(r.Intn(1999) - 999)

		record(tree, name, temp)

		s, ok := reference[name]
		if !ok {
			s = NewStats()
		}
		s.Add(temp)
		reference[name] = s
	}

	got := collect(tree)
	assert.Equal(t, len(reference), len(got))
	for _, name := range maps.Keys(reference) {
		assert.Equal(t, reference[name], got[name], name)
	}
}

func TestLookupDoesNotAllocate(t *testing.T) {
	tree := New()
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&sb, "station-%d;", i)
	}
	mem := []byte(sb.String())
	for pos := 0; pos < len(mem); {
		pos += int(tree.Insert(mem, pos).KeyLength)
	}

	allocs := testing.AllocsPerRun(100, func() {
		for pos := 0; pos < len(mem); {
			pos += int(tree.Lookup(mem, pos).KeyLength)
		}
	})
	assert.Zero(t, allocs)
}

func BenchmarkLookup(b *testing.B) {
	tree := New()
	mem := []byte("Hamburg;Hamilton;Halifax;Hanoi;")
	for pos := 0; pos < len(mem); {
		pos += int(tree.Insert(mem, pos).KeyLength)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for pos := 0; pos < len(mem); {
			pos += int(tree.Lookup(mem, pos).KeyLength)
		}
	}
}
