package aggregate

import "container/heap"

// tail is what is left to merge of one sorted entry list. It is never empty
// while on the heap.
type tail struct {
	entries []Entry
	source  int
}

func (t tail) head() Entry {
	return t.entries[0]
}

// tailHeap orders tails by their head entry. Equal names come out in
// source order, so folding is deterministic.
type tailHeap []tail

func (h tailHeap) Len() int {
	return len(h)
}

func (h tailHeap) Less(i, j int) bool {
	a, b := h[i].head(), h[j].head()
	if a.Name == b.Name {
		return h[i].source < h[j].source
	}
	return a.Name < b.Name
}

func (h tailHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *tailHeap) Push(x any) {
	*h = append(*h, x.(tail))
}

func (h *tailHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Merge combines name-sorted entry lists into one sorted Result, folding
// entries that share a name. The lists are not modified.
func Merge(lists ...[]Entry) Result {
	h := make(tailHeap, 0, len(lists))
	for i, l := range lists {
		if len(l) > 0 {
			h = append(h, tail{entries: l, source: i})
		}
	}
	heap.Init(&h)

	var result Result
	for h.Len() > 0 {
		e := h[0].head()
		if n := len(result); n > 0 && result[n-1].Name == e.Name {
			result[n-1].Stats.Merge(e.Stats)
		} else {
			result = append(result, e)
		}

		// Advance the smallest tail in place and let it sink.
		h[0].entries = h[0].entries[1:]
		if len(h[0].entries) > 0 {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}
	return result
}
