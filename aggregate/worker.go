package aggregate

import (
	"fmt"
	"time"

	"brc/radix"
	"brc/segment"
)

type aggregator interface {
	scan(mem []byte)
	entries() []Entry
	nodes() int
}

func newAggregator(s Strategy) aggregator {
	if s == StrategyHash {
		return newHashTable()
	}
	return &treeAggregator{tree: radix.New()}
}

type treeAggregator struct {
	tree *radix.Tree
}

func (a *treeAggregator) scan(mem []byte) {
	ScanSegment(mem, a.tree)
}

func (a *treeAggregator) nodes() int {
	return a.tree.Nodes()
}

func (a *treeAggregator) entries() []Entry {
	entries := make([]Entry, 0, a.tree.Nodes())
	a.tree.Walk(func(name []byte, n *radix.Node) {
		entries = append(entries, Entry{Name: string(name), Stats: n.Stats})
	})
	return entries
}

// WorkerStat describes one finished segment worker.
type WorkerStat struct {
	Segment  segment.Segment
	Names    int
	Nodes    int
	Duration time.Duration
}

var openSegment = segment.Open

// runWorker maps seg, aggregates every record in it and unmaps it again
// before returning.
func runWorker(path string, seg segment.Segment, s Strategy) (agg aggregator, err error) {
	m, err := openSegment(path, seg.Start, seg.Len())
	if err != nil {
		return nil, fmt.Errorf("unable to map segment [%d, %d): %w", seg.Start, seg.End, err)
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			agg, err = nil, fmt.Errorf("unable to release segment [%d, %d): %w", seg.Start, seg.End, cerr)
		}
	}()

	agg = newAggregator(s)
	agg.scan(m.Bytes())
	return agg, nil
}
