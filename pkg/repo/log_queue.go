package repo

import "github.com/odvcencio/gitcore/pkg/object"

type logQueueItem struct {
	hash   object.Hash
	when   int64
	commit *object.Commit
}

// logQueue is a max-heap on committer time; ties break on hash so walks
// are deterministic.
type logQueue []logQueueItem

func (h logQueue) Len() int { return len(h) }

func (h logQueue) Less(i, j int) bool {
	if h[i].when == h[j].when {
		return h[i].hash < h[j].hash
	}
	return h[i].when > h[j].when
}

func (h logQueue) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *logQueue) Push(x any) {
	*h = append(*h, x.(logQueueItem))
}

func (h *logQueue) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
