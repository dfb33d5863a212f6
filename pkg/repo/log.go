package repo

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/odvcencio/gitcore/pkg/object"
)

// ErrStopWalk can be returned by a Walk callback to end the walk early
// without error.
var ErrStopWalk = errors.New("stop walk")

// LogEntry is one commit visited by Walk or Log.
type LogEntry struct {
	Hash   object.Hash
	Commit *object.Commit
}

// Walk visits start and its ancestors, newest committer time first. Each
// commit is visited once. Parents missing from the store are skipped; a
// missing start commit is an error.
func (r *Repository) Walk(start object.Hash, fn func(LogEntry) error) error {
	seen := make(map[object.Hash]struct{})
	queue := &logQueue{}

	push := func(h object.Hash) (bool, error) {
		if _, ok := seen[h]; ok {
			return true, nil
		}
		c, err := r.GetCommit(h)
		if err != nil {
			return false, err
		}
		if c == nil {
			return false, nil
		}
		seen[h] = struct{}{}
		heap.Push(queue, logQueueItem{hash: h, when: commitTime(c), commit: c})
		return true, nil
	}

	found, err := push(start)
	if err != nil {
		return fmt.Errorf("walk %s: %w", start, err)
	}
	if !found {
		return fmt.Errorf("walk %s: %w", start, object.ErrNotFound)
	}

	for queue.Len() > 0 {
		item := heap.Pop(queue).(logQueueItem)
		if err := fn(LogEntry{Hash: item.hash, Commit: item.commit}); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
		for _, p := range item.commit.ParentHashes() {
			if _, err := push(p); err != nil {
				return fmt.Errorf("walk %s: parent %s: %w", item.hash, p, err)
			}
		}
	}
	return nil
}

// Log returns up to limit commits from Walk. A limit <= 0 means no limit.
func (r *Repository) Log(start object.Hash, limit int) ([]LogEntry, error) {
	var out []LogEntry
	err := r.Walk(start, func(e LogEntry) error {
		out = append(out, e)
		if limit > 0 && len(out) >= limit {
			return ErrStopWalk
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// commitTime is the committer timestamp, falling back to the author's. A
// commit with neither parseable sorts as time zero.
func commitTime(c *object.Commit) int64 {
	for _, line := range []string{c.Committer(), c.Author()} {
		if id, err := object.ParseIdent(line); err == nil {
			return id.When.Unix()
		}
	}
	return 0
}
