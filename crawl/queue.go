// Package crawl — BFS queue with deduplication.
// Maintains a seen set so no URL is enqueued twice.
package crawl

// Queue is a FIFO URL queue that silently drops URLs it has seen before.
type Queue struct {
	items []string
	seen  map[string]bool
	head  int // next read position
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		seen: make(map[string]bool),
	}
}

// Add enqueues a URL unless it was added before.
func (q *Queue) Add(url string) {
	if q.seen[url] {
		return
	}
	q.seen[url] = true
	q.items = append(q.items, url)
}

// Next returns the next pending URL; ok is false once the queue is drained.
func (q *Queue) Next() (url string, ok bool) {
	if q.head >= len(q.items) {
		return "", false
	}
	url = q.items[q.head]
	q.head++
	return url, true
}

// Seen returns the number of unique URLs added so far.
func (q *Queue) Seen() int {
	return len(q.seen)
}

// All returns every URL added, in BFS order.
func (q *Queue) All() []string {
	return q.items
}
