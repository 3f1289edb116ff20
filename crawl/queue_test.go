package crawl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueDedup(t *testing.T) {
	q := NewQueue()
	q.Add("https://a.test/1")
	q.Add("https://a.test/2")
	q.Add("https://a.test/1")

	assert.Equal(t, 2, q.Seen())
	assert.Equal(t, []string{"https://a.test/1", "https://a.test/2"}, q.All())
}

func TestQueueBFSOrder(t *testing.T) {
	q := NewQueue()
	q.Add("first")
	q.Add("second")

	url, ok := q.Next()
	assert.True(t, ok)
	assert.Equal(t, "first", url)

	url, ok = q.Next()
	assert.True(t, ok)
	assert.Equal(t, "second", url)

	_, ok = q.Next()
	assert.False(t, ok)
}

func TestQueueAddWhileDraining(t *testing.T) {
	q := NewQueue()
	q.Add("a")

	url, ok := q.Next()
	assert.True(t, ok)
	assert.Equal(t, "a", url)

	q.Add("b")

	url, ok = q.Next()
	assert.True(t, ok)
	assert.Equal(t, "b", url)

	_, ok = q.Next()
	assert.False(t, ok)
}

func TestQueueEmpty(t *testing.T) {
	q := NewQueue()

	_, ok := q.Next()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Seen())
	assert.Empty(t, q.All())
}
