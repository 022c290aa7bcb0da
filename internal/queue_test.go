package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFO(t *testing.T) {
	q := Queue[string]{}

	assert.True(t, q.Empty())
	q.Push("a")
	q.Push("b")

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, "a", q.Pop())
	assert.Equal(t, "b", q.Pop())
	assert.True(t, q.Empty())
}
