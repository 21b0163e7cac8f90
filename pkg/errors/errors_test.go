package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	e1 := New("cause1")
	e2 := New("cause2").Wrap(e1)
	e := New("dummy").Wrap(e2)
	e3 := e.Unwrap()
	assert.True(t, Is(e, e1))
	assert.True(t, Is(e, e2))
	assert.True(t, e3 == e2)
}

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("not found")
	wrapped := sentinel.Wrap(fmt.Errorf("stat %s: no such file", "a.xml"))

	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "not found", sentinel.Error(), "sentinel must not be mutated by Wrap")
	assert.Equal(t, "not found: stat a.xml: no such file", wrapped.Error())

	var target *Error
	require.True(t, As(fmt.Errorf("outer: %w", wrapped), &target))
	assert.True(t, Is(target, sentinel))
}

func TestQueue(t *testing.T) {
	q := NewQueue(3)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, "", q.Last())

	for i := 0; i < 5; i++ {
		q.PushMessage(fmt.Sprintf("msg%d", i))
	}
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []string{"msg2", "msg3", "msg4"}, q.Messages())
	assert.Equal(t, "msg4", q.Last())

	q.Push(nil)
	assert.Equal(t, 3, q.Len())

	q.Push(New("boom"))
	assert.Equal(t, "boom", q.Last())
	assert.Equal(t, []string{"msg3", "msg4", "boom"}, q.Messages())

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Messages())
}
