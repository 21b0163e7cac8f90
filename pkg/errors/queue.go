package errors

import "sync"

// Queue accumulates error messages, keeping at most a fixed number of the
// most recent ones.
type Queue struct {
	mu   sync.Mutex
	max  int
	msgs []string
}

// NewQueue builds a queue holding at most max messages. A non-positive max
// is treated as 1.
func NewQueue(max int) *Queue {
	if max < 1 {
		max = 1
	}
	return &Queue{max: max}
}

// Push queues the message of err, dropping the oldest messages when the queue is full.
func (q *Queue) Push(err error) {
	if err == nil {
		return
	}
	q.PushMessage(err.Error())
}

// PushMessage queues a plain message.
func (q *Queue) PushMessage(msg string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) >= q.max {
		q.msgs = append(q.msgs[:0], q.msgs[len(q.msgs)-q.max+1:]...)
	}
	q.msgs = append(q.msgs, msg)
}

// Len is the number of pending messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// Messages returns a copy of the pending messages, oldest first.
func (q *Queue) Messages() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.msgs))
	copy(out, q.msgs)
	return out
}

// Last returns the most recent message, or "" when the queue is empty.
func (q *Queue) Last() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.msgs) == 0 {
		return ""
	}
	return q.msgs[len(q.msgs)-1]
}

// Clear drops every pending message.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.msgs = q.msgs[:0]
}
