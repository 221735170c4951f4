package mesh

import "sync/atomic"

type (
	// Queue is an unbounded single-producer single-consumer queue of
	// update messages. Push never blocks and Pop never waits. Only the
	// producer allocates.
	Queue struct {
		head   *cell // owned by consumer
		tail   *cell // owned by producer
		pushed atomic.Int64
		popped atomic.Int64
	}

	cell struct {
		next atomic.Pointer[cell]
		msg  message
	}

	// message is applied by runtime when drained from the queue.
	message interface {
		apply(*Runtime)
	}
)

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	stub := &cell{}
	return &Queue{
		head: stub,
		tail: stub,
	}
}

// Push appends message to the queue. Must be called by a single producer.
func (q *Queue) Push(m message) {
	c := &cell{msg: m}
	q.tail.next.Store(c)
	q.tail = c
	q.pushed.Add(1)
}

// Pop removes the oldest message. It returns false immediately if the
// queue is empty. Must be called by a single consumer.
func (q *Queue) Pop() (message, bool) {
	next := q.head.next.Load()
	if next == nil {
		return nil, false
	}
	m := next.msg
	// next becomes the new stub, drop its reference to the message
	next.msg = nil
	q.head = next
	q.popped.Add(1)
	return m, true
}

// Pending returns the number of messages pushed but not popped yet.
func (q *Queue) Pending() int {
	popped := q.popped.Load()
	return int(q.pushed.Load() - popped)
}
