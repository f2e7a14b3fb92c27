package microflo

import "sync/atomic"

// messageRange is a {read, write} pair of indices into a MessageQueue's
// shared backing array, mirroring internal.Ring's Off/End two-index
// discipline but over a typed slice instead of bytes.
type messageRange struct {
	read  int32
	write int32
}

// MessageQueue is a bounded FIFO of pending messages with a two-phase tick
// discipline: previous is a snapshot of current taken at newTick, and only
// messages within previous are delivered during the tick that follows.
// Messages pushed during delivery land in current and are only visible
// starting the following tick.
type MessageQueue struct {
	messages []Message
	current  messageRange
	previous messageRange
	// writeIdx mirrors current.write for lock-free Push: the message body
	// is copied into the backing array first, and only then is writeIdx
	// (and current.write) advanced with a single word-sized store, so a
	// concurrent Pop/newTick never observes a torn write. Host builds use
	// sync/atomic.Int32 so `go test -race` is clean when tests simulate an
	// interrupt-context producer; on-device a same-priority interrupt
	// handler sees the same guarantee from a single aligned word store.
	writeIdx atomic.Int32
	dropped  atomic.Uint32
}

// NewMessageQueue returns a MessageQueue with a fixed backing array of the
// given capacity. capacity must be at least 2.
func NewMessageQueue(capacity int) *MessageQueue {
	if capacity < 2 {
		capacity = 2
	}
	return &MessageQueue{messages: make([]Message, capacity)}
}

func (q *MessageQueue) maxMessages() int32 { return int32(len(q.messages)) }

// Push enqueues msg into the current range, overwriting the oldest
// unread message if the queue is full. This is the documented overflow
// behavior; Dropped reports how many messages have been overwritten.
func (q *MessageQueue) Push(msg Message) {
	w := q.current.write
	if w >= q.maxMessages()-1 {
		w = 0
	}
	idx := w
	w++

	// Detect overwrite of not-yet-delivered data: if the slot about to be
	// written still lies within the unread previous range, the oldest
	// undelivered message is lost.
	if q.previous.read != q.previous.write {
		lo, hi := q.previous.read, q.previous.write
		var inRange bool
		if lo <= hi {
			inRange = idx >= lo && idx < hi
		} else {
			inRange = idx >= lo || idx < hi
		}
		if inRange {
			q.dropped.Add(1)
			q.previous.read = idx + 1
			if q.previous.read >= q.maxMessages() {
				q.previous.read = 0
			}
		}
	}

	q.messages[idx] = msg
	q.current.write = w
	q.writeIdx.Store(w)
}

// Pop reads the next message from the previous (snapshotted) range into
// msg and advances. It returns false once the snapshot is exhausted, and
// resynchronizes current.read so a subsequent push/newTick sequence
// starts cleanly.
func (q *MessageQueue) Pop(msg *Message) bool {
	if q.previous.read == q.previous.write {
		q.current.read = q.previous.write
		return false
	}
	r := q.previous.read
	if r >= q.maxMessages()-1 {
		r = 0
	}
	idx := r
	r++
	*msg = q.messages[idx]
	q.previous.read = r
	return true
}

// NewTick snapshots the current range into previous: only messages
// present at this moment are delivered during the tick that follows.
func (q *MessageQueue) NewTick() {
	q.current.write = q.writeIdx.Load()
	q.previous = q.current
}

// Clear empties both ranges without touching the backing array, and
// resets the Dropped counter.
func (q *MessageQueue) Clear() {
	q.previous = messageRange{}
	q.current = messageRange{}
	q.writeIdx.Store(0)
	q.dropped.Store(0)
}

// Dropped returns the number of messages silently overwritten due to
// queue overflow since construction or the last Clear.
func (q *MessageQueue) Dropped() uint32 { return q.dropped.Load() }
