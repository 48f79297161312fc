package gui

import "github.com/appengine-ltd/fae-factory/internal/parser"

// CommandSink accepts parsed command lines.
type CommandSink interface {
	EnqueueIntent(parser.Intent)
}

// intentQueue buffers typed lines between input capture and the frame update
// that runs them.
type intentQueue struct {
	ch chan parser.Intent
}

var _ CommandSink = (*intentQueue)(nil)

func newIntentQueue(size int) *intentQueue {
	if size < 1 {
		size = 16
	}
	return &intentQueue{ch: make(chan parser.Intent, size)}
}

// EnqueueIntent drops the intent when the queue is saturated.
func (q *intentQueue) EnqueueIntent(intent parser.Intent) {
	q.TryEnqueue(intent)
}

// TryEnqueue reports whether the intent was kept.
func (q *intentQueue) TryEnqueue(intent parser.Intent) bool {
	if q == nil {
		return false
	}
	select {
	case q.ch <- intent:
		return true
	default:
		return false
	}
}

func (q *intentQueue) Dequeue() (parser.Intent, bool) {
	if q == nil {
		return parser.Intent{}, false
	}
	select {
	case intent := <-q.ch:
		return intent, true
	default:
		return parser.Intent{}, false
	}
}

// Drain returns every queued intent in arrival order.
func (q *intentQueue) Drain() []parser.Intent {
	var out []parser.Intent
	for {
		intent, ok := q.Dequeue()
		if !ok {
			return out
		}
		out = append(out, intent)
	}
}

func (q *intentQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.ch)
}
