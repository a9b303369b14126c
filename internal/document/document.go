package document

import (
	"sync"
	"sync/atomic"

	"github.com/jasonmcghee/texteditorcore/internal/logctx"
	"github.com/jasonmcghee/texteditorcore/internal/sumtree"
)

// FlushThreshold is the default number of pending edits that triggers an
// automatic flush. Any value roughly in [8, 64] trades write latency
// against how current the published snapshot stays.
const FlushThreshold = 16

var logger = logctx.Get("document")

// Document is the process-wide mutable façade over an immutable sum tree:
// readers take an owned, wait-free snapshot via Read; writers queue Edits
// via Edit, which auto-flush into a freshly published Tree once enough
// have accumulated.
//
// No lock-free MPMC queue is in play here; shared slices are guarded with
// a plain sync.Mutex, so the pending queue is a mutex-guarded slice rather
// than a hand-rolled lock-free structure — see DESIGN.md. The published
// tree itself is lock-free: readers load it through an atomic.Pointer and
// never contend with a writer.
type Document struct {
	tree atomic.Pointer[sumtree.Tree]

	queueMu sync.Mutex
	pending []Edit
	count   atomic.Int64

	// applyMu serializes the read-current/apply-edits/publish sequence so
	// that concurrent Flush calls compose correctly even though each only
	// locks queueMu long enough to drain its own disjoint batch.
	applyMu sync.Mutex

	threshold int

	// OnFlush, if set, is invoked synchronously after every flush with the
	// newly published tree and the edits just applied (in FIFO order).
	// The syntax engine uses this to dispatch a ParseRequest carrying the
	// edit delta without Document importing the syntax package.
	OnFlush func(tree *sumtree.Tree, applied []Edit)
}

// New creates a Document seeded with s's content.
func New(s string) *Document {
	d := &Document{threshold: FlushThreshold}
	d.tree.Store(sumtree.FromString(s))
	return d
}

// NewEmpty creates a Document with no content.
func NewEmpty() *Document {
	d := &Document{threshold: FlushThreshold}
	d.tree.Store(sumtree.Empty())
	return d
}

// Read returns the currently published Tree snapshot. Never blocks;
// multiple readers may hold snapshots from different versions
// concurrently, and each snapshot is immutable for its lifetime.
func (d *Document) Read() *sumtree.Tree {
	return d.tree.Load()
}

// Version returns the version of the most recently published snapshot.
// It never decreases.
func (d *Document) Version() uint64 {
	return d.Read().Version()
}

// Edit queues e for application. Never blocks. Once the number of queued
// edits reaches the flush threshold, a flush is triggered automatically.
func (d *Document) Edit(e Edit) {
	d.queueMu.Lock()
	d.pending = append(d.pending, e)
	n := len(d.pending)
	d.queueMu.Unlock()
	d.count.Store(int64(n))

	if n >= d.threshold {
		d.Flush()
	}
}

// Flush drains the pending queue and applies every drained edit, in FIFO
// order, to the current snapshot, producing a new Tree that is then
// published atomically. If Flush is called with nothing pending it is a
// no-op that returns the tree already published. Edits are never applied
// twice: draining empties the queue before any edit in the batch is
// applied.
func (d *Document) Flush() *sumtree.Tree {
	d.queueMu.Lock()
	drained := d.pending
	d.pending = nil
	d.queueMu.Unlock()
	d.count.Store(0)

	if len(drained) == 0 {
		return d.Read()
	}

	d.applyMu.Lock()
	defer d.applyMu.Unlock()

	current := d.tree.Load()
	next := current
	for _, e := range drained {
		next = applyEdit(next, e)
	}
	d.tree.Store(next)

	if d.OnFlush != nil {
		d.OnFlush(next, drained)
	}
	return next
}

// ReplaceTree publishes tree's content under a freshly bumped version,
// used by undo/redo to restore a previously captured snapshot. tree may
// carry an older version than what's currently published (that's the
// whole point of undo); ReplaceTree always restamps it above the current
// version before publishing, so Version() never decreases even though the
// content it reports can match an earlier snapshot.
func (d *Document) ReplaceTree(tree *sumtree.Tree) *sumtree.Tree {
	d.applyMu.Lock()
	defer d.applyMu.Unlock()
	current := d.tree.Load()
	next := tree.Restamp(current.Version())
	d.tree.Store(next)
	return next
}

// PendingCount returns the number of edits currently queued but not yet
// flushed.
func (d *Document) PendingCount() int64 {
	return d.count.Load()
}

func applyEdit(t *sumtree.Tree, e Edit) *sumtree.Tree {
	switch e.Kind {
	case KindInsert:
		return t.Insert(e.Pos, e.Content)
	case KindDelete:
		return t.Delete(e.Range.Start, e.Range.End)
	case KindReplace:
		return t.Replace(e.Range.Start, e.Range.End, e.Content)
	default:
		logger.Warningf("document: edit of unknown kind %d ignored", e.Kind)
		return t
	}
}
