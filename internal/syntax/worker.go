package syntax

import (
	"sync"
	"sync/atomic"
	"time"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/jasonmcghee/texteditorcore/internal/logctx"
	"github.com/jasonmcghee/texteditorcore/internal/style"
)

var logger = logctx.Get("syntax")

// firstParseDebounce and steadyStateDebounce are the worker's two debounce
// tiers: the first parse of a freshly opened document fires almost
// immediately, while every parse after that waits for typing to pause.
const (
	firstParseDebounce  = 10 * time.Millisecond
	steadyStateDebounce = 100 * time.Millisecond
)

// ParseRequest is one unit of work submitted to a Worker. Edit is nil for
// a fresh parse (ResetTree or the very first parse); otherwise it carries
// the delta an incremental reparse applies to the previous tree.
type ParseRequest struct {
	Text      []byte
	Version   uint64
	Edit      *TextEdit
	ResetTree bool
}

// Published is the latest result a Worker has made visible to readers.
type Published struct {
	Effects []style.TextEffect
	Tree    *sitter.Tree
	Text    []byte
	Version uint64
}

// Worker reparses one document's content in the background, debounced,
// incremental when possible, publishing results lock-free. One background
// goroutine owns the parse tree and is the only code that mutates it;
// callers interact through Submit, Published, Redraw and Close.
type Worker struct {
	registry *Registry
	language string

	requests chan ParseRequest
	redraw   chan struct{}

	published atomic.Pointer[Published]

	stop chan struct{}
	once sync.Once
}

// NewWorker starts a background worker parsing language via reg.
func NewWorker(reg *Registry, language string) *Worker {
	w := &Worker{
		registry: reg,
		language: language,
		requests: make(chan ParseRequest, 64),
		redraw:   make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit queues req, replacing any not-yet-processed request — only the
// most recent edit matters once a newer one has arrived. Never blocks.
func (w *Worker) Submit(req ParseRequest) {
	select {
	case w.requests <- req:
	default:
		select {
		case <-w.requests:
		default:
		}
		select {
		case w.requests <- req:
		default:
		}
	}
}

// Published returns the most recently published result, or nil before the
// first parse completes.
func (w *Worker) Published() *Published {
	return w.published.Load()
}

// Redraw signals (non-blocking, depth 1) whenever a new result is
// published, so a render loop can wake up instead of polling.
func (w *Worker) Redraw() <-chan struct{} {
	return w.redraw
}

// Close stops the background goroutine. Safe to call more than once.
func (w *Worker) Close() {
	w.once.Do(func() { close(w.stop) })
}

func (w *Worker) run() {
	var lastTree *sitter.Tree
	var lastText []byte
	first := true

	var pending *ParseRequest
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.stop:
			if lastTree != nil {
				lastTree.Close()
			}
			return

		case req := <-w.requests:
			r := req
			if pending != nil {
				// r supersedes a request that was never parsed, so its Edit
				// is relative to text the last parsed tree has not seen:
				// reparse from scratch instead of applying it.
				r.Edit = nil
				r.ResetTree = true
			}
			pending = &r

			debounce := steadyStateDebounce
			if first {
				debounce = firstParseDebounce
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if pending == nil {
				continue
			}
			req := *pending
			pending = nil

			if !req.ResetTree && req.Edit == nil && lastText != nil && string(req.Text) == string(lastText) {
				continue
			}

			var oldTree *sitter.Tree
			switch {
			case req.ResetTree || lastTree == nil:
				oldTree = nil
			case req.Edit != nil:
				lastTree.Edit(req.Edit.ToInputEdit())
				oldTree = lastTree
			default:
				oldTree = lastTree
			}

			var newTree *sitter.Tree
			var effects []style.TextEffect
			var err error
			panicked := true
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Warningf("syntax: parse panicked: %v", r)
					}
				}()
				newTree, effects, err = ParseAndExtract(w.registry, w.language, req.Text, oldTree)
				panicked = false
			}()
			if panicked {
				continue
			}
			if err != nil {
				logger.Warningf("syntax: parse failed: %s", err)
				continue
			}

			if lastTree != nil {
				lastTree.Close()
			}
			lastTree = newTree
			lastText = req.Text
			first = false

			w.published.Store(&Published{
				Effects: effects,
				Tree:    newTree,
				Text:    req.Text,
				Version: req.Version,
			})

			select {
			case w.redraw <- struct{}{}:
			default:
			}
		}
	}
}

// GetVisibleEffects filters p's effects to those intersecting byteRange.
// A literal viewport-scoped tree-sitter cursor (query.SetByteRange) would
// avoid walking off-screen captures during the query itself; this instead
// filters the already-extracted slice, which is simpler and still O(n) in
// the number of syntax effects rather than the number of glyphs on
// screen — acceptable since effects are produced once per parse, not once
// per frame.
func GetVisibleEffects(p *Published, byteRange style.ByteRange) []style.TextEffect {
	if p == nil {
		return nil
	}
	var out []style.TextEffect
	for _, e := range p.Effects {
		if e.Range.End > byteRange.Start && e.Range.Start < byteRange.End {
			out = append(out, e)
		}
	}
	return out
}
