// Package availability implements the debounced username uniqueness check
// used by the add-user and edit-user screens.
//
// Every Update restarts an idle timer; when it fires, exactly one lookup is
// issued for the latest draft. Lookups carry a generation and a response
// whose generation is no longer current is discarded, so a slow early
// lookup can never overwrite a later one. In-flight lookups are not
// cancelled.
package availability

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// DefaultDelay is the idle period before a lookup is issued.
const DefaultDelay = 500 * time.Millisecond

// DefaultMinLength is the shortest draft that is looked up at all.
const DefaultMinLength = 3

type State int

const (
	Unknown State = iota
	Available
	Taken
)

func (s State) String() string {
	switch s {
	case Available:
		return "available"
	case Taken:
		return "taken"
	default:
		return "unknown"
	}
}

// Lookup reports whether username is already in use.
type Lookup func(ctx context.Context, username string) (bool, error)

// Timer is the part of *time.Timer the checker needs.
type Timer interface {
	Stop() bool
}

// Clock schedules the debounce timer.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type Option func(*Checker)

func WithDelay(d time.Duration) Option { return func(c *Checker) { c.delay = d } }

func WithClock(clock Clock) Option { return func(c *Checker) { c.clock = clock } }

// WithOriginal sets the username of the record being edited; a draft equal
// to it is Available without a lookup.
func WithOriginal(username string) Option { return func(c *Checker) { c.original = username } }

// WithErrorState sets the state a failed lookup resolves to.
func WithErrorState(s State) Option { return func(c *Checker) { c.onError = s } }

func WithMinLength(n int) Option { return func(c *Checker) { c.minLen = n } }

func WithLogger(l logging.Logger) Option { return func(c *Checker) { c.log = l } }

// Checker is safe for concurrent use: Update is called by the input loop
// while timers and lookups complete on their own goroutines.
type Checker struct {
	lookup   Lookup
	clock    Clock
	delay    time.Duration
	original string
	minLen   int
	onError  State
	log      logging.Logger

	mu      sync.Mutex
	draft   string
	state   State
	gen     uint64
	timer   Timer
	pending bool
	done    chan struct{}
	stopped bool
}

func New(lookup Lookup, opts ...Option) *Checker {
	c := &Checker{
		lookup:  lookup,
		clock:   realClock{},
		delay:   DefaultDelay,
		minLen:  DefaultMinLength,
		onError: Unknown,
		log:     logging.Discard(),
		done:    closedChan(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Update records a new draft and restarts the idle timer.
func (c *Checker) Update(draft string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	c.gen++
	c.stopTimer()
	c.draft = draft

	switch {
	case c.original != "" && draft == c.original:
		c.resolve(Available)
		return
	case len([]rune(draft)) < c.minLen:
		c.resolve(Unknown)
		return
	}

	c.state = Unknown
	if !c.pending {
		c.pending = true
		c.done = make(chan struct{})
	}
	gen := c.gen
	c.timer = c.clock.AfterFunc(c.delay, func() { c.fire(gen) })
}

func (c *Checker) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen || c.stopped {
		c.mu.Unlock()
		return
	}
	draft := c.draft
	c.timer = nil
	c.mu.Unlock()

	ctx := context.Background()
	taken, err := c.lookup(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen || c.stopped {
		c.log.Debug(ctx, "discarding stale availability result", "username", draft)
		return
	}
	switch {
	case err != nil:
		c.log.Warn(ctx, "availability lookup failed", "username", draft, "error", err)
		c.resolve(c.onError)
	case taken:
		c.resolve(Taken)
	default:
		c.resolve(Available)
	}
}

// State returns the result for the latest draft.
func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Checking reports a pending timer or lookup for the latest draft.
func (c *Checker) Checking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Checker) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Await blocks until the latest draft is resolved or ctx is done.
func (c *Checker) Await(ctx context.Context) (State, error) {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	select {
	case <-done:
		return c.State(), nil
	case <-ctx.Done():
		return Unknown, ctx.Err()
	}
}

// Reset forgets the draft. Results of earlier lookups are dropped.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.stopTimer()
	c.draft = ""
	c.resolve(Unknown)
}

// Stop is Reset plus refusing further updates.
func (c *Checker) Stop() {
	c.Reset()
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

func (c *Checker) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// resolve must be called with mu held.
func (c *Checker) resolve(s State) {
	c.state = s
	if c.pending {
		c.pending = false
		close(c.done)
	}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
