package cmark

import (
	"sync"

	"go.uber.org/zap"
)

// node is the arena's internal representation. Tree links are direct
// pointers; handles are only used at the package boundary.
type node struct {
	parent *node
	prev   *node
	next   *node
	first  *node
	last   *node

	literal string
	url     string
	title   string
	info    string

	ptr NodePtr
	typ int

	listType  int
	listDelim int
	listStart int
	listTight bool

	headingLevel int
	fenced       bool

	startLine   int
	startColumn int
	endLine     int
	endColumn   int
}

type slot struct {
	n     *node
	gen   uint32
	valid bool
}

// arena owns every engine node and iterator. Freed slots go to a free list
// and are reused with a bumped generation, so a stale handle never
// resolves to a newer node.
type arena struct {
	slots    []slot
	freeList []uint32
	iters    map[IterPtr]*iterator
	pending  []Event
	nextIter IterPtr
	live     int

	observers []Observer
	obsMu     sync.RWMutex
	mu        sync.Mutex
}

var engine = newArena()

func newArena() *arena {
	return &arena{
		slots:    make([]slot, 0, 64),
		freeList: make([]uint32, 0, 16),
		iters:    make(map[IterPtr]*iterator),
	}
}

func (a *arena) lock() {
	a.mu.Lock()
}

// unlock releases the arena and delivers events queued while it was held,
// so observers may call back into the engine.
func (a *arena) unlock() {
	events := a.pending
	a.pending = nil
	a.mu.Unlock()

	if len(events) == 0 {
		return
	}
	a.obsMu.RLock()
	defer a.obsMu.RUnlock()
	for _, e := range events {
		for _, o := range a.observers {
			o.OnEngineEvent(e)
		}
	}
}

func (a *arena) emit(e Event) {
	a.pending = append(a.pending, e)
}

func (a *arena) alloc(typ int) *node {
	n := &node{typ: typ}
	switch typ {
	case NodeList:
		n.listType = BulletList
	case NodeHeading:
		n.headingLevel = 1
	}

	if len(a.freeList) > 0 {
		idx := a.freeList[len(a.freeList)-1]
		a.freeList = a.freeList[:len(a.freeList)-1]
		s := &a.slots[idx]
		s.n = n
		s.valid = true
		n.ptr = makePtr(idx, s.gen)
	} else {
		a.slots = append(a.slots, slot{n: n, gen: 1, valid: true})
		n.ptr = makePtr(uint32(len(a.slots)-1), 1)
	}

	a.live++
	a.emit(Event{Type: EventAllocated, Node: n.ptr})
	return n
}

// lookup resolves p without reporting. It returns nil for null, stale and
// out-of-range handles.
func (a *arena) lookup(p NodePtr) *node {
	if p == 0 {
		return nil
	}
	idx := p.index()
	if int(idx) >= len(a.slots) {
		return nil
	}
	s := a.slots[idx]
	if !s.valid || s.gen != p.generation() {
		return nil
	}
	return s.n
}

// resolve is lookup for public operations: a non-null handle that does not
// resolve is a use after free and is reported.
func (a *arena) resolve(p NodePtr, op string) *node {
	n := a.lookup(p)
	if n == nil && p != 0 {
		Logger().Warn("access to freed node",
			zap.String("op", op),
			zap.Uint64("node", uint64(p)))
		a.emit(Event{Type: EventInvalidAccess, Node: p, Op: op})
	}
	return n
}

// release frees n and its whole subtree. n must already be unlinked.
func (a *arena) release(n *node) {
	for c := n.first; c != nil; {
		next := c.next
		a.release(c)
		c = next
	}

	idx := n.ptr.index()
	s := &a.slots[idx]
	s.n = nil
	s.valid = false
	s.gen++
	a.freeList = append(a.freeList, idx)
	a.live--
	a.emit(Event{Type: EventFreed, Node: n.ptr})
}

// Subscribe adds an observer for engine lifecycle events.
func Subscribe(o Observer) {
	engine.obsMu.Lock()
	defer engine.obsMu.Unlock()
	engine.observers = append(engine.observers, o)
}

// Unsubscribe removes an observer.
func Unsubscribe(o Observer) {
	engine.obsMu.Lock()
	defer engine.obsMu.Unlock()
	for i, obs := range engine.observers {
		if obs == o {
			engine.observers = append(engine.observers[:i], engine.observers[i+1:]...)
			return
		}
	}
}

// GetStats returns a snapshot of live engine allocations.
func GetStats() Stats {
	engine.lock()
	defer engine.unlock()
	return Stats{LiveNodes: engine.live, LiveIters: len(engine.iters)}
}
