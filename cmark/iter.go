package cmark

type iterState struct {
	n  *node
	ev int
}

type iterator struct {
	root *node
	cur  iterState
	next iterState
}

// IterNew opens a depth-first iterator over the subtree rooted at p.
// It returns 0 when p does not resolve.
func IterNew(p NodePtr) IterPtr {
	engine.lock()
	defer engine.unlock()
	n := engine.resolve(p, "iter_new")
	if n == nil {
		return 0
	}
	engine.nextIter++
	it := engine.nextIter
	engine.iters[it] = &iterator{
		root: n,
		cur:  iterState{ev: EventNone},
		next: iterState{ev: EventEnter, n: n},
	}
	engine.emit(Event{Type: EventIterOpened, Node: p, Iter: it})
	return it
}

// IterNext advances the iterator and returns the new event. Once EventDone
// is returned it is returned forever. An iterator whose root or next node
// has been freed is done.
func IterNext(it IterPtr) int {
	engine.lock()
	defer engine.unlock()
	st := engine.iters[it]
	if st == nil {
		return EventNone
	}
	return st.advance()
}

func live(n *node) bool {
	return n != nil && engine.lookup(n.ptr) == n
}

func (it *iterator) advance() int {
	if it.next.ev != EventDone && (!live(it.root) || !live(it.next.n)) {
		it.next = iterState{ev: EventDone}
	}
	ev, n := it.next.ev, it.next.n
	it.cur = it.next
	if ev == EventDone {
		return ev
	}

	switch {
	case ev == EventEnter && !isLeaf(n.typ):
		if n.first == nil {
			it.next = iterState{ev: EventExit, n: n}
		} else {
			it.next = iterState{ev: EventEnter, n: n.first}
		}
	case n == it.root:
		it.next = iterState{ev: EventDone}
	case n.next != nil:
		it.next = iterState{ev: EventEnter, n: n.next}
	case n.parent != nil:
		it.next = iterState{ev: EventExit, n: n.parent}
	default:
		it.next = iterState{ev: EventDone}
	}
	return ev
}

// IterGetNode returns the node of the current event, 0 before the first
// event and after EventDone.
func IterGetNode(it IterPtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if st := engine.iters[it]; st != nil {
		return handleOf(st.cur.n)
	}
	return 0
}

// IterGetEventType returns the current event.
func IterGetEventType(it IterPtr) int {
	engine.lock()
	defer engine.unlock()
	if st := engine.iters[it]; st != nil {
		return st.cur.ev
	}
	return EventNone
}

// IterGetRoot returns the node the iterator was opened on.
func IterGetRoot(it IterPtr) NodePtr {
	engine.lock()
	defer engine.unlock()
	if st := engine.iters[it]; st != nil {
		return handleOf(st.root)
	}
	return 0
}

// IterFree releases the iterator. Releasing an unknown iterator is reported
// and otherwise ignored.
func IterFree(it IterPtr) {
	engine.lock()
	defer engine.unlock()
	if _, ok := engine.iters[it]; !ok {
		Logger().Warn("free of unknown iterator", zapIter(it))
		engine.emit(Event{Type: EventInvalidFree, Iter: it, Op: "iter_free"})
		return
	}
	delete(engine.iters, it)
	engine.emit(Event{Type: EventIterClosed, Iter: it})
}
