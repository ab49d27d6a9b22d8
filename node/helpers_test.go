package node

import (
	"sync"
	"testing"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []cmark.Event
}

func (o *recordingObserver) OnEngineEvent(e cmark.Event) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

func (o *recordingObserver) count(t cmark.EventType, id uint64) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, e := range o.events {
		if e.Type == t && uint64(e.Node) == id {
			n++
		}
	}
	return n
}

func (o *recordingObserver) total(t cmark.EventType) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, e := range o.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func observe(t *testing.T) *recordingObserver {
	t.Helper()
	o := &recordingObserver{}
	cmark.Subscribe(o)
	t.Cleanup(func() { cmark.Unsubscribe(o) })
	return o
}

func mustID(t *testing.T, n *Node) uint64 {
	t.Helper()
	id, err := n.Get.ID()
	if err != nil {
		t.Fatalf("Expected ID, got %v", err)
	}
	return id
}

func mustNew(t *testing.T, typ Type) *Node {
	t.Helper()
	n, err := New(typ)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", typ, err)
	}
	return n
}

// step unwraps a navigation result that must yield a node:
// step(t)(n.Traverse.FirstChild()).
func step(t *testing.T) func(*Node, error) *Node {
	return func(n *Node, err error) *Node {
		t.Helper()
		if err != nil {
			t.Fatalf("Expected navigation to succeed, got %v", err)
		}
		if n == nil {
			t.Fatal("Expected a neighbour, got nil")
		}
		return n
	}
}

func requireUnavailable(t *testing.T, what string, err error) {
	t.Helper()
	if !errors.IsKind(err, errors.KindResourceUnavailable) {
		t.Errorf("%s: expected resource_unavailable, got %v", what, err)
	}
}

// collect returns every node entered while walking n.
func collect(t *testing.T, n *Node) []*Node {
	t.Helper()
	var out []*Node
	for child, ev := range n.Traverse.Walk() {
		if ev == EventEnter {
			out = append(out, child)
		}
	}
	return out
}
