package cmark

import "testing"

type recordingObserver struct {
	events []Event
}

func (o *recordingObserver) OnEngineEvent(e Event) {
	o.events = append(o.events, e)
}

func (o *recordingObserver) count(t EventType, p NodePtr) int {
	n := 0
	for _, e := range o.events {
		if e.Type == t && e.Node == p {
			n++
		}
	}
	return n
}

func observe(t *testing.T) *recordingObserver {
	t.Helper()
	o := &recordingObserver{}
	Subscribe(o)
	t.Cleanup(func() { Unsubscribe(o) })
	return o
}

func TestArena_AllocFree(t *testing.T) {
	obs := observe(t)
	before := GetStats()

	p := NodeNew(NodeParagraph)
	if p == 0 {
		t.Fatal("Expected non-zero handle")
	}
	if got := GetStats().LiveNodes; got != before.LiveNodes+1 {
		t.Fatalf("Expected %d live nodes, got %d", before.LiveNodes+1, got)
	}
	if obs.count(EventAllocated, p) != 1 {
		t.Fatal("Expected one allocated event")
	}

	NodeFree(p)
	if got := GetStats().LiveNodes; got != before.LiveNodes {
		t.Fatalf("Expected %d live nodes after free, got %d", before.LiveNodes, got)
	}
	if obs.count(EventFreed, p) != 1 {
		t.Fatal("Expected one freed event")
	}
}

func TestArena_StaleHandleNeverAliases(t *testing.T) {
	obs := observe(t)

	old := NodeNew(NodeText)
	NodeFree(old)
	fresh := NodeNew(NodeText)
	defer NodeFree(fresh)

	if old == fresh {
		t.Fatal("Expected reused slot to produce a different handle")
	}
	if NodeGetType(fresh) != NodeText {
		t.Fatal("Expected fresh handle to resolve")
	}
	if NodeGetType(old) != NodeNone {
		t.Fatal("Expected stale handle to resolve to none")
	}
	if obs.count(EventInvalidAccess, old) != 1 {
		t.Fatal("Expected invalid access event for stale handle")
	}
}

func TestArena_DoubleFree(t *testing.T) {
	obs := observe(t)

	p := NodeNew(NodeEmph)
	NodeFree(p)
	NodeFree(p)

	if obs.count(EventFreed, p) != 1 {
		t.Fatalf("Expected exactly one free, got %d", obs.count(EventFreed, p))
	}
	if obs.count(EventInvalidFree, p) != 1 {
		t.Fatal("Expected invalid free event")
	}
}

func TestArena_FreeCascades(t *testing.T) {
	obs := observe(t)

	doc := ParseDocument([]byte("- a\n- b\n- c\n"), OptDefault)
	list := NodeFirstChild(doc)
	item := NodeFirstChild(list)
	para := NodeFirstChild(item)
	text := NodeFirstChild(para)

	NodeFree(doc)

	for _, p := range []NodePtr{doc, list, item, para, text} {
		if obs.count(EventFreed, p) != 1 {
			t.Errorf("Expected node %x to be freed once", p)
		}
		if NodeGetType(p) != NodeNone {
			t.Errorf("Expected node %x to be unavailable", p)
		}
	}
}

func TestArena_NullHandle(t *testing.T) {
	obs := observe(t)

	if NodeGetType(0) != NodeNone {
		t.Fatal("Expected none for null handle")
	}
	NodeFree(0)
	if len(obs.events) != 0 {
		t.Fatalf("Expected null handle to be silent, got %v", obs.events)
	}
}
