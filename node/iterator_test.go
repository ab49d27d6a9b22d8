package node

import (
	"testing"

	"github.com/PolySync/doogie/cmark"
)

type walkStep struct {
	typ Type
	ev  EventType
}

func TestIterator_Document(t *testing.T) {
	root := ParseDocument("# A\n\nb *c*\n")
	defer root.Close()

	it, err := root.Traverse.Iter()
	if err != nil {
		t.Fatalf("Iter failed: %v", err)
	}
	defer it.Close()

	want := []walkStep{
		{TypeDocument, EventEnter},
		{TypeHeading, EventEnter},
		{TypeText, EventEnter},
		{TypeHeading, EventExit},
		{TypeParagraph, EventEnter},
		{TypeText, EventEnter},
		{TypeEmph, EventEnter},
		{TypeText, EventEnter},
		{TypeEmph, EventExit},
		{TypeParagraph, EventExit},
		{TypeDocument, EventExit},
	}
	var got []walkStep
	for it.Next() {
		typ, err := it.Node().Get.Type()
		if err != nil {
			t.Fatalf("Type failed: %v", err)
		}
		got = append(got, walkStep{typ, it.Event()})
		if it.Node().Destruct != nil {
			t.Fatal("Expected iterated nodes to have no destructor")
		}
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d events, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if it.Err() != nil {
		t.Fatalf("Expected no error, got %v", it.Err())
	}
}

func TestIterator_Exhaustion(t *testing.T) {
	root := ParseDocument("x\n")
	defer root.Close()
	before := cmark.GetStats().LiveIters

	it, err := root.Traverse.Iter()
	if err != nil {
		t.Fatal(err)
	}
	for it.Next() {
	}
	for i := 0; i < 3; i++ {
		if it.Next() {
			t.Fatal("Expected Next to stay false once done")
		}
		if it.Event() != EventDone || it.Node() != nil {
			t.Fatalf("Expected done with no node, got %v %v", it.Event(), it.Node())
		}
	}

	it.Close()
	it.Close()
	if got := cmark.GetStats().LiveIters; got != before {
		t.Fatalf("Expected the engine iterator released once, live iters %d -> %d", before, got)
	}
	if it.Next() {
		t.Fatal("Expected Next after Close to be false")
	}
}

func TestIterator_Leaf(t *testing.T) {
	text := mustNew(t, TypeText)
	defer text.Close()

	var events []EventType
	for _, ev := range text.Traverse.Walk() {
		events = append(events, ev)
	}
	if len(events) != 1 || events[0] != EventEnter {
		t.Fatalf("Expected a single enter for a leaf, got %v", events)
	}
}

func TestIterator_Subtree(t *testing.T) {
	root := ParseDocument("one\n\ntwo\n")
	defer root.Close()
	second := step(t)(root.Traverse.LastChild())

	var texts []string
	for n, ev := range second.Traverse.Walk() {
		if typ, _ := n.Get.Type(); typ == TypeText && ev == EventEnter {
			s, _ := n.Get.Content()
			texts = append(texts, s)
		}
	}
	if len(texts) != 1 || texts[0] != "two" {
		t.Fatalf("Expected the walk to stay in the subtree, got %v", texts)
	}
}

func TestWalk_Break(t *testing.T) {
	root := ParseDocument("- a\n- b\n")
	defer root.Close()
	before := cmark.GetStats().LiveIters

	for range root.Traverse.Walk() {
		break
	}
	if got := cmark.GetStats().LiveIters; got != before {
		t.Fatalf("Expected Walk to release its iterator on break, live iters %d -> %d", before, got)
	}
}

func TestIterator_SharesCells(t *testing.T) {
	root := ParseDocument("a\n")
	para := step(t)(root.Traverse.FirstChild())

	var walked *Node
	for n, ev := range root.Traverse.Walk() {
		if typ, _ := n.Get.Type(); typ == TypeParagraph && ev == EventEnter {
			walked = n
		}
	}
	if walked == nil || mustID(t, walked) != mustID(t, para) {
		t.Fatal("Expected the walk to reach the paragraph")
	}

	root.Close()
	if walked.IsValid() || para.IsValid() {
		t.Fatal("Expected every Node of a freed node to be invalid")
	}
}

func TestIterator_StopsWhenInvalidated(t *testing.T) {
	tests := []struct {
		name string
		// open returns the node to walk and the call that frees it.
		open func(t *testing.T) (*Node, func())
	}{
		{
			name: "root closed",
			open: func(t *testing.T) (*Node, func()) {
				root := ParseDocument("* Item 1\n* Item 2\n* Item 3")
				return root, root.Close
			},
		},
		{
			name: "child of closed root",
			open: func(t *testing.T) (*Node, func()) {
				root := ParseDocument("* Item 1\n* Item 2\n* Item 3")
				return step(t)(root.Traverse.FirstChild()), root.Close
			},
		},
		{
			name: "unlinked subtree closed",
			open: func(t *testing.T) (*Node, func()) {
				root := ParseDocument("* Item 1\n* Item 2\n* Item 3")
				t.Cleanup(root.Close)
				list := step(t)(root.Traverse.FirstChild())
				item := step(t)(list.Traverse.FirstChild())
				owned, err := item.Mutate.Unlink()
				if err != nil {
					t.Fatalf("Unlink failed: %v", err)
				}
				return owned, owned.Close
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, free := tt.open(t)
			obs := observe(t)

			it, err := n.Traverse.Iter()
			if err != nil {
				t.Fatalf("Iter failed: %v", err)
			}
			defer it.Close()
			if !it.Next() {
				t.Fatal("Expected a first event")
			}

			free()
			for i := 0; i < 3; i++ {
				if it.Next() {
					t.Fatalf("Expected the walk to end, got %v %v", it.Node(), it.Event())
				}
				if it.Node() != nil || it.Event() != EventDone {
					t.Fatal("Expected done with no node")
				}
			}
			if it.Err() != nil {
				t.Fatalf("Expected no error, got %v", it.Err())
			}
			if got := obs.total(cmark.EventInvalidAccess); got != 0 {
				t.Fatalf("Expected no access to freed nodes, got %d", got)
			}
		})
	}
}

func TestIterator_StopsAtFreedSibling(t *testing.T) {
	root := ParseDocument("one\n\ntwo\n")
	defer root.Close()
	obs := observe(t)

	it, err := root.Traverse.Iter()
	if err != nil {
		t.Fatal(err)
	}
	defer it.Close()
	if !it.Next() {
		t.Fatal("Expected the document enter")
	}

	first := step(t)(root.Traverse.FirstChild())
	owned, err := first.Mutate.Unlink()
	if err != nil {
		t.Fatal(err)
	}
	owned.Close()

	for it.Next() {
		if !it.Node().IsValid() {
			t.Fatalf("Expected only valid nodes, got %v", it.Node())
		}
	}
	if got := obs.total(cmark.EventInvalidAccess); got != 0 {
		t.Fatalf("Expected no access to freed nodes, got %d", got)
	}
}
