package node

import (
	stderrors "errors"
	"testing"

	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
)

func TestMutator_Unlink(t *testing.T) {
	root := ParseDocument("first\n\nsecond\n")
	defer root.Close()

	first := step(t)(root.Traverse.FirstChild())
	detached, err := first.Mutate.Unlink()
	if err != nil {
		t.Fatalf("Unlink failed: %v", err)
	}
	defer detached.Close()

	if got := root.Render.CommonMark(); got != "second\n" {
		t.Fatalf("Expected the paragraph removed, got %q", got)
	}
	if got := detached.Render.CommonMark(); got != "first\n" {
		t.Fatalf("Expected the detached paragraph to render alone, got %q", got)
	}
	if p, err := detached.Traverse.Parent(); err != nil || p != nil {
		t.Fatalf("Expected no parent after unlink, got %v, %v", p, err)
	}
	if mustID(t, detached) != mustID(t, first) {
		t.Fatal("Expected Unlink to return the same node")
	}
}

func TestMutator_AppendChild(t *testing.T) {
	root := mustNew(t, TypeDocument)
	defer root.Close()

	para := mustNew(t, TypeParagraph)
	text := mustNew(t, TypeText)
	if err := text.Set.SetContent("hello"); err != nil {
		t.Fatal(err)
	}

	if err := para.Mutate.AppendChild(text); err != nil {
		t.Fatalf("AppendChild(text) failed: %v", err)
	}
	if err := root.Mutate.AppendChild(para); err != nil {
		t.Fatalf("AppendChild(paragraph) failed: %v", err)
	}
	if got := root.Render.CommonMark(); got != "hello\n" {
		t.Fatalf("Expected built tree to render, got %q", got)
	}

	root.Close()
	if text.IsValid() || para.IsValid() {
		t.Fatal("Expected appended nodes to be freed with the root")
	}
}

func TestMutator_AppendChild_Rejected(t *testing.T) {
	list := mustNew(t, TypeList)
	defer list.Close()
	para := mustNew(t, TypeParagraph)
	defer para.Close()

	err := list.Mutate.AppendChild(para)
	if !errors.IsKind(err, errors.KindReturnCode) {
		t.Fatalf("Expected return_code, got %v", err)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Code != cmark.StatusFailed {
		t.Fatalf("Expected engine status %d, got %v", cmark.StatusFailed, err)
	}
	if para.Destruct == nil {
		t.Fatal("Expected a rejected child to keep ownership")
	}
	if p, _ := para.Traverse.Parent(); p != nil {
		t.Fatal("Expected a rejected child to stay detached")
	}
}

func TestMutator_AppendChild_NoMutator(t *testing.T) {
	para := mustNew(t, TypeParagraph)
	defer para.Close()
	text, err := NewBuilder(NewFactory().WithGetter().WithDestructor()).Build(TypeText)
	if err != nil {
		t.Fatal(err)
	}
	defer text.Close()

	requireUnavailable(t, "AppendChild", para.Mutate.AppendChild(text))
	requireUnavailable(t, "AppendChild(nil)", para.Mutate.AppendChild(nil))
	_, err = para.Mutate.CanAppendChild(text)
	requireUnavailable(t, "CanAppendChild", err)
}

func TestMutator_AppendChild_WithinTree(t *testing.T) {
	root := ParseDocument("a\n\nb\n")
	defer root.Close()

	first := step(t)(root.Traverse.FirstChild())
	if err := root.Mutate.AppendChild(first); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if got := root.Render.CommonMark(); got != "b\n\na\n" {
		t.Fatalf("Expected paragraphs reordered, got %q", got)
	}
}

func TestMutator_AppendChild_AcrossTrees(t *testing.T) {
	obs := observe(t)

	src := ParseDocument("> quoted\n\nplain\n")
	dst := ParseDocument("top\n")

	quote := step(t)(src.Traverse.FirstChild())
	inner := step(t)(quote.Traverse.FirstChild())
	if err := dst.Mutate.AppendChild(quote); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if got := src.Render.CommonMark(); got != "plain\n" {
		t.Fatalf("Expected the quote gone from its source, got %q", got)
	}

	src.Close()
	if !quote.IsValid() || !inner.IsValid() {
		t.Fatal("Expected the moved subtree to belong to its new tree")
	}
	if got := dst.Render.CommonMark(); got != "top\n\n> quoted\n" {
		t.Fatalf("Expected the quote in its new tree, got %q", got)
	}

	dst.Close()
	if quote.IsValid() || inner.IsValid() {
		t.Fatal("Expected the moved subtree to be freed with its new tree")
	}
	if got := obs.total(cmark.EventInvalidFree) + obs.total(cmark.EventInvalidAccess); got != 0 {
		t.Fatalf("Expected no invalid engine use, got %d events", got)
	}
}

func TestMutator_CanAppendChild_Cycles(t *testing.T) {
	outer := mustNew(t, TypeCustomBlock)
	defer outer.Close()
	inner := mustNew(t, TypeCustomBlock)

	if ok, err := outer.Mutate.CanAppendChild(inner); err != nil || !ok {
		t.Fatalf("Expected custom_block to accept custom_block, got %v, %v", ok, err)
	}
	if err := outer.Mutate.AppendChild(inner); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if ok, _ := inner.Mutate.CanAppendChild(outer); ok {
		t.Fatal("Expected an ancestor to be rejected")
	}
	if err := inner.Mutate.AppendChild(outer); err == nil {
		t.Fatal("Expected appending an ancestor to fail")
	}
	if ok, _ := outer.Mutate.CanAppendChild(outer); ok {
		t.Fatal("Expected a node to be rejected as its own child")
	}
}

// TestMutator_StructuralConsistency checks the static child tables against
// the engine for every pair of kinds.
func TestMutator_StructuralConsistency(t *testing.T) {
	for _, pt := range Types {
		for _, ct := range Types {
			parent := mustNew(t, pt)
			child := mustNew(t, ct)

			predicted, err := parent.Mutate.CanAppendChild(child)
			if err != nil {
				t.Fatalf("CanAppendChild(%s, %s) failed: %v", pt, ct, err)
			}
			if predicted != CanContain(pt, ct) {
				t.Errorf("CanAppendChild(%s, %s) = %v, CanContain = %v", pt, ct, predicted, CanContain(pt, ct))
			}
			appended := parent.Mutate.AppendChild(child) == nil
			if appended != predicted {
				t.Errorf("%s <- %s: engine accepted = %v, predicted %v", pt, ct, appended, predicted)
			}
			if ct == TypeDocument && appended {
				t.Errorf("%s accepted a document child", pt)
			}

			child.Close()
			parent.Close()
		}
	}
}

func TestMutator_ConsolidateTextNodes(t *testing.T) {
	obs := observe(t)

	para := mustNew(t, TypeParagraph)
	defer para.Close()
	var texts []*Node
	for _, s := range []string{"a", "b", "c"} {
		text := mustNew(t, TypeText)
		if err := text.Set.SetContent(s); err != nil {
			t.Fatal(err)
		}
		if err := para.Mutate.AppendChild(text); err != nil {
			t.Fatal(err)
		}
		texts = append(texts, text)
	}
	mergedIDs := []uint64{mustID(t, texts[1]), mustID(t, texts[2])}

	if err := para.Mutate.ConsolidateTextNodes(); err != nil {
		t.Fatalf("ConsolidateTextNodes failed: %v", err)
	}

	if got, err := texts[0].Get.Content(); err != nil || got != "abc" {
		t.Fatalf("Expected merged text abc, got %q, %v", got, err)
	}
	for i, text := range texts[1:] {
		if text.IsValid() {
			t.Errorf("Expected merged-away text %d to be invalidated", i+1)
		}
		if got := obs.count(cmark.EventFreed, mergedIDs[i]); got != 1 {
			t.Errorf("Expected merged-away text %d freed once, got %d", i+1, got)
		}
	}
	if got := para.Render.CommonMark(); got != "abc\n" {
		t.Fatalf("Expected one text run, got %q", got)
	}
	if last := step(t)(para.Traverse.LastChild()); mustID(t, last) != mustID(t, texts[0]) {
		t.Fatal("Expected the first text node to be the only child")
	}
}
