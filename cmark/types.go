package cmark

// NodePtr is an opaque handle to a node in the engine arena.
// The low 32 bits hold the slot index plus one, the high 32 bits the slot
// generation. NodePtr 0 is the null handle.
type NodePtr uint64

// IterPtr is an opaque handle to an engine iterator. IterPtr 0 is the null
// handle.
type IterPtr uint64

func makePtr(idx, gen uint32) NodePtr {
	return NodePtr(uint64(gen)<<32 | uint64(idx+1))
}

func (p NodePtr) index() uint32 {
	return uint32(p) - 1
}

func (p NodePtr) generation() uint32 {
	return uint32(p >> 32)
}

// Node type tags as reported by NodeGetType.
const (
	NodeNone = iota
	NodeDocument
	NodeBlockQuote
	NodeList
	NodeItem
	NodeCodeBlock
	NodeHTMLBlock
	NodeCustomBlock
	NodeParagraph
	NodeHeading
	NodeThematicBreak
	NodeText
	NodeSoftBreak
	NodeLineBreak
	NodeCode
	NodeHTMLInline
	NodeCustomInline
	NodeEmph
	NodeStrong
	NodeLink
	NodeImage
)

const (
	firstBlock  = NodeDocument
	lastBlock   = NodeThematicBreak
	firstInline = NodeText
	lastInline  = NodeImage
)

// List type tags.
const (
	NoList = iota
	BulletList
	OrderedList
)

// List delimiter tags.
const (
	NoDelim = iota
	PeriodDelim
	ParenDelim
)

// Iterator event tags.
const (
	EventNone = iota
	EventDone
	EventEnter
	EventExit
)

// Status codes returned by mutating operations.
const (
	StatusFailed = 0
	StatusOK     = 1
)

// Options is a bit set of parse and render options.
type Options int

const (
	OptDefault    Options = 0
	OptSourcePos  Options = 1 << 1
	OptHardBreaks Options = 1 << 2
	OptNoBreaks   Options = 1 << 4
	OptSmart      Options = 1 << 10
)

var typeNames = [...]string{
	NodeNone:          "none",
	NodeDocument:      "document",
	NodeBlockQuote:    "block_quote",
	NodeList:          "list",
	NodeItem:          "item",
	NodeCodeBlock:     "code_block",
	NodeHTMLBlock:     "html_block",
	NodeCustomBlock:   "custom_block",
	NodeParagraph:     "paragraph",
	NodeHeading:       "heading",
	NodeThematicBreak: "thematic_break",
	NodeText:          "text",
	NodeSoftBreak:     "softbreak",
	NodeLineBreak:     "linebreak",
	NodeCode:          "code",
	NodeHTMLInline:    "html_inline",
	NodeCustomInline:  "custom_inline",
	NodeEmph:          "emph",
	NodeStrong:        "strong",
	NodeLink:          "link",
	NodeImage:         "image",
}

// TypeName returns the engine's name for a type tag, "<unknown>" for tags
// outside the enumeration.
func TypeName(t int) string {
	if t < 0 || t >= len(typeNames) {
		return "<unknown>"
	}
	return typeNames[t]
}

func isBlock(t int) bool  { return t >= firstBlock && t <= lastBlock }
func isInline(t int) bool { return t >= firstInline && t <= lastInline }

// isLeaf reports whether the iterator emits only an enter event for t.
func isLeaf(t int) bool {
	switch t {
	case NodeHTMLBlock, NodeThematicBreak, NodeCodeBlock, NodeText,
		NodeSoftBreak, NodeLineBreak, NodeCode, NodeHTMLInline:
		return true
	}
	return false
}

func hasLiteral(t int) bool {
	switch t {
	case NodeHTMLBlock, NodeText, NodeHTMLInline, NodeCode, NodeCodeBlock:
		return true
	}
	return false
}

// EventType identifies an engine lifecycle notification.
type EventType uint8

const (
	EventAllocated EventType = iota
	EventFreed
	EventInvalidAccess
	EventInvalidFree
	EventIterOpened
	EventIterClosed
)

func (t EventType) String() string {
	switch t {
	case EventAllocated:
		return "allocated"
	case EventFreed:
		return "freed"
	case EventInvalidAccess:
		return "invalid_access"
	case EventInvalidFree:
		return "invalid_free"
	case EventIterOpened:
		return "iter_opened"
	case EventIterClosed:
		return "iter_closed"
	}
	return "unknown"
}

// Event is a lifecycle notification delivered to observers.
type Event struct {
	Op   string
	Node NodePtr
	Iter IterPtr
	Type EventType
}

// Observer receives engine lifecycle events.
type Observer interface {
	OnEngineEvent(Event)
}

// Stats is a snapshot of live engine allocations.
type Stats struct {
	LiveNodes int
	LiveIters int
}
