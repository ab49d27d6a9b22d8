package node

import (
	"github.com/PolySync/doogie/cmark"
	"github.com/PolySync/doogie/errors"
)

// Type is the kind of a node.
type Type int

const (
	TypeNone Type = iota
	TypeDocument
	TypeBlockQuote
	TypeList
	TypeItem
	TypeCodeBlock
	TypeHTMLBlock
	TypeCustomBlock
	TypeParagraph
	TypeHeading
	TypeThematicBreak
	TypeText
	TypeSoftBreak
	TypeLineBreak
	TypeCode
	TypeHTMLInline
	TypeCustomInline
	TypeEmph
	TypeStrong
	TypeLink
	TypeImage
)

// Types lists every concrete node kind in engine order.
var Types = []Type{
	TypeDocument, TypeBlockQuote, TypeList, TypeItem, TypeCodeBlock,
	TypeHTMLBlock, TypeCustomBlock, TypeParagraph, TypeHeading,
	TypeThematicBreak, TypeText, TypeSoftBreak, TypeLineBreak, TypeCode,
	TypeHTMLInline, TypeCustomInline, TypeEmph, TypeStrong, TypeLink,
	TypeImage,
}

// String returns the engine's name for the type, e.g. "block_quote".
func (t Type) String() string {
	return cmark.TypeName(int(t))
}

// IsBlock reports whether t is a block kind.
func (t Type) IsBlock() bool {
	return t >= TypeDocument && t <= TypeThematicBreak
}

// IsInline reports whether t is an inline kind.
func (t Type) IsInline() bool {
	return t >= TypeText && t <= TypeImage
}

// ParseType converts a raw engine tag into a Type.
func ParseType(raw int) (Type, error) {
	return parseType(errors.PhaseAccess, "parse_type", raw)
}

func parseType(phase errors.Phase, op string, raw int) (Type, error) {
	if raw < int(TypeNone) || raw > int(TypeImage) {
		return TypeNone, errors.BadEnum(phase, op, raw, "node type")
	}
	return Type(raw), nil
}

// TypeByName looks a type up by its engine name.
func TypeByName(name string) (Type, bool) {
	for _, t := range Types {
		if t.String() == name {
			return t, true
		}
	}
	return TypeNone, false
}

// ListType is the marker style of a list.
type ListType int

const (
	ListNone ListType = iota
	ListBullet
	ListOrdered
)

func (l ListType) String() string {
	switch l {
	case ListNone:
		return "none"
	case ListBullet:
		return "bullet"
	case ListOrdered:
		return "ordered"
	}
	return "<unknown>"
}

// ParseListType converts a raw engine tag into a ListType.
func ParseListType(raw int) (ListType, error) {
	return parseListType("parse_list_type", raw)
}

func parseListType(op string, raw int) (ListType, error) {
	if raw < int(ListNone) || raw > int(ListOrdered) {
		return ListNone, errors.BadEnum(errors.PhaseAccess, op, raw, "list type")
	}
	return ListType(raw), nil
}

// DelimType is the delimiter following an ordered list number.
type DelimType int

const (
	DelimNone DelimType = iota
	DelimPeriod
	DelimParen
)

func (d DelimType) String() string {
	switch d {
	case DelimNone:
		return "none"
	case DelimPeriod:
		return "period"
	case DelimParen:
		return "paren"
	}
	return "<unknown>"
}

// ParseDelimType converts a raw engine tag into a DelimType.
func ParseDelimType(raw int) (DelimType, error) {
	return parseDelimType("parse_delim_type", raw)
}

func parseDelimType(op string, raw int) (DelimType, error) {
	if raw < int(DelimNone) || raw > int(DelimParen) {
		return DelimNone, errors.BadEnum(errors.PhaseAccess, op, raw, "delimiter type")
	}
	return DelimType(raw), nil
}

// EventType is a step of a depth-first walk.
type EventType int

const (
	EventNone EventType = iota
	EventDone
	EventEnter
	EventExit
)

func (e EventType) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventDone:
		return "done"
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	}
	return "<unknown>"
}

// ParseEventType converts a raw engine tag into an EventType.
func ParseEventType(raw int) (EventType, error) {
	return parseEventType("parse_event_type", raw)
}

func parseEventType(op string, raw int) (EventType, error) {
	if raw < int(EventNone) || raw > int(EventExit) {
		return EventNone, errors.BadEnum(errors.PhaseTraverse, op, raw, "event type")
	}
	return EventType(raw), nil
}

// Options is a bit set of parse and render options.
type Options = cmark.Options

const (
	OptDefault    = cmark.OptDefault
	OptSourcePos  = cmark.OptSourcePos
	OptHardBreaks = cmark.OptHardBreaks
	OptNoBreaks   = cmark.OptNoBreaks
	OptSmart      = cmark.OptSmart
)
