package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in node handling the error occurred
type Phase string

const (
	PhaseParse    Phase = "parse"    // text to tree
	PhaseAccess   Phase = "access"   // getter reads
	PhaseUpdate   Phase = "update"   // setter writes
	PhaseTraverse Phase = "traverse" // navigation and iteration
	PhaseMutate   Phase = "mutate"   // structural changes
	PhaseRender   Phase = "render"   // tree to text
	PhaseDestroy  Phase = "destroy"  // freeing subtrees
	PhaseConfig   Phase = "config"   // CLI configuration
)

// Kind categorizes the error
type Kind string

const (
	KindResourceUnavailable Kind = "resource_unavailable"
	KindReturnCode          Kind = "return_code"
	KindBadEnum             Kind = "bad_enum"
	KindEncoding            Kind = "encoding"
	KindNodeNone            Kind = "node_none"
	KindInvalidInput        Kind = "invalid_input"
	KindNotFound            Kind = "not_found"
	KindIO                  Kind = "io"
)

// Error is the structured error type used throughout doogie
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Node   string
	Detail string
	Code   int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" at ")
		b.WriteString(e.Op)
	}

	if e.Node != "" {
		b.WriteString(" on ")
		b.WriteString(e.Node)
	}

	if e.Kind == KindReturnCode {
		fmt.Fprintf(&b, " (code %d)", e.Code)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without a phase matches on kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Op sets the operation name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Node sets the node description
func (b *Builder) Node(n string) *Builder {
	b.err.Node = n
	return b
}

// Code sets the engine return code
func (b *Builder) Code(code int) *Builder {
	b.err.Code = code
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ResourceUnavailable creates an error for use of an invalidated node handle
func ResourceUnavailable(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindResourceUnavailable,
		Op:     op,
		Detail: "the resource is no longer available",
	}
}

// ReturnCode creates an error for a non-success engine status
func ReturnCode(phase Phase, op string, code int) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindReturnCode,
		Op:    op,
		Code:  code,
		Value: code,
	}
}

// BadEnum creates an error for an engine tag outside the known enumeration
func BadEnum(phase Phase, op string, value int, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadEnum,
		Op:     op,
		Detail: fmt.Sprintf("invalid %s value %d", enumType, value),
		Value:  value,
	}
}

// Encoding creates an error for text the engine cannot represent
func Encoding(phase Phase, op string, offset int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEncoding,
		Op:     op,
		Detail: fmt.Sprintf("text contains a NUL byte at offset %d", offset),
		Value:  offset,
	}
}

// NodeNone creates an error for a node the engine reports as untyped
func NodeNone(phase Phase, op string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNodeNone,
		Op:     op,
		Detail: "engine returned a node without a type",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindIO,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}
