// Package errors provides structured error types for the doogie library.
//
// Errors are categorized by Phase (which layer of node handling failed) and
// Kind (error category). The Error type carries the operation name, the
// engine return code or enum value when one is involved, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMutate, errors.KindReturnCode).
//		Op("append_child").
//		Code(0).
//		Detail("engine rejected child").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ResourceUnavailable(errors.PhaseAccess, "get_content")
//	err := errors.BadEnum(errors.PhaseAccess, "get_type", 42, "node type")
//
// Kind-only matching is available through IsKind or a target with an
// empty phase:
//
//	if errors.IsKind(err, errors.KindResourceUnavailable) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
