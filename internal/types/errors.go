package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrorKind tags the taxonomy of ways inference can fail. Each kind maps
// to a distinct class of user-facing diagnostic. A Diagnostic carries the
// types involved, not a pre-rendered message alone, so the checker package
// can re-render it under a different printer mode without re-running
// inference.
type ErrorKind int

const (
	ErrUnboundValue ErrorKind = iota
	ErrUnboundType
	ErrTypeMismatch
	ErrOccursCheck
	ErrArityMismatch
	ErrMissingProperty
	ErrNotCallable
	ErrNoValidOverload
	ErrTupleIndexOutOfBounds
	ErrAwaitOutsideAsync
	ErrUnawaitedPromise
	ErrDeclareWithInitializer
	ErrDeclareWithoutAnnotation
	ErrNonDeclareWithoutInitializer
	ErrUnreachableArm
	ErrNonExhaustiveMatch
	ErrUndecidable
)

// Diagnostic is a structured inference error. Unlike a bare error string,
// it carries the arena indices involved so a caller can re-render them
// under a different printer configuration (plain text, LSP hover, etc.)
// without re-running inference.
type Diagnostic struct {
	ID      string
	Kind    ErrorKind
	Message string
	Types   []Idx
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// NewDiagnostic builds a Diagnostic for error kinds whose message the
// caller (typically the checker package, which has source spans the
// types package does not) composes itself.
func NewDiagnostic(kind ErrorKind, msg string, involved ...Idx) *Diagnostic {
	return newDiagnostic(kind, msg, involved...)
}

func newDiagnostic(kind ErrorKind, msg string, involved ...Idx) *Diagnostic {
	return &Diagnostic{
		ID:      uuid.NewString(),
		Kind:    kind,
		Message: msg,
		Types:   involved,
	}
}

func errUnboundValue(name string) *Diagnostic {
	return newDiagnostic(ErrUnboundValue, fmt.Sprintf("unbound value %q", name))
}

func errUnboundType(name string) *Diagnostic {
	return newDiagnostic(ErrUnboundType, fmt.Sprintf("unbound type name %q", name))
}

func errTypeMismatch(a *Arena, x, y Idx) *Diagnostic {
	return newDiagnostic(ErrTypeMismatch,
		fmt.Sprintf("type mismatch: %s is not assignable to %s", Print(a, x), Print(a, y)), x, y)
}

func errOccursCheck(a *Arena, x, y Idx) *Diagnostic {
	return newDiagnostic(ErrOccursCheck,
		fmt.Sprintf("recursive type: %s occurs in %s", Print(a, x), Print(a, y)), x, y)
}

func errArityMismatch(expected, got int, a *Arena, fn Idx) *Diagnostic {
	return newDiagnostic(ErrArityMismatch,
		fmt.Sprintf("expected %d argument(s), got %d for %s", expected, got, Print(a, fn)), fn)
}

func errMissingProperty(a *Arena, obj Idx, name string) *Diagnostic {
	return newDiagnostic(ErrMissingProperty,
		fmt.Sprintf("property %q is missing in %s", name, Print(a, obj)), obj)
}

func errNotCallable(a *Arena, t Idx) *Diagnostic {
	return newDiagnostic(ErrNotCallable, fmt.Sprintf("%s is not callable", Print(a, t)), t)
}

func errNoValidOverload(a *Arena, t Idx) *Diagnostic {
	return newDiagnostic(ErrNoValidOverload, fmt.Sprintf("no valid overload of %s for these arguments", Print(a, t)), t)
}

func errTupleIndexOutOfBounds(a *Arena, tup Idx, idx, length int) *Diagnostic {
	return newDiagnostic(ErrTupleIndexOutOfBounds,
		fmt.Sprintf("tuple index %d out of bounds for %s (length %d)", idx, Print(a, tup), length), tup)
}

func errUndecidable(a *Arena, t Idx) *Diagnostic {
	return newDiagnostic(ErrUndecidable,
		fmt.Sprintf("inference is undecidable: more than one type variable opposite %s in intersection", Print(a, t)), t)
}
