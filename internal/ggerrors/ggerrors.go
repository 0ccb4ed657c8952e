// Package ggerrors holds the typed error kinds shared across the reasoner,
// game, and player layers. A Kind is checkable with errors.Is against the
// exported sentinel of the same name; the concrete Error additionally
// carries a human message and, optionally, a wrapped cause.
package ggerrors

import "fmt"

// Kind identifies one of the error categories a caller may need to branch
// on (HTTP status mapping, retry policy, and so on).
type Kind int

const (
	// KindNone is the zero value and is never returned from a constructor.
	KindNone Kind = iota

	// KindMalformedGDL is returned by the parser on malformed input.
	KindMalformedGDL

	// KindStratificationViolated is returned at rule-set construction when
	// negation forms a cycle through the predicate dependency graph.
	KindStratificationViolated

	// KindUnknownGameID is returned by the match registry for an operation
	// on a game-id with no active match.
	KindUnknownGameID

	// KindDuplicateGameID is returned by (start) for an id already playing.
	KindDuplicateGameID

	// KindIllegalMove is returned by State.Apply when a submitted action is
	// not legal in the current state.
	KindIllegalMove

	// KindTimeUp is returned by a Timer once its deadline has passed.
	KindTimeUp

	// KindInternalReasoner marks a reasoner bug or resource exhaustion that
	// is not the caller's fault.
	KindInternalReasoner

	// KindArityMismatch is returned when a query or clause instantiates a
	// predicate with the wrong number of arguments.
	KindArityMismatch

	// KindRecursionLimit is returned when backward evaluation exceeds its
	// configured call-depth guard, a defense against buggy rule sets that
	// would otherwise recurse forever despite being stratified.
	KindRecursionLimit
)

func (k Kind) String() string {
	switch k {
	case KindMalformedGDL:
		return "MalformedGDL"
	case KindStratificationViolated:
		return "StratificationViolated"
	case KindUnknownGameID:
		return "UnknownGameId"
	case KindDuplicateGameID:
		return "DuplicateGameId"
	case KindIllegalMove:
		return "IllegalMove"
	case KindTimeUp:
		return "TimeUp"
	case KindInternalReasoner:
		return "InternalReasoner"
	case KindArityMismatch:
		return "ArityMismatch"
	case KindRecursionLimit:
		return "RecursionLimit"
	default:
		return "None"
	}
}

// Error is the concrete error type returned by the core packages. errors.Is
// matches it against any other Error of the same Kind, ignoring message and
// cause; to check against a Kind directly, use the Is(err, kind) helper
// below.
type Error struct {
	kind  Kind
	msg   string
	cause error
}

// New creates an Error of the given kind with the given message.
func New(kind Kind, msg string) Error {
	return Error{kind: kind, msg: msg}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, a ...interface{}) Error {
	return Error{kind: kind, msg: fmt.Sprintf(format, a...)}
}

// Wrap creates an Error of the given kind that wraps cause.
func Wrap(kind Kind, cause error, msg string) Error {
	return Error{kind: kind, msg: msg, cause: cause}
}

// Kind returns the Kind of the error.
func (e Error) Kind() Kind {
	return e.kind
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
	}
	return e.msg
}

// Unwrap gives the wrapped cause, if any, for use with errors.As/errors.Is.
func (e Error) Unwrap() error {
	return e.cause
}

// Is lets errors.Is(err, ggerrors.New(ggerrors.KindTimeUp, "")) match
// purely on Kind, ignoring message and cause.
func (e Error) Is(target error) bool {
	other, ok := target.(Error)
	if !ok {
		return false
	}
	return other.kind == e.kind
}

// Is reports whether err is a ggerrors.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e Error
	for err != nil {
		if ge, ok := err.(Error); ok {
			e = ge
			if e.kind == kind {
				return true
			}
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return false
}
