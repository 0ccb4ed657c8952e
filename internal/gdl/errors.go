package gdl

import (
	"fmt"

	"github.com/dekarrin/ggpagent/internal/ggerrors"
)

// ParseError is returned by Parse on malformed input. It carries the byte
// offset of the token that caused the failure, per the MalformedGDL error
// kind's contract.
type ParseError struct {
	Offset int
	msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gdl: %s (at byte offset %d)", e.msg, e.Offset)
}

// Kind reports ggerrors.KindMalformedGDL. ggerrors.Is(err,
// ggerrors.KindMalformedGDL) matches a ParseError through Unwrap, not
// through this method.
func (e *ParseError) Kind() ggerrors.Kind {
	return ggerrors.KindMalformedGDL
}

// Unwrap exposes a ggerrors.Error so errors.Is/errors.As interop with the
// rest of the core's error-kind machinery.
func (e *ParseError) Unwrap() error {
	return ggerrors.New(ggerrors.KindMalformedGDL, e.msg)
}

func parseErrorf(pos int, format string, a ...interface{}) error {
	return &ParseError{Offset: pos, msg: fmt.Sprintf(format, a...)}
}
