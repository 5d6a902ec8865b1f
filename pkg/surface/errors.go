package surface

import "fmt"

// Kind classifies decoder failures.
type Kind uint8

const (
	// KindSizeMismatch means the source length differs from the computed
	// required length. It is never corrected automatically.
	KindSizeMismatch Kind = iota + 1

	// KindUnsupported means the format, sign mode or stage combination is
	// not handled. It points at an integration bug rather than bad data.
	KindUnsupported

	// KindMalformed means a container header could not be parsed.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindSizeMismatch:
		return "size mismatch"
	case KindUnsupported:
		return "unsupported format"
	case KindMalformed:
		return "malformed data"
	default:
		return "unknown error"
	}
}

// Error is the typed error returned by every decoder in this module.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Kind.String() + ": " + e.Msg
	}
	return e.Kind.String()
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrSizeMismatch)
// works through fmt.Errorf wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Msg == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrSizeMismatch = &Error{Kind: KindSizeMismatch}
	ErrUnsupported  = &Error{Kind: KindUnsupported}
	ErrMalformed    = &Error{Kind: KindMalformed}
)

// SizeMismatch reports a source buffer whose length is not the required one.
func SizeMismatch(what string, got, want int) error {
	return &Error{
		Kind: KindSizeMismatch,
		Msg:  fmt.Sprintf("%s is %d bytes, expected %d", what, got, want),
	}
}

// Unsupported reports an unhandled format combination.
func Unsupported(format string, args ...any) error {
	return &Error{Kind: KindUnsupported, Msg: fmt.Sprintf(format, args...)}
}

// Malformed reports unparseable container data.
func Malformed(format string, args ...any) error {
	return &Error{Kind: KindMalformed, Msg: fmt.Sprintf(format, args...)}
}
