package fretboard

import (
	"errors"
	"strconv"
	"strings"
)

// MaxFret is the highest fret accepted from input
const MaxFret = 22

var (
	ErrMalformedInput = errors.New("malformed position")
	ErrUnknownString  = errors.New("unknown string")
	ErrFretOutOfRange = errors.New("fret out of range")
)

// ValidationError reports why a raw position was rejected.
// errors.Is matches it against the Err* kinds.
type ValidationError struct {
	Kind  error
	Input string
}

func (e *ValidationError) Error() string {
	return e.Kind.Error() + ": " + strconv.Quote(e.Input)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// ParsePosition checks a "string,fret" token against the tuning.
// Checks run in order: format, string number, fret range. A number too
// large for an int is well-formed; it fails the range checks instead.
func ParsePosition(raw string, tuning *Tuning) (Position, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Position{}, &ValidationError{Kind: ErrMalformedInput, Input: raw}
	}
	str, strOverflow, err := parseToken(parts[0])
	if err != nil {
		return Position{}, &ValidationError{Kind: ErrMalformedInput, Input: raw}
	}
	fret, fretOverflow, err := parseToken(parts[1])
	if err != nil {
		return Position{}, &ValidationError{Kind: ErrMalformedInput, Input: raw}
	}

	if strOverflow || !tuning.Has(str) {
		return Position{}, &ValidationError{Kind: ErrUnknownString, Input: raw}
	}
	if fretOverflow || fret < 0 || fret > MaxFret {
		return Position{}, &ValidationError{Kind: ErrFretOutOfRange, Input: raw}
	}
	return Position{Str: str, Fret: fret}, nil
}

// parseToken reads one integer; overflow reports a number outside int range
func parseToken(tok string) (n int, overflow bool, err error) {
	n, err = strconv.Atoi(strings.TrimSpace(tok))
	if errors.Is(err, strconv.ErrRange) {
		return 0, true, nil
	}
	return n, false, err
}
