package fretboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	tun := StandardTuning()
	tests := []struct {
		name string
		raw  string
		want Position
		err  error
	}{
		{name: "open low string", raw: "6,0", want: Position{Str: 6, Fret: 0}},
		{name: "top fret", raw: "1,22", want: Position{Str: 1, Fret: 22}},
		{name: "spaces", raw: " 5 , 7 ", want: Position{Str: 5, Fret: 7}},
		{name: "no comma", raw: "abc", err: ErrMalformedInput},
		{name: "empty", raw: "", err: ErrMalformedInput},
		{name: "two commas", raw: "6,3,1", err: ErrMalformedInput},
		{name: "missing fret", raw: "6,", err: ErrMalformedInput},
		{name: "letters", raw: "a,b", err: ErrMalformedInput},
		{name: "unknown string", raw: "7,3", err: ErrUnknownString},
		{name: "string zero", raw: "0,3", err: ErrUnknownString},
		{name: "fret too high", raw: "6,99", err: ErrFretOutOfRange},
		{name: "fret 23", raw: "6,23", err: ErrFretOutOfRange},
		{name: "negative fret", raw: "6,-1", err: ErrFretOutOfRange},
		{name: "string checked before fret", raw: "9,99", err: ErrUnknownString},
		{name: "fret beyond int", raw: "6,99999999999999999999", err: ErrFretOutOfRange},
		{name: "negative fret beyond int", raw: "6,-99999999999999999999", err: ErrFretOutOfRange},
		{name: "string beyond int", raw: "99999999999999999999,3", err: ErrUnknownString},
		{name: "huge string with bad fret", raw: "99999999999999999999,x", err: ErrMalformedInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePosition(tt.raw, tun)
			if tt.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.raw, verr.Input)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "(6,3)", Position{Str: 6, Fret: 3}.String())
}
