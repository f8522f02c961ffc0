package theory

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteNameRoundTrip(t *testing.T) {
	for _, name := range NoteNames() {
		n, err := ParseNote(name)
		require.NoError(t, err)
		assert.Equal(t, name, n.String())
	}
}

func TestParseNoteAcceptsSingleSpellings(t *testing.T) {
	cases := map[string]Note{
		"C#":    CSharp,
		"Db":    CSharp,
		"db":    CSharp,
		" e ":   E,
		"bb":    ASharp,
		"a#/bb": ASharp,
		"G#/Ab": GSharp,
		"F#":    FSharp,
		"Gb":    FSharp,
		"b":     B,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got, err := ParseNote(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParseNoteRejectsUnknownNames(t *testing.T) {
	for _, in := range []string{"", "H", "E#", "C##", "Cb/B"} {
		_, err := ParseNote(in)
		assert.ErrorIs(t, err, ErrInvalidNoteName, in)
	}
}

func TestMustParseNotePanics(t *testing.T) {
	assert.Panics(t, func() { MustParseNote("X") })
	assert.NotPanics(t, func() { MustParseNote("A") })
}

func TestPitchClassWraps(t *testing.T) {
	assert.Equal(t, C, PitchClass(12))
	assert.Equal(t, B, PitchClass(-1))
	assert.Equal(t, E, PitchClass(uint8(64)))
	assert.Equal(t, A, PitchClass(int64(-27)))
}

func TestResolveNoteIdentityAtFretZero(t *testing.T) {
	for _, n := range Notes() {
		assert.Equal(t, n, ResolveNote(n, 0))
	}
}

func TestResolveNotePeriodicity(t *testing.T) {
	for _, n := range Notes() {
		for fret := 0; fret <= 48; fret++ {
			assert.Equal(t, ResolveNote(n, fret%12), ResolveNote(n, fret),
				fmt.Sprintf("%s fret %d", n, fret))
		}
	}
}

func TestResolveNoteOnStandardTuning(t *testing.T) {
	assert.Equal(t, "G", ResolveNote(E, 3).String())
	assert.Equal(t, "C", ResolveNote(A, 3).String())
	assert.Equal(t, "C#/Db", ResolveNote(B, 2).String())
	assert.Equal(t, "E", ResolveNote(E, 12).String())
	assert.Equal(t, "D", ResolveNote(E, 22).String())
}

func TestSemitonesTo(t *testing.T) {
	assert.Equal(t, 0, C.SemitonesTo(C))
	assert.Equal(t, 7, C.SemitonesTo(G))
	assert.Equal(t, 5, G.SemitonesTo(C))
	assert.Equal(t, 11, CSharp.SemitonesTo(C))
}
