package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChromaticIntervalUnison(t *testing.T) {
	for _, root := range Notes() {
		assert.Equal(t, Unison, ChromaticInterval(root, root))
	}
}

func TestChromaticIntervalIsTotal(t *testing.T) {
	for _, root := range Notes() {
		for _, note := range Notes() {
			assert.NotEmpty(t, ChromaticInterval(root, note))
		}
	}
}

func TestChromaticIntervalShiftInvariant(t *testing.T) {
	for _, root := range Notes() {
		for _, note := range Notes() {
			want := ChromaticInterval(root, note)
			for k := 1; k < NumPitchClasses; k++ {
				assert.Equal(t, want, ChromaticInterval(root.Transpose(k), note.Transpose(k)))
			}
		}
	}
}

func TestChromaticIntervalTable(t *testing.T) {
	want := []Interval{"P1", "m2", "M2", "m3", "M3", "P4", "TT", "P5", "m6", "M6", "m7", "M7"}
	for semis, iv := range want {
		assert.Equal(t, iv, ChromaticInterval(C, Note(semis)))
	}
	assert.Equal(t, MajorThird, ChromaticInterval(A, MustParseNote("C#/Db")))
}

func TestIntervalFromKey(t *testing.T) {
	tests := []struct {
		name   string
		scale  Scale
		key    Note
		note   Note
		want   Interval
		inside bool
	}{
		{"C major fifth", Major, C, G, PerfectFifth, true},
		{"C major outside", Major, C, CSharp, "", false},
		{"A minor third", Minor, A, C, MinorThird, true},
		{"E minor penta seventh", MinorPenta, E, D, MinorSeventh, true},
		{"E minor penta second is outside", MinorPenta, E, FSharp, "", false},
		{"G major penta sixth", MajorPenta, G, E, MajorSixth, true},
		{"wraps below key", Major, G, FSharp, MajorSeventh, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IntervalFromKey(tt.scale, tt.key, tt.note)
			assert.Equal(t, tt.inside, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalFromKeyUnison(t *testing.T) {
	for _, s := range Scales() {
		for _, key := range Notes() {
			got, ok := IntervalFromKey(s, key, key)
			assert.True(t, ok)
			assert.Equal(t, Unison, got)
		}
	}
}

func TestIntervalFromKeyFirstMatchWins(t *testing.T) {
	dup := Scale{Name: "dup", Degrees: []Degree{{"first", 4}, {"second", 4}}}
	got, ok := IntervalFromKey(dup, C, E)
	assert.True(t, ok)
	assert.Equal(t, Interval("first"), got)
}

func TestIntervalDisplay(t *testing.T) {
	assert.Equal(t, "N/A", Interval("").Display())
	assert.Equal(t, "P5", PerfectFifth.Display())
}
